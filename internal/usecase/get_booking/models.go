package get_booking

import "github.com/tutorly/booking-engine/internal/domain"

// Request is the input to Execute.
type Request struct {
	BookingID   int64
	CurrentUser *domain.User
}

// Response is the denormalized booking view returned for a single id.
// ImageURL is intentionally absent: the profile picture pipeline and
// object storage are out-of-scope external collaborators.
type Response struct {
	Booking      *domain.Booking
	Host         *domain.User
	Participants []*domain.User
}
