package confirm_booking

import "github.com/tutorly/booking-engine/internal/domain"

// Request is the input to Execute.
type Request struct {
	BookingID   int64
	CurrentUser *domain.User
}

// Response is the booking's post-confirm status.
type Response struct {
	Status domain.BookingStatus
}
