package request_refund

import "github.com/tutorly/booking-engine/internal/domain"

// Request is the input to Execute.
type Request struct {
	BookingID   int64
	CurrentUser *domain.User
}

// Response confirms the booking's new status.
type Response struct {
	Status domain.BookingStatus
}
