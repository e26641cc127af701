package reschedule_booking

import "github.com/tutorly/booking-engine/internal/domain"

// Request is the input to Execute.
type Request struct {
	BookingID   int64
	StartTime   string // ISO-8601 UTC
	CurrentUser *domain.User
}

// Response is the rescheduled booking's new status.
type Response struct {
	Status domain.BookingStatus
}
