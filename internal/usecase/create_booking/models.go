package create_booking

import "github.com/tutorly/booking-engine/internal/domain"

// Request is the input to Execute.
type Request struct {
	StartTime   string // ISO-8601 UTC, e.g. "2030-01-15T09:00:00.000Z"
	CurrentUser *domain.User
	ToUserID    int64
}

// Response is the created booking's id.
type Response struct {
	ID int64
}
