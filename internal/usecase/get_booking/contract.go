// Package get_booking implements "GET bookings/{id}": loads one
// booking the actor is authorized to see, denormalized with its host,
// participants and payment.
package get_booking

import (
	"context"

	"github.com/tutorly/booking-engine/internal/domain"
)

// BookingRepository is the narrow slice of the booking repository this
// usecase needs.
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

// UserRepository resolves the host/participant summaries attached to
// the response.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Logger is the narrow logging dependency this package needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
