// Package reschedule_booking implements the reschedule booking
// command: validates the new start time, checks the actor is the party
// whose turn it is to move the meeting, re-checks for conflicts against
// the host's other active bookings, and flips the awaiting-confirmation
// direction.
package reschedule_booking

import (
	"context"
	"time"

	"github.com/tutorly/booking-engine/internal/conflict"
	"github.com/tutorly/booking-engine/internal/domain"
)

// BookingRepository is the narrow slice of the booking repository this
// usecase needs.
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Reschedule(ctx context.Context, id int64, startTime, endTime time.Time, status domain.BookingStatus) error
}

// ConflictRepository is reused from the conflict package's Repository
// contract so this usecase and the Recurrence Expander share one query
// shape for "who else overlaps this interval".
type ConflictRepository interface {
	FindOverlapping(ctx context.Context, q conflict.Query) ([]*domain.Booking, error)
}

// TransactionManager runs fn inside a serializable transaction.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

// Logger is the narrow logging dependency this package needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// EventPublisher fans the booking.rescheduled event out after commit.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
}
