// Package create_booking implements the create booking command: parse
// and validate the requested start time, resolve tutor/student roles,
// check for conflicts and the free-trial rule in one query, and
// persist the new booking inside a serializable transaction.
package create_booking

import (
	"context"
	"time"

	"github.com/tutorly/booking-engine/internal/domain"
)

// BookingRepository is the narrow slice of the booking repository this
// usecase needs.
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	FindBetweenUsers(ctx context.Context, tutorID, studentID int64, candidateStart, candidateEnd time.Time) ([]*domain.Booking, error)
}

// UserRepository resolves the counter-party of a booking request.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// TransactionManager runs fn inside a serializable transaction so the
// conflict check and the insert observe the same snapshot.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Clock supplies the current instant, injectable for tests.
type Clock interface {
	Now() time.Time
}

// Logger is the narrow logging dependency this package needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// EventPublisher fans the booking.scheduled event out after commit.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
}
