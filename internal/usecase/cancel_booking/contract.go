// Package cancel_booking implements the cancel booking command:
// either party may cancel from any of the cancelable statuses; a
// booking stuck in AWAITING_PAYMENT must first have its checkout
// session expired at the gateway before the transaction commits.
package cancel_booking

import (
	"context"

	"github.com/tutorly/booking-engine/internal/domain"
)

// BookingRepository is the narrow slice of the booking repository this
// usecase needs.
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
}

// Gateway is the slice of the payment gateway port this usecase needs.
type Gateway interface {
	ExpireCheckoutSession(ctx context.Context, sessionID string) error
}

// TransactionManager runs fn inside a serializable transaction.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger is the narrow logging dependency this package needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// EventPublisher fans the booking.canceled event out after commit.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
}
