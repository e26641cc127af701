// Package request_refund implements the request refund command: only
// a SCHEDULED booking with a recorded payment intent may have a refund
// requested; the gateway refund is created before the booking moves to
// AWAITING_REFUND, with the rest of the refund lifecycle driven by
// webhooks.
package request_refund

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
	CreateRefund(ctx context.Context, paymentIntentID string, bookingID int64) error
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

// EventPublisher fans the booking.refund_requested event out after commit.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
}
