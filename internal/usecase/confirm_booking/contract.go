// Package confirm_booking implements the confirm booking command: a
// free meeting is confirmed straight to SCHEDULED, a lesson moves to
// AWAITING_PAYMENT only after a checkout session is created at the
// payment gateway and its Payment row committed in the same
// transaction as the status change.
package confirm_booking

import (
	"context"

	"github.com/tutorly/booking-engine/internal/domain"
	"github.com/tutorly/booking-engine/internal/gatewayport"
)

// BookingRepository is the narrow slice of the booking repository this
// usecase needs.
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	UpsertPayment(ctx context.Context, payment *domain.Payment) error
}

// Gateway is the slice of the payment gateway port this usecase needs.
type Gateway interface {
	CreateOrRefreshCheckoutSession(ctx context.Context, booking *domain.Booking) (*gatewayport.CheckoutSession, error)
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

// EventPublisher fans the booking.confirmed event out after commit.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
}
