// Package create_recurring implements the recurring booking command:
// validates pre-conditions, expands and resolves the requested
// weekday/time-of-day pattern, then persists the template and its
// child bookings atomically.
package create_recurring

import (
	"context"
	"time"

	"github.com/tutorly/booking-engine/internal/conflict"
	"github.com/tutorly/booking-engine/internal/domain"
	recurring "github.com/tutorly/booking-engine/internal/infra/storage/recurring"
)

// BookingRepository is the narrow slice of the booking repository
// this usecase needs: the prior-meeting check and child booking
// persistence.
type BookingRepository interface {
	FindBetweenUsers(ctx context.Context, tutorID, studentID int64, candidateStart, candidateEnd time.Time) ([]*domain.Booking, error)
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
}

// RecurringRepository persists the template and its time slots, and
// answers the RECURRING_TEMPLATE_CONFLICT pre-condition query.
type RecurringRepository interface {
	Create(ctx context.Context, tpl *domain.RecurringTemplate) (*domain.RecurringTemplate, error)
	FindActiveSlotsForHost(ctx context.Context, hostID int64) ([]recurring.ActiveSlot, error)
}

// Detector is the conflict-checking dependency, implemented by
// *conflict.Detector in production.
type Detector interface {
	Conflicts(ctx context.Context, q conflict.Query) (map[conflict.Candidate]*domain.Booking, error)
}

// TransactionManager runs fn inside a serializable transaction,
// retrying on serialization failure.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Clock is the injected time source.
type Clock interface {
	Now() time.Time
}

// Logger is the narrow logging dependency this package needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
