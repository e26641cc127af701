// Package list_bookings implements "GET bookings": a paginated,
// filtered, sorted view over the bookings the actor hosts or
// participates in.
package list_bookings

import (
	"context"

	booking "github.com/tutorly/booking-engine/internal/infra/storage/booking"
)

// BookingRepository is the narrow slice of the booking repository this
// usecase needs.
type BookingRepository interface {
	List(ctx context.Context, filter booking.ListFilter) (*booking.ListResult, error)
}

// Logger is the narrow logging dependency this package needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
