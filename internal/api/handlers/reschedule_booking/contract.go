// Package reschedule_booking is the HTTP edge of the Reschedule
// Booking command: "PATCH bookings/{id}/reschedule".
package reschedule_booking

import (
	"context"

	rescheduleBooking "github.com/tutorly/booking-engine/internal/usecase/reschedule_booking"
)

// UseCase is the narrow usecase dependency this handler needs.
type UseCase interface {
	Execute(ctx context.Context, req *rescheduleBooking.Request) (*rescheduleBooking.Response, error)
}

// Logger is the narrow logging dependency this handler needs.
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
