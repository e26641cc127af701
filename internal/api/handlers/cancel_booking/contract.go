// Package cancel_booking is the HTTP edge of the Cancel Booking
// command: "PATCH bookings/{id}/cancel".
package cancel_booking

import (
	"context"

	cancelBooking "github.com/tutorly/booking-engine/internal/usecase/cancel_booking"
)

// UseCase is the narrow usecase dependency this handler needs.
type UseCase interface {
	Execute(ctx context.Context, req *cancelBooking.Request) (*cancelBooking.Response, error)
}

// Logger is the narrow logging dependency this handler needs.
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
