// Package confirm_booking is the HTTP edge of the Confirm Booking
// command: "PATCH bookings/{id}/confirm".
package confirm_booking

import (
	"context"

	confirmBooking "github.com/tutorly/booking-engine/internal/usecase/confirm_booking"
)

// UseCase is the narrow usecase dependency this handler needs.
type UseCase interface {
	Execute(ctx context.Context, req *confirmBooking.Request) (*confirmBooking.Response, error)
}

// Logger is the narrow logging dependency this handler needs.
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
