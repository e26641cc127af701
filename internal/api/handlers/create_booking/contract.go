// Package create_booking is the HTTP edge of the Create Booking
// command: "POST bookings".
package create_booking

import (
	"context"

	createBooking "github.com/tutorly/booking-engine/internal/usecase/create_booking"
)

// UseCase is the narrow usecase dependency this handler needs.
type UseCase interface {
	Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error)
}

// Logger is the narrow logging dependency this handler needs.
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
