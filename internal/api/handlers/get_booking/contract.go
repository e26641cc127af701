// Package get_booking is the HTTP edge of "GET bookings/{id}".
package get_booking

import (
	"context"

	getBooking "github.com/tutorly/booking-engine/internal/usecase/get_booking"
)

// UseCase is the narrow usecase dependency this handler needs.
type UseCase interface {
	Execute(ctx context.Context, req *getBooking.Request) (*getBooking.Response, error)
}

// Logger is the narrow logging dependency this handler needs.
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
