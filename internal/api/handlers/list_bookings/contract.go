// Package list_bookings is the HTTP edge of "GET bookings".
package list_bookings

import (
	"context"

	listBookings "github.com/tutorly/booking-engine/internal/usecase/list_bookings"
)

// UseCase is the narrow usecase dependency this handler needs.
type UseCase interface {
	Execute(ctx context.Context, req *listBookings.Request) (*listBookings.Response, error)
}

// Logger is the narrow logging dependency this handler needs.
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
