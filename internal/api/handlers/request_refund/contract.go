// Package request_refund is the HTTP edge of the Request Refund
// command: "PATCH bookings/{id}/cancel/refund".
package request_refund

import (
	"context"

	requestRefund "github.com/tutorly/booking-engine/internal/usecase/request_refund"
)

// UseCase is the narrow usecase dependency this handler needs.
type UseCase interface {
	Execute(ctx context.Context, req *requestRefund.Request) (*requestRefund.Response, error)
}

// Logger is the narrow logging dependency this handler needs.
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
