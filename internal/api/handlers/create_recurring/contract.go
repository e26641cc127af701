// Package create_recurring is the HTTP edge of the Recurrence
// Expander's command surface: "POST bookings/recurring".
package create_recurring

import (
	"context"

	createRecurring "github.com/tutorly/booking-engine/internal/usecase/create_recurring"
)

// UseCase is the narrow usecase dependency this handler needs.
type UseCase interface {
	Execute(ctx context.Context, req *createRecurring.Request) (*createRecurring.Response, error)
}

// Logger is the narrow logging dependency this handler needs.
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
