// Package process_webhook is the HTTP edge of the webhook reducer:
// "POST payments/webhook". It carries no actor, the gateway is the
// caller, authenticated by its signature header rather than
// middleware.Auth.
package process_webhook

import (
	"context"

	processWebhook "github.com/tutorly/booking-engine/internal/usecase/process_webhook"
)

// signatureHeader is the header the gateway signs its webhook payload
// delivery with.
const signatureHeader = "X-Gateway-Signature"

// UseCase is the narrow usecase dependency this handler needs.
type UseCase interface {
	Execute(ctx context.Context, req *processWebhook.Request) (*processWebhook.Response, error)
}

// Logger is the narrow logging dependency this handler needs.
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
