// Package process_webhook is the inbound edge of the webhook reducer:
// verifies the gateway's signature, parses the event, then hands it
// to the reducer inside a transaction.
package process_webhook

import (
	"context"

	"github.com/tutorly/booking-engine/internal/gatewayport"
)

// Gateway is the narrow slice of the gateway port this usecase needs.
type Gateway interface {
	VerifyAndParseWebhook(ctx context.Context, rawBody []byte, signature string) (*gatewayport.WebhookEvent, error)
}

// Reducer applies one verified webhook event to its booking.
type Reducer interface {
	Apply(ctx context.Context, event *gatewayport.WebhookEvent) error
}

// TransactionManager runs fn inside a serializable transaction.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger is the narrow logging dependency this package needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// EventPublisher fans the resulting payment outcome out after commit.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
}
