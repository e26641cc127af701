// Package gatewayport declares the outbound boundary to the payment
// gateway. Only the interface and its event types live here, the
// concrete gateway SDK binding is an external collaborator and is
// supplied at wiring time.
package gatewayport

import (
	"context"
	"errors"

	"github.com/tutorly/booking-engine/internal/domain"
)

// Errors a Port implementation may return; usecases translate these
// into apperr codes (PAYMENT_SESSION_CREATION_FAILED,
// PAYMENT_CANCELLATION_FAILED, REFUND_PROCESSING_FAILED, INVALID_SIGNATURE).
var (
	ErrSessionCreationFailed = errors.New("gatewayport: checkout session creation failed")
	ErrSessionExpireFailed   = errors.New("gatewayport: checkout session expiry failed")
	ErrRefundFailed          = errors.New("gatewayport: refund creation failed")
	ErrInvalidSignature      = errors.New("gatewayport: webhook signature verification failed")
)

// CheckoutSession is the gateway's response to a session
// creation/refresh call.
type CheckoutSession struct {
	SessionID  string
	SessionURL string
}

// EventType is a normalized payment-gateway webhook event kind.
type EventType string

const (
	EventPaymentIntentSucceeded     EventType = "payment_intent.succeeded"
	EventPaymentIntentPaymentFailed EventType = "payment_intent.payment_failed"
	EventChargeRefunded             EventType = "charge.refunded"
	EventRefundCreated              EventType = "refund.created"
	EventRefundFailed               EventType = "refund.failed"
)

// WebhookEvent is the typed, verified result of parsing a gateway
// webhook delivery.
type WebhookEvent struct {
	Type            EventType
	BookingID       *int64 // from event metadata; nil means missing (INVALID_METADATA)
	PaymentIntentID string
	ChargeID        string
	FailureReason   string
}

// Port is the outbound interface to the payment gateway, implemented
// externally. CreateOrRefreshCheckoutSession is idempotent: an
// existing non-expired session for the booking is reused rather than
// duplicated.
type Port interface {
	CreateOrRefreshCheckoutSession(ctx context.Context, booking *domain.Booking) (*CheckoutSession, error)
	ExpireCheckoutSession(ctx context.Context, sessionID string) error
	CreateRefund(ctx context.Context, paymentIntentID string, bookingID int64) error
	VerifyAndParseWebhook(ctx context.Context, rawBody []byte, signature string) (*WebhookEvent, error)
}
