// Package fake is a hand-rolled test double for gatewayport.Port.
// Usecases are built around narrow interfaces specifically so tests
// (and, until a real gateway SDK is wired in, the running service
// itself) can implement them directly without a mocking framework.
package fake

import (
	"context"
	"fmt"

	"github.com/tutorly/booking-engine/internal/domain"
	"github.com/tutorly/booking-engine/internal/gatewayport"
)

// Gateway is a scriptable gatewayport.Port. Each *Err field, if set, is
// returned by the matching method instead of a success result. Calls
// are recorded so tests can assert call counts and ordering, including
// that a side-effecting call happened exactly once.
type Gateway struct {
	Session *gatewayport.CheckoutSession
	Event   *gatewayport.WebhookEvent

	CreateSessionErr error
	ExpireSessionErr error
	RefundErr        error
	VerifyErr        error

	CreateSessionCalls []int64
	ExpireSessionCalls []string
	RefundCalls        []int64
}

func New() *Gateway {
	return &Gateway{
		Session: &gatewayport.CheckoutSession{SessionID: "cs_test", SessionURL: "https://pay.test/cs_test"},
	}
}

func (g *Gateway) CreateOrRefreshCheckoutSession(_ context.Context, booking *domain.Booking) (*gatewayport.CheckoutSession, error) {
	g.CreateSessionCalls = append(g.CreateSessionCalls, booking.ID)
	if g.CreateSessionErr != nil {
		return nil, fmt.Errorf("%w: %v", gatewayport.ErrSessionCreationFailed, g.CreateSessionErr)
	}
	return g.Session, nil
}

func (g *Gateway) ExpireCheckoutSession(_ context.Context, sessionID string) error {
	g.ExpireSessionCalls = append(g.ExpireSessionCalls, sessionID)
	if g.ExpireSessionErr != nil {
		return fmt.Errorf("%w: %v", gatewayport.ErrSessionExpireFailed, g.ExpireSessionErr)
	}
	return nil
}

func (g *Gateway) CreateRefund(_ context.Context, _ string, bookingID int64) error {
	g.RefundCalls = append(g.RefundCalls, bookingID)
	if g.RefundErr != nil {
		return fmt.Errorf("%w: %v", gatewayport.ErrRefundFailed, g.RefundErr)
	}
	return nil
}

func (g *Gateway) VerifyAndParseWebhook(_ context.Context, _ []byte, _ string) (*gatewayport.WebhookEvent, error) {
	if g.VerifyErr != nil {
		return nil, fmt.Errorf("%w: %v", gatewayport.ErrInvalidSignature, g.VerifyErr)
	}
	return g.Event, nil
}
