package process_webhook

import (
	"context"

	"github.com/tutorly/booking-engine/internal/apperr"
	"github.com/tutorly/booking-engine/internal/gatewayport"
	"github.com/tutorly/booking-engine/internal/infra/events"
)

// UseCase implements the webhook ingress: verify, then reduce.
type UseCase struct {
	gateway   Gateway
	reducer   Reducer
	txManager TransactionManager
	events    EventPublisher
	logger    Logger
}

// NewUseCase builds a UseCase.
func NewUseCase(gateway Gateway, reducer Reducer, txManager TransactionManager, events EventPublisher, logger Logger) *UseCase {
	return &UseCase{gateway: gateway, reducer: reducer, txManager: txManager, events: events, logger: logger}
}

// routingKeyForEvent maps a gateway webhook event kind to the domain
// routing key downstream consumers bind to.
func routingKeyForEvent(t gatewayport.EventType) (string, bool) {
	switch t {
	case gatewayport.EventPaymentIntentSucceeded:
		return events.RoutingKeyPaymentSucceeded, true
	case gatewayport.EventPaymentIntentPaymentFailed:
		return events.RoutingKeyPaymentFailed, true
	default:
		return "", false
	}
}

// Execute verifies req's signature and applies the resulting event.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	event, err := uc.gateway.VerifyAndParseWebhook(ctx, req.RawBody, req.Signature)
	if err != nil {
		uc.logger.Warn("ProcessWebhook: signature verification failed: %v", err)
		return nil, apperr.Wrap(apperr.CodeInvalidSignature, "webhook signature verification failed", err)
	}

	uc.logger.Info("ProcessWebhook: event=%s booking=%v", event.Type, event.BookingID)

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		return uc.reducer.Apply(txCtx, event)
	})
	if err != nil {
		return nil, err
	}

	if routingKey, ok := routingKeyForEvent(event.Type); ok && event.BookingID != nil {
		if pubErr := uc.events.Publish(ctx, routingKey, events.NewBookingEvent(*event.BookingID, "", 0)); pubErr != nil {
			uc.logger.Warn("ProcessWebhook: failed to publish booking event: %v", pubErr)
		}
	}

	return &Response{}, nil
}
