// Package webhook maps a verified payment-gateway event to a booking
// status transition, idempotently, checking the expected pre-status
// before mutating.
package webhook

import (
	"context"
	"fmt"

	"github.com/tutorly/booking-engine/internal/apperr"
	"github.com/tutorly/booking-engine/internal/domain"
	"github.com/tutorly/booking-engine/internal/gatewayport"
	"github.com/tutorly/booking-engine/internal/statemachine"
)

// Logger is the narrow logging dependency this package needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// Repository is the transactional dependency the reducer needs: load
// the booking the event targets, and persist the outcome.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	UpsertPayment(ctx context.Context, payment *domain.Payment) error
}

// eventToWebhookEvent maps a gateway event type to the statemachine
// event it drives.
var eventToWebhookEvent = map[gatewayport.EventType]statemachine.Event{
	gatewayport.EventPaymentIntentSucceeded:     statemachine.EventWebhookPaymentSucceed,
	gatewayport.EventPaymentIntentPaymentFailed: statemachine.EventWebhookPaymentFailed,
	gatewayport.EventChargeRefunded:             statemachine.EventWebhookChargeRefunded,
	gatewayport.EventRefundCreated:              statemachine.EventWebhookRefundCreated,
	gatewayport.EventRefundFailed:               statemachine.EventWebhookRefundFailed,
}

// Reducer applies gateway webhook events to bookings.
type Reducer struct {
	repo Repository
	log  Logger
}

// New builds a Reducer.
func New(repo Repository, log Logger) *Reducer {
	return &Reducer{repo: repo, log: log}
}

// Apply processes one verified webhook event. Unknown event types are
// acknowledged with success and no mutation. A booking that no longer
// matches its expected pre-status is acknowledged without mutation too;
// the caller must still report success so the gateway does not retry a
// no-op forever.
func (r *Reducer) Apply(ctx context.Context, event *gatewayport.WebhookEvent) error {
	if event.BookingID == nil {
		return apperr.New(apperr.CodeInvalidMetadata, "webhook event is missing bookingId in metadata")
	}

	smEvent, known := eventToWebhookEvent[event.Type]
	if !known {
		r.log.Info("webhook: ignoring unknown event type %q", event.Type)
		return nil
	}

	booking, err := r.repo.GetByID(ctx, *event.BookingID)
	if err != nil {
		return apperr.Wrap(apperr.CodeBookingNotFound, fmt.Sprintf("booking %d not found for webhook event", *event.BookingID), err)
	}

	target, legal := statemachine.ApplyWebhook(booking.Status, smEvent)
	if !legal {
		r.log.Warn("webhook: event %q not legal from status %s for booking %d, acknowledging without mutation",
			event.Type, booking.Status, booking.ID)
		return nil
	}

	if target == booking.Status {
		r.log.Info("webhook: booking %d already in status %s, idempotent no-op", booking.ID, target)
		return nil
	}

	if err := r.applySideEffects(ctx, booking, event); err != nil {
		return err
	}

	if err := r.repo.UpdateStatus(ctx, booking.ID, target); err != nil {
		return apperr.Wrap(apperr.CodeInternalServerError, "failed to persist webhook status transition", err)
	}

	return nil
}

func (r *Reducer) applySideEffects(ctx context.Context, booking *domain.Booking, event *gatewayport.WebhookEvent) error {
	switch event.Type {
	case gatewayport.EventPaymentIntentSucceeded, gatewayport.EventPaymentIntentPaymentFailed:
		payment := paymentFromBooking(booking)
		payment.PaymentIntentID = strPtr(event.PaymentIntentID)
		payment.ChargeID = strPtr(event.ChargeID)
		if event.FailureReason != "" {
			if payment.Metadata == nil {
				payment.Metadata = map[string]string{}
			}
			payment.Metadata["failureReason"] = event.FailureReason
		}
		if err := r.repo.UpsertPayment(ctx, payment); err != nil {
			return apperr.Wrap(apperr.CodeInternalServerError, "failed to persist payment from webhook", err)
		}
	case gatewayport.EventRefundFailed, gatewayport.EventChargeRefunded:
		if event.FailureReason == "" {
			return nil
		}
		payment := paymentFromBooking(booking)
		if payment.Metadata == nil {
			payment.Metadata = map[string]string{}
		}
		payment.Metadata["failureReason"] = event.FailureReason
		if err := r.repo.UpsertPayment(ctx, payment); err != nil {
			return apperr.Wrap(apperr.CodeInternalServerError, "failed to record refund failure reason", err)
		}
	}
	return nil
}

func paymentFromBooking(b *domain.Booking) *domain.Payment {
	if b.Payment != nil {
		return b.Payment
	}
	return &domain.Payment{BookingID: b.ID}
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
