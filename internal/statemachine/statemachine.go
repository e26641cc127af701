// Package statemachine enforces the booking status transition table.
// It is the one place that knows which (status, event, actor) triples
// are legal; the confirm, reschedule and cancel usecases and the
// webhook reducer ask it before mutating a booking. request_refund
// checks its single SCHEDULED precondition inline.
package statemachine

import "github.com/tutorly/booking-engine/internal/domain"

// Actor is who is attempting a transition.
type Actor string

const (
	ActorTutor   Actor = "TUTOR"
	ActorStudent Actor = "STUDENT"
	ActorEither  Actor = "EITHER"
	ActorSystem  Actor = "SYSTEM" // webhooks: no human actor
)

// Event is the command or webhook that drives a transition.
type Event string

const (
	EventConfirm               Event = "CONFIRM"
	EventReschedule            Event = "RESCHEDULE"
	EventCancel                Event = "CANCEL"
	EventRequestRefund         Event = "REQUEST_REFUND"
	EventWebhookPaymentSucceed Event = "WEBHOOK_PAYMENT_SUCCEEDED"
	EventWebhookPaymentFailed  Event = "WEBHOOK_PAYMENT_FAILED"
	EventWebhookRefundCreated  Event = "WEBHOOK_REFUND_CREATED"
	EventWebhookRefundFailed   Event = "WEBHOOK_REFUND_FAILED"
	EventWebhookChargeRefunded Event = "WEBHOOK_CHARGE_REFUNDED"
)

type transitionKey struct {
	from  domain.BookingStatus
	event Event
}

// transitions maps (from, event) to the actor allowed to drive it
// (ActorEither admits tutor or student). Target statuses are not in
// this table: ConfirmTarget and RescheduleTarget resolve them.
var transitions = map[transitionKey]Actor{
	{domain.StatusAwaitingTutorConfirmation, EventConfirm}:      ActorTutor,
	{domain.StatusAwaitingStudentConfirmation, EventConfirm}:    ActorStudent,
	{domain.StatusAwaitingTutorConfirmation, EventReschedule}:   ActorTutor,
	{domain.StatusAwaitingStudentConfirmation, EventReschedule}: ActorStudent,
	{domain.StatusScheduled, EventRequestRefund}:                ActorEither,
}

var webhookTransitions = map[transitionKey]domain.BookingStatus{
	{domain.StatusAwaitingPayment, EventWebhookPaymentSucceed}: domain.StatusScheduled,
	{domain.StatusAwaitingPayment, EventWebhookPaymentFailed}:  domain.StatusPaymentFailed,
	{domain.StatusAwaitingRefund, EventWebhookRefundCreated}:   domain.StatusAwaitingRefund,
	{domain.StatusAwaitingRefund, EventWebhookRefundFailed}:    domain.StatusRefundFailed,
	{domain.StatusAwaitingRefund, EventWebhookChargeRefunded}:  domain.StatusRefunded,
}

// CanCancel reports whether status is in the cancel-eligible set.
func CanCancel(status domain.BookingStatus) bool {
	for _, s := range domain.CancelableStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// CanActorTransition reports whether actor may drive event from status,
// for the human-facing events (Confirm, Reschedule, RequestRefund).
// Cancel is checked with CanCancel since any of host/participant may
// cancel from several statuses rather than one fixed (status,actor) pair.
func CanActorTransition(status domain.BookingStatus, event Event, actor Actor) bool {
	allowed, ok := transitions[transitionKey{status, event}]
	if !ok {
		return false
	}
	if allowed == ActorEither {
		return actor == ActorTutor || actor == ActorStudent
	}
	return allowed == actor
}

// ConfirmTarget resolves Confirm's destination status for bookingType,
// per the "FREE_MEETING→SCHEDULED; LESSON→AWAITING_PAYMENT" rule.
func ConfirmTarget(bookingType domain.BookingType) domain.BookingStatus {
	if bookingType == domain.TypeFreeMeeting {
		return domain.StatusScheduled
	}
	return domain.StatusAwaitingPayment
}

// RescheduleTarget flips the awaiting-confirmation direction: a tutor
// rescheduling puts the ball in the student's court and vice versa.
func RescheduleTarget(status domain.BookingStatus) (domain.BookingStatus, bool) {
	switch status {
	case domain.StatusAwaitingTutorConfirmation:
		return domain.StatusAwaitingStudentConfirmation, true
	case domain.StatusAwaitingStudentConfirmation:
		return domain.StatusAwaitingTutorConfirmation, true
	default:
		return "", false
	}
}

// ApplyWebhook resolves the new status for a webhook event given the
// booking's current status. ok is false when the event is not legal
// from status (the reducer then decides ignore-vs-error by event kind).
func ApplyWebhook(status domain.BookingStatus, event Event) (domain.BookingStatus, bool) {
	target, ok := webhookTransitions[transitionKey{status, event}]
	return target, ok
}
