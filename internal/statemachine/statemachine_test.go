package statemachine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorly/booking-engine/internal/domain"
	"github.com/tutorly/booking-engine/internal/statemachine"
)

func TestCanActorTransition_ConfirmRequiresMatchingActor(t *testing.T) {
	assert.True(t, statemachine.CanActorTransition(
		domain.StatusAwaitingTutorConfirmation, statemachine.EventConfirm, statemachine.ActorTutor))
	assert.False(t, statemachine.CanActorTransition(
		domain.StatusAwaitingTutorConfirmation, statemachine.EventConfirm, statemachine.ActorStudent))
	assert.True(t, statemachine.CanActorTransition(
		domain.StatusAwaitingStudentConfirmation, statemachine.EventConfirm, statemachine.ActorStudent))
}

func TestCanActorTransition_RescheduleFlipsDirection(t *testing.T) {
	target, ok := statemachine.RescheduleTarget(domain.StatusAwaitingTutorConfirmation)
	require.True(t, ok)
	assert.Equal(t, domain.StatusAwaitingStudentConfirmation, target)

	target, ok = statemachine.RescheduleTarget(domain.StatusAwaitingStudentConfirmation)
	require.True(t, ok)
	assert.Equal(t, domain.StatusAwaitingTutorConfirmation, target)

	_, ok = statemachine.RescheduleTarget(domain.StatusScheduled)
	assert.False(t, ok)
}

func TestConfirmTarget(t *testing.T) {
	assert.Equal(t, domain.StatusScheduled, statemachine.ConfirmTarget(domain.TypeFreeMeeting))
	assert.Equal(t, domain.StatusAwaitingPayment, statemachine.ConfirmTarget(domain.TypeLesson))
}

func TestCanCancel(t *testing.T) {
	for _, s := range domain.CancelableStatuses {
		assert.True(t, statemachine.CanCancel(s), "expected %s to be cancelable", s)
	}
	assert.False(t, statemachine.CanCancel(domain.StatusCanceled))
	assert.False(t, statemachine.CanCancel(domain.StatusCompleted))
}

func TestApplyWebhook(t *testing.T) {
	target, ok := statemachine.ApplyWebhook(domain.StatusAwaitingPayment, statemachine.EventWebhookPaymentSucceed)
	require.True(t, ok)
	assert.Equal(t, domain.StatusScheduled, target)

	_, ok = statemachine.ApplyWebhook(domain.StatusScheduled, statemachine.EventWebhookPaymentSucceed)
	assert.False(t, ok, "payment_succeeded is only legal from AWAITING_PAYMENT")

	target, ok = statemachine.ApplyWebhook(domain.StatusAwaitingRefund, statemachine.EventWebhookRefundCreated)
	require.True(t, ok)
	assert.Equal(t, domain.StatusAwaitingRefund, target, "refund.created is idempotent, stays AWAITING_REFUND")
}

func TestTerminalStatusesRejectEverything(t *testing.T) {
	for _, s := range domain.TerminalStatuses {
		assert.True(t, s.IsTerminal())
		assert.False(t, statemachine.CanActorTransition(s, statemachine.EventConfirm, statemachine.ActorTutor))
		assert.False(t, statemachine.CanCancel(s))
	}
}
