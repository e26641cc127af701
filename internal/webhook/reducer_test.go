package webhook_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorly/booking-engine/internal/apperr"
	"github.com/tutorly/booking-engine/internal/domain"
	"github.com/tutorly/booking-engine/internal/gatewayport"
	"github.com/tutorly/booking-engine/internal/webhook"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{}) {}
func (noopLogger) Warn(string, ...interface{}) {}

type fakeRepo struct {
	booking       *domain.Booking
	updatedStatus domain.BookingStatus
	updateCalls   int
	upsertedPmt   *domain.Payment
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, apperr.New(apperr.CodeBookingNotFound, "not found")
	}
	return f.booking, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, _ int64, status domain.BookingStatus) error {
	f.updateCalls++
	f.updatedStatus = status
	f.booking.Status = status
	return nil
}

func (f *fakeRepo) UpsertPayment(_ context.Context, p *domain.Payment) error {
	f.upsertedPmt = p
	return nil
}

func i64(v int64) *int64 { return &v }

func TestApply_PaymentSucceededTransitionsToScheduled(t *testing.T) {
	repo := &fakeRepo{booking: &domain.Booking{ID: 1, Status: domain.StatusAwaitingPayment, Type: domain.TypeLesson}}
	r := webhook.New(repo, noopLogger{})

	err := r.Apply(context.Background(), &gatewayport.WebhookEvent{
		Type:            gatewayport.EventPaymentIntentSucceeded,
		BookingID:       i64(1),
		PaymentIntentID: "pi_1",
		ChargeID:        "ch_1",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusScheduled, repo.updatedStatus)
	require.NotNil(t, repo.upsertedPmt)
	assert.Equal(t, "pi_1", *repo.upsertedPmt.PaymentIntentID)
}

func TestApply_IdempotentWhenAlreadyInTargetStatus(t *testing.T) {
	repo := &fakeRepo{booking: &domain.Booking{ID: 1, Status: domain.StatusScheduled, Type: domain.TypeLesson}}
	r := webhook.New(repo, noopLogger{})

	err := r.Apply(context.Background(), &gatewayport.WebhookEvent{
		Type:      gatewayport.EventPaymentIntentSucceeded,
		BookingID: i64(1),
	})

	require.NoError(t, err)
	assert.Equal(t, 0, repo.updateCalls, "re-delivery once already SCHEDULED must be a no-op")
}

func TestApply_MissingBookingIDIsInvalidMetadata(t *testing.T) {
	repo := &fakeRepo{}
	r := webhook.New(repo, noopLogger{})

	err := r.Apply(context.Background(), &gatewayport.WebhookEvent{Type: gatewayport.EventPaymentIntentSucceeded})

	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeInvalidMetadata))
}

func TestApply_UnknownBookingFails(t *testing.T) {
	repo := &fakeRepo{}
	r := webhook.New(repo, noopLogger{})

	err := r.Apply(context.Background(), &gatewayport.WebhookEvent{
		Type:      gatewayport.EventPaymentIntentSucceeded,
		BookingID: i64(42),
	})

	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeBookingNotFound))
}

func TestApply_UnknownEventTypeIgnoredSuccessfully(t *testing.T) {
	repo := &fakeRepo{booking: &domain.Booking{ID: 1, Status: domain.StatusAwaitingPayment}}
	r := webhook.New(repo, noopLogger{})

	err := r.Apply(context.Background(), &gatewayport.WebhookEvent{
		Type:      gatewayport.EventType("some.unrecognized.event"),
		BookingID: i64(1),
	})

	require.NoError(t, err)
	assert.Equal(t, 0, repo.updateCalls)
}

func TestApply_RefundCreatedStaysAwaitingRefund(t *testing.T) {
	repo := &fakeRepo{booking: &domain.Booking{ID: 1, Status: domain.StatusAwaitingRefund}}
	r := webhook.New(repo, noopLogger{})

	err := r.Apply(context.Background(), &gatewayport.WebhookEvent{
		Type:      gatewayport.EventRefundCreated,
		BookingID: i64(1),
	})

	require.NoError(t, err)
	assert.Equal(t, 0, repo.updateCalls, "target status equals current status, treated as idempotent no-op")
}
