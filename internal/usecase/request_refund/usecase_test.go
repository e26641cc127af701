package request_refund_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorly/booking-engine/internal/apperr"
	"github.com/tutorly/booking-engine/internal/domain"
	"github.com/tutorly/booking-engine/internal/gatewayport/fake"
	"github.com/tutorly/booking-engine/internal/usecase/request_refund"
)

type fakeRepo struct {
	booking *domain.Booking
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, apperr.New(apperr.CodeBookingNotFound, "not found")
	}
	return f.booking, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, _ int64, status domain.BookingStatus) error {
	f.booking.Status = status
	return nil
}

type passthroughTx struct{}

func (passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type noopEvents struct{}

func (noopEvents) Publish(context.Context, string, interface{}) error { return nil }

func TestExecute_RequestsRefundFromScheduled(t *testing.T) {
	student := &domain.User{ID: 10}
	intentID := "pi_1"
	booking := &domain.Booking{
		ID: 1, HostID: 20, Participants: []int64{10},
		Status:  domain.StatusScheduled,
		Payment: &domain.Payment{PaymentIntentID: &intentID},
	}
	repo := &fakeRepo{booking: booking}
	gw := fake.New()

	uc := request_refund.NewUseCase(repo, gw, passthroughTx{}, noopEvents{}, noopLogger{})
	resp, err := uc.Execute(context.Background(), &request_refund.Request{BookingID: 1, CurrentUser: student})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAwaitingRefund, resp.Status)
	require.Len(t, gw.RefundCalls, 1)
	assert.Equal(t, int64(1), gw.RefundCalls[0])
}

func TestExecute_RejectsNonScheduled(t *testing.T) {
	student := &domain.User{ID: 10}
	booking := &domain.Booking{ID: 1, HostID: 20, Participants: []int64{10}, Status: domain.StatusAwaitingPayment}
	repo := &fakeRepo{booking: booking}
	gw := fake.New()

	uc := request_refund.NewUseCase(repo, gw, passthroughTx{}, noopEvents{}, noopLogger{})
	_, err := uc.Execute(context.Background(), &request_refund.Request{BookingID: 1, CurrentUser: student})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeInvalidStatus))
}
