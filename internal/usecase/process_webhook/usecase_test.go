package process_webhook_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorly/booking-engine/internal/apperr"
	"github.com/tutorly/booking-engine/internal/gatewayport"
	"github.com/tutorly/booking-engine/internal/usecase/process_webhook"
)

type fakeGateway struct {
	event *gatewayport.WebhookEvent
	err   error
}

func (f *fakeGateway) VerifyAndParseWebhook(_ context.Context, _ []byte, _ string) (*gatewayport.WebhookEvent, error) {
	return f.event, f.err
}

type fakeReducer struct {
	applied []*gatewayport.WebhookEvent
}

func (f *fakeReducer) Apply(_ context.Context, event *gatewayport.WebhookEvent) error {
	f.applied = append(f.applied, event)
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

func TestExecute_AppliesVerifiedEvent(t *testing.T) {
	bookingID := int64(7)
	event := &gatewayport.WebhookEvent{Type: gatewayport.EventPaymentIntentSucceeded, BookingID: &bookingID}
	gw := &fakeGateway{event: event}
	reducer := &fakeReducer{}

	uc := process_webhook.NewUseCase(gw, reducer, passthroughTx{}, noopEvents{}, noopLogger{})
	_, err := uc.Execute(context.Background(), &process_webhook.Request{RawBody: []byte("{}"), Signature: "sig"})
	require.NoError(t, err)
	require.Len(t, reducer.applied, 1)
	assert.Equal(t, event, reducer.applied[0])
}

func TestExecute_RejectsBadSignature(t *testing.T) {
	gw := &fakeGateway{err: gatewayport.ErrInvalidSignature}
	reducer := &fakeReducer{}

	uc := process_webhook.NewUseCase(gw, reducer, passthroughTx{}, noopEvents{}, noopLogger{})
	_, err := uc.Execute(context.Background(), &process_webhook.Request{RawBody: []byte("{}"), Signature: "bad"})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeInvalidSignature))
	assert.Empty(t, reducer.applied)
}
