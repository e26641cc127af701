package confirm_booking_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorly/booking-engine/internal/apperr"
	"github.com/tutorly/booking-engine/internal/domain"
	"github.com/tutorly/booking-engine/internal/gatewayport/fake"
	"github.com/tutorly/booking-engine/internal/usecase/confirm_booking"
)

type fakeRepo struct {
	booking *domain.Booking
	payment *domain.Payment
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

func (f *fakeRepo) UpsertPayment(_ context.Context, p *domain.Payment) error {
	f.payment = p
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

func TestExecute_LessonMovesToAwaitingPayment(t *testing.T) {
	tutor := &domain.User{ID: 20, Roles: []domain.Role{domain.RoleTutor}}
	booking := &domain.Booking{ID: 1, HostID: 20, Participants: []int64{10}, Type: domain.TypeLesson, Status: domain.StatusAwaitingTutorConfirmation}
	repo := &fakeRepo{booking: booking}
	gw := fake.New()

	uc := confirm_booking.NewUseCase(repo, gw, passthroughTx{}, noopEvents{}, noopLogger{})
	resp, err := uc.Execute(context.Background(), &confirm_booking.Request{BookingID: 1, CurrentUser: tutor})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAwaitingPayment, resp.Status)
	require.NotNil(t, repo.payment)
	assert.Equal(t, "cs_test", *repo.payment.SessionID)
	assert.Len(t, gw.CreateSessionCalls, 1)
}

func TestExecute_FreeMeetingMovesStraightToScheduled(t *testing.T) {
	student := &domain.User{ID: 10, Roles: []domain.Role{domain.RoleStudent}}
	booking := &domain.Booking{ID: 1, HostID: 20, Participants: []int64{10}, Type: domain.TypeFreeMeeting, Status: domain.StatusAwaitingStudentConfirmation}
	repo := &fakeRepo{booking: booking}
	gw := fake.New()

	uc := confirm_booking.NewUseCase(repo, gw, passthroughTx{}, noopEvents{}, noopLogger{})
	resp, err := uc.Execute(context.Background(), &confirm_booking.Request{BookingID: 1, CurrentUser: student})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusScheduled, resp.Status)
	assert.Empty(t, gw.CreateSessionCalls)
}

func TestExecute_GatewayFailureDoesNotChangeStatus(t *testing.T) {
	tutor := &domain.User{ID: 20, Roles: []domain.Role{domain.RoleTutor}}
	booking := &domain.Booking{ID: 1, HostID: 20, Participants: []int64{10}, Type: domain.TypeLesson, Status: domain.StatusAwaitingTutorConfirmation}
	repo := &fakeRepo{booking: booking}
	gw := fake.New()
	gw.CreateSessionErr = assert.AnError

	uc := confirm_booking.NewUseCase(repo, gw, passthroughTx{}, noopEvents{}, noopLogger{})
	_, err := uc.Execute(context.Background(), &confirm_booking.Request{BookingID: 1, CurrentUser: tutor})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodePaymentSessionCreationFailed))
	assert.Equal(t, domain.StatusAwaitingTutorConfirmation, booking.Status)
}
