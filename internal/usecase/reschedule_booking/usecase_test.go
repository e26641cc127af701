package reschedule_booking_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorly/booking-engine/internal/apperr"
	"github.com/tutorly/booking-engine/internal/clock"
	"github.com/tutorly/booking-engine/internal/conflict"
	"github.com/tutorly/booking-engine/internal/domain"
	"github.com/tutorly/booking-engine/internal/usecase/reschedule_booking"
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

func (f *fakeRepo) Reschedule(_ context.Context, id int64, start, end time.Time, status domain.BookingStatus) error {
	f.booking.StartTime, f.booking.EndTime, f.booking.Status = start, end, status
	return nil
}

type fakeConflictRepo struct{}

func (fakeConflictRepo) FindOverlapping(_ context.Context, _ conflict.Query) ([]*domain.Booking, error) {
	return nil, nil
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

func TestExecute_PingPong(t *testing.T) {
	now := mustParse(t, "2030-01-01T00:00:00Z")
	tutor := &domain.User{ID: 20, Roles: []domain.Role{domain.RoleTutor}}
	student := &domain.User{ID: 10, Roles: []domain.Role{domain.RoleStudent}}

	booking := &domain.Booking{
		ID: 1, HostID: 20, Participants: []int64{10},
		Type: domain.TypeLesson, Status: domain.StatusAwaitingStudentConfirmation,
		StartTime: mustParse(t, "2030-01-15T09:00:00Z"), EndTime: mustParse(t, "2030-01-15T10:00:00Z"),
	}
	repo := &fakeRepo{booking: booking}
	uc := reschedule_booking.NewUseCase(repo, fakeConflictRepo{}, passthroughTx{}, clock.Fixed{At: now}, noopEvents{}, noopLogger{})

	resp, err := uc.Execute(context.Background(), &reschedule_booking.Request{
		BookingID: 1, StartTime: "2030-01-16T09:00:00.000Z", CurrentUser: student,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAwaitingTutorConfirmation, resp.Status)

	resp, err = uc.Execute(context.Background(), &reschedule_booking.Request{
		BookingID: 1, StartTime: "2030-01-17T09:00:00.000Z", CurrentUser: tutor,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAwaitingStudentConfirmation, resp.Status)

	_, err = uc.Execute(context.Background(), &reschedule_booking.Request{
		BookingID: 1, StartTime: "2030-01-18T09:00:00.000Z", CurrentUser: tutor,
	})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeInvalidStatusTutor))
}

func mustParse(t *testing.T, s string) time.Time {
	t.Helper()
	tm, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return tm
}
