package create_booking_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorly/booking-engine/internal/apperr"
	"github.com/tutorly/booking-engine/internal/clock"
	"github.com/tutorly/booking-engine/internal/domain"
	"github.com/tutorly/booking-engine/internal/usecase/create_booking"
)

type fakeBookingRepo struct {
	between []*domain.Booking
	created []*domain.Booking
	nextID  int64
}

func (f *fakeBookingRepo) FindBetweenUsers(_ context.Context, _, _ int64, _, _ time.Time) ([]*domain.Booking, error) {
	return f.between, nil
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	f.nextID++
	b.ID = f.nextID
	f.created = append(f.created, b)
	return b, nil
}

type fakeUserRepo struct {
	users map[int64]*domain.User
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperr.New(apperr.CodeUserNotFound, "not found")
	}
	return u, nil
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

func newUseCase(between []*domain.Booking, users map[int64]*domain.User, now time.Time) *create_booking.UseCase {
	return create_booking.NewUseCase(
		&fakeBookingRepo{between: between},
		&fakeUserRepo{users: users},
		passthroughTx{},
		clock.Fixed{At: now},
		noopEvents{},
		noopLogger{},
	)
}

func TestExecute_FreeTrialByStudent(t *testing.T) {
	now := mustParse(t, "2030-01-01T00:00:00Z")
	student := &domain.User{ID: 10, Roles: []domain.Role{domain.RoleStudent}}
	tutor := &domain.User{ID: 20, Roles: []domain.Role{domain.RoleTutor}}

	uc := newUseCase(nil, map[int64]*domain.User{20: tutor}, now)

	resp, err := uc.Execute(context.Background(), &create_booking.Request{
		StartTime:   "2030-01-15T09:00:00.000Z",
		CurrentUser: student,
		ToUserID:    tutor.ID,
	})
	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
}

func TestExecute_RejectsYourselfBooking(t *testing.T) {
	now := mustParse(t, "2030-01-01T00:00:00Z")
	student := &domain.User{ID: 10, Roles: []domain.Role{domain.RoleStudent}}

	uc := newUseCase(nil, map[int64]*domain.User{10: student}, now)

	_, err := uc.Execute(context.Background(), &create_booking.Request{
		StartTime:   "2030-01-15T09:00:00.000Z",
		CurrentUser: student,
		ToUserID:    student.ID,
	})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeYourselfBooking))
}

func TestExecute_RejectsPastBooking(t *testing.T) {
	now := mustParse(t, "2030-01-15T00:00:00Z")
	student := &domain.User{ID: 10, Roles: []domain.Role{domain.RoleStudent}}
	tutor := &domain.User{ID: 20, Roles: []domain.Role{domain.RoleTutor}}

	uc := newUseCase(nil, map[int64]*domain.User{20: tutor}, now)

	_, err := uc.Execute(context.Background(), &create_booking.Request{
		StartTime:   "2030-01-01T09:00:00.000Z",
		CurrentUser: student,
		ToUserID:    tutor.ID,
	})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodePastBooking))
}

func TestExecute_TutorCannotInitiateFreeMeeting(t *testing.T) {
	now := mustParse(t, "2030-01-01T00:00:00Z")
	student := &domain.User{ID: 10, Roles: []domain.Role{domain.RoleStudent}}
	tutor := &domain.User{ID: 20, Roles: []domain.Role{domain.RoleTutor}}

	// Tutor has a prior SCHEDULED booking with this student, satisfying
	// NO_PREVIOUS_MEETING, but no COMPLETED free meeting exists yet, so
	// the derived type is still FREE_MEETING and FREE_MEETING_TUTOR fires.
	prior := &domain.Booking{HostID: tutor.ID, Participants: []int64{student.ID}, Status: domain.StatusScheduled, Type: domain.TypeLesson}

	uc := newUseCase([]*domain.Booking{prior}, map[int64]*domain.User{10: student}, now)

	_, err := uc.Execute(context.Background(), &create_booking.Request{
		StartTime:   "2030-01-15T09:00:00.000Z",
		CurrentUser: tutor,
		ToUserID:    student.ID,
	})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeFreeMeetingTutor))
}

func TestExecute_LessonAfterCompletedFreeMeeting(t *testing.T) {
	now := mustParse(t, "2030-01-01T00:00:00Z")
	student := &domain.User{ID: 10, Roles: []domain.Role{domain.RoleStudent}}
	tutor := &domain.User{ID: 20, Roles: []domain.Role{domain.RoleTutor}}

	completed := &domain.Booking{HostID: tutor.ID, Participants: []int64{student.ID}, Status: domain.StatusCompleted, Type: domain.TypeFreeMeeting}

	uc := newUseCase([]*domain.Booking{completed}, map[int64]*domain.User{20: tutor}, now)

	resp, err := uc.Execute(context.Background(), &create_booking.Request{
		StartTime:   "2030-01-20T10:00:00.000Z",
		CurrentUser: student,
		ToUserID:    tutor.ID,
	})
	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
}

func mustParse(t *testing.T, s string) time.Time {
	t.Helper()
	tm, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return tm
}
