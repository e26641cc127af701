package create_recurring_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorly/booking-engine/internal/apperr"
	"github.com/tutorly/booking-engine/internal/conflict"
	"github.com/tutorly/booking-engine/internal/domain"
	recurringstore "github.com/tutorly/booking-engine/internal/infra/storage/recurring"
	"github.com/tutorly/booking-engine/internal/recurrence"
	"github.com/tutorly/booking-engine/internal/usecase/create_recurring"
	"github.com/tutorly/booking-engine/pkg/types"
)

type fakeBookingRepo struct {
	between []*domain.Booking
	created []*domain.Booking
}

func (f *fakeBookingRepo) FindBetweenUsers(_ context.Context, _, _ int64, _, _ time.Time) ([]*domain.Booking, error) {
	return f.between, nil
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	b.ID = int64(len(f.created) + 1)
	f.created = append(f.created, b)
	return b, nil
}

type fakeRecurringRepo struct {
	activeSlots []recurringstore.ActiveSlot
	created     *domain.RecurringTemplate
}

func (f *fakeRecurringRepo) Create(_ context.Context, tpl *domain.RecurringTemplate) (*domain.RecurringTemplate, error) {
	tpl.ID = 99
	f.created = tpl
	return tpl, nil
}

func (f *fakeRecurringRepo) FindActiveSlotsForHost(_ context.Context, _ int64) ([]recurringstore.ActiveSlot, error) {
	return f.activeSlots, nil
}

type fakeDetector struct{}

func (fakeDetector) Conflicts(_ context.Context, _ conflict.Query) (map[conflict.Candidate]*domain.Booking, error) {
	return nil, nil
}

type passthroughTx struct{}

func (passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedClock struct{ at time.Time }

func (c fixedClock) Now() time.Time { return c.at }

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func TestExecute_CreatesTemplateAndChildBookings(t *testing.T) {
	student := &domain.User{ID: 10, Roles: []domain.Role{domain.RoleStudent}}
	bookingRepo := &fakeBookingRepo{between: []*domain.Booking{{Status: domain.StatusCompleted}}}
	recurringRepo := &fakeRecurringRepo{}
	clock := fixedClock{at: time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)} // a Monday

	uc := create_recurring.NewUseCase(bookingRepo, recurringRepo, fakeDetector{}, passthroughTx{}, clock, noopLogger{})
	req := &create_recurring.Request{
		HostID:            20,
		CurrentUser:       student,
		RecurrencePattern: domain.PatternWeekly,
		TimeSlots: []recurrence.TimeSlotInput{
			{Weekday: types.Monday, TimeOfDay: types.NewLocalTimeOfDay(9, 0)},
		},
	}

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, resp.Conflicts)
	assert.Equal(t, int64(99), resp.TemplateID)
	assert.NotEmpty(t, bookingRepo.created)
	for _, b := range bookingRepo.created {
		assert.Equal(t, domain.StatusAwaitingStudentConfirmation, b.Status)
		assert.Equal(t, domain.TypeLesson, b.Type)
	}
}

func TestExecute_RejectsWithoutPriorMeeting(t *testing.T) {
	student := &domain.User{ID: 10, Roles: []domain.Role{domain.RoleStudent}}
	bookingRepo := &fakeBookingRepo{}
	recurringRepo := &fakeRecurringRepo{}
	clock := fixedClock{at: time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)}

	uc := create_recurring.NewUseCase(bookingRepo, recurringRepo, fakeDetector{}, passthroughTx{}, clock, noopLogger{})
	req := &create_recurring.Request{
		HostID:            20,
		CurrentUser:       student,
		RecurrencePattern: domain.PatternWeekly,
		TimeSlots: []recurrence.TimeSlotInput{
			{Weekday: types.Monday, TimeOfDay: types.NewLocalTimeOfDay(9, 0)},
		},
	}

	_, err := uc.Execute(context.Background(), req)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeNoPriorBooking))
}

func TestExecute_RejectsTutorInitiator(t *testing.T) {
	tutor := &domain.User{ID: 10, Roles: []domain.Role{domain.RoleTutor}}
	bookingRepo := &fakeBookingRepo{}
	recurringRepo := &fakeRecurringRepo{}
	clock := fixedClock{at: time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)}

	uc := create_recurring.NewUseCase(bookingRepo, recurringRepo, fakeDetector{}, passthroughTx{}, clock, noopLogger{})
	req := &create_recurring.Request{
		HostID:      20,
		CurrentUser: tutor,
		TimeSlots: []recurrence.TimeSlotInput{
			{Weekday: types.Monday, TimeOfDay: types.NewLocalTimeOfDay(9, 0)},
		},
	}

	_, err := uc.Execute(context.Background(), req)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeInvalidInput))
}

func TestExecute_RejectsTemplateConflict(t *testing.T) {
	student := &domain.User{ID: 10, Roles: []domain.Role{domain.RoleStudent}}
	bookingRepo := &fakeBookingRepo{between: []*domain.Booking{{Status: domain.StatusCompleted}}}
	recurringRepo := &fakeRecurringRepo{activeSlots: []recurringstore.ActiveSlot{
		{TemplateID: 1, Weekday: types.Monday, TimeOfDay: types.NewLocalTimeOfDay(9, 0)},
	}}
	clock := fixedClock{at: time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)}

	uc := create_recurring.NewUseCase(bookingRepo, recurringRepo, fakeDetector{}, passthroughTx{}, clock, noopLogger{})
	req := &create_recurring.Request{
		HostID:            20,
		CurrentUser:       student,
		RecurrencePattern: domain.PatternWeekly,
		TimeSlots: []recurrence.TimeSlotInput{
			{Weekday: types.Monday, TimeOfDay: types.NewLocalTimeOfDay(9, 15)},
		},
	}

	_, err := uc.Execute(context.Background(), req)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeRecurringTemplateConflict))
}
