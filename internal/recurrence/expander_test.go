package recurrence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorly/booking-engine/internal/conflict"
	"github.com/tutorly/booking-engine/internal/domain"
	"github.com/tutorly/booking-engine/internal/recurrence"
	"github.com/tutorly/booking-engine/pkg/types"
)

func mustParse(t *testing.T, s string) time.Time {
	tm, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return tm
}

func TestValidateTimeSlots_RejectsEmpty(t *testing.T) {
	err := recurrence.ValidateTimeSlots(nil)
	require.Error(t, err)
}

func TestValidateTimeSlots_RejectsOverlapOnSameWeekday(t *testing.T) {
	slots := []recurrence.TimeSlotInput{
		{Weekday: types.Monday, TimeOfDay: types.NewLocalTimeOfDay(10, 0)},
		{Weekday: types.Monday, TimeOfDay: types.NewLocalTimeOfDay(10, 30)},
	}
	err := recurrence.ValidateTimeSlots(slots)
	require.Error(t, err)
}

func TestValidateTimeSlots_AcceptsBackToBackSlots(t *testing.T) {
	slots := []recurrence.TimeSlotInput{
		{Weekday: types.Monday, TimeOfDay: types.NewLocalTimeOfDay(9, 0)},
		{Weekday: types.Monday, TimeOfDay: types.NewLocalTimeOfDay(10, 0)},
	}
	assert.NoError(t, recurrence.ValidateTimeSlots(slots))
}

func TestGenerate_WeeklyStaysWithinHorizon(t *testing.T) {
	now := mustParse(t, "2030-01-01T00:00:00Z") // a Tuesday
	horizon := now.AddDate(0, 1, 0)

	req := recurrence.Request{
		Pattern: domain.PatternWeekly,
		TimeSlots: []recurrence.TimeSlotInput{
			{Weekday: types.Monday, TimeOfDay: types.NewLocalTimeOfDay(10, 0)},
		},
		Now:        now,
		HorizonEnd: horizon,
	}

	instances := recurrence.Generate(req)
	require.NotEmpty(t, instances)
	for _, inst := range instances {
		assert.True(t, inst.Start.Before(horizon), "every instance must start before the horizon")
		assert.Equal(t, time.Monday, inst.Start.Weekday())
		assert.Equal(t, 60*time.Minute, inst.End.Sub(inst.Start))
	}
}

type fakeDetector struct {
	conflicted map[time.Time]bool
}

func (f *fakeDetector) Conflicts(_ context.Context, q conflict.Query) (map[conflict.Candidate]*domain.Booking, error) {
	hits := make(map[conflict.Candidate]*domain.Booking)
	for _, c := range q.Candidates {
		if f.conflicted[c.Start] {
			hits[c] = &domain.Booking{ID: 1, HostID: q.HostID, Status: domain.StatusScheduled, StartTime: c.Start, EndTime: c.End}
		}
	}
	return hits, nil
}

func TestResolve_NoOverridesReturnsConflictsWithoutWriting(t *testing.T) {
	firstMonday := mustParse(t, "2030-01-07T10:00:00Z")
	instances := []recurrence.Instance{
		{Start: firstMonday, End: firstMonday.Add(time.Hour)},
	}
	detector := &fakeDetector{conflicted: map[time.Time]bool{firstMonday: true}}

	req := recurrence.Request{HostID: 20, StudentID: 10}
	result, err := recurrence.Resolve(context.Background(), req, instances, detector)

	require.NoError(t, err)
	require.Nil(t, result.Instances)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, firstMonday, result.Conflicts[0].ConflictTime)
}

func TestResolve_CancelOverrideDropsInstance(t *testing.T) {
	firstMonday := mustParse(t, "2030-01-07T10:00:00Z")
	secondMonday := mustParse(t, "2030-01-14T10:00:00Z")
	instances := []recurrence.Instance{
		{Start: firstMonday, End: firstMonday.Add(time.Hour)},
		{Start: secondMonday, End: secondMonday.Add(time.Hour)},
	}
	detector := &fakeDetector{conflicted: map[time.Time]bool{firstMonday: true}}

	req := recurrence.Request{
		HostID:    20,
		StudentID: 10,
		Overrides: []recurrence.Override{
			{ConflictTime: firstMonday, Cancel: true},
		},
	}
	result, err := recurrence.Resolve(context.Background(), req, instances, detector)

	require.NoError(t, err)
	require.Len(t, result.Instances, 1)
	assert.Equal(t, secondMonday, result.Instances[0].Start)
}

func TestResolve_UnhandledConflictReturnedAsSubset(t *testing.T) {
	firstMonday := mustParse(t, "2030-01-07T10:00:00Z")
	secondMonday := mustParse(t, "2030-01-14T10:00:00Z")
	instances := []recurrence.Instance{
		{Start: firstMonday, End: firstMonday.Add(time.Hour)},
		{Start: secondMonday, End: secondMonday.Add(time.Hour)},
	}
	detector := &fakeDetector{conflicted: map[time.Time]bool{firstMonday: true, secondMonday: true}}

	req := recurrence.Request{
		HostID:    20,
		StudentID: 10,
		Overrides: []recurrence.Override{
			{ConflictTime: firstMonday, Cancel: true},
		},
	}
	result, err := recurrence.Resolve(context.Background(), req, instances, detector)

	require.NoError(t, err)
	require.Nil(t, result.Instances)
	require.Len(t, result.Conflicts, 1, "a subsequent request missing an override returns a strict subset")
	assert.Equal(t, secondMonday, result.Conflicts[0].ConflictTime)
}
