package conflict_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorly/booking-engine/internal/conflict"
	"github.com/tutorly/booking-engine/internal/domain"
)

type fakeRepo struct {
	bookings []*domain.Booking
}

func (f *fakeRepo) FindOverlapping(_ context.Context, _ conflict.Query) ([]*domain.Booking, error) {
	return f.bookings, nil
}

func mustTime(t *testing.T, s string) time.Time {
	parsed, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return parsed
}

func TestConflicts_DetectsOverlapOnHost(t *testing.T) {
	existing := &domain.Booking{
		ID:        1,
		HostID:    20,
		Status:    domain.StatusScheduled,
		StartTime: mustTime(t, "2030-01-07T10:00:00Z"),
		EndTime:   mustTime(t, "2030-01-07T11:00:00Z"),
	}
	d := conflict.New(&fakeRepo{bookings: []*domain.Booking{existing}})

	candidate := conflict.Candidate{
		Start: mustTime(t, "2030-01-07T10:30:00Z"),
		End:   mustTime(t, "2030-01-07T11:30:00Z"),
	}
	conflicts, err := d.Conflicts(context.Background(), conflict.Query{
		HostID:     20,
		Candidates: []conflict.Candidate{candidate},
	})
	require.NoError(t, err)
	assert.Equal(t, existing, conflicts[candidate])
}

func TestConflicts_IgnoresInactiveStatus(t *testing.T) {
	existing := &domain.Booking{
		ID:        1,
		HostID:    20,
		Status:    domain.StatusCanceled,
		StartTime: mustTime(t, "2030-01-07T10:00:00Z"),
		EndTime:   mustTime(t, "2030-01-07T11:00:00Z"),
	}
	d := conflict.New(&fakeRepo{bookings: []*domain.Booking{existing}})

	candidate := conflict.Candidate{
		Start: mustTime(t, "2030-01-07T10:00:00Z"),
		End:   mustTime(t, "2030-01-07T11:00:00Z"),
	}
	conflicts, err := d.Conflicts(context.Background(), conflict.Query{
		HostID:     20,
		Candidates: []conflict.Candidate{candidate},
	})
	require.NoError(t, err)
	assert.Empty(t, conflicts)
}

func TestConflicts_HalfOpenIntervalTouchingIsNotAConflict(t *testing.T) {
	existing := &domain.Booking{
		ID:        1,
		HostID:    20,
		Status:    domain.StatusScheduled,
		StartTime: mustTime(t, "2030-01-07T10:00:00Z"),
		EndTime:   mustTime(t, "2030-01-07T11:00:00Z"),
	}
	d := conflict.New(&fakeRepo{bookings: []*domain.Booking{existing}})

	candidate := conflict.Candidate{
		Start: mustTime(t, "2030-01-07T11:00:00Z"),
		End:   mustTime(t, "2030-01-07T12:00:00Z"),
	}
	conflicts, err := d.Conflicts(context.Background(), conflict.Query{
		HostID:     20,
		Candidates: []conflict.Candidate{candidate},
	})
	require.NoError(t, err)
	assert.Empty(t, conflicts, "abutting intervals [10:00,11:00) and [11:00,12:00) must not conflict")
}

func TestConflicts_MatchesParticipant(t *testing.T) {
	participant := int64(99)
	existing := &domain.Booking{
		ID:           1,
		HostID:       5,
		Participants: []int64{participant},
		Status:       domain.StatusScheduled,
		StartTime:    mustTime(t, "2030-01-07T10:00:00Z"),
		EndTime:      mustTime(t, "2030-01-07T11:00:00Z"),
	}
	d := conflict.New(&fakeRepo{bookings: []*domain.Booking{existing}})

	candidate := conflict.Candidate{
		Start: mustTime(t, "2030-01-07T10:30:00Z"),
		End:   mustTime(t, "2030-01-07T11:30:00Z"),
	}
	conflicts, err := d.Conflicts(context.Background(), conflict.Query{
		HostID:        20, // different host, only participant should match
		ParticipantID: &participant,
		Candidates:    []conflict.Candidate{candidate},
	})
	require.NoError(t, err)
	assert.Equal(t, existing, conflicts[candidate])
}
