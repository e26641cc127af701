// Package conflict finds existing active bookings that overlap a batch
// of candidate [start,end) intervals for a host and an optional
// participant, in a single round trip.
package conflict

import (
	"context"
	"time"

	"github.com/tutorly/booking-engine/internal/domain"
)

// Candidate is one interval to check for conflicts.
type Candidate struct {
	Start time.Time
	End   time.Time
}

// Query is the input to a batched conflict lookup.
type Query struct {
	HostID        int64
	ParticipantID *int64
	Candidates    []Candidate
}

// Repository is the read-only dependency the Detector needs: a single
// round-trip query returning every active booking overlapping any
// candidate interval for the host (or participant). Implementations
// must build one OR-of-intervals query rather than one query per
// candidate, to keep the call linear in len(Candidates).
type Repository interface {
	FindOverlapping(ctx context.Context, q Query) ([]*domain.Booking, error)
}

// Detector evaluates candidate intervals against the repository.
type Detector struct {
	repo Repository
}

// New builds a Detector over repo.
func New(repo Repository) *Detector {
	return &Detector{repo: repo}
}

// Conflicts returns, for each candidate that overlaps an existing
// active booking, the offending booking. Candidates with no conflict
// are omitted from the result.
func (d *Detector) Conflicts(ctx context.Context, q Query) (map[Candidate]*domain.Booking, error) {
	existing, err := d.repo.FindOverlapping(ctx, q)
	if err != nil {
		return nil, err
	}

	conflicts := make(map[Candidate]*domain.Booking)
	for _, c := range q.Candidates {
		for _, b := range existing {
			if !b.Status.IsActive() {
				continue
			}
			if !matchesActor(b, q.HostID, q.ParticipantID) {
				continue
			}
			if b.Overlaps(c.Start, c.End) {
				conflicts[c] = b
				break
			}
		}
	}
	return conflicts, nil
}

func matchesActor(b *domain.Booking, hostID int64, participantID *int64) bool {
	if b.HostID == hostID {
		return true
	}
	if participantID != nil && b.HasParticipant(*participantID) {
		return true
	}
	return false
}
