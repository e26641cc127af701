package recurrence

import (
	"time"

	"github.com/tutorly/booking-engine/internal/domain"
	"github.com/tutorly/booking-engine/pkg/types"
)

// TimeSlotInput is one requested {weekday, HH:mm} pair.
type TimeSlotInput struct {
	Weekday   types.Weekday
	TimeOfDay types.LocalTimeOfDay
}

// Override is a per-instance directive resolving one conflict: either
// drop the instance (Cancel) or move it to NewTimeOfDay on the same
// calendar date.
type Override struct {
	ConflictTime time.Time
	NewTimeOfDay *types.LocalTimeOfDay
	Cancel       bool
}

// TimeSlotConflict reports one offending generated instant and the
// alternative times that would be conflict-free on the same date.
type TimeSlotConflict struct {
	ConflictTime     time.Time
	AlternativeTimes []types.LocalTimeOfDay
}

// Instance is one concrete materialized child booking instant.
type Instance struct {
	Start time.Time
	End   time.Time
}

// Request is the input to Generate and Resolve.
type Request struct {
	HostID    int64
	StudentID int64
	Pattern   domain.RecurrencePattern
	TimeSlots []TimeSlotInput
	Overrides []Override
	Now       time.Time
	// HorizonEnd is floor(Now, day) + 1 month, computed by the caller
	// so expansion and its upper bound use the exact same instant.
	HorizonEnd time.Time
}

// Result is the output of Resolve: either Conflicts is non-empty (and
// Instances is nil, nothing should be persisted) or Instances holds
// the final, conflict-free set of child bookings to create.
type Result struct {
	Conflicts []TimeSlotConflict
	Instances []Instance
}
