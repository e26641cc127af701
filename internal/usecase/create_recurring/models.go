package create_recurring

import (
	"github.com/tutorly/booking-engine/internal/domain"
	"github.com/tutorly/booking-engine/internal/recurrence"
)

// Request is the input to Execute.
type Request struct {
	HostID            int64
	CurrentUser       *domain.User
	RecurrencePattern domain.RecurrencePattern
	TimeSlots         []recurrence.TimeSlotInput
	Overrides         []recurrence.Override
}

// Response is the outcome: either TemplateID is set (success) or
// Conflicts is non-empty and nothing was persisted.
type Response struct {
	TemplateID int64
	Conflicts  []recurrence.TimeSlotConflict
}
