package domain

import "github.com/tutorly/booking-engine/pkg/types"

// RecurrencePattern is how often a RecurringTemplate's time slots repeat.
type RecurrencePattern string

const (
	PatternWeekly   RecurrencePattern = "WEEKLY"
	PatternBiweekly RecurrencePattern = "BIWEEKLY"
	PatternMonthly  RecurrencePattern = "MONTHLY"
)

// RecurringTemplateStatus is whether a template still generates/owns
// conflict-checked slots for its host.
type RecurringTemplateStatus string

const (
	RecurringTemplateActive   RecurringTemplateStatus = "ACTIVE"
	RecurringTemplateInactive RecurringTemplateStatus = "INACTIVE"
)

// RecurringTimeSlot is a {weekday, timeOfDay} pair unique within a
// RecurringTemplate.
type RecurringTimeSlot struct {
	ID         int64
	TemplateID int64
	Weekday    types.Weekday
	TimeOfDay  types.LocalTimeOfDay
}

// RecurringTemplate is a weekday/time-of-day pattern that materializes
// into concrete child bookings over a 1-month horizon.
type RecurringTemplate struct {
	ID                int64
	HostID            int64
	RecurrencePattern RecurrencePattern
	DurationMinutes   int
	Status            RecurringTemplateStatus
	TimeSlots         []RecurringTimeSlot
}
