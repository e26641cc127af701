package recurring

import "github.com/tutorly/booking-engine/pkg/types"

// ActiveSlot is one {weekday, timeOfDay} window belonging to an ACTIVE
// template for some host, as returned by FindActiveSlotsForHost, the
// set the recurrence expander checks new time slots against for a
// template conflict.
type ActiveSlot struct {
	TemplateID int64
	Weekday    types.Weekday
	TimeOfDay  types.LocalTimeOfDay
}
