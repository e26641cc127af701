package create_recurring

import (
	"strings"
	"time"

	"github.com/tutorly/booking-engine/internal/apperr"
	"github.com/tutorly/booking-engine/internal/domain"
	"github.com/tutorly/booking-engine/internal/recurrence"
	createRecurring "github.com/tutorly/booking-engine/internal/usecase/create_recurring"
	"github.com/tutorly/booking-engine/pkg/types"
)

// conflictTimeWireFormat matches the recurrence expander's literal format.
const conflictTimeWireFormat = "2006-01-02T15:04:05.000Z"

var weekdayNames = map[string]types.Weekday{
	"SUNDAY":    types.Sunday,
	"MONDAY":    types.Monday,
	"TUESDAY":   types.Tuesday,
	"WEDNESDAY": types.Wednesday,
	"THURSDAY":  types.Thursday,
	"FRIDAY":    types.Friday,
	"SATURDAY":  types.Saturday,
}

func parseWeekday(s string) (types.Weekday, error) {
	w, ok := weekdayNames[strings.ToUpper(s)]
	if !ok {
		return 0, apperr.New(apperr.CodeInvalidTimeSlot, "unrecognized weekday "+s)
	}
	return w, nil
}

// timeSlotWire is one requested {weekday, HH:mm} pair on the wire.
type timeSlotWire struct {
	Weekday   string `json:"weekday"`
	TimeOfDay string `json:"timeOfDay"`
}

// overrideWire is one per-instance conflict resolution on the wire.
type overrideWire struct {
	ConflictTime string  `json:"conflictTime"`
	NewTimeOfDay *string `json:"newTimeOfDay,omitempty"`
	Cancel       bool    `json:"cancel,omitempty"`
}

// httpRequest is "POST bookings/recurring"'s JSON body.
type httpRequest struct {
	Title             string         `json:"title"`
	Description       *string        `json:"description,omitempty"`
	HostID            int64          `json:"hostId"`
	RecurrencePattern string         `json:"recurrencePattern"`
	TimeSlots         []timeSlotWire `json:"timeSlots"`
	Overrides         []overrideWire `json:"overrides,omitempty"`
}

func (r httpRequest) toUseCaseRequest(currentUser *domain.User) (*createRecurring.Request, error) {
	pattern := domain.RecurrencePattern(strings.ToUpper(r.RecurrencePattern))
	switch pattern {
	case domain.PatternWeekly, domain.PatternBiweekly, domain.PatternMonthly:
	default:
		return nil, apperr.New(apperr.CodeInvalidInput, "recurrencePattern must be WEEKLY, BIWEEKLY or MONTHLY")
	}

	slots := make([]recurrence.TimeSlotInput, len(r.TimeSlots))
	for i, s := range r.TimeSlots {
		weekday, err := parseWeekday(s.Weekday)
		if err != nil {
			return nil, err
		}
		tod, err := types.ParseLocalTimeOfDay(s.TimeOfDay)
		if err != nil {
			return nil, apperr.Wrap(apperr.CodeInvalidTimeSlot, "invalid timeOfDay "+s.TimeOfDay, err)
		}
		slots[i] = recurrence.TimeSlotInput{Weekday: weekday, TimeOfDay: tod}
	}

	overrides := make([]recurrence.Override, len(r.Overrides))
	for i, o := range r.Overrides {
		conflictTime, err := time.Parse(conflictTimeWireFormat, o.ConflictTime)
		if err != nil {
			return nil, apperr.Wrap(apperr.CodeInvalidOverrideTime, "invalid conflictTime "+o.ConflictTime, err)
		}
		override := recurrence.Override{ConflictTime: conflictTime, Cancel: o.Cancel}
		if o.NewTimeOfDay != nil {
			tod, err := types.ParseLocalTimeOfDay(*o.NewTimeOfDay)
			if err != nil {
				return nil, apperr.Wrap(apperr.CodeInvalidOverrideTime, "invalid newTimeOfDay "+*o.NewTimeOfDay, err)
			}
			override.NewTimeOfDay = &tod
		}
		overrides[i] = override
	}

	return &createRecurring.Request{
		HostID:            r.HostID,
		CurrentUser:       currentUser,
		RecurrencePattern: pattern,
		TimeSlots:         slots,
		Overrides:         overrides,
	}, nil
}

type conflictWire struct {
	ConflictTime     string   `json:"conflictTime"`
	AlternativeTimes []string `json:"alternativeTimes"`
}

type httpResponse struct {
	RecurringTemplateID *int64         `json:"recurringTemplateId,omitempty"`
	Conflicts           []conflictWire `json:"conflicts,omitempty"`
}

func fromUseCaseResponse(resp *createRecurring.Response) httpResponse {
	if len(resp.Conflicts) > 0 {
		conflicts := make([]conflictWire, len(resp.Conflicts))
		for i, c := range resp.Conflicts {
			alternatives := make([]string, len(c.AlternativeTimes))
			for j, a := range c.AlternativeTimes {
				alternatives[j] = a.String()
			}
			conflicts[i] = conflictWire{
				ConflictTime:     c.ConflictTime.UTC().Format(conflictTimeWireFormat),
				AlternativeTimes: alternatives,
			}
		}
		return httpResponse{Conflicts: conflicts}
	}

	id := resp.TemplateID
	return httpResponse{RecurringTemplateID: &id}
}
