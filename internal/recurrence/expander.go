// Package recurrence turns a weekday/time-of-day pattern into concrete
// child booking instants over a 1-month horizon, finds conflicts in one
// batched call, and resolves them against caller-supplied overrides.
package recurrence

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/tutorly/booking-engine/internal/apperr"
	"github.com/tutorly/booking-engine/internal/conflict"
	"github.com/tutorly/booking-engine/internal/domain"
	"github.com/tutorly/booking-engine/pkg/types"
)

// timeOfDayWireFormat is the format used to match an override's
// ConflictTime against a generated instance's start ("yyyy-MM-dd'T'HH:mm:ss.SSS'Z'").
const timeOfDayWireFormat = "2006-01-02T15:04:05.000Z"

// alternativeShifts are the ±1h/±2h offsets tried, in order, when an
// instance conflicts.
var alternativeShifts = []int{-120, -60, 60, 120}

// ValidateTimeSlots checks step-1 pre-conditions: non-empty, each slot
// on the 15-minute grid with a 60-minute lesson that does not cross
// midnight, and no intra-request overlap on the same weekday.
func ValidateTimeSlots(slots []TimeSlotInput) error {
	if len(slots) == 0 {
		return apperr.New(apperr.CodeInvalidInput, "timeSlots must be non-empty")
	}

	byWeekday := make(map[types.Weekday][]TimeSlotInput)
	for _, s := range slots {
		if err := s.Weekday.Validate(); err != nil {
			return apperr.Wrap(apperr.CodeInvalidTimeSlot, "invalid weekday", err)
		}
		if err := s.TimeOfDay.Validate(); err != nil {
			return apperr.Wrap(apperr.CodeInvalidTimeSlot, "time slot not on 15-minute grid", err)
		}
		if !s.TimeOfDay.FitsWithDuration(domain.LessonDurationMinutes) {
			return apperr.New(apperr.CodeInvalidTimeSlot, "60-minute lesson would cross midnight")
		}
		byWeekday[s.Weekday] = append(byWeekday[s.Weekday], s)
	}

	for _, daySlots := range byWeekday {
		sort.Slice(daySlots, func(i, j int) bool {
			return daySlots[i].TimeOfDay.IsBefore(daySlots[j].TimeOfDay)
		})
		for i := 1; i < len(daySlots); i++ {
			prevEnd := daySlots[i-1].TimeOfDay.AddMinutes(domain.LessonDurationMinutes)
			if daySlots[i].TimeOfDay.IsBefore(prevEnd) {
				return apperr.New(apperr.CodeOverlappingTimeSlots, "time slots overlap on the same weekday")
			}
		}
	}

	return nil
}

// stepInterval returns how far to advance the generated instant for pattern.
func stepInterval(t time.Time, pattern domain.RecurrencePattern) time.Time {
	switch pattern {
	case domain.PatternWeekly:
		return t.AddDate(0, 0, 7)
	case domain.PatternBiweekly:
		return t.AddDate(0, 0, 14)
	case domain.PatternMonthly:
		return t.AddDate(0, 1, 0)
	default:
		return t.AddDate(0, 0, 7)
	}
}

// firstOccurrence finds the first UTC instant >= from on the given
// weekday at the given time of day.
func firstOccurrence(from time.Time, weekday types.Weekday, tod types.LocalTimeOfDay) time.Time {
	candidate := tod.OnDate(from)
	for types.FromTimeWeekday(candidate.Weekday()) != weekday {
		candidate = candidate.AddDate(0, 0, 1)
	}
	if candidate.Before(from) {
		candidate = candidate.AddDate(0, 0, 7)
		for types.FromTimeWeekday(candidate.Weekday()) != weekday {
			candidate = candidate.AddDate(0, 0, 1)
		}
	}
	return candidate
}

// Generate expands req's time slots into sorted Instances, each of
// duration domain.LessonDurationMinutes, strictly before req.HorizonEnd.
func Generate(req Request) []Instance {
	var instances []Instance

	for _, slot := range req.TimeSlots {
		t := firstOccurrence(req.Now, slot.Weekday, slot.TimeOfDay)
		for t.Before(req.HorizonEnd) {
			instances = append(instances, Instance{
				Start: t,
				End:   t.Add(time.Duration(domain.LessonDurationMinutes) * time.Minute),
			})
			t = stepInterval(t, req.Pattern)
		}
	}

	sort.Slice(instances, func(i, j int) bool {
		return instances[i].Start.Before(instances[j].Start)
	})

	return instances
}

// Detector is the dependency used to batch-check candidate instances
// for conflicts; implemented by *conflict.Detector in production.
type Detector interface {
	Conflicts(ctx context.Context, q conflict.Query) (map[conflict.Candidate]*domain.Booking, error)
}

// Resolve runs batched conflict detection, returns early when conflicts
// exist with no overrides supplied, and otherwise applies the
// overrides (cancel/move) with a single re-check of the moved instances.
func Resolve(ctx context.Context, req Request, instances []Instance, detector Detector) (*Result, error) {
	conflicts, err := checkConflicts(ctx, req, instances, detector)
	if err != nil {
		return nil, err
	}

	if len(conflicts) == 0 {
		return &Result{Instances: instances}, nil
	}

	if len(req.Overrides) == 0 {
		return &Result{Conflicts: conflicts}, nil
	}

	overrideByTime := make(map[string]Override, len(req.Overrides))
	for _, o := range req.Overrides {
		overrideByTime[o.ConflictTime.UTC().Format(timeOfDayWireFormat)] = o
	}

	var unhandled []TimeSlotConflict
	for _, c := range conflicts {
		if _, ok := overrideByTime[c.ConflictTime.UTC().Format(timeOfDayWireFormat)]; !ok {
			unhandled = append(unhandled, c)
		}
	}
	if len(unhandled) > 0 {
		return &Result{Conflicts: unhandled}, nil
	}

	resolved, err := applyOverrides(instances, conflicts, overrideByTime)
	if err != nil {
		return nil, err
	}

	finalConflicts, err := checkConflicts(ctx, req, resolved, detector)
	if err != nil {
		return nil, err
	}
	if len(finalConflicts) > 0 {
		return nil, apperr.New(apperr.CodeOverrideConflict, fmt.Sprintf("%d override(s) still conflict after being applied", len(finalConflicts)))
	}

	return &Result{Instances: resolved}, nil
}

// shiftCandidate pairs a candidate ±1h/±2h time-of-day with the
// interval it would occupy, so both can travel through the same
// batched conflict query as the instance they were shifted from.
type shiftCandidate struct {
	timeOfDay types.LocalTimeOfDay
	candidate conflict.Candidate
}

// shiftsFor computes inst's ±1h/±2h shifts that sit on the 15-minute
// grid and whose 60-minute lesson does not cross midnight.
func shiftsFor(inst Instance) []shiftCandidate {
	tod := types.FromInstant(inst.Start)

	var out []shiftCandidate
	for _, delta := range alternativeShifts {
		if m := tod.Hour*60 + tod.Minute + delta; m < 0 || m >= 24*60 {
			continue
		}
		shifted := tod.AddMinutes(delta)
		if err := shifted.Validate(); err != nil {
			continue
		}
		if !shifted.FitsWithDuration(domain.LessonDurationMinutes) {
			continue
		}
		start := shifted.OnDate(inst.Start)
		end := start.Add(time.Duration(domain.LessonDurationMinutes) * time.Minute)
		out = append(out, shiftCandidate{timeOfDay: shifted, candidate: conflict.Candidate{Start: start, End: end}})
	}
	return out
}

func checkConflicts(ctx context.Context, req Request, instances []Instance, detector Detector) ([]TimeSlotConflict, error) {
	shiftsByInstance := make(map[conflict.Candidate][]shiftCandidate, len(instances))
	candidates := make([]conflict.Candidate, 0, len(instances))
	for _, inst := range instances {
		c := conflict.Candidate{Start: inst.Start, End: inst.End}
		candidates = append(candidates, c)

		shifts := shiftsFor(inst)
		shiftsByInstance[c] = shifts
		for _, s := range shifts {
			candidates = append(candidates, s.candidate)
		}
	}

	hits, err := detector.Conflicts(ctx, conflict.Query{
		HostID:        req.HostID,
		ParticipantID: &req.StudentID,
		Candidates:    candidates,
	})
	if err != nil {
		return nil, err
	}

	var result []TimeSlotConflict
	for _, inst := range instances {
		c := conflict.Candidate{Start: inst.Start, End: inst.End}
		if _, conflicted := hits[c]; !conflicted {
			continue
		}
		result = append(result, TimeSlotConflict{
			ConflictTime:     inst.Start,
			AlternativeTimes: alternatives(shiftsByInstance[c], hits),
		})
	}
	return result, nil
}

// alternatives keeps only the shifts that came back free of a conflict
// in the same batched lookup that found inst's own conflict.
func alternatives(shifts []shiftCandidate, hits map[conflict.Candidate]*domain.Booking) []types.LocalTimeOfDay {
	var out []types.LocalTimeOfDay
	for _, s := range shifts {
		if _, conflicted := hits[s.candidate]; conflicted {
			continue
		}
		out = append(out, s.timeOfDay)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].IsBefore(out[j]) })
	return out
}

func applyOverrides(instances []Instance, conflicts []TimeSlotConflict, overrideByTime map[string]Override) ([]Instance, error) {
	conflictTimes := make(map[string]bool, len(conflicts))
	for _, c := range conflicts {
		conflictTimes[c.ConflictTime.UTC().Format(timeOfDayWireFormat)] = true
	}

	resolved := make([]Instance, 0, len(instances))
	for _, inst := range instances {
		key := inst.Start.UTC().Format(timeOfDayWireFormat)
		if !conflictTimes[key] {
			resolved = append(resolved, inst)
			continue
		}

		override := overrideByTime[key]
		if override.Cancel {
			continue
		}
		if override.NewTimeOfDay == nil {
			return nil, apperr.New(apperr.CodeInvalidOverrideTime, "override must set cancel or newTimeOfDay")
		}
		if err := override.NewTimeOfDay.Validate(); err != nil {
			return nil, apperr.Wrap(apperr.CodeInvalidOverrideTime, "override newTimeOfDay not on 15-minute grid", err)
		}
		if !override.NewTimeOfDay.FitsWithDuration(domain.LessonDurationMinutes) {
			return nil, apperr.New(apperr.CodeInvalidOverrideTime, "override newTimeOfDay would cross midnight")
		}

		newStart := override.NewTimeOfDay.OnDate(inst.Start)
		resolved = append(resolved, Instance{
			Start: newStart,
			End:   newStart.Add(time.Duration(domain.LessonDurationMinutes) * time.Minute),
		})
	}

	sort.Slice(resolved, func(i, j int) bool { return resolved[i].Start.Before(resolved[j].Start) })
	return resolved, nil
}
