// Package types holds the time primitives the engine reasons about:
// UTC instants, weekdays, and the 15-minute-grid local time of day
// recurring time slots are defined in. Kept separate from the domain
// package because the state machine, recurrence expander and conflict
// detector all import it without needing to know about bookings.
package types

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimeOfDay is returned when a LocalTimeOfDay does not sit on
// the 15-minute grid or falls outside a single day.
var ErrInvalidTimeOfDay = errors.New("invalid time of day")

// LocalTimeOfDay is a wall-clock time of day as an hour/minute pair;
// Validate restricts it to the 15-minute grid {0, 15, 30, 45}.
type LocalTimeOfDay struct {
	Hour   int
	Minute int
}

// NewLocalTimeOfDay builds a LocalTimeOfDay from an hour/minute pair
// without validating it; call Validate before relying on it.
func NewLocalTimeOfDay(hour, minute int) LocalTimeOfDay {
	return LocalTimeOfDay{Hour: hour, Minute: minute}
}

// FromInstant projects an Instant's UTC wall clock onto a LocalTimeOfDay.
func FromInstant(t time.Time) LocalTimeOfDay {
	u := t.UTC()
	return LocalTimeOfDay{Hour: u.Hour(), Minute: u.Minute()}
}

// ParseLocalTimeOfDay parses an "HH:mm" string.
func ParseLocalTimeOfDay(s string) (LocalTimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return LocalTimeOfDay{}, fmt.Errorf("%w: %s: %v", ErrInvalidTimeOfDay, s, err)
	}
	tod := LocalTimeOfDay{Hour: t.Hour(), Minute: t.Minute()}
	if err := tod.Validate(); err != nil {
		return LocalTimeOfDay{}, err
	}
	return tod, nil
}

// IsZero reports whether tod is the zero value (00:00).
func (t LocalTimeOfDay) IsZero() bool {
	return t.Hour == 0 && t.Minute == 0
}

// Validate checks that t sits on the 15-minute grid and within one day.
func (t LocalTimeOfDay) Validate() error {
	if t.Hour < 0 || t.Hour > 23 {
		return fmt.Errorf("%w: hour %d out of range", ErrInvalidTimeOfDay, t.Hour)
	}
	if t.Minute != 0 && t.Minute != 15 && t.Minute != 30 && t.Minute != 45 {
		return fmt.Errorf("%w: minute %d not on 15-minute grid", ErrInvalidTimeOfDay, t.Minute)
	}
	return nil
}

// FitsWithDuration reports whether a lesson of durationMinutes starting
// at t stays within the same day, i.e. never crosses midnight.
func (t LocalTimeOfDay) FitsWithDuration(durationMinutes int) bool {
	return t.minutes()+durationMinutes <= 24*60
}

// AddMinutes returns t shifted by delta minutes, wrapping within a
// single day. delta may be negative.
func (t LocalTimeOfDay) AddMinutes(delta int) LocalTimeOfDay {
	total := ((t.minutes()+delta)%(24*60) + 24*60) % (24 * 60)
	return LocalTimeOfDay{Hour: total / 60, Minute: total % 60}
}

// IsBefore reports whether t is strictly earlier than other.
func (t LocalTimeOfDay) IsBefore(other LocalTimeOfDay) bool {
	return t.minutes() < other.minutes()
}

// IsAfter reports whether t is strictly later than other.
func (t LocalTimeOfDay) IsAfter(other LocalTimeOfDay) bool {
	return t.minutes() > other.minutes()
}

// Equal reports whether t and other denote the same time of day.
func (t LocalTimeOfDay) Equal(other LocalTimeOfDay) bool {
	return t.minutes() == other.minutes()
}

// OnDate combines t with the calendar date of day (using day's UTC
// year/month/day) into a concrete UTC Instant.
func (t LocalTimeOfDay) OnDate(day time.Time) time.Time {
	d := day.UTC()
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour, t.Minute, 0, 0, time.UTC)
}

// String renders t as "HH:mm".
func (t LocalTimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

func (t LocalTimeOfDay) minutes() int {
	return t.Hour*60 + t.Minute
}
