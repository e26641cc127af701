package create_booking

import (
	"time"

	"github.com/tutorly/booking-engine/internal/apperr"
)

// parseStartTime parses an ISO-8601 UTC timestamp, rejecting anything
// time.RFC3339 (or its millisecond variant) can't read.
func parseStartTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02T15:04:05.000Z", s)
	if err != nil {
		return time.Time{}, apperr.New(apperr.CodeInvalidDate, "startTime is not a valid ISO-8601 UTC timestamp")
	}
	return t.UTC(), nil
}

// validateWindow rejects a startTime in the past or beyond the
// one-month advance-booking horizon.
func validateWindow(startTime, now time.Time) error {
	if startTime.Before(now) {
		return apperr.New(apperr.CodePastBooking, "booking start time is in the past")
	}
	if startTime.After(now.AddDate(0, 1, 0)) {
		return apperr.New(apperr.CodeAdvanceBookingLimit, "booking start time exceeds the one-month advance limit")
	}
	return nil
}
