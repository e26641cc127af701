package domain

import "time"

// BookingType is a tagged variant replacing subclassing: each type
// carries a fixed duration via DurationMinutes.
type BookingType string

const (
	TypeFreeMeeting BookingType = "FREE_MEETING"
	TypeLesson      BookingType = "LESSON"
)

// DurationMinutes returns the fixed lesson length for t.
func (t BookingType) DurationMinutes() int {
	if t == TypeFreeMeeting {
		return FreeMeetingDurationMinutes
	}
	return LessonDurationMinutes
}

// Fixed durations per booking type.
const (
	FreeMeetingDurationMinutes = 15
	LessonDurationMinutes      = 60
)

// BookingStatus is the state-machine status of a Booking.
type BookingStatus string

const (
	StatusAwaitingTutorConfirmation   BookingStatus = "AWAITING_TUTOR_CONFIRMATION"
	StatusAwaitingStudentConfirmation BookingStatus = "AWAITING_STUDENT_CONFIRMATION"
	StatusAwaitingPayment             BookingStatus = "AWAITING_PAYMENT"
	StatusPaymentFailed               BookingStatus = "PAYMENT_FAILED"
	StatusScheduled                   BookingStatus = "SCHEDULED"
	StatusCanceled                    BookingStatus = "CANCELED"
	StatusCompleted                   BookingStatus = "COMPLETED"
	StatusAwaitingRefund              BookingStatus = "AWAITING_REFUND"
	StatusRefundFailed                BookingStatus = "REFUND_FAILED"
	StatusRefunded                    BookingStatus = "REFUNDED"
)

// ActiveStatuses is the set of bookings that occupy a slot on the
// host's calendar and participate in overlap checks.
var ActiveStatuses = []BookingStatus{
	StatusAwaitingTutorConfirmation,
	StatusAwaitingStudentConfirmation,
	StatusAwaitingPayment,
	StatusScheduled,
}

// TerminalStatuses are statuses the state machine rejects every
// transition from.
var TerminalStatuses = []BookingStatus{
	StatusCompleted,
	StatusCanceled,
	StatusRefunded,
}

// CancelableStatuses is the status set the cancel booking command
// accepts from.
var CancelableStatuses = []BookingStatus{
	StatusAwaitingTutorConfirmation,
	StatusAwaitingStudentConfirmation,
	StatusScheduled,
	StatusAwaitingPayment,
	StatusPaymentFailed,
}

// PaymentBackedStatuses is the status set where every LESSON booking
// must have an attached Payment row.
var PaymentBackedStatuses = []BookingStatus{
	StatusAwaitingPayment,
	StatusPaymentFailed,
	StatusScheduled,
	StatusAwaitingRefund,
	StatusRefundFailed,
	StatusRefunded,
}

func statusIn(status BookingStatus, set []BookingStatus) bool {
	for _, s := range set {
		if s == status {
			return true
		}
	}
	return false
}

// IsActive reports whether status is in the active status set.
func (s BookingStatus) IsActive() bool { return statusIn(s, ActiveStatuses) }

// IsTerminal reports whether status rejects every further transition.
func (s BookingStatus) IsTerminal() bool { return statusIn(s, TerminalStatuses) }

// Booking is the central entity of the engine.
type Booking struct {
	ID          int64
	Title       string
	Description *string

	StartTime time.Time
	EndTime   time.Time

	Type   BookingType
	Status BookingStatus

	HostID       int64
	Participants []int64

	ServiceID int64

	RecurringTemplateID *int64

	Payment *Payment

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasParticipant reports whether userID participates in b.
func (b *Booking) HasParticipant(userID int64) bool {
	for _, p := range b.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// IsHostOrParticipant reports whether userID may act on b as either
// party.
func (b *Booking) IsHostOrParticipant(userID int64) bool {
	return b.HostID == userID || b.HasParticipant(userID)
}

// Overlaps reports whether b's [StartTime,EndTime) interval overlaps
// the half-open candidate interval [start,end).
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartTime.Before(end) && b.EndTime.After(start)
}
