package events

import "github.com/google/uuid"

// Routing keys for the booking domain events the engine fans out.
// Downstream consumers (a notification worker, the periodic COMPLETED
// sweep) bind to these outside this repository.
const (
	RoutingKeyScheduled        = "booking.scheduled"
	RoutingKeyCanceled         = "booking.canceled"
	RoutingKeyConfirmed        = "booking.confirmed"
	RoutingKeyRescheduled      = "booking.rescheduled"
	RoutingKeyRefundRequested  = "booking.refund_requested"
	RoutingKeyPaymentFailed    = "booking.payment_failed"
	RoutingKeyPaymentSucceeded = "booking.payment_succeeded"
)

// BookingEvent is the payload every booking.* routing key carries.
// EventID lets a consumer that re-delivers (amqp091-go redelivers on a
// requeued nack) tell apart a retry from a genuinely new occurrence.
type BookingEvent struct {
	EventID   string `json:"eventId"`
	BookingID int64  `json:"bookingId"`
	Status    string `json:"status"`
	HostID    int64  `json:"hostId,omitempty"`
}

// NewBookingEvent stamps a fresh EventID onto the event.
func NewBookingEvent(bookingID int64, status string, hostID int64) BookingEvent {
	return BookingEvent{EventID: uuid.NewString(), BookingID: bookingID, Status: status, HostID: hostID}
}
