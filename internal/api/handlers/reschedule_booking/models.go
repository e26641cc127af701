package reschedule_booking

import (
	"github.com/tutorly/booking-engine/internal/domain"
	rescheduleBooking "github.com/tutorly/booking-engine/internal/usecase/reschedule_booking"
)

// httpRequest is "PATCH bookings/{id}/reschedule"'s JSON body.
type httpRequest struct {
	StartTime string `json:"startTime"`
}

// httpResponse is the booking's new status.
type httpResponse struct {
	Status domain.BookingStatus `json:"status"`
}

func (r httpRequest) toUseCaseRequest(bookingID int64, currentUser *domain.User) *rescheduleBooking.Request {
	return &rescheduleBooking.Request{BookingID: bookingID, StartTime: r.StartTime, CurrentUser: currentUser}
}
