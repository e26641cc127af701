package create_booking

import (
	"github.com/tutorly/booking-engine/internal/domain"
	createBooking "github.com/tutorly/booking-engine/internal/usecase/create_booking"
)

// httpRequest is "POST bookings"'s JSON body.
type httpRequest struct {
	StartTime string `json:"startTime"`
	ToUserID  int64  `json:"toUserId"`
}

// httpResponse is the created booking's id.
type httpResponse struct {
	ID int64 `json:"id"`
}

func (r httpRequest) toUseCaseRequest(currentUser *domain.User) *createBooking.Request {
	return &createBooking.Request{StartTime: r.StartTime, CurrentUser: currentUser, ToUserID: r.ToUserID}
}
