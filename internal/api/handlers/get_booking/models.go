package get_booking

import (
	"github.com/tutorly/booking-engine/internal/domain"
	getBooking "github.com/tutorly/booking-engine/internal/usecase/get_booking"
)

// wireTimeFormat is the ISO-8601-with-milliseconds output format used
// on every timestamp field in the response body.
const wireTimeFormat = "2006-01-02T15:04:05.000Z"

// userSummary is the {id, name, image} shape attached to a booking's
// host and participants. ImageURL is intentionally absent: the profile
// picture pipeline is an out-of-scope external collaborator.
type userSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type paymentView struct {
	SessionID       *string           `json:"sessionId,omitempty"`
	SessionURL      *string           `json:"sessionUrl,omitempty"`
	PaymentIntentID *string           `json:"paymentIntentId,omitempty"`
	ChargeID        *string           `json:"chargeId,omitempty"`
	Metadata        map[string]string `json:"metadata,omitempty"`
}

type httpResponse struct {
	ID           int64                `json:"id"`
	Title        string               `json:"title"`
	Description  *string              `json:"description,omitempty"`
	StartTime    string               `json:"startTime"`
	EndTime      string               `json:"endTime"`
	Type         domain.BookingType   `json:"type"`
	Status       domain.BookingStatus `json:"status"`
	Host         userSummary          `json:"host"`
	Participants []userSummary        `json:"participants"`
	Payment      *paymentView         `json:"payment,omitempty"`
}

func fromUseCaseResponse(resp *getBooking.Response) httpResponse {
	participants := make([]userSummary, len(resp.Participants))
	for i, p := range resp.Participants {
		participants[i] = userSummary{ID: p.ID, Name: p.Name}
	}

	out := httpResponse{
		ID:           resp.Booking.ID,
		Title:        resp.Booking.Title,
		Description:  resp.Booking.Description,
		StartTime:    resp.Booking.StartTime.UTC().Format(wireTimeFormat),
		EndTime:      resp.Booking.EndTime.UTC().Format(wireTimeFormat),
		Type:         resp.Booking.Type,
		Status:       resp.Booking.Status,
		Host:         userSummary{ID: resp.Host.ID, Name: resp.Host.Name},
		Participants: participants,
	}

	if p := resp.Booking.Payment; p != nil {
		out.Payment = &paymentView{
			SessionID:       p.SessionID,
			SessionURL:      p.SessionURL,
			PaymentIntentID: p.PaymentIntentID,
			ChargeID:        p.ChargeID,
			Metadata:        p.Metadata,
		}
	}

	return out
}
