package list_bookings

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tutorly/booking-engine/internal/apperr"
	"github.com/tutorly/booking-engine/internal/domain"
	booking "github.com/tutorly/booking-engine/internal/infra/storage/booking"
	listBookings "github.com/tutorly/booking-engine/internal/usecase/list_bookings"
)

// wireTimeFormat is the ISO-8601-with-milliseconds format used for
// both the startDate/endDate query parameters and StartTime/EndTime
// in the response envelope.
const wireTimeFormat = "2006-01-02T15:04:05.000Z"

// requestFromQuery builds a list_bookings.Request from r's query
// string: every field is optional, startDate must not be after
// endDate, and sortField's allowed values are checked against the
// enum before being handed to the repository.
func requestFromQuery(r *http.Request, currentUser *domain.User) (*listBookings.Request, error) {
	q := r.URL.Query()

	req := &listBookings.Request{
		CurrentUser:   currentUser,
		Search:        q.Get("search"),
		SortField:     booking.SortByStartTime,
		SortDirection: booking.SortDesc,
		Page:          1,
		Limit:         10,
	}

	if raw := q.Get("page"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			return nil, apperr.New(apperr.CodeInvalidInput, "page must be a positive integer")
		}
		req.Page = v
	}

	if raw := q.Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > 100 {
			return nil, apperr.New(apperr.CodeInvalidInput, "limit must be between 1 and 100")
		}
		req.Limit = v
	}

	if raw := q.Get("status"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			req.Statuses = append(req.Statuses, domain.BookingStatus(s))
		}
	}

	if raw := q.Get("type"); raw != "" {
		t := domain.BookingType(raw)
		if t != domain.TypeFreeMeeting && t != domain.TypeLesson {
			return nil, apperr.New(apperr.CodeInvalidInput, "type must be FREE_MEETING or LESSON")
		}
		req.Type = &t
	}

	if raw := q.Get("startDate"); raw != "" {
		t, err := time.Parse(wireTimeFormat, raw)
		if err != nil {
			return nil, apperr.New(apperr.CodeInvalidDate, "startDate is not a valid ISO-8601 UTC timestamp")
		}
		req.StartDate = &t
	}

	if raw := q.Get("endDate"); raw != "" {
		t, err := time.Parse(wireTimeFormat, raw)
		if err != nil {
			return nil, apperr.New(apperr.CodeInvalidDate, "endDate is not a valid ISO-8601 UTC timestamp")
		}
		req.EndDate = &t
	}

	if req.StartDate != nil && req.EndDate != nil && req.StartDate.After(*req.EndDate) {
		return nil, apperr.New(apperr.CodeInvalidInput, "startDate must not be after endDate")
	}

	if raw := q.Get("sortField"); raw != "" {
		switch booking.SortField(raw) {
		case booking.SortByStartTime, booking.SortByCreatedAt:
			req.SortField = booking.SortField(raw)
		default:
			return nil, apperr.New(apperr.CodeInvalidInput, "sortField must be START_TIME or CREATED_AT")
		}
	}

	if raw := q.Get("sortDirection"); raw != "" {
		switch booking.SortDirection(strings.ToLower(raw)) {
		case booking.SortAsc, booking.SortDesc:
			req.SortDirection = booking.SortDirection(strings.ToLower(raw))
		default:
			return nil, apperr.New(apperr.CodeInvalidInput, "sortDirection must be asc or desc")
		}
	}

	return req, nil
}

type itemView struct {
	ID        int64                `json:"id"`
	Title     string               `json:"title"`
	StartTime string               `json:"startTime"`
	EndTime   string               `json:"endTime"`
	Type      domain.BookingType   `json:"type"`
	Status    domain.BookingStatus `json:"status"`
	HostID    int64                `json:"hostId"`
}

type metadataView struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

type httpResponse struct {
	Items    []itemView   `json:"items"`
	Metadata metadataView `json:"metadata"`
}

func fromUseCaseResponse(resp *listBookings.Response) httpResponse {
	items := make([]itemView, len(resp.Items))
	for i, b := range resp.Items {
		items[i] = itemView{
			ID:        b.ID,
			Title:     b.Title,
			StartTime: b.StartTime.UTC().Format(wireTimeFormat),
			EndTime:   b.EndTime.UTC().Format(wireTimeFormat),
			Type:      b.Type,
			Status:    b.Status,
			HostID:    b.HostID,
		}
	}

	return httpResponse{
		Items: items,
		Metadata: metadataView{
			Total: resp.Metadata.Total,
			Page:  resp.Metadata.Page,
			Limit: resp.Metadata.Limit,
			Pages: resp.Metadata.Pages,
		},
	}
}
