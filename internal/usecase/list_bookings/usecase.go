package list_bookings

import (
	"context"

	booking "github.com/tutorly/booking-engine/internal/infra/storage/booking"
)

// UseCase implements "GET bookings".
type UseCase struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewUseCase builds a UseCase.
func NewUseCase(bookingRepo BookingRepository, logger Logger) *UseCase {
	return &UseCase{bookingRepo: bookingRepo, logger: logger}
}

// Execute returns the actor's page of bookings.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	page, limit := req.Page, req.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	} else if limit > 100 {
		limit = 100
	}

	filter := booking.ListFilter{
		UserID:        req.CurrentUser.ID,
		Statuses:      req.Statuses,
		Type:          req.Type,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Search:        req.Search,
		SortField:     req.SortField,
		SortDirection: req.SortDirection,
		Page:          page,
		Limit:         limit,
	}

	result, err := uc.bookingRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Error("ListBookings: user=%d failed: %v", req.CurrentUser.ID, err)
		return nil, err
	}

	pages := result.Total / limit
	if result.Total%limit != 0 {
		pages++
	}

	return &Response{
		Items: result.Items,
		Metadata: Metadata{
			Total: result.Total,
			Page:  page,
			Limit: limit,
			Pages: pages,
		},
	}, nil
}
