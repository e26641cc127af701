package list_bookings

import (
	"time"

	"github.com/tutorly/booking-engine/internal/domain"
	booking "github.com/tutorly/booking-engine/internal/infra/storage/booking"
)

// Request is the input to Execute, mirroring the GET bookings query
// parameters.
type Request struct {
	CurrentUser   *domain.User
	Statuses      []domain.BookingStatus
	Type          *domain.BookingType
	StartDate     *time.Time
	EndDate       *time.Time
	Search        string
	SortField     booking.SortField
	SortDirection booking.SortDirection
	Page          int
	Limit         int
}

// Metadata is the pagination envelope returned alongside items.
type Metadata struct {
	Total int
	Page  int
	Limit int
	Pages int
}

// Response is the page of bookings plus pagination metadata.
type Response struct {
	Items    []*domain.Booking
	Metadata Metadata
}
