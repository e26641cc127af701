package booking

import (
	"time"

	"github.com/tutorly/booking-engine/internal/domain"
)

// SortField is the column GET bookings sorts by.
type SortField string

const (
	SortByStartTime SortField = "START_TIME"
	SortByCreatedAt SortField = "CREATED_AT"
)

// SortDirection is ascending or descending.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ListFilter is the query shape behind GET bookings.
type ListFilter struct {
	UserID        int64 // the requesting actor; results are scoped to bookings they host or participate in
	Statuses      []domain.BookingStatus
	Type          *domain.BookingType
	StartDate     *time.Time
	EndDate       *time.Time
	Search        string
	SortField     SortField
	SortDirection SortDirection
	Page          int
	Limit         int
}

// ListResult is the page of bookings plus pagination metadata.
type ListResult struct {
	Items []*domain.Booking
	Total int
}
