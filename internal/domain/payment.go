package domain

// Payment is owned 1-to-1 by a Booking; Booking references it by id
// and Payment refers back by BookingID, resolving the cyclic reference
// without an in-memory back-pointer.
type Payment struct {
	ID              int64
	BookingID       int64
	SessionID       *string
	SessionURL      *string
	PaymentIntentID *string
	ChargeID        *string
	Metadata        map[string]string
}
