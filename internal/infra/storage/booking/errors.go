package booking

import "errors"

var (
	// ErrBookingNotFound is returned when no row matches the requested id.
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrDuplicatePayment is returned when a unique constraint on
	// payments (bookingId, sessionId or paymentIntentId) is violated,
	// the DB-level backstop behind the serializable transaction.
	ErrDuplicatePayment = errors.New("booking.repository: duplicate payment")

	// ErrBuildQuery is returned when squirrel fails to render SQL.
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery is returned when the database rejects the query.
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow is returned when a result row cannot be scanned into a domain type.
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
