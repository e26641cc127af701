package user

import "errors"

var (
	// ErrUserNotFound is returned when no row matches the requested id.
	ErrUserNotFound = errors.New("user.repository: user not found")

	// ErrBuildQuery is returned when squirrel fails to render SQL.
	ErrBuildQuery = errors.New("user.repository: failed to build query")

	// ErrExecQuery is returned when the database rejects the query.
	ErrExecQuery = errors.New("user.repository: failed to execute query")

	// ErrScanRow is returned when a result row cannot be scanned into a domain type.
	ErrScanRow = errors.New("user.repository: failed to scan row")
)
