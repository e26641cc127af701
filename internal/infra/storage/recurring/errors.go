package recurring

import "errors"

var (
	// ErrTemplateNotFound is returned when no row matches the requested id.
	ErrTemplateNotFound = errors.New("recurring.repository: template not found")

	// ErrBuildQuery is returned when squirrel fails to render SQL.
	ErrBuildQuery = errors.New("recurring.repository: failed to build query")

	// ErrExecQuery is returned when the database rejects the query.
	ErrExecQuery = errors.New("recurring.repository: failed to execute query")

	// ErrScanRow is returned when a result row cannot be scanned into a domain type.
	ErrScanRow = errors.New("recurring.repository: failed to scan row")
)
