package availability

import "errors"

var (
	// ErrBuildQuery is returned when SQL construction fails.
	ErrBuildQuery = errors.New("availability.repository: failed to build query")

	// ErrExecQuery is returned when query execution fails.
	ErrExecQuery = errors.New("availability.repository: failed to execute query")

	// ErrScanRow is returned when scanning a result row fails.
	ErrScanRow = errors.New("availability.repository: failed to scan row")
)
