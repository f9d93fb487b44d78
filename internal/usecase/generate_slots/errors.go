package generate_slots

import "errors"

var (
	// ErrInvalidInput is returned for malformed request parameters.
	ErrInvalidInput = errors.New("generate_slots: invalid input data")

	// ErrInvalidDateRange is returned when the requested range is reversed
	// or too wide.
	ErrInvalidDateRange = errors.New("generate_slots: invalid date range")

	// ErrInternal is returned for storage or categorization failures.
	ErrInternal = errors.New("generate_slots: internal error")
)
