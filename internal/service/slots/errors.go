package slots

import "errors"

var (
	// ErrSlotNotFound is returned when the slot does not exist.
	ErrSlotNotFound = errors.New("slot not found")

	// ErrInvalidInput is returned for malformed request parameters.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidDateRange is returned when the date range is malformed.
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrInternal is returned for internal service errors.
	ErrInternal = errors.New("service: internal error")
)
