package release_slot

import "errors"

var (
	// ErrSlotNotFound is returned when the slot does not exist.
	ErrSlotNotFound = errors.New("release_slot: slot not found")

	// ErrBookingNotFound is returned when the booking does not exist.
	ErrBookingNotFound = errors.New("release_slot: booking not found")

	// ErrInvalidInput is returned for malformed request parameters.
	ErrInvalidInput = errors.New("release_slot: invalid input data")

	// ErrInternal is returned for storage failures.
	ErrInternal = errors.New("release_slot: internal error")
)
