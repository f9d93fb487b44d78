package allocate_slot

import "errors"

var (
	// ErrSlotNotFound is returned when the slot does not exist.
	ErrSlotNotFound = errors.New("allocate_slot: slot not found")

	// ErrBookingNotFound is returned when the booking does not exist.
	ErrBookingNotFound = errors.New("allocate_slot: booking not found")

	// ErrCapacityExceeded is returned when the slot is already at
	// max_bookings. Surfaced to the booking flow as a distinct "slot full"
	// condition, never retried automatically.
	ErrCapacityExceeded = errors.New("allocate_slot: slot capacity exceeded")

	// ErrBookingInactive is returned when the booking is not pending or
	// confirmed and may not occupy capacity.
	ErrBookingInactive = errors.New("allocate_slot: booking is not active")

	// ErrAlreadyAllocated is returned when the booking is already linked to
	// a slot.
	ErrAlreadyAllocated = errors.New("allocate_slot: booking already allocated to a slot")

	// ErrInvalidInput is returned for malformed request parameters.
	ErrInvalidInput = errors.New("allocate_slot: invalid input data")

	// ErrInternal is returned for storage failures.
	ErrInternal = errors.New("allocate_slot: internal error")
)
