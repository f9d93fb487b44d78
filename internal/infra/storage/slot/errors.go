package slot

import "errors"

var (
	// ErrSlotNotFound is returned when the slot does not exist.
	ErrSlotNotFound = errors.New("slot.repository: slot not found")

	// ErrCapacityExceeded is returned when a conditional increment finds the
	// slot already full.
	ErrCapacityExceeded = errors.New("slot.repository: slot capacity exceeded")

	// ErrAlreadyReleased is returned when a conditional decrement finds the
	// booking counter already at zero. Callers treat it as a no-op.
	ErrAlreadyReleased = errors.New("slot.repository: slot already released")

	// ErrDuplicateSlot is returned when an insert collides with an existing
	// (service_id, date, start_time, end_time) key. Generation treats it as
	// success since the slot already exists.
	ErrDuplicateSlot = errors.New("slot.repository: slot already exists")

	// ErrHasBookings is returned when a delete would remove slots that still
	// carry bookings and force was not set.
	ErrHasBookings = errors.New("slot.repository: slot has active bookings")

	// ErrBuildQuery is returned when SQL construction fails.
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery is returned when query execution fails.
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow is returned when scanning a result row fails.
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
