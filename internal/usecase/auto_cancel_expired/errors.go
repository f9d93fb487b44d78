package auto_cancel_expired

import "errors"

var (
	// ErrAlreadyRunning is returned when another expiry pass holds the job
	// lock. Callers treat it as a no-op status, not a failure.
	ErrAlreadyRunning = errors.New("auto_cancel_expired: expiry job already running")

	// ErrPartialFailure is returned when the pass completed but at least one
	// booking failed to cancel. The response carries the per-booking details.
	ErrPartialFailure = errors.New("auto_cancel_expired: one or more bookings failed to cancel")

	// ErrInvalidInput is returned for malformed request parameters.
	ErrInvalidInput = errors.New("auto_cancel_expired: invalid input data")

	// ErrInternal is returned when the pass cannot run at all.
	ErrInternal = errors.New("auto_cancel_expired: internal error")
)
