package run_maintenance

import "errors"

var (
	// ErrAlreadyRunning is returned when another maintenance pass holds the
	// job lock. Callers treat it as a no-op status, not a failure.
	ErrAlreadyRunning = errors.New("run_maintenance: maintenance job already running")

	// ErrPartialFailure is returned when the pass completed but at least one
	// service failed. The report carries the per-service details.
	ErrPartialFailure = errors.New("run_maintenance: one or more services failed")

	// ErrInvalidInput is returned for malformed request parameters.
	ErrInvalidInput = errors.New("run_maintenance: invalid input data")

	// ErrInternal is returned when the pass cannot run at all (lock errors,
	// catalog unavailable, cleanup failure).
	ErrInternal = errors.New("run_maintenance: internal error")
)
