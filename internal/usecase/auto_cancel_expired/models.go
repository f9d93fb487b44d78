package auto_cancel_expired

import "github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/domain"

// Request parameterises one expiry pass.
type Request struct {
	// GracePeriodDays overrides the configured grace period when positive.
	// A booking expires once its date is more than the grace period in the
	// past.
	GracePeriodDays int

	// DryRun reports the bookings that would be cancelled without writing
	// anything.
	DryRun bool
}

// BookingError records a per-booking failure inside an expiry pass.
type BookingError struct {
	BookingID int64
	Message   string
}

// Response reports the outcome of one expiry pass.
type Response struct {
	RunID  string
	DryRun bool

	// CancelledCount is the number of bookings moved to cancelled.
	CancelledCount int

	// ReleasedCount is the number of slot capacity units freed. At most one
	// per cancelled booking; bookings without a slot cancel without a
	// release.
	ReleasedCount int

	// SkippedCount is the number of bookings that left the expirable
	// statuses between the listing and their own transaction, e.g. a manual
	// cancellation racing the sweep.
	SkippedCount int

	Errors []BookingError
}

// Failed returns true if any booking failed during the pass.
func (r *Response) Failed() bool {
	return len(r.Errors) > 0
}

// Params carries the expiry settings from config.
type Params struct {
	GracePeriodDays int
}

func (p Params) orDefaults() Params {
	if p.GracePeriodDays < 0 {
		p.GracePeriodDays = domain.DefaultGracePeriodDays
	}
	return p
}
