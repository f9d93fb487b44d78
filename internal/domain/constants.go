package domain

// Default scheduling parameters. All of them can be overridden in config.
const (
	DefaultSlotDurationMinutes   = 60
	DefaultMaxConcurrentBookings = 1
	DefaultDaysAhead             = 14
	DefaultRetentionDays         = 0 // delete unbooked slots as soon as the date passes
	DefaultGracePeriodDays       = 1
	DefaultMaxSlotsPerService    = 500
	DefaultBatchSize             = 100
)

// Business validation bounds.
const (
	MinSlotDurationMinutes     = 5
	MaxSlotDurationMinutes     = 480 // 8 hours
	MinConcurrentBookings      = 1
	MaxConcurrentBookingsLimit = 100
	MaxDaysAhead               = 365
	MaxProviderNoteLength      = 500
)

// Time format constants.
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// AutoCancelReason is the fixed cancellation reason written by the expiry
// job. Kept stable because downstream notification templates match on it.
const AutoCancelReason = "Booking automatically cancelled: booking date passed without confirmation of service delivery"

// ExpirableStatuses lists the statuses the auto-cancel job may move to
// cancelled once the booking date has passed the grace period.
var ExpirableStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveStatuses lists statuses that no longer occupy slot capacity.
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusRejected,
}
