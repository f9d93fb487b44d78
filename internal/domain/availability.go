package domain

import (
	"fmt"
	"time"

	"github.com/FarhanAlam-Official/SewaBazaar-sub002/pkg/types"
)

// AvailabilityWindow is a provider's recurring weekly availability range.
// Windows are created and edited by provider-facing profile management; the
// scheduling core only reads them when expanding slots.
type AvailabilityWindow struct {
	ID         int64
	ProviderID int64

	DayOfWeek time.Weekday

	StartTime types.TimeString
	EndTime   types.TimeString

	SlotDurationMinutes   int
	MaxConcurrentBookings int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the window invariants. A window failing validation is
// skipped by the generator, never fatal to a whole batch.
func (w *AvailabilityWindow) Validate() error {
	if err := w.StartTime.Validate(); err != nil {
		return fmt.Errorf("start_time: %v", err)
	}
	if err := w.EndTime.Validate(); err != nil {
		return fmt.Errorf("end_time: %v", err)
	}
	if !w.StartTime.IsBefore(w.EndTime) {
		return fmt.Errorf("start_time %s must be before end_time %s", w.StartTime, w.EndTime)
	}
	if w.SlotDurationMinutes < MinSlotDurationMinutes || w.SlotDurationMinutes > MaxSlotDurationMinutes {
		return fmt.Errorf("slot_duration_minutes %d out of range [%d, %d]",
			w.SlotDurationMinutes, MinSlotDurationMinutes, MaxSlotDurationMinutes)
	}
	if w.MaxConcurrentBookings < MinConcurrentBookings || w.MaxConcurrentBookings > MaxConcurrentBookingsLimit {
		return fmt.Errorf("max_concurrent_bookings %d out of range [%d, %d]",
			w.MaxConcurrentBookings, MinConcurrentBookings, MaxConcurrentBookingsLimit)
	}
	return nil
}

// Length returns the window length in minutes.
func (w *AvailabilityWindow) Length() (int, error) {
	start, err := w.StartTime.Minutes()
	if err != nil {
		return 0, err
	}
	end, err := w.EndTime.Minutes()
	if err != nil {
		return 0, err
	}
	return end - start, nil
}
