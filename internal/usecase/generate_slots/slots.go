package generate_slots

import (
	"time"

	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/domain"
	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/service/categorizer"
	"github.com/FarhanAlam-Official/SewaBazaar-sub002/pkg/types"
)

// expandWindow partitions [window.StartTime, window.EndTime) into consecutive
// intervals of the window's slot duration for one calendar date. A final
// partial interval is dropped: short slots are never generated.
func expandWindow(window *domain.AvailabilityWindow, serviceID int64, date time.Time, categorize func(time.Time, types.TimeString) categorizer.Result) ([]*domain.Slot, error) {
	slots := make([]*domain.Slot, 0)

	current := window.StartTime
	for current.IsBefore(window.EndTime) {
		end, err := current.AddMinutes(window.SlotDurationMinutes)
		if err != nil {
			return nil, err
		}
		if end.IsAfter(window.EndTime) {
			break
		}

		result := categorize(date, current)
		slots = append(slots, &domain.Slot{
			ServiceID:         serviceID,
			ProviderID:        window.ProviderID,
			Date:              domain.DateOnly(date),
			StartTime:         current,
			EndTime:           end,
			Category:          result.Category,
			IsRush:            result.IsRush,
			RushFeePercentage: result.FeePercentage,
			ProviderNote:      result.Note,
			MaxBookings:       window.MaxConcurrentBookings,
			CurrentBookings:   0,
		})

		current = end
	}

	return slots, nil
}

// eachDate calls fn for every calendar date in [start, end], in order.
func eachDate(start, end time.Time, fn func(date time.Time) error) error {
	for date := domain.DateOnly(start); !date.After(domain.DateOnly(end)); date = date.AddDate(0, 0, 1) {
		if err := fn(date); err != nil {
			return err
		}
	}
	return nil
}

// groupByWeekday indexes the valid windows by weekday. Windows rejected by
// validation are reported through onInvalid and dropped.
func groupByWeekday(windows []*domain.AvailabilityWindow, onInvalid func(w *domain.AvailabilityWindow, err error)) map[time.Weekday][]*domain.AvailabilityWindow {
	grouped := make(map[time.Weekday][]*domain.AvailabilityWindow)
	for _, w := range windows {
		if err := w.Validate(); err != nil {
			onInvalid(w, err)
			continue
		}
		grouped[w.DayOfWeek] = append(grouped[w.DayOfWeek], w)
	}
	return grouped
}
