package domain

import (
	"time"

	"github.com/FarhanAlam-Official/SewaBazaar-sub002/pkg/types"
)

// SlotCategory classifies a slot by demand band. The category drives the rush
// fee surcharge and display, never availability.
type SlotCategory string

const (
	CategoryNormal  SlotCategory = "normal"
	CategoryPeak    SlotCategory = "peak"
	CategoryOffPeak SlotCategory = "off_peak"
	CategoryRush    SlotCategory = "rush"
	CategoryExpress SlotCategory = "express"
)

// ValidCategories lists every known slot category.
var ValidCategories = []SlotCategory{
	CategoryNormal,
	CategoryPeak,
	CategoryOffPeak,
	CategoryRush,
	CategoryExpress,
}

// IsValid reports whether c is a known category.
func (c SlotCategory) IsValid() bool {
	for _, v := range ValidCategories {
		if c == v {
			return true
		}
	}
	return false
}

// Slot is a single bookable time interval for one service on one date with a
// fixed concurrent-booking capacity.
//
// Invariants:
//   - (ServiceID, Date, StartTime, EndTime) is unique (enforced by the DB).
//   - 0 <= CurrentBookings <= MaxBookings at all times.
//   - A slot with CurrentBookings > 0 is never deleted by maintenance unless
//     explicitly forced.
type Slot struct {
	ID         int64
	ServiceID  int64
	ProviderID int64
	Date       time.Time

	StartTime types.TimeString
	EndTime   types.TimeString

	Category          SlotCategory
	IsRush            bool
	RushFeePercentage int
	ProviderNote      string

	MaxBookings     int
	CurrentBookings int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsFull returns true if the slot has no remaining capacity.
func (s *Slot) IsFull() bool {
	return s.CurrentBookings >= s.MaxBookings
}

// AvailableSpots returns the number of remaining bookable spots.
func (s *Slot) AvailableSpots() int {
	spots := s.MaxBookings - s.CurrentBookings
	if spots < 0 {
		return 0
	}
	return spots
}

// HasBookings returns true if at least one booking is attached to the slot.
func (s *Slot) HasBookings() bool {
	return s.CurrentBookings > 0
}

// IsExpired reports whether the slot's date is strictly before today.
func (s *Slot) IsExpired(today time.Time) bool {
	return DateOnly(s.Date).Before(DateOnly(today))
}

// OccupancyRate returns the occupancy rate as a percentage (0-100).
func (s *Slot) OccupancyRate() float64 {
	if s.MaxBookings == 0 {
		return 0
	}
	return float64(s.CurrentBookings) / float64(s.MaxBookings) * 100
}

// SlotKey is the natural identity of a slot within a service's calendar.
type SlotKey struct {
	ServiceID int64
	Date      string // DateFormat
	StartTime types.TimeString
	EndTime   types.TimeString
}

// Key returns the slot's natural key.
func (s *Slot) Key() SlotKey {
	return SlotKey{
		ServiceID: s.ServiceID,
		Date:      s.Date.Format(DateFormat),
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
	}
}

// DateOnly strips the clock part of t, keeping its location.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
