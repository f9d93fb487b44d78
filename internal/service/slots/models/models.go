package models

import (
	"time"

	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/domain"
)

// Request models

// ListSlotsRequest asks for the slots of one service over a date range.
type ListSlotsRequest struct {
	ServiceID     int64      `json:"serviceId"`
	StartDate     *time.Time `json:"startDate,omitempty"` // defaults to today
	EndDate       *time.Time `json:"endDate,omitempty"`   // defaults to start + 14 days
	Category      *string    `json:"category,omitempty"`  // optional category filter
	AvailableOnly bool       `json:"availableOnly,omitempty"`
}

// RecategorizeRequest re-derives categories for a service's unbooked slots.
type RecategorizeRequest struct {
	ServiceID int64      `json:"serviceId"`
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
	DryRun    bool       `json:"dryRun,omitempty"`
}

// BulkDeleteRequest removes a service's slots, e.g. when the service is
// deactivated.
type BulkDeleteRequest struct {
	ServiceID int64 `json:"serviceId"`
	// Force also deletes slots that still carry bookings.
	Force bool `json:"force,omitempty"`
}

// Response models

// SlotResponse is the API representation of a single slot.
type SlotResponse struct {
	ID                int64   `json:"id"`
	ServiceID         int64   `json:"serviceId"`
	ProviderID        int64   `json:"providerId"`
	Date              string  `json:"date"`      // "2026-03-15"
	StartTime         string  `json:"startTime"` // "10:00"
	EndTime           string  `json:"endTime"`   // "11:00"
	Category          string  `json:"category"`
	IsRush            bool    `json:"isRush"`
	RushFeePercentage int     `json:"rushFeePercentage"`
	ProviderNote      string  `json:"providerNote,omitempty"`
	MaxBookings       int     `json:"maxBookings"`
	CurrentBookings   int     `json:"currentBookings"`
	AvailableSpots    int     `json:"availableSpots"`
	IsFull            bool    `json:"isFull"`
	OccupancyRate     float64 `json:"occupancyRate"`
}

// SlotListResponse is a list of slots with a total count.
type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
	Total int            `json:"total"`
}

// RecategorizeResponse reports the outcome of a recategorization pass.
type RecategorizeResponse struct {
	Updated   int  `json:"updated"`
	Unchanged int  `json:"unchanged"`
	Skipped   int  `json:"skipped"` // booked slots keep their category
	DryRun    bool `json:"dryRun,omitempty"`
}

// BulkDeleteResponse reports the outcome of a bulk delete.
type BulkDeleteResponse struct {
	Deleted int `json:"deleted"`
}

// FromDomainSlot converts a domain slot to its API representation.
func FromDomainSlot(s *domain.Slot) *SlotResponse {
	return &SlotResponse{
		ID:                s.ID,
		ServiceID:         s.ServiceID,
		ProviderID:        s.ProviderID,
		Date:              s.Date.Format(domain.DateFormat),
		StartTime:         s.StartTime.String(),
		EndTime:           s.EndTime.String(),
		Category:          string(s.Category),
		IsRush:            s.IsRush,
		RushFeePercentage: s.RushFeePercentage,
		ProviderNote:      s.ProviderNote,
		MaxBookings:       s.MaxBookings,
		CurrentBookings:   s.CurrentBookings,
		AvailableSpots:    s.AvailableSpots(),
		IsFull:            s.IsFull(),
		OccupancyRate:     s.OccupancyRate(),
	}
}

// FromDomainSlotList converts a list of domain slots.
func FromDomainSlotList(slots []*domain.Slot) *SlotListResponse {
	resp := &SlotListResponse{
		Slots: make([]SlotResponse, 0, len(slots)),
		Total: len(slots),
	}
	for _, s := range slots {
		resp.Slots = append(resp.Slots, *FromDomainSlot(s))
	}
	return resp
}
