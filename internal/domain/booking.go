package domain

import (
	"time"

	"github.com/FarhanAlam-Official/SewaBazaar-sub002/pkg/types"
)

// BookingStatus represents the status of a booking.
//
// Lifecycle: pending → confirmed → service_delivered → completed, with
// cancelled and rejected as absorbing states reachable from pending/confirmed.
type BookingStatus string

const (
	StatusPending          BookingStatus = "pending"
	StatusConfirmed        BookingStatus = "confirmed"
	StatusServiceDelivered BookingStatus = "service_delivered"
	StatusCompleted        BookingStatus = "completed"
	StatusCancelled        BookingStatus = "cancelled"
	StatusRejected         BookingStatus = "rejected"
)

// Booking represents a customer booking. The scheduling core only mutates the
// slot link, the status and the cancellation reason; everything else is owned
// by the booking-facing collaborators.
type Booking struct {
	ID         int64
	CustomerID int64
	ServiceID  int64
	ProviderID int64

	SlotID *int64 // nil until the booking is allocated to a slot

	BookingDate time.Time
	BookingTime types.TimeString

	Status             BookingStatus
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies (or may occupy) a slot.
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled && b.Status != StatusRejected
}

// CanBeCancelled returns true if the booking may still transition to
// cancelled.
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeAllocated returns true if the booking may still be attached to a
// slot. Delivered and completed bookings are frozen history.
func (b *Booking) CanBeAllocated() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsTerminal returns true if the booking reached an absorbing state.
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled || b.Status == StatusRejected
}

// IsAllocated returns true if the booking is linked to a slot.
func (b *Booking) IsAllocated() bool {
	return b.SlotID != nil
}
