package allocate_slot

import (
	"context"

	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/domain"
)

// SlotRepository is the slot storage interface the allocator depends on.
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
	// IncrementBookings is a conditional read-modify-write: it only succeeds
	// while current_bookings < max_bookings.
	IncrementBookings(ctx context.Context, id int64) (*domain.Slot, error)
}

// BookingRepository is the booking storage interface the allocator depends on.
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	LinkSlot(ctx context.Context, bookingID, slotID int64) error
}

// TransactionManager runs the increment-and-link pair as one atomic unit.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger is the logging interface the use case depends on.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
