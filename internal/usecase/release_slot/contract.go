package release_slot

import (
	"context"

	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/domain"
)

// SlotRepository is the slot storage interface the release flow depends on.
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
	// DecrementBookings floors at zero: draining an already-empty slot is
	// reported as ErrAlreadyReleased, never a negative count.
	DecrementBookings(ctx context.Context, id int64) (*domain.Slot, error)
}

// BookingRepository is the booking storage interface the release flow
// depends on.
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UnlinkSlot(ctx context.Context, bookingID int64) error
}

// TransactionManager runs the unlink-and-decrement pair as one atomic unit.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger is the logging interface the use case depends on.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
