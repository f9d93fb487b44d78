package auto_cancel_expired

import (
	"context"
	"time"

	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/domain"
)

// BookingRepository is the booking storage interface the expiry job depends
// on.
type BookingRepository interface {
	ListExpired(ctx context.Context, before time.Time, statuses []domain.BookingStatus) ([]*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Cancel(ctx context.Context, id int64, reason string) error
	UnlinkSlot(ctx context.Context, bookingID int64) error
}

// SlotRepository releases the capacity held by a cancelled booking.
type SlotRepository interface {
	DecrementBookings(ctx context.Context, id int64) (*domain.Slot, error)
}

// TransactionManager runs the per-booking cancel atomically.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// JobLocker provides system-wide mutual exclusion keyed by job name.
// Satisfied by *pglock.Lock.
type JobLocker interface {
	WithLock(ctx context.Context, name string, fn func(ctx context.Context) error) (bool, error)
}

// TimeProvider supplies the current time (injectable for tests).
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging interface the use case depends on.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production time source.
type RealTimeProvider struct{}

// Now returns the current time.
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
