package run_maintenance

import (
	"context"
	"time"

	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/integrations/catalogservice"
	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/usecase/generate_slots"
)

// SlotRepository is the slot storage interface the maintenance pass depends
// on for cleanup.
type SlotRepository interface {
	DeleteExpiredUnbooked(ctx context.Context, before time.Time, limit int) (int, error)
	CountExpiredUnbooked(ctx context.Context, before time.Time) (int, error)
}

// SlotGenerator runs slot generation for one provider/service pair.
type SlotGenerator interface {
	Execute(ctx context.Context, req *generate_slots.Request) (*generate_slots.Response, error)
}

// CatalogClient lists the services maintenance generates slots for.
type CatalogClient interface {
	ListActiveServices(ctx context.Context) ([]*catalogservice.Service, error)
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
