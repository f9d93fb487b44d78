package generate_slots

import (
	"context"
	"time"

	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/domain"
	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/service/categorizer"
	"github.com/FarhanAlam-Official/SewaBazaar-sub002/pkg/types"
)

// SlotRepository is the slot storage interface the generator depends on.
type SlotRepository interface {
	ExistingKeys(ctx context.Context, serviceID int64, from, to time.Time) (map[domain.SlotKey]struct{}, error)
	CountByService(ctx context.Context, serviceID int64) (int, error)
	CreateBatch(ctx context.Context, slots []*domain.Slot) ([]*domain.Slot, error)
}

// AvailabilityRepository provides the provider's recurring windows.
type AvailabilityRepository interface {
	ListByProvider(ctx context.Context, providerID int64) ([]*domain.AvailabilityWindow, error)
}

// Categorizer resolves category fields for new slots.
type Categorizer interface {
	Categorize(date time.Time, start types.TimeString) categorizer.Result
}

// Logger is the logging interface the use case depends on.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
