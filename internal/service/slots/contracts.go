package slots

import (
	"context"
	"time"

	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/domain"
	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/service/categorizer"
	"github.com/FarhanAlam-Official/SewaBazaar-sub002/pkg/types"
)

// SlotRepository is the slot storage interface the service depends on.
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
	ListByServiceAndDateRange(ctx context.Context, serviceID int64, from, to time.Time) ([]*domain.Slot, error)
	Recategorize(ctx context.Context, id int64, category domain.SlotCategory, isRush bool, feePercentage int, note string) error
	DeleteByService(ctx context.Context, serviceID int64, force bool) (int, error)
}

// Categorizer resolves the demand band for a (date, start time) pair.
type Categorizer interface {
	Categorize(date time.Time, start types.TimeString) categorizer.Result
}

// Logger is the logging interface the service depends on.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
