package generate_slots

import (
	"time"

	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/domain"
)

// Request asks for slot generation for one provider/service pair over an
// inclusive date range.
type Request struct {
	ProviderID int64
	ServiceID  int64
	StartDate  time.Time
	EndDate    time.Time

	// DryRun computes the result without writing anything. Used by
	// maintenance dry runs and the admin preview endpoint.
	DryRun bool
}

// Response reports the outcome of one generation run.
type Response struct {
	// Created holds the slots actually inserted (empty field values for IDs
	// on dry runs, where nothing is written).
	Created []*domain.Slot

	// Skipped counts candidate intervals not created: already existing,
	// duplicated within the run, or cut off by the per-service cap.
	Skipped int

	// SkippedByCap is the subset of Skipped dropped by MaxSlotsPerService.
	SkippedByCap int

	// InvalidWindows counts availability windows rejected by validation.
	InvalidWindows int
}

// Limits carries the generation safety settings from config.
type Limits struct {
	MaxSlotsPerService int
	BatchSize          int
}

func (l Limits) orDefaults() Limits {
	if l.MaxSlotsPerService <= 0 {
		l.MaxSlotsPerService = domain.DefaultMaxSlotsPerService
	}
	if l.BatchSize <= 0 {
		l.BatchSize = domain.DefaultBatchSize
	}
	return l
}
