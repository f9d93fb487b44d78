package generate_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/domain"
)

// UseCase expands a provider's availability windows into bookable slots over
// a date range. Generation is idempotent: existing slots are never touched,
// and racing writers are resolved by the storage unique constraint.
type UseCase struct {
	slotRepo         SlotRepository
	availabilityRepo AvailabilityRepository
	categorizer      Categorizer
	limits           Limits
	logger           Logger
}

// NewUseCase creates the generation use case.
func NewUseCase(
	slotRepo SlotRepository,
	availabilityRepo AvailabilityRepository,
	cat Categorizer,
	limits Limits,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:         slotRepo,
		availabilityRepo: availabilityRepo,
		categorizer:      cat,
		limits:           limits.orDefaults(),
		logger:           logger,
	}
}

// Execute runs one generation pass.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GenerateSlots: provider=%d, service=%d, range=%s..%s, dryRun=%t",
		req.ProviderID, req.ServiceID,
		req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat), req.DryRun)

	// 1. Validate input.
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GenerateSlots: validation failed: %v", err)
		return nil, err
	}

	resp := &Response{}

	// 2. Load the provider's windows; invalid windows are skipped with a
	// warning, never fatal to the batch.
	windows, err := uc.availabilityRepo.ListByProvider(ctx, req.ProviderID)
	if err != nil {
		uc.logger.Error("GenerateSlots: failed to load availability windows for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to load availability windows: %v", ErrInternal, err)
	}
	byDay := groupByWeekday(windows, func(w *domain.AvailabilityWindow, err error) {
		resp.InvalidWindows++
		uc.logger.Warn("GenerateSlots: skipping invalid window id=%d provider=%d: %v", w.ID, w.ProviderID, err)
	})
	if len(byDay) == 0 {
		uc.logger.Info("GenerateSlots: provider=%d has no valid availability windows", req.ProviderID)
		return resp, nil
	}

	// 3. Preload existing slot keys so re-runs skip without per-slot queries.
	existing, err := uc.slotRepo.ExistingKeys(ctx, req.ServiceID, req.StartDate, req.EndDate)
	if err != nil {
		uc.logger.Error("GenerateSlots: failed to load existing keys for service=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to load existing slot keys: %v", ErrInternal, err)
	}

	// 4. Remaining budget under the per-service safety cap.
	total, err := uc.slotRepo.CountByService(ctx, req.ServiceID)
	if err != nil {
		uc.logger.Error("GenerateSlots: failed to count slots for service=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to count slots: %v", ErrInternal, err)
	}
	budget := uc.limits.MaxSlotsPerService - total
	if budget < 0 {
		budget = 0
	}

	// 5. Walk the dates in order, expanding each matching window. Batches
	// are flushed in date order so later dates never become visible before
	// earlier ones in the same run.
	pending := make([]*domain.Slot, 0, uc.limits.BatchSize)

	dateErr := eachDate(req.StartDate, req.EndDate, func(date time.Time) error {
		for _, window := range byDay[date.Weekday()] {
			candidates, err := expandWindow(window, req.ServiceID, date, uc.categorizer.Categorize)
			if err != nil {
				// Arithmetic failures here mean the window data is unusable;
				// treat like an invalid window and continue.
				resp.InvalidWindows++
				uc.logger.Warn("GenerateSlots: skipping window id=%d on %s: %v",
					window.ID, date.Format(domain.DateFormat), err)
				continue
			}

			for _, candidate := range candidates {
				key := candidate.Key()
				if _, ok := existing[key]; ok {
					resp.Skipped++
					continue
				}
				if budget <= 0 {
					resp.Skipped++
					resp.SkippedByCap++
					continue
				}

				existing[key] = struct{}{}
				budget--
				pending = append(pending, candidate)

				if len(pending) >= uc.limits.BatchSize {
					if err := uc.flush(ctx, req, resp, &pending); err != nil {
						return err
					}
				}
			}
		}
		return nil
	})
	if dateErr != nil {
		return nil, dateErr
	}

	if err := uc.flush(ctx, req, resp, &pending); err != nil {
		return nil, err
	}

	if resp.SkippedByCap > 0 {
		uc.logger.Warn("GenerateSlots: service=%d hit MAX_SLOTS_PER_SERVICE=%d, %d candidate slots skipped",
			req.ServiceID, uc.limits.MaxSlotsPerService, resp.SkippedByCap)
	}
	uc.logger.Info("GenerateSlots: service=%d created=%d skipped=%d invalidWindows=%d dryRun=%t",
		req.ServiceID, len(resp.Created), resp.Skipped, resp.InvalidWindows, req.DryRun)

	return resp, nil
}

// flush commits the pending batch (or, for dry runs, just counts it).
func (uc *UseCase) flush(ctx context.Context, req *Request, resp *Response, pending *[]*domain.Slot) error {
	if len(*pending) == 0 {
		return nil
	}

	if req.DryRun {
		resp.Created = append(resp.Created, *pending...)
		*pending = (*pending)[:0]
		return nil
	}

	created, err := uc.slotRepo.CreateBatch(ctx, *pending)
	if err != nil {
		uc.logger.Error("GenerateSlots: failed to insert batch of %d slots for service=%d: %v",
			len(*pending), req.ServiceID, err)
		return fmt.Errorf("%w: failed to insert slot batch: %v", ErrInternal, err)
	}

	// Rows lost to a concurrent writer surface as missing from the result;
	// that is a skip, not a failure.
	if lost := len(*pending) - len(created); lost > 0 {
		resp.Skipped += lost
		uc.logger.Info("GenerateSlots: %d slots already created concurrently for service=%d", lost, req.ServiceID)
	}

	resp.Created = append(resp.Created, created...)
	*pending = (*pending)[:0]
	return nil
}
