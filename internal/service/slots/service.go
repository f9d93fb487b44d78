package slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/domain"
	slotRepo "github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/infra/storage/slot"
	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/service/slots/models"
)

// Service exposes slot queries and admin operations: listing, single-slot
// lookup, recategorization and bulk deletion. Mutating operations that touch
// capacity live in the usecase layer, not here.
type Service struct {
	slotRepo    SlotRepository
	categorizer Categorizer
	logger      Logger
}

// NewService creates a new slots service.
func NewService(slotRepo SlotRepository, categorizer Categorizer, logger Logger) *Service {
	return &Service{
		slotRepo:    slotRepo,
		categorizer: categorizer,
		logger:      logger,
	}
}

// GetByID fetches a single slot.
func (s *Service) GetByID(ctx context.Context, id int64) (*models.SlotResponse, error) {
	slot, err := s.slotRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("GetByID: slot id=%d not found", id)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("GetByID: repository error for slot id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainSlot(slot), nil
}

// List returns a service's slots over a date range, optionally filtered by
// category or availability. The default window is today plus two weeks.
func (s *Service) List(ctx context.Context, req *models.ListSlotsRequest) (*models.SlotListResponse, error) {
	if req.ServiceID <= 0 {
		return nil, fmt.Errorf("%w: serviceId is required", ErrInvalidInput)
	}

	from, to, err := resolveDateRange(req.StartDate, req.EndDate)
	if err != nil {
		s.logger.Warn("List: invalid date range for service=%d: %v", req.ServiceID, err)
		return nil, err
	}

	var category *domain.SlotCategory
	if req.Category != nil {
		c := domain.SlotCategory(*req.Category)
		if !c.IsValid() {
			s.logger.Warn("List: invalid category=%s for service=%d", *req.Category, req.ServiceID)
			return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, *req.Category)
		}
		category = &c
	}

	found, err := s.slotRepo.ListByServiceAndDateRange(ctx, req.ServiceID, from, to)
	if err != nil {
		s.logger.Error("List: repository error for service=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	filtered := found[:0]
	for _, slot := range found {
		if category != nil && slot.Category != *category {
			continue
		}
		if req.AvailableOnly && slot.IsFull() {
			continue
		}
		filtered = append(filtered, slot)
	}

	s.logger.Info("List: service=%d range=%s..%s returned %d slots",
		req.ServiceID, from.Format(domain.DateFormat), to.Format(domain.DateFormat), len(filtered))
	return models.FromDomainSlotList(filtered), nil
}

// Recategorize re-derives the category of every unbooked slot of a service
// in the date range, e.g. after the band table changed. Slots that carry
// bookings keep the category their customers booked under.
func (s *Service) Recategorize(ctx context.Context, req *models.RecategorizeRequest) (*models.RecategorizeResponse, error) {
	if req.ServiceID <= 0 {
		return nil, fmt.Errorf("%w: serviceId is required", ErrInvalidInput)
	}

	from, to, err := resolveDateRange(req.StartDate, req.EndDate)
	if err != nil {
		s.logger.Warn("Recategorize: invalid date range for service=%d: %v", req.ServiceID, err)
		return nil, err
	}

	found, err := s.slotRepo.ListByServiceAndDateRange(ctx, req.ServiceID, from, to)
	if err != nil {
		s.logger.Error("Recategorize: repository error for service=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: Recategorize - repository error: %v", ErrInternal, err)
	}

	resp := &models.RecategorizeResponse{DryRun: req.DryRun}
	for _, slot := range found {
		if slot.HasBookings() {
			resp.Skipped++
			continue
		}

		result := s.categorizer.Categorize(slot.Date, slot.StartTime)
		if result.Category == slot.Category &&
			result.FeePercentage == slot.RushFeePercentage &&
			result.Note == slot.ProviderNote {
			resp.Unchanged++
			continue
		}

		if !req.DryRun {
			err := s.slotRepo.Recategorize(ctx, slot.ID, result.Category, result.IsRush, result.FeePercentage, result.Note)
			if err != nil {
				// A booking that landed between our read and the update wins;
				// the guarded update refuses to touch the slot.
				if errors.Is(err, slotRepo.ErrHasBookings) {
					s.logger.Warn("Recategorize: slot id=%d got booked mid-pass, skipping", slot.ID)
					resp.Skipped++
					continue
				}
				s.logger.Error("Recategorize: repository error for slot id=%d: %v", slot.ID, err)
				return nil, fmt.Errorf("%w: Recategorize - repository error: %v", ErrInternal, err)
			}
		}
		resp.Updated++
	}

	s.logger.Info("Recategorize: service=%d updated=%d unchanged=%d skipped=%d (dryRun=%t)",
		req.ServiceID, resp.Updated, resp.Unchanged, resp.Skipped, req.DryRun)
	return resp, nil
}

// BulkDelete removes a service's slots. Without Force, slots that still
// carry bookings are left in place.
func (s *Service) BulkDelete(ctx context.Context, req *models.BulkDeleteRequest) (*models.BulkDeleteResponse, error) {
	if req.ServiceID <= 0 {
		return nil, fmt.Errorf("%w: serviceId is required", ErrInvalidInput)
	}

	deleted, err := s.slotRepo.DeleteByService(ctx, req.ServiceID, req.Force)
	if err != nil {
		s.logger.Error("BulkDelete: repository error for service=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: BulkDelete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("BulkDelete: service=%d deleted %d slots (force=%t)", req.ServiceID, deleted, req.Force)
	return &models.BulkDeleteResponse{Deleted: deleted}, nil
}

func resolveDateRange(start, end *time.Time) (time.Time, time.Time, error) {
	from := domain.DateOnly(time.Now())
	if start != nil {
		from = domain.DateOnly(*start)
	}

	to := from.AddDate(0, 0, domain.DefaultDaysAhead)
	if end != nil {
		to = domain.DateOnly(*end)
	}

	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: endDate %s is before startDate %s",
			ErrInvalidDateRange, to.Format(domain.DateFormat), from.Format(domain.DateFormat))
	}
	if to.Sub(from) > time.Duration(domain.MaxDaysAhead)*24*time.Hour {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: range exceeds %d days", ErrInvalidDateRange, domain.MaxDaysAhead)
	}
	return from, to, nil
}
