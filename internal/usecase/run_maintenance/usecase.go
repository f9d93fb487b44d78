package run_maintenance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/domain"
	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/usecase/generate_slots"
)

// JobName keys the advisory lock guarding the maintenance singleton.
const JobName = "slot_maintenance"

// Request parameterises one maintenance pass.
type Request struct {
	// DaysAhead is the rolling generation window; zero means the configured
	// default.
	DaysAhead int

	// DryRun computes and reports the changes without committing them.
	DryRun bool
}

// Params carries the maintenance settings from config.
type Params struct {
	DaysAhead     int
	RetentionDays int
	BatchSize     int

	// TimeBudget soft-bounds one pass. Zero means unlimited. When the budget
	// expires the remaining services are skipped and the report is marked
	// partial.
	TimeBudget time.Duration
}

func (p Params) orDefaults() Params {
	if p.DaysAhead <= 0 {
		p.DaysAhead = domain.DefaultDaysAhead
	}
	if p.RetentionDays < 0 {
		p.RetentionDays = domain.DefaultRetentionDays
	}
	if p.BatchSize <= 0 {
		p.BatchSize = domain.DefaultBatchSize
	}
	return p
}

// UseCase is the periodic maintenance pass: prune expired unbooked slots,
// then regenerate the rolling window for every active service. The whole
// pass runs under an advisory lock so overlapping triggers become no-ops,
// and each service is isolated so one failure never aborts the rest.
type UseCase struct {
	slotRepo     SlotRepository
	generator    SlotGenerator
	catalog      CatalogClient
	locker       JobLocker
	params       Params
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates the maintenance use case.
func NewUseCase(
	slots SlotRepository,
	generator SlotGenerator,
	catalog CatalogClient,
	locker JobLocker,
	params Params,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:     slots,
		generator:    generator,
		catalog:      catalog,
		locker:       locker,
		params:       params.orDefaults(),
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute runs one pass. On ErrAlreadyRunning the returned report is nil.
// On ErrPartialFailure the report is still returned with per-service errors.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.MaintenanceReport, error) {
	daysAhead := req.DaysAhead
	if daysAhead == 0 {
		daysAhead = uc.params.DaysAhead
	}
	if daysAhead < 0 || daysAhead > domain.MaxDaysAhead {
		return nil, fmt.Errorf("%w: daysAhead %d out of range [1, %d]", ErrInvalidInput, daysAhead, domain.MaxDaysAhead)
	}

	var report *domain.MaintenanceReport

	acquired, err := uc.locker.WithLock(ctx, JobName, func(ctx context.Context) error {
		var runErr error
		report, runErr = uc.run(ctx, daysAhead, req.DryRun)
		return runErr
	})
	if err != nil {
		return report, err
	}
	if !acquired {
		uc.logger.Warn("Maintenance: another pass holds the %q lock, skipping", JobName)
		return nil, ErrAlreadyRunning
	}
	if report != nil && report.Failed() {
		return report, ErrPartialFailure
	}
	return report, nil
}

func (uc *UseCase) run(ctx context.Context, daysAhead int, dryRun bool) (*domain.MaintenanceReport, error) {
	now := uc.timeProvider.Now()
	report := &domain.MaintenanceReport{
		RunID:     uuid.NewString(),
		DryRun:    dryRun,
		StartedAt: now,
	}
	defer func() { report.FinishedAt = uc.timeProvider.Now() }()

	var deadline time.Time
	if uc.params.TimeBudget > 0 {
		deadline = now.Add(uc.params.TimeBudget)
	}

	uc.logger.Info("Maintenance: run=%s starting (daysAhead=%d, retention=%d, dryRun=%t)",
		report.RunID, daysAhead, uc.params.RetentionDays, dryRun)

	// 1. Cleanup: drop slots dated before today-retention that carry no
	// bookings. Booked slots are preserved regardless of age.
	cutoff := domain.DateOnly(now).AddDate(0, 0, -uc.params.RetentionDays)
	if err := uc.cleanup(ctx, report, cutoff); err != nil {
		uc.logger.Error("Maintenance: run=%s cleanup failed: %v", report.RunID, err)
		return report, fmt.Errorf("%w: cleanup failed: %v", ErrInternal, err)
	}

	// 2. Generation for every active service over the rolling window.
	services, err := uc.catalog.ListActiveServices(ctx)
	if err != nil {
		uc.logger.Error("Maintenance: run=%s failed to list active services: %v", report.RunID, err)
		return report, fmt.Errorf("%w: failed to list active services: %v", ErrInternal, err)
	}

	startDate := domain.DateOnly(now)
	endDate := startDate.AddDate(0, 0, daysAhead)

	for _, svc := range services {
		// Soft time budget: abort remaining services gracefully rather than
		// overrun the schedule.
		if !deadline.IsZero() && uc.timeProvider.Now().After(deadline) {
			report.Partial = true
			uc.logger.Warn("Maintenance: run=%s time budget exceeded after %d/%d services",
				report.RunID, report.ServicesProcessed, len(services))
			break
		}

		genResp, err := uc.generator.Execute(ctx, &generate_slots.Request{
			ProviderID: svc.ProviderID,
			ServiceID:  svc.ID,
			StartDate:  startDate,
			EndDate:    endDate,
			DryRun:     dryRun,
		})
		if err != nil {
			// One failing service is recorded and skipped; the run continues.
			report.AddError(svc.ID, err.Error())
			uc.logger.Error("Maintenance: run=%s generation failed for service=%d: %v", report.RunID, svc.ID, err)
			continue
		}

		report.Created += len(genResp.Created)
		report.Skipped += genResp.Skipped
		report.ServicesProcessed++
	}

	uc.logger.Info("Maintenance: run=%s finished (created=%d, deleted=%d, skipped=%d, services=%d, errors=%d, partial=%t)",
		report.RunID, report.Created, report.Deleted, report.Skipped,
		report.ServicesProcessed, len(report.Errors), report.Partial)

	return report, nil
}

// cleanup deletes in bounded batches so the lock and transaction stay short.
func (uc *UseCase) cleanup(ctx context.Context, report *domain.MaintenanceReport, cutoff time.Time) error {
	if report.DryRun {
		count, err := uc.slotRepo.CountExpiredUnbooked(ctx, cutoff)
		if err != nil {
			return err
		}
		report.Deleted = count
		return nil
	}

	for {
		deleted, err := uc.slotRepo.DeleteExpiredUnbooked(ctx, cutoff, uc.params.BatchSize)
		if err != nil {
			return err
		}
		report.Deleted += deleted
		if deleted < uc.params.BatchSize {
			return nil
		}
	}
}
