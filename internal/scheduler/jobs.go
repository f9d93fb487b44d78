package scheduler

import (
	"context"
	"errors"

	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/usecase/auto_cancel_expired"
	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/usecase/run_maintenance"
	"github.com/FarhanAlam-Official/SewaBazaar-sub002/pkg/metrics"
)

// MaintenanceJob wraps the maintenance use case as a scheduler job.
func MaintenanceJob(spec string, uc *run_maintenance.UseCase, m *metrics.Metrics) Job {
	return Job{
		Name: run_maintenance.JobName,
		Spec: spec,
		Run: func(ctx context.Context) error {
			report, err := uc.Execute(ctx, &run_maintenance.Request{})
			if errors.Is(err, run_maintenance.ErrAlreadyRunning) {
				return ErrSkipped
			}
			if report != nil {
				m.SlotsCreatedTotal.Add(float64(report.Created))
				m.SlotsDeletedTotal.Add(float64(report.Deleted))
			}
			return err
		},
	}
}

// AutoCancelJob wraps the booking expiry use case as a scheduler job.
func AutoCancelJob(spec string, uc *auto_cancel_expired.UseCase, m *metrics.Metrics) Job {
	return Job{
		Name: auto_cancel_expired.JobName,
		Spec: spec,
		Run: func(ctx context.Context) error {
			resp, err := uc.Execute(ctx, &auto_cancel_expired.Request{})
			if errors.Is(err, auto_cancel_expired.ErrAlreadyRunning) {
				return ErrSkipped
			}
			if resp != nil {
				m.BookingsAutoCancelled.Add(float64(resp.CancelledCount))
			}
			return err
		},
	}
}
