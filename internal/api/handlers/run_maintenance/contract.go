package run_maintenance

import (
	"context"

	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/domain"
	runMaintenance "github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/usecase/run_maintenance"
)

type RunMaintenanceUseCase interface {
	Execute(ctx context.Context, req *runMaintenance.Request) (*domain.MaintenanceReport, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
