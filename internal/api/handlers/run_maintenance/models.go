package run_maintenance

import (
	"time"

	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/domain"
)

// ServiceErrorResponse is one per-service failure in the report.
type ServiceErrorResponse struct {
	ServiceID int64  `json:"serviceId"`
	Message   string `json:"message"`
}

// MaintenanceReportResponse is the API representation of a run report.
type MaintenanceReportResponse struct {
	RunID             string                 `json:"runId"`
	DryRun            bool                   `json:"dryRun,omitempty"`
	Created           int                    `json:"created"`
	Deleted           int                    `json:"deleted"`
	Skipped           int                    `json:"skipped"`
	ServicesProcessed int                    `json:"servicesProcessed"`
	Errors            []ServiceErrorResponse `json:"errors,omitempty"`
	Partial           bool                   `json:"partial,omitempty"`
	StartedAt         time.Time              `json:"startedAt"`
	FinishedAt        time.Time              `json:"finishedAt"`
}

// FromDomainReport converts a maintenance report.
func FromDomainReport(r *domain.MaintenanceReport) *MaintenanceReportResponse {
	resp := &MaintenanceReportResponse{
		RunID:             r.RunID,
		DryRun:            r.DryRun,
		Created:           r.Created,
		Deleted:           r.Deleted,
		Skipped:           r.Skipped,
		ServicesProcessed: r.ServicesProcessed,
		Partial:           r.Partial,
		StartedAt:         r.StartedAt,
		FinishedAt:        r.FinishedAt,
	}
	for _, e := range r.Errors {
		resp.Errors = append(resp.Errors, ServiceErrorResponse{ServiceID: e.ServiceID, Message: e.Message})
	}
	return resp
}
