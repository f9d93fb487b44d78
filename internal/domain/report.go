package domain

import "time"

// ServiceError records a per-service failure inside a maintenance run.
type ServiceError struct {
	ServiceID int64
	Message   string
}

// MaintenanceReport summarises one maintenance pass. A report is produced for
// dry runs too, with the same counters computed but nothing committed.
type MaintenanceReport struct {
	RunID  string
	DryRun bool

	Created int // slots created by generation
	Deleted int // expired unbooked slots removed
	Skipped int // candidate slots skipped (already existing or over the cap)

	ServicesProcessed int
	Errors            []ServiceError

	// Partial is set when the soft time budget expired before every service
	// was processed.
	Partial bool

	StartedAt  time.Time
	FinishedAt time.Time
}

// Failed returns true if any service failed during the run.
func (r *MaintenanceReport) Failed() bool {
	return len(r.Errors) > 0
}

// AddError records a per-service failure.
func (r *MaintenanceReport) AddError(serviceID int64, msg string) {
	r.Errors = append(r.Errors, ServiceError{ServiceID: serviceID, Message: msg})
}
