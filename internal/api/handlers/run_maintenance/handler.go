package run_maintenance

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/api/handlers"
	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/api/middleware"
	runMaintenance "github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/usecase/run_maintenance"
)

const (
	msgInvalidDays    = "invalid days parameter"
	msgAlreadyRunning = "maintenance is already running"
	msgMissingUserID  = "missing user ID"
)

type Handler struct {
	useCase RunMaintenanceUseCase
	logger  Logger
}

func NewHandler(useCase RunMaintenanceUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/maintenance:run?dry_run=true&days=14
//
// Manual trigger for the nightly pass, sharing its lock: a trigger while the
// scheduled run is active returns 409 without doing anything.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserID(r.Context()); !ok {
		h.logger.Warn("POST /admin/maintenance:run - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	query := r.URL.Query()
	req := &runMaintenance.Request{
		DryRun: query.Get("dry_run") == "true",
	}
	if raw := query.Get("days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil {
			h.logger.Warn("POST /admin/maintenance:run - Invalid days=%q: %v", raw, err)
			handlers.RespondBadRequest(w, msgInvalidDays)
			return
		}
		req.DaysAhead = days
	}

	report, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, runMaintenance.ErrAlreadyRunning):
			h.logger.Warn("POST /admin/maintenance:run - Already running")
			handlers.RespondConflict(w, msgAlreadyRunning)

		case errors.Is(err, runMaintenance.ErrPartialFailure):
			// The pass ran; the report carries the per-service failures.
			h.logger.Warn("POST /admin/maintenance:run - Completed with %d errors: run_id=%s",
				len(report.Errors), report.RunID)
			handlers.RespondJSON(w, http.StatusOK, FromDomainReport(report))

		case errors.Is(err, runMaintenance.ErrInvalidInput):
			h.logger.Warn("POST /admin/maintenance:run - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDays)

		default:
			h.logger.Error("POST /admin/maintenance:run - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/maintenance:run - Completed: run_id=%s, created=%d, deleted=%d",
		report.RunID, report.Created, report.Deleted)
	handlers.RespondJSON(w, http.StatusOK, FromDomainReport(report))
}
