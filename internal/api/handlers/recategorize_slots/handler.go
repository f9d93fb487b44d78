package recategorize_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/api/handlers"
	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/api/middleware"
	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/domain"
	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/service/slots"
	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/service/slots/models"
)

const (
	msgInvalidServiceID   = "invalid service ID"
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDate        = "invalid date format, expected YYYY-MM-DD"
	msgInvalidDateRange   = "invalid date range"
	msgMissingUserID      = "missing user ID"
)

// RecategorizeRequest is the HTTP body for a recategorization pass.
type RecategorizeRequest struct {
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
	DryRun    bool   `json:"dryRun,omitempty"`
}

type Handler struct {
	service SlotsService
	logger  Logger
}

func NewHandler(service SlotsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/services/{serviceId}/slots:recategorize
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserID(r.Context()); !ok {
		h.logger.Warn("POST /admin/services/{id}/slots:recategorize - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	serviceID, err := strconv.ParseInt(mux.Vars(r)["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /admin/services/{id}/slots:recategorize - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	var req RecategorizeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/services/{id}/slots:recategorize - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq := &models.RecategorizeRequest{ServiceID: serviceID, DryRun: req.DryRun}
	if serviceReq.StartDate, err = parseDate(req.StartDate); err != nil {
		h.logger.Warn("POST /admin/services/{id}/slots:recategorize - Invalid startDate: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	if serviceReq.EndDate, err = parseDate(req.EndDate); err != nil {
		h.logger.Warn("POST /admin/services/{id}/slots:recategorize - Invalid endDate: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.Recategorize(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrInvalidDateRange):
			h.logger.Warn("POST /admin/services/{id}/slots:recategorize - Invalid range: service_id=%d, error=%v", serviceID, err)
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("POST /admin/services/{id}/slots:recategorize - Invalid input: service_id=%d, error=%v", serviceID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /admin/services/{id}/slots:recategorize - Failed: service_id=%d, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/services/{id}/slots:recategorize - Completed: service_id=%d, updated=%d, skipped=%d",
		serviceID, result.Updated, result.Skipped)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func parseDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(domain.DateFormat, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
