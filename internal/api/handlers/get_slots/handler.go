package get_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/api/handlers"
	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/domain"
	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/service/slots"
	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/service/slots/models"
)

const (
	msgInvalidServiceID = "invalid service ID"
	msgInvalidSlotID    = "invalid slot ID"
	msgInvalidDate      = "invalid date format, expected YYYY-MM-DD"
	msgInvalidCategory  = "unknown slot category"
	msgInvalidDateRange = "invalid date range"
	msgSlotNotFound     = "slot not found"
)

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

// HandleList GET /api/v1/services/{serviceId}/slots
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	serviceID, err := strconv.ParseInt(mux.Vars(r)["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /services/{id}/slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	req := &models.ListSlotsRequest{ServiceID: serviceID}

	query := r.URL.Query()
	if req.StartDate, err = parseDateParam(query.Get("date_from")); err != nil {
		h.logger.Warn("GET /services/{id}/slots - Invalid date_from: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	if req.EndDate, err = parseDateParam(query.Get("date_to")); err != nil {
		h.logger.Warn("GET /services/{id}/slots - Invalid date_to: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	if c := query.Get("category"); c != "" {
		req.Category = &c
	}
	req.AvailableOnly = query.Get("available_only") == "true"

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrInvalidDateRange):
			h.logger.Warn("GET /services/{id}/slots - Invalid range: service_id=%d, error=%v", serviceID, err)
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("GET /services/{id}/slots - Invalid input: service_id=%d, error=%v", serviceID, err)
			handlers.RespondBadRequest(w, msgInvalidCategory)

		default:
			h.logger.Error("GET /services/{id}/slots - Failed to list slots: service_id=%d, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleByID GET /api/v1/slots/{slotId}
func (h *Handler) HandleByID(w http.ResponseWriter, r *http.Request) {
	slotID, err := strconv.ParseInt(mux.Vars(r)["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /slots/{id} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	slot, err := h.service.GetByID(r.Context(), slotID)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrSlotNotFound):
			h.logger.Warn("GET /slots/{id} - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		default:
			h.logger.Error("GET /slots/{id} - Failed to get slot: slot_id=%d, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, slot)
}

func parseDateParam(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(domain.DateFormat, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
