package bulk_delete_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/api/handlers"
	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/api/middleware"
	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/service/slots"
	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/service/slots/models"
)

const (
	msgInvalidServiceID = "invalid service ID"
	msgMissingUserID    = "missing user ID"
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

// Handle DELETE /api/v1/admin/services/{serviceId}/slots?force=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserID(r.Context()); !ok {
		h.logger.Warn("DELETE /admin/services/{id}/slots - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	serviceID, err := strconv.ParseInt(mux.Vars(r)["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /admin/services/{id}/slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	force := r.URL.Query().Get("force") == "true"

	result, err := h.service.BulkDelete(r.Context(), &models.BulkDeleteRequest{
		ServiceID: serviceID,
		Force:     force,
	})
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("DELETE /admin/services/{id}/slots - Invalid input: service_id=%d, error=%v", serviceID, err)
			handlers.RespondBadRequest(w, msgInvalidServiceID)

		default:
			h.logger.Error("DELETE /admin/services/{id}/slots - Failed: service_id=%d, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/services/{id}/slots - Deleted %d slots: service_id=%d, force=%t",
		result.Deleted, serviceID, force)
	handlers.RespondJSON(w, http.StatusOK, result)
}
