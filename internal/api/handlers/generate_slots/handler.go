package generate_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/api/handlers"
	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/api/middleware"
	generateSlots "github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/usecase/generate_slots"
)

const (
	msgInvalidProviderID  = "invalid provider ID"
	msgInvalidServiceID   = "invalid service ID"
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDate        = "invalid date format, expected YYYY-MM-DD"
	msgInvalidDateRange   = "invalid date range"
	msgMissingUserID      = "missing user ID"
)

type Handler struct {
	useCase GenerateSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GenerateSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/providers/{providerId}/services/{serviceId}/slots:generate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserID(r.Context()); !ok {
		h.logger.Warn("POST /slots:generate - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	vars := mux.Vars(r)
	providerID, err := strconv.ParseInt(vars["providerId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /slots:generate - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}
	serviceID, err := strconv.ParseInt(vars["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /slots:generate - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	var req GenerateSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots:generate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(providerID, serviceID)
	if err != nil {
		h.logger.Warn("POST /slots:generate - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, generateSlots.ErrInvalidDateRange):
			h.logger.Warn("POST /slots:generate - Invalid date range: service_id=%d, error=%v", serviceID, err)
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		case errors.Is(err, generateSlots.ErrInvalidInput):
			h.logger.Warn("POST /slots:generate - Invalid input: service_id=%d, error=%v", serviceID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /slots:generate - Failed to generate slots: service_id=%d, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /slots:generate - Generated %d slots: provider_id=%d, service_id=%d, dry_run=%t",
		len(result.Created), providerID, serviceID, req.DryRun)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result, req.DryRun))
}
