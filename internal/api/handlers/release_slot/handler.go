package release_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/api/handlers"
	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/api/middleware"
	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/service/slots/models"
	releaseSlot "github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/usecase/release_slot"
)

const (
	msgInvalidSlotID      = "invalid slot ID"
	msgInvalidRequestBody = "invalid request body"
	msgSlotNotFound       = "slot not found"
	msgBookingNotFound    = "booking not found"
	msgMissingUserID      = "missing user ID"
)

// ReleaseRequest is the HTTP body for a release.
type ReleaseRequest struct {
	BookingID int64 `json:"bookingId"`
}

type Handler struct {
	useCase ReleaseSlotUseCase
	logger  Logger
}

func NewHandler(useCase ReleaseSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/slots/{slotId}/release
//
// Idempotent: releasing a booking that was already released returns 200
// with the slot's current state.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserID(r.Context()); !ok {
		h.logger.Warn("POST /slots/{id}/release - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	slotID, err := strconv.ParseInt(mux.Vars(r)["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /slots/{id}/release - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	var req ReleaseRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots/{id}/release - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	slot, err := h.useCase.Execute(r.Context(), &releaseSlot.Request{
		SlotID:    slotID,
		BookingID: req.BookingID,
	})
	if err != nil {
		switch {
		case errors.Is(err, releaseSlot.ErrSlotNotFound):
			h.logger.Warn("POST /slots/{id}/release - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, releaseSlot.ErrBookingNotFound):
			h.logger.Warn("POST /slots/{id}/release - Booking not found: booking_id=%d", req.BookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, releaseSlot.ErrInvalidInput):
			h.logger.Warn("POST /slots/{id}/release - Invalid input: slot_id=%d, error=%v", slotID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /slots/{id}/release - Failed to release: slot_id=%d, booking_id=%d, error=%v",
				slotID, req.BookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /slots/{id}/release - Released: slot_id=%d, booking_id=%d, current=%d/%d",
		slotID, req.BookingID, slot.CurrentBookings, slot.MaxBookings)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainSlot(slot))
}
