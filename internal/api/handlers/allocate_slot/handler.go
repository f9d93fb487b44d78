package allocate_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/api/handlers"
	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/api/middleware"
	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/service/slots/models"
	allocateSlot "github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/usecase/allocate_slot"
	"github.com/FarhanAlam-Official/SewaBazaar-sub002/pkg/metrics"
)

const (
	msgInvalidSlotID      = "invalid slot ID"
	msgInvalidRequestBody = "invalid request body"
	msgSlotNotFound       = "slot not found"
	msgBookingNotFound    = "booking not found"
	msgSlotFull           = "slot is fully booked"
	msgBookingInactive    = "booking is not active"
	msgAlreadyAllocated   = "booking is already allocated to a slot"
	msgMissingUserID      = "missing user ID"
)

// AllocateRequest is the HTTP body for an allocation.
type AllocateRequest struct {
	BookingID int64 `json:"bookingId"`
}

type Handler struct {
	useCase AllocateSlotUseCase
	metrics *metrics.Metrics
	logger  Logger
}

func NewHandler(useCase AllocateSlotUseCase, m *metrics.Metrics, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		metrics: m,
		logger:  logger,
	}
}

// Handle POST /api/v1/slots/{slotId}/allocate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserID(r.Context()); !ok {
		h.logger.Warn("POST /slots/{id}/allocate - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	slotID, err := strconv.ParseInt(mux.Vars(r)["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /slots/{id}/allocate - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	var req AllocateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots/{id}/allocate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	slot, err := h.useCase.Execute(r.Context(), &allocateSlot.Request{
		SlotID:    slotID,
		BookingID: req.BookingID,
	})
	if err != nil {
		switch {
		case errors.Is(err, allocateSlot.ErrCapacityExceeded):
			h.metrics.SlotCapacityConflicts.Inc()
			h.logger.Warn("POST /slots/{id}/allocate - Slot full: slot_id=%d, booking_id=%d", slotID, req.BookingID)
			handlers.RespondConflict(w, msgSlotFull)

		case errors.Is(err, allocateSlot.ErrSlotNotFound):
			h.logger.Warn("POST /slots/{id}/allocate - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, allocateSlot.ErrBookingNotFound):
			h.logger.Warn("POST /slots/{id}/allocate - Booking not found: booking_id=%d", req.BookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, allocateSlot.ErrBookingInactive):
			h.logger.Warn("POST /slots/{id}/allocate - Booking inactive: booking_id=%d", req.BookingID)
			handlers.RespondConflict(w, msgBookingInactive)

		case errors.Is(err, allocateSlot.ErrAlreadyAllocated):
			h.logger.Warn("POST /slots/{id}/allocate - Already allocated: booking_id=%d", req.BookingID)
			handlers.RespondConflict(w, msgAlreadyAllocated)

		case errors.Is(err, allocateSlot.ErrInvalidInput):
			h.logger.Warn("POST /slots/{id}/allocate - Invalid input: slot_id=%d, error=%v", slotID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /slots/{id}/allocate - Failed to allocate: slot_id=%d, booking_id=%d, error=%v",
				slotID, req.BookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.metrics.SlotAllocationsTotal.Inc()
	h.logger.Info("POST /slots/{id}/allocate - Allocated: slot_id=%d, booking_id=%d, current=%d/%d",
		slotID, req.BookingID, slot.CurrentBookings, slot.MaxBookings)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainSlot(slot))
}
