package auto_cancel_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/api/handlers"
	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/api/middleware"
	autoCancel "github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/usecase/auto_cancel_expired"
)

const (
	msgInvalidGraceDays = "invalid grace_days parameter"
	msgAlreadyRunning   = "auto-cancel is already running"
	msgMissingUserID    = "missing user ID"
)

// BookingErrorResponse is one per-booking failure in the response.
type BookingErrorResponse struct {
	BookingID int64  `json:"bookingId"`
	Message   string `json:"message"`
}

// AutoCancelResponse reports the outcome of an expiry pass.
type AutoCancelResponse struct {
	RunID          string                 `json:"runId"`
	DryRun         bool                   `json:"dryRun,omitempty"`
	CancelledCount int                    `json:"cancelledCount"`
	ReleasedCount  int                    `json:"releasedCount"`
	SkippedCount   int                    `json:"skippedCount,omitempty"`
	Errors         []BookingErrorResponse `json:"errors,omitempty"`
}

type Handler struct {
	useCase AutoCancelUseCase
	logger  Logger
}

func NewHandler(useCase AutoCancelUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/bookings:auto-cancel?dry_run=true&grace_days=1
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserID(r.Context()); !ok {
		h.logger.Warn("POST /admin/bookings:auto-cancel - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	query := r.URL.Query()
	req := &autoCancel.Request{
		DryRun: query.Get("dry_run") == "true",
	}
	if raw := query.Get("grace_days"); raw != "" {
		grace, err := strconv.Atoi(raw)
		if err != nil {
			h.logger.Warn("POST /admin/bookings:auto-cancel - Invalid grace_days=%q: %v", raw, err)
			handlers.RespondBadRequest(w, msgInvalidGraceDays)
			return
		}
		req.GracePeriodDays = grace
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil && !errors.Is(err, autoCancel.ErrPartialFailure) {
		switch {
		case errors.Is(err, autoCancel.ErrAlreadyRunning):
			h.logger.Warn("POST /admin/bookings:auto-cancel - Already running")
			handlers.RespondConflict(w, msgAlreadyRunning)

		case errors.Is(err, autoCancel.ErrInvalidInput):
			h.logger.Warn("POST /admin/bookings:auto-cancel - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidGraceDays)

		default:
			h.logger.Error("POST /admin/bookings:auto-cancel - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	resp := &AutoCancelResponse{
		RunID:          result.RunID,
		DryRun:         result.DryRun,
		CancelledCount: result.CancelledCount,
		ReleasedCount:  result.ReleasedCount,
		SkippedCount:   result.SkippedCount,
	}
	for _, e := range result.Errors {
		resp.Errors = append(resp.Errors, BookingErrorResponse{BookingID: e.BookingID, Message: e.Message})
	}

	h.logger.Info("POST /admin/bookings:auto-cancel - Completed: run_id=%s, cancelled=%d, errors=%d",
		result.RunID, result.CancelledCount, len(result.Errors))
	handlers.RespondJSON(w, http.StatusOK, resp)
}
