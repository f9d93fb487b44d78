package categorize_slot

import (
	"net/http"
	"time"

	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/api/handlers"
	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/domain"
	"github.com/FarhanAlam-Official/SewaBazaar-sub002/pkg/types"
)

const (
	msgMissingParams = "date and time query parameters are required"
	msgInvalidDate   = "invalid date format, expected YYYY-MM-DD"
	msgInvalidTime   = "invalid time format, expected HH:MM"
)

// CategorizeResponse is the categorization preview payload.
type CategorizeResponse struct {
	Date          string `json:"date"`
	StartTime     string `json:"startTime"`
	Category      string `json:"category"`
	IsRush        bool   `json:"isRush"`
	FeePercentage int    `json:"feePercentage"`
	Note          string `json:"note,omitempty"`
	Weekday       string `json:"weekday"`
}

type Handler struct {
	categorizer Categorizer
	logger      Logger
}

func NewHandler(categorizer Categorizer, logger Logger) *Handler {
	return &Handler{
		categorizer: categorizer,
		logger:      logger,
	}
}

// Handle GET /api/v1/slots/categorize?date=YYYY-MM-DD&time=HH:MM
//
// Pure preview: the same inputs always yield the same answer and nothing is
// written, so the endpoint is safe to call from pricing previews on every
// keystroke.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	rawDate := query.Get("date")
	rawTime := query.Get("time")
	if rawDate == "" || rawTime == "" {
		handlers.RespondBadRequest(w, msgMissingParams)
		return
	}

	date, err := time.Parse(domain.DateFormat, rawDate)
	if err != nil {
		h.logger.Warn("GET /slots/categorize - Invalid date %q: %v", rawDate, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	start, err := types.NewTimeStringFromString(rawTime)
	if err != nil {
		h.logger.Warn("GET /slots/categorize - Invalid time %q: %v", rawTime, err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result := h.categorizer.Categorize(date, start)

	handlers.RespondJSON(w, http.StatusOK, &CategorizeResponse{
		Date:          rawDate,
		StartTime:     start.String(),
		Category:      string(result.Category),
		IsRush:        result.IsRush,
		FeePercentage: result.FeePercentage,
		Note:          result.Note,
		Weekday:       date.Weekday().String(),
	})
}
