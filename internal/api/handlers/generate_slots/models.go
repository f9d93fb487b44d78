package generate_slots

import (
	"time"

	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/domain"
	generateSlots "github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/usecase/generate_slots"
)

// GenerateSlotsRequest is the HTTP body for a generation run.
type GenerateSlotsRequest struct {
	StartDate string `json:"startDate"` // "2026-03-15"
	EndDate   string `json:"endDate"`
	DryRun    bool   `json:"dryRun,omitempty"`
}

// ToUseCaseRequest parses the dates and builds the use case request.
func (r *GenerateSlotsRequest) ToUseCaseRequest(providerID, serviceID int64) (*generateSlots.Request, error) {
	start, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := time.Parse(domain.DateFormat, r.EndDate)
	if err != nil {
		return nil, err
	}
	return &generateSlots.Request{
		ProviderID: providerID,
		ServiceID:  serviceID,
		StartDate:  start,
		EndDate:    end,
		DryRun:     r.DryRun,
	}, nil
}

// GenerateSlotsResponse summarises a generation run for the API.
type GenerateSlotsResponse struct {
	Created        int  `json:"created"`
	Skipped        int  `json:"skipped"`
	SkippedByCap   int  `json:"skippedByCap"`
	InvalidWindows int  `json:"invalidWindows"`
	DryRun         bool `json:"dryRun,omitempty"`
}

// FromUseCaseResponse converts the use case response.
func FromUseCaseResponse(resp *generateSlots.Response, dryRun bool) *GenerateSlotsResponse {
	return &GenerateSlotsResponse{
		Created:        len(resp.Created),
		Skipped:        resp.Skipped,
		SkippedByCap:   resp.SkippedByCap,
		InvalidWindows: resp.InvalidWindows,
		DryRun:         dryRun,
	}
}
