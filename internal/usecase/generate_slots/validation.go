package generate_slots

import (
	"fmt"

	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/domain"
)

// validateRequest validates the request parameters.
func validateRequest(req *Request) error {
	if req.ProviderID <= 0 {
		return fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}

	start := domain.DateOnly(req.StartDate)
	end := domain.DateOnly(req.EndDate)
	if end.Before(start) {
		return fmt.Errorf("%w: endDate %s before startDate %s",
			ErrInvalidDateRange, end.Format(domain.DateFormat), start.Format(domain.DateFormat))
	}
	if int(end.Sub(start).Hours()/24) > domain.MaxDaysAhead {
		return fmt.Errorf("%w: range exceeds %d days", ErrInvalidDateRange, domain.MaxDaysAhead)
	}
	return nil
}
