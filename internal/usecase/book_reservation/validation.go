package book_reservation

import (
	"fmt"
)

// validateRequest валидирует форму входных данных
func validateRequest(req *Request) error {
	if req.Identity.ID == "" {
		return fmt.Errorf("%w: identity is required", ErrInvalidInput)
	}

	if req.LocationID <= 0 {
		return fmt.Errorf("%w: locationID must be positive", ErrInvalidInput)
	}

	if req.Resource <= 0 {
		return fmt.Errorf("%w: resource must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	return nil
}
