package book_tour_package

import (
	"fmt"
	"time"

	"github.com/m04kA/TTA-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, now time.Time) error {
	if req.TourPackageID <= 0 {
		return fmt.Errorf("%w: tourPackageID must be positive", ErrInvalidInput)
	}

	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.NumberOfPeople < domain.MinNumberOfPeople || req.NumberOfPeople > domain.MaxNumberOfPeople {
		return fmt.Errorf("%w: numberOfPeople must be between %d and %d",
			ErrInvalidInput, domain.MinNumberOfPeople, domain.MaxNumberOfPeople)
	}

	if req.CheckIn.IsZero() {
		return fmt.Errorf("%w: checkIn is required", ErrInvalidInput)
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if req.CheckIn.Before(today) {
		return ErrDateInPast
	}

	return nil
}
