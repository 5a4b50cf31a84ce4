package update_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/TTA-BookingService/internal/domain"
)

// validateRequest валидирует сам запрос до чтения черновика из БД
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.StayID != nil && *req.StayID <= 0 {
		return fmt.Errorf("%w: stayID must be positive", ErrInvalidInput)
	}

	if req.TransportationID != nil && *req.TransportationID <= 0 {
		return fmt.Errorf("%w: transportationID must be positive", ErrInvalidInput)
	}

	if req.NumberOfPeople != nil &&
		(*req.NumberOfPeople < domain.MinNumberOfPeople || *req.NumberOfPeople > domain.MaxNumberOfPeople) {
		return fmt.Errorf("%w: numberOfPeople must be between %d and %d",
			ErrInvalidInput, domain.MinNumberOfPeople, domain.MaxNumberOfPeople)
	}

	return nil
}

// validateMerged валидирует черновик после применения изменений
func validateMerged(merged *domain.Booking, now time.Time) error {
	rng := merged.Range()
	if !rng.IsValid() {
		return fmt.Errorf("%w: checkOut must be after checkIn", ErrInvalidInput)
	}

	if rng.Nights() > domain.MaxNumberOfDays {
		return fmt.Errorf("%w: stay must not exceed %d days", ErrInvalidInput, domain.MaxNumberOfDays)
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if rng.CheckIn.Before(today) {
		return ErrDateInPast
	}

	if len(merged.SightseeingIDs) > domain.MaxSightseeings {
		return fmt.Errorf("%w: too many sightseeings selected", ErrInvalidInput)
	}

	seen := make(map[int64]struct{}, len(merged.SightseeingIDs))
	for _, id := range merged.SightseeingIDs {
		if id <= 0 {
			return fmt.Errorf("%w: sightseeingID must be positive", ErrInvalidInput)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: duplicate sightseeingID %d", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}

	return nil
}
