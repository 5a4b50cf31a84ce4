package check_availability

import (
	"fmt"

	"github.com/m04kA/TTA-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.StayID <= 0 {
		return fmt.Errorf("%w: stayID must be positive", ErrInvalidInput)
	}

	if req.TransportationID != nil && *req.TransportationID <= 0 {
		return fmt.Errorf("%w: transportationID must be positive", ErrInvalidInput)
	}

	if req.NumberOfPeople < domain.MinNumberOfPeople {
		return fmt.Errorf("%w: numberOfPeople must be at least %d", ErrInvalidInput, domain.MinNumberOfPeople)
	}

	if req.NumberOfPeople > domain.MaxNumberOfPeople {
		return fmt.Errorf("%w: numberOfPeople must not exceed %d", ErrInvalidInput, domain.MaxNumberOfPeople)
	}

	if req.CheckIn.IsZero() || req.CheckOut.IsZero() {
		return fmt.Errorf("%w: checkIn and checkOut are required", ErrInvalidInput)
	}

	// Полуоткрытый диапазон: выезд строго позже заезда
	if !req.Range().IsValid() {
		return fmt.Errorf("%w: checkOut must be after checkIn", ErrInvalidInput)
	}

	if req.Range().Nights() > domain.MaxNumberOfDays {
		return fmt.Errorf("%w: stay must not exceed %d days", ErrInvalidInput, domain.MaxNumberOfDays)
	}

	if len(req.SightseeingIDs) > domain.MaxSightseeings {
		return fmt.Errorf("%w: too many sightseeings selected", ErrInvalidInput)
	}

	// Дубликаты экскурсий задваивали бы посуточные суммы гостей
	seen := make(map[int64]struct{}, len(req.SightseeingIDs))
	for _, id := range req.SightseeingIDs {
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
