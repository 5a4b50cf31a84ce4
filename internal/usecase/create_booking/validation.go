package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/TTA-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
// Доступность ресурсов здесь не проверяется: этим занимается движок
// проверки доступности внутри транзакции
func validateRequest(req *Request, now time.Time) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.StayID <= 0 {
		return fmt.Errorf("%w: stayID must be positive", ErrInvalidInput)
	}

	if req.TransportationID != nil && *req.TransportationID <= 0 {
		return fmt.Errorf("%w: transportationID must be positive", ErrInvalidInput)
	}

	if req.NumberOfPeople < domain.MinNumberOfPeople || req.NumberOfPeople > domain.MaxNumberOfPeople {
		return fmt.Errorf("%w: numberOfPeople must be between %d and %d",
			ErrInvalidInput, domain.MinNumberOfPeople, domain.MaxNumberOfPeople)
	}

	if req.CheckIn.IsZero() || req.CheckOut.IsZero() {
		return fmt.Errorf("%w: checkIn and checkOut are required", ErrInvalidInput)
	}

	rng := domain.NewDateRange(req.CheckIn, req.CheckOut)
	if !rng.IsValid() {
		return fmt.Errorf("%w: checkOut must be after checkIn", ErrInvalidInput)
	}

	if rng.Nights() > domain.MaxNumberOfDays {
		return fmt.Errorf("%w: stay must not exceed %d days", ErrInvalidInput, domain.MaxNumberOfDays)
	}

	// Заезд сегодняшним днем разрешен, вчерашним - нет
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if rng.CheckIn.Before(today) {
		return ErrDateInPast
	}

	if len(req.SightseeingIDs) > domain.MaxSightseeings {
		return fmt.Errorf("%w: too many sightseeings selected", ErrInvalidInput)
	}

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
