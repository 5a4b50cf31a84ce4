package check_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/TTA-BookingService/internal/domain"
	resourceRepo "github.com/m04kA/TTA-BookingService/internal/infra/storage/resource"
)

// UseCase use case проверки доступности выбранных ресурсов на диапазон дат
//
// Проверки выполняются по порядку с остановкой на первом отказе:
//  1. Существование размещения (и транспорта, если выбран) - ошибка, не отказ
//  2. Ручные блокировки дат размещения и транспорта - административный
//     override, проверяется ДО подсчета бронирований
//  3. Вместимость размещения: число пересекающихся capacity-consuming
//     бронирований против totalRooms
//  4. Вместимость транспорта: аналогично против totalQuantity
//  5. Посуточная вместимость каждой экскурсии: сумма гостей по каждому
//     календарному дню диапазона против maxSlotsPerDay
//
// Блокировок нет - корректность при конкуренции обеспечивается повторным
// прогоном полной проверки внутри сериализуемой транзакции непосредственно
// перед каждым capacity-consuming переходом статуса.
type UseCase struct {
	resourceRepo ResourceRepository
	bookingRepo  BookingRepository
	metrics      Metrics
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// metrics может быть nil, если сбор метрик выключен
func NewUseCase(resourceRepo ResourceRepository, bookingRepo BookingRepository, metrics Metrics, logger Logger) *UseCase {
	return &UseCase{
		resourceRepo: resourceRepo,
		bookingRepo:  bookingRepo,
		metrics:      metrics,
		logger:       logger,
	}
}

// deny фиксирует отказ в метриках и строит результат
func (uc *UseCase) deny(resourceType domain.ResourceType, reason string) *Result {
	if uc.metrics != nil {
		uc.metrics.IncAvailabilityDenial(string(resourceType))
	}
	return denied(resourceType, reason)
}

// Execute выполняет проверку доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Result, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	rng := req.Range()

	uc.logger.Info("CheckAvailability: stay=%d, transport=%v, sightseeings=%d, range=[%s, %s), people=%d",
		req.StayID, req.TransportationID, len(req.SightseeingIDs),
		rng.CheckIn.Format(domain.DateFormat), rng.CheckOut.Format(domain.DateFormat), req.NumberOfPeople)

	// 2. Размещение должно существовать и быть активным
	stay, err := uc.getActiveResource(ctx, domain.ResourceStay, req.StayID, ErrStayNotFound)
	if err != nil {
		return nil, err
	}

	// 3. Транспорт, если выбран
	var transportation *domain.Resource
	if req.TransportationID != nil {
		transportation, err = uc.getActiveResource(ctx, domain.ResourceTransportation, *req.TransportationID, ErrTransportationNotFound)
		if err != nil {
			return nil, err
		}
	}

	// 4. Экскурсии, если выбраны
	sightseeings, err := uc.getActiveSightseeings(ctx, req.SightseeingIDs)
	if err != nil {
		return nil, err
	}

	// 5. Ручные блокировки дат: административный override, проверяется
	// до подсчета бронирований
	if blocked := stay.FirstBlockedDateIn(rng); blocked != nil {
		uc.logger.Info("CheckAvailability: stay id=%d blocked on %s", stay.ID, blocked.Format(domain.DateFormat))
		return uc.deny(domain.ResourceStay, fmt.Sprintf(
			"размещение %q недоступно %s: дата заблокирована администратором",
			stay.Name, blocked.Format(domain.DateFormat))), nil
	}

	if transportation != nil {
		if blocked := transportation.FirstBlockedDateIn(rng); blocked != nil {
			uc.logger.Info("CheckAvailability: transportation id=%d blocked on %s",
				transportation.ID, blocked.Format(domain.DateFormat))
			return uc.deny(domain.ResourceTransportation, fmt.Sprintf(
				"транспорт %q недоступен %s: дата заблокирована администратором",
				transportation.Name, blocked.Format(domain.DateFormat))), nil
		}
	}

	// 6. Вместимость размещения: пересечения по интервальному тесту
	stayCount, err := uc.bookingRepo.CountOverlappingForStay(ctx, stay.ID, rng, req.ExcludeBookingID)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to count stay overlaps: %v", err)
		return nil, fmt.Errorf("%w: failed to count stay overlaps: %v", ErrInternal, err)
	}

	if stayCount >= stay.EffectiveCapacity() {
		uc.logger.Info("CheckAvailability: stay id=%d fully booked, %d/%d rooms taken",
			stay.ID, stayCount, stay.EffectiveCapacity())
		return uc.deny(domain.ResourceStay, fmt.Sprintf(
			"размещение %q полностью занято на выбранные даты", stay.Name)), nil
	}

	// 7. Вместимость транспорта
	if transportation != nil {
		transportCount, err := uc.bookingRepo.CountOverlappingForTransportation(ctx, transportation.ID, rng, req.ExcludeBookingID)
		if err != nil {
			uc.logger.Error("CheckAvailability: failed to count transportation overlaps: %v", err)
			return nil, fmt.Errorf("%w: failed to count transportation overlaps: %v", ErrInternal, err)
		}

		if transportCount >= transportation.EffectiveCapacity() {
			uc.logger.Info("CheckAvailability: transportation id=%d fully booked, %d/%d taken",
				transportation.ID, transportCount, transportation.EffectiveCapacity())
			return uc.deny(domain.ResourceTransportation, fmt.Sprintf(
				"транспорт %q полностью занят на выбранные даты", transportation.Name)), nil
		}
	}

	// 8. Посуточная вместимость экскурсий
	// Два пересекающихся многодневных диапазона могут конфликтовать только в
	// отдельные общие дни, поэтому сумма гостей считается для каждого дня
	// отдельно, а не по диапазону целиком
	for _, sight := range sightseeings {
		result, err := uc.checkSightseeingDays(ctx, sight, rng, req.NumberOfPeople, req.ExcludeBookingID)
		if err != nil {
			return nil, err
		}
		if !result.Available {
			return result, nil
		}
	}

	uc.logger.Info("CheckAvailability: all checks passed for stay=%d", stay.ID)
	return available(), nil
}

// checkSightseeingDays проверяет каждую дату диапазона против maxSlotsPerDay экскурсии
func (uc *UseCase) checkSightseeingDays(ctx context.Context, sight *domain.Resource, rng domain.DateRange, requestedPeople int, excludeBookingID *int64) (*Result, error) {
	capacity := sight.EffectiveCapacity()

	for _, day := range rng.Days() {
		// Ручная блокировка дня экскурсии
		if sight.IsBlockedOn(day) {
			uc.logger.Info("CheckAvailability: sightseeing id=%d blocked on %s", sight.ID, day.Format(domain.DateFormat))
			return uc.deny(domain.ResourceSightseeing, fmt.Sprintf(
				"экскурсия %q недоступна %s: дата заблокирована администратором",
				sight.Name, day.Format(domain.DateFormat))), nil
		}

		taken, err := uc.bookingRepo.SumSightseeingGuestsOnDay(ctx, sight.ID, day, excludeBookingID)
		if err != nil {
			uc.logger.Error("CheckAvailability: failed to sum sightseeing guests: %v", err)
			return nil, fmt.Errorf("%w: failed to sum sightseeing guests: %v", ErrInternal, err)
		}

		if taken+requestedPeople > capacity {
			uc.logger.Info("CheckAvailability: sightseeing id=%d overloaded on %s, %d+%d > %d",
				sight.ID, day.Format(domain.DateFormat), taken, requestedPeople, capacity)
			return uc.deny(domain.ResourceSightseeing, fmt.Sprintf(
				"экскурсия %q переполнена %s: занято %d из %d мест",
				sight.Name, day.Format(domain.DateFormat), taken, capacity)), nil
		}
	}

	return available(), nil
}

// getActiveResource получает ресурс и трактует неактивный как отсутствующий
func (uc *UseCase) getActiveResource(ctx context.Context, resourceType domain.ResourceType, id int64, notFound error) (*domain.Resource, error) {
	res, err := uc.resourceRepo.Get(ctx, resourceType, id)
	if err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			uc.logger.Warn("CheckAvailability: %s id=%d not found", resourceType, id)
			return nil, notFound
		}
		uc.logger.Error("CheckAvailability: failed to get %s id=%d: %v", resourceType, id, err)
		return nil, fmt.Errorf("%w: failed to get %s: %v", ErrInternal, resourceType, err)
	}

	if !res.IsActive {
		uc.logger.Warn("CheckAvailability: %s id=%d is inactive", resourceType, id)
		return nil, notFound
	}

	return res, nil
}

// getActiveSightseeings получает выбранные экскурсии и проверяет их активность
func (uc *UseCase) getActiveSightseeings(ctx context.Context, ids []int64) ([]*domain.Resource, error) {
	if len(ids) == 0 {
		return []*domain.Resource{}, nil
	}

	sightseeings, err := uc.resourceRepo.GetMany(ctx, domain.ResourceSightseeing, ids)
	if err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			uc.logger.Warn("CheckAvailability: some sightseeings not found: %v", ids)
			return nil, ErrSightseeingNotFound
		}
		uc.logger.Error("CheckAvailability: failed to get sightseeings: %v", err)
		return nil, fmt.Errorf("%w: failed to get sightseeings: %v", ErrInternal, err)
	}

	for _, sight := range sightseeings {
		if !sight.IsActive {
			uc.logger.Warn("CheckAvailability: sightseeing id=%d is inactive", sight.ID)
			return nil, ErrSightseeingNotFound
		}
	}

	return sightseeings, nil
}
