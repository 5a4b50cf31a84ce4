package get_quote

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/TTA-BookingService/internal/domain"
	"github.com/m04kA/TTA-BookingService/internal/usecase/check_availability"
)

// UseCase use case расчета стоимости пакета без создания бронирования
//
// Выполняется вне транзакции: котировка справочная и ничего не резервирует,
// поэтому согласованность на уровне снимка здесь не нужна
type UseCase struct {
	availability AvailabilityChecker
	resourceRepo ResourceRepository
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(availability AvailabilityChecker, resourceRepo ResourceRepository, logger Logger) *UseCase {
	return &UseCase{
		availability: availability,
		resourceRepo: resourceRepo,
		logger:       logger,
	}
}

// Execute выполняет расчет котировки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetQuote: stay=%d, transport=%v, sightseeings=%d, range=[%s, %s), people=%d",
		req.StayID, req.TransportationID, len(req.SightseeingIDs),
		req.CheckIn.Format(domain.DateFormat), req.CheckOut.Format(domain.DateFormat), req.NumberOfPeople)

	rng := domain.NewDateRange(req.CheckIn, req.CheckOut)

	// 1. Проверка доступности движком (валидация входных данных внутри)
	check, err := uc.availability.Execute(ctx, &check_availability.Request{
		StayID:           req.StayID,
		TransportationID: req.TransportationID,
		SightseeingIDs:   req.SightseeingIDs,
		CheckIn:          rng.CheckIn,
		CheckOut:         rng.CheckOut,
		NumberOfPeople:   req.NumberOfPeople,
	})
	if err != nil {
		return nil, uc.mapAvailabilityErr(err)
	}

	if !check.Available {
		uc.logger.Info("GetQuote: not available: %s", check.Reason)
		return &Response{
			Available:    false,
			Reason:       check.Reason,
			NumberOfDays: rng.Nights(),
		}, nil
	}

	// 2. Расчет цены для доступного состава
	stay, transportation, sightseeings, err := uc.loadResources(ctx, req)
	if err != nil {
		return nil, err
	}

	pricing := domain.CalculatePricing(stay, transportation, sightseeings, req.NumberOfPeople, rng.Nights())

	uc.logger.Info("GetQuote: available, total=%.2f", pricing.GrandTotal)

	return &Response{
		Available:    true,
		NumberOfDays: rng.Nights(),
		Pricing:      &pricing,
	}, nil
}

// loadResources загружает состав пакета для расчета цены
func (uc *UseCase) loadResources(ctx context.Context, req *Request) (*domain.Resource, *domain.Resource, []*domain.Resource, error) {
	stay, err := uc.resourceRepo.Get(ctx, domain.ResourceStay, req.StayID)
	if err != nil {
		uc.logger.Error("GetQuote: failed to get stay id=%d: %v", req.StayID, err)
		return nil, nil, nil, fmt.Errorf("%w: failed to get stay: %v", ErrInternal, err)
	}

	var transportation *domain.Resource
	if req.TransportationID != nil {
		transportation, err = uc.resourceRepo.Get(ctx, domain.ResourceTransportation, *req.TransportationID)
		if err != nil {
			uc.logger.Error("GetQuote: failed to get transportation id=%d: %v", *req.TransportationID, err)
			return nil, nil, nil, fmt.Errorf("%w: failed to get transportation: %v", ErrInternal, err)
		}
	}

	var sightseeings []*domain.Resource
	if len(req.SightseeingIDs) > 0 {
		sightseeings, err = uc.resourceRepo.GetMany(ctx, domain.ResourceSightseeing, req.SightseeingIDs)
		if err != nil {
			uc.logger.Error("GetQuote: failed to get sightseeings: %v", err)
			return nil, nil, nil, fmt.Errorf("%w: failed to get sightseeings: %v", ErrInternal, err)
		}
	}

	return stay, transportation, sightseeings, nil
}

// mapAvailabilityErr переводит ошибки движка в ошибки usecase
func (uc *UseCase) mapAvailabilityErr(err error) error {
	switch {
	case errors.Is(err, check_availability.ErrStayNotFound):
		return ErrStayNotFound
	case errors.Is(err, check_availability.ErrTransportationNotFound):
		return ErrTransportationNotFound
	case errors.Is(err, check_availability.ErrSightseeingNotFound):
		return ErrSightseeingNotFound
	case errors.Is(err, check_availability.ErrInvalidInput):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		uc.logger.Error("GetQuote: availability check failed: %v", err)
		return fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
	}
}
