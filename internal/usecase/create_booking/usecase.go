package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/TTA-BookingService/internal/domain"
	"github.com/m04kA/TTA-BookingService/internal/usecase/check_availability"
)

// UseCase use case для создания черновика бронирования
//
// Черновик не занимает вместимость, но доступность проверяется уже при
// создании, чтобы пользователь не собирал заведомо неисполнимый пакет.
// Проверка и вставка выполняются в одной сериализуемой транзакции.
type UseCase struct {
	availability AvailabilityChecker
	resourceRepo ResourceRepository
	bookingRepo  BookingRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	metrics      Metrics
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// metrics может быть nil, если сбор метрик выключен
func NewUseCase(
	availability AvailabilityChecker,
	resourceRepo ResourceRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		availability: availability,
		resourceRepo: resourceRepo,
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute выполняет use case создания черновика бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, stay=%d, transport=%v, sightseeings=%d, range=[%s, %s), people=%d",
		req.UserID, req.StayID, req.TransportationID, len(req.SightseeingIDs),
		req.CheckIn.Format(domain.DateFormat), req.CheckOut.Format(domain.DateFormat), req.NumberOfPeople)

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	rng := domain.NewDateRange(req.CheckIn, req.CheckOut)

	var result *domain.Booking

	// 2. Проверка доступности и вставка в одной сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Полная проверка доступности движком
		check, err := uc.availability.Execute(txCtx, &check_availability.Request{
			StayID:           req.StayID,
			TransportationID: req.TransportationID,
			SightseeingIDs:   req.SightseeingIDs,
			CheckIn:          rng.CheckIn,
			CheckOut:         rng.CheckOut,
			NumberOfPeople:   req.NumberOfPeople,
		})
		if err != nil {
			return uc.mapAvailabilityErr(err)
		}

		if !check.Available {
			uc.logger.Warn("CreateBooking: denied by %s: %s", check.DeniedType, check.Reason)
			return &CapacityError{Reason: check.Reason}
		}

		// 2.2. Загружаем ресурсы для расчета цены
		// Движок уже гарантировал их существование и активность
		stay, transportation, sightseeings, err := uc.loadResources(txCtx, req)
		if err != nil {
			return err
		}

		// 2.3. Серверный расчет цены, значения клиента не используются
		pricing := domain.CalculatePricing(stay, transportation, sightseeings, req.NumberOfPeople, rng.Nights())

		// 2.4. Сохраняем черновик
		booking := &domain.Booking{
			UserID:           req.UserID,
			StayID:           req.StayID,
			TransportationID: req.TransportationID,
			SightseeingIDs:   req.SightseeingIDs,
			NumberOfPeople:   req.NumberOfPeople,
			NumberOfDays:     rng.Nights(),
			CheckInDate:      rng.CheckIn,
			CheckOutDate:     rng.CheckOut,
			Pricing:          pricing,
			Status:           domain.StatusDraft,
			PaymentStatus:    domain.PaymentPending,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.IncBookingCreated("draft")
	}

	uc.logger.Info("CreateBooking: successfully created draft id=%d, total=%.2f", result.ID, result.Pricing.GrandTotal)

	return toResponse(result), nil
}

// loadResources загружает состав бронирования для расчета цены
func (uc *UseCase) loadResources(ctx context.Context, req *Request) (*domain.Resource, *domain.Resource, []*domain.Resource, error) {
	stay, err := uc.resourceRepo.Get(ctx, domain.ResourceStay, req.StayID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get stay id=%d: %v", req.StayID, err)
		return nil, nil, nil, fmt.Errorf("%w: failed to get stay: %v", ErrInternal, err)
	}

	var transportation *domain.Resource
	if req.TransportationID != nil {
		transportation, err = uc.resourceRepo.Get(ctx, domain.ResourceTransportation, *req.TransportationID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get transportation id=%d: %v", *req.TransportationID, err)
			return nil, nil, nil, fmt.Errorf("%w: failed to get transportation: %v", ErrInternal, err)
		}
	}

	var sightseeings []*domain.Resource
	if len(req.SightseeingIDs) > 0 {
		sightseeings, err = uc.resourceRepo.GetMany(ctx, domain.ResourceSightseeing, req.SightseeingIDs)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get sightseeings: %v", err)
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
		uc.logger.Error("CreateBooking: availability check failed: %v", err)
		return fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
	}
}
