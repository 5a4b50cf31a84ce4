package update_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/TTA-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/TTA-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/TTA-BookingService/internal/usecase/check_availability"
)

// UseCase use case для изменения черновика бронирования
//
// Изменяемы только черновики. Новый состав проверяется движком доступности
// с исключением самого бронирования из подсчетов, цена пересчитывается
// заново. Чтение, проверка и запись выполняются в одной сериализуемой
// транзакции, чтение блокирует строку (FOR UPDATE).
type UseCase struct {
	availability AvailabilityChecker
	resourceRepo ResourceRepository
	bookingRepo  BookingRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availability AvailabilityChecker,
	resourceRepo ResourceRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		availability: availability,
		resourceRepo: resourceRepo,
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case изменения черновика
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBooking: booking=%d, user=%d", req.BookingID, req.UserID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateBooking: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking

	// 2. Чтение, проверка и запись в одной сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Читаем черновик с блокировкой строки
		current, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("UpdateBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("UpdateBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 2.2. Только владелец или администратор
		if current.UserID != req.UserID && !req.IsAdmin {
			uc.logger.Warn("UpdateBooking: user id=%d is not the owner of booking id=%d", req.UserID, req.BookingID)
			return ErrPermissionDenied
		}

		// 2.3. После перехода из черновика состав зафиксирован
		if !current.IsDraft() {
			uc.logger.Warn("UpdateBooking: booking id=%d is in status %s", req.BookingID, current.Status)
			return ErrNotEditable
		}

		// 2.4. Применяем изменения к копии
		merged := applyPatch(current, req)

		if err := validateMerged(merged, uc.timeProvider.Now()); err != nil {
			uc.logger.Warn("UpdateBooking: merged validation failed: %v", err)
			return err
		}

		rng := merged.Range()

		// 2.5. Проверяем доступность нового состава, исключая само
		// бронирование из подсчетов пересечений
		check, err := uc.availability.Execute(txCtx, &check_availability.Request{
			StayID:           merged.StayID,
			TransportationID: merged.TransportationID,
			SightseeingIDs:   merged.SightseeingIDs,
			CheckIn:          rng.CheckIn,
			CheckOut:         rng.CheckOut,
			NumberOfPeople:   merged.NumberOfPeople,
			ExcludeBookingID: &req.BookingID,
		})
		if err != nil {
			return uc.mapAvailabilityErr(err)
		}

		if !check.Available {
			uc.logger.Warn("UpdateBooking: denied by %s: %s", check.DeniedType, check.Reason)
			return &CapacityError{Reason: check.Reason}
		}

		// 2.6. Пересчитываем цену под новый состав
		stay, transportation, sightseeings, err := uc.loadResources(txCtx, merged)
		if err != nil {
			return err
		}

		merged.Pricing = domain.CalculatePricing(stay, transportation, sightseeings, merged.NumberOfPeople, rng.Nights())
		merged.NumberOfDays = rng.Nights()

		// 2.7. Сохраняем
		updated, err := uc.bookingRepo.Update(txCtx, req.BookingID, merged)
		if err != nil {
			uc.logger.Error("UpdateBooking: failed to update booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		result = updated
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateBooking: successfully updated draft id=%d, total=%.2f", result.ID, result.Pricing.GrandTotal)

	return toResponse(result), nil
}

// applyPatch строит новый черновик из текущего и nil-опциональных полей запроса
func applyPatch(current *domain.Booking, req *Request) *domain.Booking {
	merged := *current

	if req.StayID != nil {
		merged.StayID = *req.StayID
	}

	switch {
	case req.ClearTransportation:
		merged.TransportationID = nil
	case req.TransportationID != nil:
		merged.TransportationID = req.TransportationID
	}

	if req.SightseeingIDs != nil {
		merged.SightseeingIDs = req.SightseeingIDs
	}

	if req.NumberOfPeople != nil {
		merged.NumberOfPeople = *req.NumberOfPeople
	}

	if req.CheckIn != nil {
		merged.CheckInDate = *req.CheckIn
	}

	if req.CheckOut != nil {
		merged.CheckOutDate = *req.CheckOut
	}

	rng := domain.NewDateRange(merged.CheckInDate, merged.CheckOutDate)
	merged.CheckInDate = rng.CheckIn
	merged.CheckOutDate = rng.CheckOut

	return &merged
}

// loadResources загружает новый состав бронирования для расчета цены
func (uc *UseCase) loadResources(ctx context.Context, merged *domain.Booking) (*domain.Resource, *domain.Resource, []*domain.Resource, error) {
	stay, err := uc.resourceRepo.Get(ctx, domain.ResourceStay, merged.StayID)
	if err != nil {
		uc.logger.Error("UpdateBooking: failed to get stay id=%d: %v", merged.StayID, err)
		return nil, nil, nil, fmt.Errorf("%w: failed to get stay: %v", ErrInternal, err)
	}

	var transportation *domain.Resource
	if merged.TransportationID != nil {
		transportation, err = uc.resourceRepo.Get(ctx, domain.ResourceTransportation, *merged.TransportationID)
		if err != nil {
			uc.logger.Error("UpdateBooking: failed to get transportation id=%d: %v", *merged.TransportationID, err)
			return nil, nil, nil, fmt.Errorf("%w: failed to get transportation: %v", ErrInternal, err)
		}
	}

	var sightseeings []*domain.Resource
	if len(merged.SightseeingIDs) > 0 {
		sightseeings, err = uc.resourceRepo.GetMany(ctx, domain.ResourceSightseeing, merged.SightseeingIDs)
		if err != nil {
			uc.logger.Error("UpdateBooking: failed to get sightseeings: %v", err)
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
		uc.logger.Error("UpdateBooking: availability check failed: %v", err)
		return fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
	}
}
