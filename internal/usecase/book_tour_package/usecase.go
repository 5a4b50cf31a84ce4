package book_tour_package

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/TTA-BookingService/internal/domain"
	tourRepo "github.com/m04kA/TTA-BookingService/internal/infra/storage/tour"
	"github.com/m04kA/TTA-BookingService/internal/usecase/check_availability"
)

// UseCase use case для бронирования готового тура
//
// Тур минует стадию черновика: бронирование создается сразу в статусе
// booked и занимает вместимость, поэтому проверка доступности и вставка
// выполняются в одной сериализуемой транзакции. Цена не рассчитывается
// покомпонентно, берется фиксированная цена тура.
type UseCase struct {
	availability AvailabilityChecker
	tourRepo     TourRepository
	bookingRepo  BookingRepository
	txManager    TransactionManager
	notifyClient NotifyServiceClient
	timeProvider TimeProvider
	metrics      Metrics
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// metrics может быть nil, если сбор метрик выключен
func NewUseCase(
	availability AvailabilityChecker,
	tourRepo TourRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	notifyClient NotifyServiceClient,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		availability: availability,
		tourRepo:     tourRepo,
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		notifyClient: notifyClient,
		timeProvider: &RealTimeProvider{},
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute выполняет use case бронирования тура
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookTourPackage: tour=%d, user=%d, checkIn=%s, people=%d",
		req.TourPackageID, req.UserID, req.CheckIn.Format(domain.DateFormat), req.NumberOfPeople)

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("BookTourPackage: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем тур: состав и длительность зафиксированы в нем
	tourPackage, err := uc.getActiveTour(ctx, req.TourPackageID)
	if err != nil {
		return nil, err
	}

	rng := tourPackage.RangeFrom(req.CheckIn)

	var result *domain.Booking

	// 3. Проверка доступности и вставка в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Состав тура проходит ту же проверку, что и ручной пакет
		check, err := uc.availability.Execute(txCtx, &check_availability.Request{
			StayID:           tourPackage.StayID,
			TransportationID: tourPackage.TransportationID,
			SightseeingIDs:   tourPackage.SightseeingIDs,
			CheckIn:          rng.CheckIn,
			CheckOut:         rng.CheckOut,
			NumberOfPeople:   req.NumberOfPeople,
		})
		if err != nil {
			uc.logger.Error("BookTourPackage: availability check failed: %v", err)
			return fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
		}

		if !check.Available {
			uc.logger.Warn("BookTourPackage: denied by %s: %s", check.DeniedType, check.Reason)
			return &CapacityError{Reason: check.Reason}
		}

		// 3.2. Сразу booked: тур занимает вместимость с момента создания
		booking := &domain.Booking{
			UserID:           req.UserID,
			StayID:           tourPackage.StayID,
			TransportationID: tourPackage.TransportationID,
			SightseeingIDs:   tourPackage.SightseeingIDs,
			NumberOfPeople:   req.NumberOfPeople,
			NumberOfDays:     rng.Nights(),
			CheckInDate:      rng.CheckIn,
			CheckOutDate:     rng.CheckOut,
			Pricing:          domain.Pricing{GrandTotal: tourPackage.FlatPrice},
			Status:           domain.StatusBooked,
			PaymentStatus:    domain.PaymentPending,
			TourPackageID:    &tourPackage.ID,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("BookTourPackage: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.IncBookingCreated("tour_package")
	}

	uc.logger.Info("BookTourPackage: successfully booked tour id=%d, booking id=%d", tourPackage.ID, result.ID)

	// 4. Уведомление fire-and-forget: отказ коллаборатора не откатывает бронирование
	go uc.notifyBooked(result)

	return toResponse(result), nil
}

// notifyBooked отправляет уведомление о бронировании вне транзакции
func (uc *UseCase) notifyBooked(booking *domain.Booking) {
	if uc.notifyClient == nil {
		return
	}

	if err := uc.notifyClient.NotifyBooked(context.Background(), booking); err != nil {
		uc.logger.Warn("BookTourPackage: failed to notify about booking id=%d: %v", booking.ID, err)
	}
}

// getActiveTour получает тур и трактует неактивный как отсутствующий
func (uc *UseCase) getActiveTour(ctx context.Context, id int64) (*domain.TourPackage, error) {
	tourPackage, err := uc.tourRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, tourRepo.ErrTourPackageNotFound) {
			uc.logger.Warn("BookTourPackage: tour id=%d not found", id)
			return nil, ErrTourPackageNotFound
		}
		uc.logger.Error("BookTourPackage: failed to get tour id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get tour: %v", ErrInternal, err)
	}

	if !tourPackage.IsActive {
		uc.logger.Warn("BookTourPackage: tour id=%d is inactive", id)
		return nil, ErrTourPackageNotFound
	}

	return tourPackage, nil
}
