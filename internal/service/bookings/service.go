package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/TTA-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/TTA-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/TTA-BookingService/internal/service/bookings/models"
	"github.com/m04kA/TTA-BookingService/internal/usecase/check_availability"
)

// Service сервис жизненного цикла бронирований
//
// Переходы статусов:
//
//	draft -> booked       (пользователь, с повторной проверкой доступности)
//	booked -> confirmed   (администратор)
//	confirmed -> completed (администратор)
//	любой нетерминальный -> cancelled
//
// Переход draft -> booked начинает занимать вместимость, поэтому полная
// проверка доступности повторяется в сериализуемой транзакции с блокировкой
// строки бронирования. Остальные переходы вместимость не добавляют и
// повторной проверки не требуют.
type Service struct {
	bookingRepo  BookingRepository
	availability AvailabilityChecker
	notifyClient NotifyServiceClient
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	availability AvailabilityChecker,
	notifyClient NotifyServiceClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		availability: availability,
		notifyClient: notifyClient,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь видит только свои бронирования, администратор - любые
func (s *Service) GetByID(ctx context.Context, id int64, userID int64, isAdmin bool) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.getBooking(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	if err := s.checkAccess(booking, userID, isAdmin); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	filter := domain.UserBookingsFilter{UserID: req.UserID}

	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	bookings, err := s.bookingRepo.GetByUser(ctx, filter)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// Book переводит черновик в статус booked
// С этого момента бронирование занимает вместимость ресурсов, поэтому
// доступность проверяется повторно: между созданием черновика и этим
// вызовом вместимость могли занять другие пользователи
func (s *Service) Book(ctx context.Context, bookingID int64, userID int64, isAdmin bool) (*models.BookingResponse, error) {
	s.logger.Info("Book: booking id=%d by user=%d", bookingID, userID)

	var result *domain.Booking

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, bookingID, "Book")
		if err != nil {
			return err
		}

		if err := s.checkAccess(booking, userID, isAdmin); err != nil {
			s.logger.Warn("Book: access denied for user=%d to booking id=%d", userID, bookingID)
			return err
		}

		if !booking.CanBeBooked() {
			s.logger.Warn("Book: booking id=%d is in status %s", bookingID, booking.Status)
			return fmt.Errorf("%w: cannot book from status %s", ErrInvalidTransition, booking.Status)
		}

		// Повторная полная проверка, исключая само бронирование из подсчетов
		check, err := s.availability.Execute(txCtx, &check_availability.Request{
			StayID:           booking.StayID,
			TransportationID: booking.TransportationID,
			SightseeingIDs:   booking.SightseeingIDs,
			CheckIn:          booking.CheckInDate,
			CheckOut:         booking.CheckOutDate,
			NumberOfPeople:   booking.NumberOfPeople,
			ExcludeBookingID: &bookingID,
		})
		if err != nil {
			s.logger.Error("Book: availability re-check failed for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: availability re-check failed: %v", ErrInternal, err)
		}

		if !check.Available {
			s.logger.Warn("Book: capacity lost for booking id=%d: %s", bookingID, check.Reason)
			return &CapacityError{Reason: check.Reason}
		}

		if err := s.bookingRepo.UpdateStatus(txCtx, bookingID, domain.StatusBooked); err != nil {
			s.logger.Error("Book: failed to update status for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: Book - repository error: %v", ErrInternal, err)
		}

		booking.Status = domain.StatusBooked
		result = booking
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("Book: successfully booked id=%d", bookingID)

	// Уведомление fire-and-forget: отказ коллаборатора не откатывает переход
	go s.notifyBooked(result)

	return models.FromDomainBooking(result), nil
}

// Cancel отменяет бронирование
// Отмена разрешена из любого нетерминального статуса и освобождает
// вместимость. По оплаченному бронированию помечается возврат средств
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	if len(req.CancellationReason) > domain.MaxCancellationReasonLength {
		s.logger.Warn("Cancel: cancellation reason too long for booking id=%d", bookingID)
		return fmt.Errorf("%w: cancellation reason must not exceed %d characters",
			ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	var cancelled *domain.Booking

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, bookingID, "Cancel")
		if err != nil {
			return err
		}

		if err := s.checkAccess(booking, req.UserID, req.IsAdmin); err != nil {
			s.logger.Warn("Cancel: access denied for user=%d to booking id=%d", req.UserID, bookingID)
			return err
		}

		if !booking.CanBeCancelled() {
			s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
			return ErrCannotCancel
		}

		if err := s.bookingRepo.Cancel(txCtx, bookingID, req.CancellationReason); err != nil {
			s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		// Оплаченное бронирование при отмене уходит на возврат средств
		if booking.IsPaid() {
			if err := s.bookingRepo.SetPaymentStatus(txCtx, bookingID, domain.PaymentRefunded); err != nil {
				s.logger.Error("Cancel: failed to mark refund for booking id=%d: %v", bookingID, err)
				return fmt.Errorf("%w: Cancel - failed to mark refund: %v", ErrInternal, err)
			}
		}

		booking.Status = domain.StatusCancelled
		cancelled = booking
		return nil
	})

	if err != nil {
		return err
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)

	go s.notifyCancelled(cancelled, req.CancellationReason)

	return nil
}

// UpdateStatus выполняет админский перевод статуса
// Разрешены только переходы booked -> confirmed и confirmed -> completed;
// отмена идет через Cancel
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by user=%d",
		bookingID, req.Status, req.UserID)

	if !req.IsAdmin {
		s.logger.Warn("UpdateStatus: user=%d is not an admin", req.UserID)
		return ErrAccessDenied
	}

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return fmt.Errorf("%w: invalid status", ErrInvalidStatus)
	}

	return s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, bookingID, "UpdateStatus")
		if err != nil {
			return err
		}

		allowed := false
		switch newStatus {
		case domain.StatusConfirmed:
			allowed = booking.CanBeConfirmed()
		case domain.StatusCompleted:
			allowed = booking.CanBeCompleted()
		}

		if !allowed {
			s.logger.Warn("UpdateStatus: transition %s -> %s is not allowed for booking id=%d",
				booking.Status, newStatus, bookingID)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, newStatus)
		}

		if err := s.bookingRepo.UpdateStatus(txCtx, bookingID, newStatus); err != nil {
			s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, newStatus)
		return nil
	})
}

// Refund помечает возврат средств по оплаченному бронированию
// Доступно только администратору; статус бронирования не меняется
func (s *Service) Refund(ctx context.Context, bookingID int64, userID int64, isAdmin bool) error {
	s.logger.Info("Refund: refunding booking id=%d by user=%d", bookingID, userID)

	if !isAdmin {
		s.logger.Warn("Refund: user=%d is not an admin", userID)
		return ErrAccessDenied
	}

	return s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, bookingID, "Refund")
		if err != nil {
			return err
		}

		if !booking.IsPaid() {
			s.logger.Warn("Refund: booking id=%d is not paid, payment status=%s", bookingID, booking.PaymentStatus)
			return ErrNotPaid
		}

		if err := s.bookingRepo.SetPaymentStatus(txCtx, bookingID, domain.PaymentRefunded); err != nil {
			s.logger.Error("Refund: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: Refund - repository error: %v", ErrInternal, err)
		}

		s.logger.Info("Refund: successfully refunded booking id=%d", bookingID)
		return nil
	})
}

// EarlyCheckout сокращает проживание до новой даты выезда
// Диапазон только сжимается, вместимость при этом освобождается, поэтому
// повторная проверка доступности не нужна. Бронирование завершается
func (s *Service) EarlyCheckout(ctx context.Context, bookingID int64, req *models.EarlyCheckoutRequest) (*models.BookingResponse, error) {
	s.logger.Info("EarlyCheckout: booking id=%d, newCheckOut=%s by user=%d",
		bookingID, req.NewCheckOut.Format(domain.DateFormat), req.UserID)

	var result *domain.Booking

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, bookingID, "EarlyCheckout")
		if err != nil {
			return err
		}

		if err := s.checkAccess(booking, req.UserID, req.IsAdmin); err != nil {
			s.logger.Warn("EarlyCheckout: access denied for user=%d to booking id=%d", req.UserID, bookingID)
			return err
		}

		if !booking.CanCheckOutEarly() {
			s.logger.Warn("EarlyCheckout: booking id=%d is in status %s", bookingID, booking.Status)
			return fmt.Errorf("%w: cannot check out early from status %s", ErrInvalidTransition, booking.Status)
		}

		newRange := domain.NewDateRange(booking.CheckInDate, req.NewCheckOut)

		// Новый выезд не позже исходного; равенство допустимо и означает
		// завершение без сокращения диапазона
		if !newRange.IsValid() || newRange.CheckOut.After(booking.CheckOutDate) {
			s.logger.Warn("EarlyCheckout: invalid new checkout %s for booking id=%d",
				req.NewCheckOut.Format(domain.DateFormat), bookingID)
			return ErrInvalidCheckout
		}

		if err := s.bookingRepo.EarlyCheckout(txCtx, bookingID, newRange.CheckOut, newRange.Nights()); err != nil {
			s.logger.Error("EarlyCheckout: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: EarlyCheckout - repository error: %v", ErrInternal, err)
		}

		booking.CheckOutDate = newRange.CheckOut
		booking.NumberOfDays = newRange.Nights()
		booking.Status = domain.StatusCompleted
		result = booking
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("EarlyCheckout: booking id=%d completed with new checkout %s",
		bookingID, result.CheckOutDate.Format(domain.DateFormat))

	return models.FromDomainBooking(result), nil
}

// Delete физически удаляет бронирование из любого статуса
// Доступно только администратору; пользователи избавляются от ненужных
// бронирований через Cancel
func (s *Service) Delete(ctx context.Context, bookingID int64, userID int64, isAdmin bool) error {
	s.logger.Info("Delete: deleting booking id=%d by user=%d", bookingID, userID)

	if !isAdmin {
		s.logger.Warn("Delete: user=%d is not an admin", userID)
		return ErrAccessDenied
	}

	if _, err := s.getBooking(ctx, bookingID, "Delete"); err != nil {
		return err
	}

	if err := s.bookingRepo.Delete(ctx, bookingID); err != nil {
		s.logger.Error("Delete: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted booking id=%d", bookingID)
	return nil
}

// Вспомогательные методы

// getBooking получает бронирование и нормализует ошибку отсутствия
func (s *Service) getBooking(ctx context.Context, id int64, op string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// checkAccess проверяет, что пользователь владелец бронирования или администратор
func (s *Service) checkAccess(booking *domain.Booking, userID int64, isAdmin bool) error {
	if booking.UserID == userID || isAdmin {
		return nil
	}
	return ErrAccessDenied
}

// notifyBooked отправляет уведомление о бронировании вне транзакции
func (s *Service) notifyBooked(booking *domain.Booking) {
	if s.notifyClient == nil {
		return
	}

	if err := s.notifyClient.NotifyBooked(context.Background(), booking); err != nil {
		s.logger.Warn("notifyBooked: failed to notify about booking id=%d: %v", booking.ID, err)
	}
}

// notifyCancelled отправляет уведомление об отмене вне транзакции
func (s *Service) notifyCancelled(booking *domain.Booking, reason string) {
	if s.notifyClient == nil {
		return
	}

	if err := s.notifyClient.NotifyCancelled(context.Background(), booking, reason); err != nil {
		s.logger.Warn("notifyCancelled: failed to notify about booking id=%d: %v", booking.ID, err)
	}
}
