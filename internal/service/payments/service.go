package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/TTA-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/TTA-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/TTA-BookingService/internal/service/payments/models"
	"github.com/m04kA/TTA-BookingService/internal/usecase/check_availability"
)

// Service сервис оплаты бронирований
//
// Платежный шлюз не вызывается напрямую: сервис выдает ордер с уникальным
// номером, а шлюз присылает результат с подписью. Подпись - hex-кодированный
// HMAC-SHA256 от строки "orderID|paymentID" на секретном ключе.
//
// TestMode отключает ТОЛЬКО проверку подписи. Проверка доступности
// выполняется всегда: оплата закрепляет вместимость за бронированием,
// и помечать оплату поверх потерянной вместимости нельзя ни в каком режиме.
type Service struct {
	bookingRepo  BookingRepository
	availability AvailabilityChecker
	txManager    TransactionManager
	metrics      Metrics
	logger       Logger

	keyID     string
	keySecret string
	testMode  bool
}

// NewService создает новый экземпляр сервиса оплаты
// metrics может быть nil, если сбор метрик выключен
func NewService(
	bookingRepo BookingRepository,
	availability AvailabilityChecker,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
	keyID string,
	keySecret string,
	testMode bool,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		availability: availability,
		txManager:    txManager,
		metrics:      metrics,
		logger:       logger,
		keyID:        keyID,
		keySecret:    keySecret,
		testMode:     testMode,
	}
}

// CreateOrder создает платежный ордер по бронированию
// Оплачивается только бронирование в статусе booked; повторный вызов
// перевыпускает ордер, пока оплата не прошла
func (s *Service) CreateOrder(ctx context.Context, bookingID int64, userID int64, isAdmin bool) (*models.PaymentOrderResponse, error) {
	s.logger.Info("CreateOrder: booking id=%d by user=%d", bookingID, userID)

	booking, err := s.getBooking(ctx, bookingID, "CreateOrder")
	if err != nil {
		return nil, err
	}

	if err := s.checkAccess(booking, userID, isAdmin); err != nil {
		s.logger.Warn("CreateOrder: access denied for user=%d to booking id=%d", userID, bookingID)
		return nil, err
	}

	if booking.IsPaid() {
		s.logger.Warn("CreateOrder: booking id=%d is already paid", bookingID)
		return nil, ErrAlreadyPaid
	}

	if booking.Status != domain.StatusBooked {
		s.logger.Warn("CreateOrder: booking id=%d is in status %s", bookingID, booking.Status)
		return nil, ErrNotPayable
	}

	orderID := uuid.NewString()

	if err := s.bookingRepo.SetPaymentOrder(ctx, bookingID, orderID); err != nil {
		s.logger.Error("CreateOrder: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: CreateOrder - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateOrder: issued order %s for booking id=%d, amount=%.2f",
		orderID, bookingID, booking.Pricing.GrandTotal)

	return &models.PaymentOrderResponse{
		BookingID: bookingID,
		OrderID:   orderID,
		Amount:    booking.Pricing.GrandTotal,
		KeyID:     s.keyID,
	}, nil
}

// VerifyPayment проверяет результат оплаты от шлюза и фиксирует его
//
// Успех помечает оплату как paid, бронирование остается в booked до
// подтверждения администратором.
// Неверная подпись помечает оплату как failed, статус бронирования не
// трогается и пользователь может попробовать еще раз
func (s *Service) VerifyPayment(ctx context.Context, bookingID int64, req *models.VerifyPaymentRequest) (*models.VerifyPaymentResponse, error) {
	s.logger.Info("VerifyPayment: booking id=%d, order=%s", bookingID, req.OrderID)

	if req.OrderID == "" || req.PaymentID == "" {
		return nil, fmt.Errorf("%w: orderId and paymentId are required", ErrInvalidInput)
	}

	var resp *models.VerifyPaymentResponse

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, bookingID, "VerifyPayment")
		if err != nil {
			return err
		}

		if err := s.checkAccess(booking, req.UserID, req.IsAdmin); err != nil {
			s.logger.Warn("VerifyPayment: access denied for user=%d to booking id=%d", req.UserID, bookingID)
			return err
		}

		if booking.IsPaid() {
			s.logger.Warn("VerifyPayment: booking id=%d is already paid", bookingID)
			return ErrAlreadyPaid
		}

		if booking.PaymentOrderID == nil {
			s.logger.Warn("VerifyPayment: booking id=%d has no payment order", bookingID)
			return ErrNoPaymentOrder
		}

		if *booking.PaymentOrderID != req.OrderID {
			s.logger.Warn("VerifyPayment: order mismatch for booking id=%d", bookingID)
			return ErrOrderMismatch
		}

		// Проверка подписи, в TestMode пропускается
		if !s.verifySignature(req.OrderID, req.PaymentID, req.Signature) {
			s.logger.Warn("VerifyPayment: invalid signature for booking id=%d, order=%s", bookingID, req.OrderID)

			if err := s.bookingRepo.SetPaymentStatus(txCtx, bookingID, domain.PaymentFailed); err != nil {
				s.logger.Error("VerifyPayment: failed to mark payment failed for booking id=%d: %v", bookingID, err)
				return fmt.Errorf("%w: VerifyPayment - repository error: %v", ErrInternal, err)
			}

			s.incVerification("invalid_signature")
			return ErrInvalidSignature
		}

		// Доступность проверяется всегда, даже в TestMode
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
			s.logger.Error("VerifyPayment: availability re-check failed for booking id=%d: %v", bookingID, err)
			s.incVerification("error")
			return fmt.Errorf("%w: availability re-check failed: %v", ErrInternal, err)
		}

		if !check.Available {
			s.logger.Warn("VerifyPayment: capacity lost for booking id=%d: %s", bookingID, check.Reason)
			s.incVerification("capacity_lost")
			return &CapacityError{Reason: check.Reason}
		}

		// Оплата не подтверждает бронирование: статус остается booked,
		// подтверждение выполняет администратор отдельным переходом
		paymentID := req.PaymentID
		if err := s.bookingRepo.SetPaymentResult(txCtx, bookingID, domain.StatusBooked, domain.PaymentPaid, &paymentID); err != nil {
			s.logger.Error("VerifyPayment: failed to store payment result for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: VerifyPayment - repository error: %v", ErrInternal, err)
		}

		resp = &models.VerifyPaymentResponse{
			BookingID:     bookingID,
			Status:        string(domain.StatusBooked),
			PaymentStatus: string(domain.PaymentPaid),
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.incVerification("ok")
	s.logger.Info("VerifyPayment: booking id=%d marked paid", bookingID)

	return resp, nil
}

// verifySignature сверяет подпись шлюза
// Сообщение - "orderID|paymentID", ключ - keySecret, сравнение в
// постоянном времени
func (s *Service) verifySignature(orderID, paymentID, signature string) bool {
	if s.testMode {
		return true
	}

	mac := hmac.New(sha256.New, []byte(s.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}

// Вспомогательные методы

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

func (s *Service) checkAccess(booking *domain.Booking, userID int64, isAdmin bool) error {
	if booking.UserID == userID || isAdmin {
		return nil
	}
	return ErrAccessDenied
}

func (s *Service) incVerification(result string) {
	if s.metrics != nil {
		s.metrics.IncPaymentVerification(result)
	}
}
