package bookings

import (
	"context"
	"time"

	"github.com/m04kA/TTA-BookingService/internal/domain"
	"github.com/m04kA/TTA-BookingService/internal/usecase/check_availability"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByUser(ctx context.Context, filter domain.UserBookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	SetPaymentStatus(ctx context.Context, id int64, paymentStatus domain.PaymentStatus) error
	Cancel(ctx context.Context, id int64, reason string) error
	EarlyCheckout(ctx context.Context, id int64, newCheckOut time.Time, newNumberOfDays int) error
	Delete(ctx context.Context, id int64) error
}

// AvailabilityChecker интерфейс движка проверки доступности
// Используется для повторной проверки перед переходом draft -> booked
type AvailabilityChecker interface {
	Execute(ctx context.Context, req *check_availability.Request) (*check_availability.Result, error)
}

// NotifyServiceClient интерфейс клиента сервиса уведомлений
type NotifyServiceClient interface {
	NotifyBooked(ctx context.Context, booking *domain.Booking) error
	NotifyCancelled(ctx context.Context, booking *domain.Booking, reason string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
