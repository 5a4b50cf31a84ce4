package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/TTA-BookingService/internal/domain"
	"github.com/m04kA/TTA-BookingService/internal/usecase/check_availability"
)

// AvailabilityChecker интерфейс движка проверки доступности
// Внутри сериализуемой транзакции подсчеты выполняются с блокировкой строк
type AvailabilityChecker interface {
	Execute(ctx context.Context, req *check_availability.Request) (*check_availability.Result, error)
}

// ResourceRepository интерфейс репозитория каталога ресурсов
type ResourceRepository interface {
	Get(ctx context.Context, resourceType domain.ResourceType, id int64) (*domain.Resource, error)
	GetMany(ctx context.Context, resourceType domain.ResourceType, ids []int64) ([]*domain.Resource, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Metrics интерфейс для инкремента счетчика созданных бронирований (может быть nil)
type Metrics interface {
	IncBookingCreated(kind string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
