package check_availability

import (
	"context"
	"time"

	"github.com/m04kA/TTA-BookingService/internal/domain"
)

// ResourceRepository интерфейс репозитория каталога ресурсов
type ResourceRepository interface {
	Get(ctx context.Context, resourceType domain.ResourceType, id int64) (*domain.Resource, error)
	GetMany(ctx context.Context, resourceType domain.ResourceType, ids []int64) ([]*domain.Resource, error)
}

// BookingRepository интерфейс репозитория бронирований
// Все методы считают только capacity-consuming статусы (см. domain.IsCapacityConsuming)
type BookingRepository interface {
	CountOverlappingForStay(ctx context.Context, stayID int64, rng domain.DateRange, excludeBookingID *int64) (int, error)
	CountOverlappingForTransportation(ctx context.Context, transportationID int64, rng domain.DateRange, excludeBookingID *int64) (int, error)
	SumSightseeingGuestsOnDay(ctx context.Context, sightseeingID int64, day time.Time, excludeBookingID *int64) (int, error)
}

// Metrics интерфейс для инкремента счетчика отказов (может быть nil)
type Metrics interface {
	IncAvailabilityDenial(resourceType string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
