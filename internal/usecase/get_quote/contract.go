package get_quote

import (
	"context"

	"github.com/m04kA/TTA-BookingService/internal/domain"
	"github.com/m04kA/TTA-BookingService/internal/usecase/check_availability"
)

// AvailabilityChecker интерфейс движка проверки доступности
type AvailabilityChecker interface {
	Execute(ctx context.Context, req *check_availability.Request) (*check_availability.Result, error)
}

// ResourceRepository интерфейс репозитория каталога ресурсов
type ResourceRepository interface {
	Get(ctx context.Context, resourceType domain.ResourceType, id int64) (*domain.Resource, error)
	GetMany(ctx context.Context, resourceType domain.ResourceType, ids []int64) ([]*domain.Resource, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
