package resources

import (
	"context"
	"time"

	"github.com/m04kA/TTA-BookingService/internal/domain"
)

// ResourceRepository интерфейс репозитория каталога ресурсов
type ResourceRepository interface {
	Find(ctx context.Context, filter domain.ResourceFilter) ([]*domain.Resource, error)
	Get(ctx context.Context, resourceType domain.ResourceType, id int64) (*domain.Resource, error)
	Create(ctx context.Context, resource *domain.Resource) (*domain.Resource, error)
	Update(ctx context.Context, id int64, resource *domain.Resource) error
	SetUnavailableDates(ctx context.Context, id int64, dates []time.Time) error
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
