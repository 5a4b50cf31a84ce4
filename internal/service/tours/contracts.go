package tours

import (
	"context"

	"github.com/m04kA/TTA-BookingService/internal/domain"
)

// TourRepository интерфейс репозитория туров
type TourRepository interface {
	ListActive(ctx context.Context) ([]*domain.TourPackage, error)
	GetByID(ctx context.Context, id int64) (*domain.TourPackage, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
