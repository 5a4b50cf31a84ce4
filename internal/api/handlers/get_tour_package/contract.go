package get_tour_package

import (
	"context"

	"github.com/m04kA/TTA-BookingService/internal/service/tours/models"
)

type TourService interface {
	Get(ctx context.Context, id int64) (*models.TourPackageResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
