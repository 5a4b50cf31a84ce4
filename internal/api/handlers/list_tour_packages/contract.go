package list_tour_packages

import (
	"context"

	"github.com/m04kA/TTA-BookingService/internal/service/tours/models"
)

type TourService interface {
	List(ctx context.Context) (*models.TourPackageListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
