package get_resource

import (
	"context"

	"github.com/m04kA/TTA-BookingService/internal/service/resources/models"
)

type ResourceService interface {
	Get(ctx context.Context, resourceType string, id int64) (*models.ResourceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
