package list_resources

import (
	"context"

	"github.com/m04kA/TTA-BookingService/internal/service/resources/models"
)

type ResourceService interface {
	Find(ctx context.Context, req *models.FindResourcesRequest) (*models.ResourceListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
