package delete_resource

import "context"

type ResourceService interface {
	Delete(ctx context.Context, resourceType string, id int64, isAdmin bool) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
