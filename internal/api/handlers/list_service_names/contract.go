package list_service_names

import "context"

type CatalogService interface {
	ListServiceNames(ctx context.Context) ([]string, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
