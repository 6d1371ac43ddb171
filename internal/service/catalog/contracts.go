package catalog

import (
	"context"

	"github.com/m04kA/SMC-SlotReservation/internal/domain"
)

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	List(ctx context.Context) ([]domain.Service, error)
	ListNames(ctx context.Context) ([]string, error)
}

// Cache кэш каталога
type Cache interface {
	GetServices(ctx context.Context) ([]domain.Service, bool, error)
	SetServices(ctx context.Context, services []domain.Service) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
