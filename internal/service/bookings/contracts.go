package bookings

import (
	"context"

	"github.com/m04kA/SMC-SlotReservation/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetViewByID(ctx context.Context, id string) (*domain.BookingView, error)
	CountViews(ctx context.Context, filter domain.BookingsFilter) (int, error)
	ListViews(ctx context.Context, filter domain.BookingsFilter, limit, offset int) ([]domain.BookingView, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
