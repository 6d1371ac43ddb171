package reserve_slot

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotReservation/internal/domain"
)

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Service, error)
}

// TimeSlotRepository интерфейс репозитория слотов
type TimeSlotRepository interface {
	MarkBooked(ctx context.Context, slotID, serviceID string, asOf time.Time) (*domain.TimeSlot, error)
	GetByID(ctx context.Context, id string) (*domain.TimeSlot, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier отправляет событие о новом бронировании
type Notifier interface {
	BookingCreated(ctx context.Context, booking domain.Booking, service domain.Service, slot domain.TimeSlot)
}

// Metrics счётчик исходов бронирования
type Metrics interface {
	IncReservation(outcome string)
}

// IDGenerator генерирует ID бронирования
type IDGenerator interface {
	NewID() string
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
