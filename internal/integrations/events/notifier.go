package events

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotReservation/internal/domain"
)

const publishTimeout = 5 * time.Second

// Notifier отправляет события о бронированиях. Ошибки публикации только
// логируются: бронирование уже зафиксировано.
type Notifier struct {
	publisher Publisher
	logger    Logger
}

// NewNotifier создает notifier. publisher может быть nil - тогда события не отправляются.
func NewNotifier(publisher Publisher, logger Logger) *Notifier {
	return &Notifier{publisher: publisher, logger: logger}
}

// BookingCreated публикует событие booking.created
func (n *Notifier) BookingCreated(ctx context.Context, booking domain.Booking, service domain.Service, slot domain.TimeSlot) {
	if n == nil || n.publisher == nil {
		return
	}

	event := BookingCreated{
		BookingID:   booking.ID,
		CompanyName: booking.CompanyName,
		ContactName: booking.ContactName,
		Phone:       booking.Phone,
		ServiceName: service.Name,
		StartAt:     slot.StartAt.UTC(),
		EndAt:       slot.EndAt.UTC(),
		CreatedAt:   booking.CreatedAt.UTC(),
	}

	// Запрос клиента мог уже завершиться, публикуем со своим таймаутом
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := n.publisher.PublishJSON(pubCtx, RoutingKeyBookingCreated, event); err != nil {
		n.logger.Error("BookingCreated: failed to publish event: booking_id=%s, error=%v", booking.ID, err)
		return
	}

	n.logger.Info("BookingCreated: event published: booking_id=%s", booking.ID)
}
