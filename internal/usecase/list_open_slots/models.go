package list_open_slots

import (
	"time"

	"github.com/m04kA/SMC-SlotReservation/internal/domain"
)

// Request модель запроса свободных слотов
type Request struct {
	ServiceID string
	AsOf      *time.Time // момент отсечения, не раньше текущего времени
}

// Response свободные слоты услуги по возрастанию начала и они же по дням
type Response struct {
	ServiceID string
	AsOf      time.Time
	Slots     []domain.TimeSlot
	Days      Days
}
