package list_open_slots

import (
	"time"

	"github.com/m04kA/SMC-SlotReservation/internal/domain"
	listOpenSlots "github.com/m04kA/SMC-SlotReservation/internal/usecase/list_open_slots"
	"github.com/m04kA/SMC-SlotReservation/pkg/civiltime"
)

// SlotResponse свободный слот
type SlotResponse struct {
	ID        string    `json:"id"`
	StartAt   time.Time `json:"startAt"`
	EndAt     time.Time `json:"endAt"`
	TimeRange string    `json:"timeRange"` // "09:00 - 10:00"
}

// DayResponse слоты одной даты
type DayResponse struct {
	DateKey string         `json:"dateKey"`
	Label   string         `json:"label"`
	Slots   []SlotResponse `json:"slots"`
}

// OpenSlotsResponse HTTP response model. При ошибке списки пустые.
type OpenSlotsResponse struct {
	ServiceID string         `json:"serviceId"`
	AsOf      *time.Time     `json:"asOf,omitempty"`
	Slots     []SlotResponse `json:"slots"`
	Days      []DayResponse  `json:"days"`
	Error     string         `json:"error,omitempty"`
}

// EmptyResponse ответ без слотов
func EmptyResponse(serviceID string) OpenSlotsResponse {
	return OpenSlotsResponse{
		ServiceID: serviceID,
		Slots:     []SlotResponse{},
		Days:      []DayResponse{},
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *listOpenSlots.Response, zone civiltime.Zone) OpenSlotsResponse {
	asOf := resp.AsOf
	out := OpenSlotsResponse{
		ServiceID: resp.ServiceID,
		AsOf:      &asOf,
		Slots:     toSlots(resp.Slots, zone),
		Days:      make([]DayResponse, 0, len(resp.Days)),
	}
	for _, day := range resp.Days {
		out.Days = append(out.Days, DayResponse{
			DateKey: day.Key,
			Label:   day.Label,
			Slots:   toSlots(day.Slots, zone),
		})
	}
	return out
}

func toSlots(slots []domain.TimeSlot, zone civiltime.Zone) []SlotResponse {
	out := make([]SlotResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, SlotResponse{
			ID:        s.ID,
			StartAt:   s.StartAt,
			EndAt:     s.EndAt,
			TimeRange: zone.TimeRange(s.StartAt, s.EndAt),
		})
	}
	return out
}
