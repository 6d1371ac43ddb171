package reserve_slot

import (
	"time"

	reserveSlot "github.com/m04kA/SMC-SlotReservation/internal/usecase/reserve_slot"
)

// ReserveRequest HTTP request model
type ReserveRequest struct {
	ServiceID   string `json:"serviceId"`
	TimeSlotID  string `json:"timeSlotId"`
	CompanyName string `json:"companyName"`
	ContactName string `json:"contactName"`
	Phone       string `json:"phone"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID          string    `json:"id"`
	CompanyName string    `json:"companyName"`
	ContactName string    `json:"contactName"`
	Phone       string    `json:"phone"`
	ServiceID   string    `json:"serviceId"`
	ServiceName string    `json:"serviceName"`
	TimeSlotID  string    `json:"timeSlotId"`
	StartAt     time.Time `json:"startAt"`
	EndAt       time.Time `json:"endAt"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ReserveRequest) ToUseCaseRequest() *reserveSlot.Request {
	return &reserveSlot.Request{
		ServiceID:   r.ServiceID,
		TimeSlotID:  r.TimeSlotID,
		CompanyName: r.CompanyName,
		ContactName: r.ContactName,
		Phone:       r.Phone,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *reserveSlot.Response) *BookingResponse {
	return &BookingResponse{
		ID:          resp.ID,
		CompanyName: resp.CompanyName,
		ContactName: resp.ContactName,
		Phone:       resp.Phone,
		ServiceID:   resp.ServiceID,
		ServiceName: resp.ServiceName,
		TimeSlotID:  resp.TimeSlotID,
		StartAt:     resp.StartAt,
		EndAt:       resp.EndAt,
		CreatedAt:   resp.CreatedAt,
	}
}
