package events

import "time"

// RoutingKeyBookingCreated ключ события о новом бронировании
const RoutingKeyBookingCreated = "booking.created"

// BookingCreated событие для сервиса уведомлений
type BookingCreated struct {
	BookingID   string    `json:"bookingId"`
	CompanyName string    `json:"companyName"`
	ContactName string    `json:"contactName"`
	Phone       string    `json:"phone"`
	ServiceName string    `json:"serviceName"`
	StartAt     time.Time `json:"startAt"`
	EndAt       time.Time `json:"endAt"`
	CreatedAt   time.Time `json:"createdAt"`
}
