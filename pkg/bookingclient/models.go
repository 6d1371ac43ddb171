package bookingclient

import "time"

// Service услуга каталога
type Service struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"durationMinutes"`
}

// Slot свободный слот
type Slot struct {
	ID        string    `json:"id"`
	StartAt   time.Time `json:"startAt"`
	EndAt     time.Time `json:"endAt"`
	TimeRange string    `json:"timeRange"`
}

// Day слоты одной даты
type Day struct {
	DateKey string `json:"dateKey"`
	Label   string `json:"label"`
	Slots   []Slot `json:"slots"`
}

// OpenSlots свободные слоты услуги
type OpenSlots struct {
	ServiceID string `json:"serviceId"`
	Slots     []Slot `json:"slots"`
	Days      []Day  `json:"days"`
}

// ReserveRequest запрос бронирования
type ReserveRequest struct {
	ServiceID   string `json:"serviceId"`
	TimeSlotID  string `json:"timeSlotId"`
	CompanyName string `json:"companyName"`
	ContactName string `json:"contactName"`
	Phone       string `json:"phone"`
}

// Booking созданное бронирование
type Booking struct {
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

// BookingView бронирование в списке
type BookingView struct {
	BookingID   string    `json:"bookingId"`
	CompanyName string    `json:"companyName"`
	ContactName string    `json:"contactName"`
	Phone       string    `json:"phone"`
	ServiceName string    `json:"serviceName"`
	StartAt     time.Time `json:"startAt"`
	EndAt       time.Time `json:"endAt"`
	CreatedAt   time.Time `json:"createdAt"`
}

// BookingsQuery фильтры списка. Пустые строки не фильтруют.
type BookingsQuery struct {
	Service  string
	DateFrom string // YYYY-MM-DD
	DateTo   string // YYYY-MM-DD
	Search   string
	Page     int
}

// BookingsPage страница бронирований
type BookingsPage struct {
	Items      []BookingView `json:"items"`
	TotalCount int           `json:"totalCount"`
	Page       int           `json:"page"`
	PageSize   int           `json:"pageSize"`
	TotalPages int           `json:"totalPages"`
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field"`
}
