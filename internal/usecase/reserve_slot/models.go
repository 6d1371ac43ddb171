package reserve_slot

import "time"

// Request модель запроса на бронирование слота
type Request struct {
	ServiceID   string
	TimeSlotID  string
	CompanyName string
	ContactName string
	Phone       string
}

// Response модель созданного бронирования
type Response struct {
	ID          string
	CompanyName string
	ContactName string
	Phone       string // только цифры
	ServiceID   string
	ServiceName string
	TimeSlotID  string
	StartAt     time.Time
	EndAt       time.Time
	CreatedAt   time.Time
}
