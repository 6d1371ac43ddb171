package models

import (
	"time"

	"github.com/m04kA/SMC-SlotReservation/internal/domain"
)

// QueryRequest запрос списка бронирований. Все фильтры опциональны.
type QueryRequest struct {
	ServiceName *string // точное совпадение
	DateFrom    *string // YYYY-MM-DD, включительно, с 00:00:00 местного времени
	DateTo      *string // YYYY-MM-DD, включительно, до 23:59:59 местного времени
	SearchText  *string // подстрока в компании, контакте или телефоне
	Page        int     // с 1; 0 означает первую страницу
}

// BookingViewResponse бронирование с данными услуги и слота
type BookingViewResponse struct {
	BookingID   string    `json:"bookingId"`
	CompanyName string    `json:"companyName"`
	ContactName string    `json:"contactName"`
	Phone       string    `json:"phone"`
	ServiceName string    `json:"serviceName"`
	StartAt     time.Time `json:"startAt"`
	EndAt       time.Time `json:"endAt"`
	CreatedAt   time.Time `json:"createdAt"`
}

// BookingsPageResponse страница бронирований
type BookingsPageResponse struct {
	Items      []BookingViewResponse `json:"items"`
	TotalCount int                   `json:"totalCount"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"pageSize"`
	TotalPages int                   `json:"totalPages"`
}

// FromDomainBookingView конвертирует domain.BookingView в ответ
func FromDomainBookingView(v domain.BookingView) BookingViewResponse {
	return BookingViewResponse{
		BookingID:   v.BookingID,
		CompanyName: v.CompanyName,
		ContactName: v.ContactName,
		Phone:       v.Phone,
		ServiceName: v.ServiceName,
		StartAt:     v.StartAt,
		EndAt:       v.EndAt,
		CreatedAt:   v.CreatedAt,
	}
}

// ToDomainBookingView обратное преобразование, нужно экспорту
func (r BookingViewResponse) ToDomainBookingView() domain.BookingView {
	return domain.BookingView{
		BookingID:   r.BookingID,
		CompanyName: r.CompanyName,
		ContactName: r.ContactName,
		Phone:       r.Phone,
		ServiceName: r.ServiceName,
		StartAt:     r.StartAt,
		EndAt:       r.EndAt,
		CreatedAt:   r.CreatedAt,
	}
}

// FromDomainBookingsPage конвертирует страницу
func FromDomainBookingsPage(p domain.BookingsPage) *BookingsPageResponse {
	items := make([]BookingViewResponse, 0, len(p.Items))
	for _, v := range p.Items {
		items = append(items, FromDomainBookingView(v))
	}
	return &BookingsPageResponse{
		Items:      items,
		TotalCount: p.TotalCount,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: p.TotalPages(),
	}
}
