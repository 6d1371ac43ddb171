package query_bookings

import "github.com/m04kA/SMC-SlotReservation/internal/service/bookings/models"

// PageResponse HTTP response model. При ошибке items пустой.
type PageResponse struct {
	*models.BookingsPageResponse
	Error string `json:"error,omitempty"`
	Field string `json:"field,omitempty"`
}

// EmptyPage пустая страница для ответа с ошибкой
func EmptyPage(page, pageSize int) *models.BookingsPageResponse {
	if page < 1 {
		page = 1
	}
	return &models.BookingsPageResponse{
		Items:    []models.BookingViewResponse{},
		Page:     page,
		PageSize: pageSize,
	}
}
