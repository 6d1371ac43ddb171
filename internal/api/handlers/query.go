package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-SlotReservation/internal/domain"
	"github.com/m04kA/SMC-SlotReservation/internal/service/bookings/models"
	"github.com/m04kA/SMC-SlotReservation/pkg/ptr"
)

// Параметры запроса списка бронирований
const (
	QueryService  = "service"
	QueryDateFrom = "dateFrom"
	QueryDateTo   = "dateTo"
	QuerySearch   = "q"
	QueryPage     = "page"
)

// ParseBookingsQuery читает фильтры из query string. Пустые значения не задают фильтр.
func ParseBookingsQuery(r *http.Request) (*models.QueryRequest, error) {
	q := r.URL.Query()

	req := &models.QueryRequest{
		ServiceName: optional(q.Get(QueryService)),
		DateFrom:    optional(q.Get(QueryDateFrom)),
		DateTo:      optional(q.Get(QueryDateTo)),
		SearchText:  optional(q.Get(QuerySearch)),
	}

	if raw := strings.TrimSpace(q.Get(QueryPage)); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return nil, domain.NewFieldError(QueryPage, "номер страницы должен быть целым числом")
		}
		req.Page = page
	}

	return req, nil
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return ptr.Ptr(s)
}
