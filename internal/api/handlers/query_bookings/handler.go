package query_bookings

import (
	"net/http"

	"github.com/m04kA/SMC-SlotReservation/internal/api/handlers"
)

const msgQueryFailed = "не удалось загрузить бронирования"

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := handlers.ParseBookingsQuery(r)
	if err != nil {
		h.logger.Warn("GET /bookings - Invalid query: %v", err)
		h.respondError(w, err, 1)
		return
	}

	page, err := h.service.Query(r.Context(), req)
	if err != nil {
		if handlers.StatusFromError(err) == http.StatusBadRequest {
			h.logger.Warn("GET /bookings - Invalid filter: %v", err)
		} else {
			h.logger.Error("GET /bookings - Failed to query bookings: %v", err)
		}
		h.respondError(w, err, req.Page)
		return
	}

	h.logger.Info("GET /bookings - Bookings listed: page=%d, items=%d, total=%d",
		page.Page, len(page.Items), page.TotalCount)
	handlers.RespondJSON(w, http.StatusOK, PageResponse{BookingsPageResponse: page})
}

func (h *Handler) respondError(w http.ResponseWriter, err error, page int) {
	body := handlers.ErrorBody(err, msgQueryFailed)
	handlers.RespondJSON(w, handlers.StatusFromError(err), PageResponse{
		BookingsPageResponse: EmptyPage(page, h.service.PageSize()),
		Error:                body.Error,
		Field:                body.Field,
	})
}
