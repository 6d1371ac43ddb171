package export_bookings

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-SlotReservation/internal/api/handlers"
	"github.com/m04kA/SMC-SlotReservation/internal/domain"
	"github.com/m04kA/SMC-SlotReservation/internal/export"
	"github.com/m04kA/SMC-SlotReservation/pkg/civiltime"
)

const (
	msgExportFailed = "не удалось выгрузить бронирования"
	fileName        = "agendamentos"
)

// Handler выгружает текущую страницу выборки в CSV или XLSX
type Handler struct {
	service BookingService
	format  string
	zone    civiltime.Zone
	metrics Metrics
	logger  Logger
}

func NewHandler(service BookingService, format string, zone civiltime.Zone, metrics Metrics, logger Logger) (*Handler, error) {
	if _, err := export.ContentType(format); err != nil {
		return nil, err
	}
	return &Handler{
		service: service,
		format:  format,
		zone:    zone,
		metrics: metrics,
		logger:  logger,
	}, nil
}

// Handle GET /api/v1/bookings/export.{csv,xlsx}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := handlers.ParseBookingsQuery(r)
	if err != nil {
		h.logger.Warn("GET /bookings/export.%s - Invalid query: %v", h.format, err)
		handlers.RespondDomainError(w, err, msgExportFailed)
		return
	}

	page, err := h.service.Query(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /bookings/export.%s - Failed to query bookings: %v", h.format, err)
		handlers.RespondDomainError(w, err, msgExportFailed)
		return
	}

	views := make([]domain.BookingView, 0, len(page.Items))
	for _, item := range page.Items {
		views = append(views, item.ToDomainBookingView())
	}

	// Рендерим в буфер, чтобы при ошибке ещё можно было ответить кодом 500
	var buf bytes.Buffer
	if err := export.Write(&buf, h.format, views, h.zone); err != nil {
		h.logger.Error("GET /bookings/export.%s - Failed to render: %v", h.format, err)
		handlers.RespondInternalError(w)
		return
	}

	contentType, _ := export.ContentType(h.format)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("%s-p%d.%s", fileName, page.Page, h.format)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())

	if h.metrics != nil {
		h.metrics.IncExport(h.format)
	}
	h.logger.Info("GET /bookings/export.%s - Exported: page=%d, rows=%d", h.format, page.Page, len(views))
}
