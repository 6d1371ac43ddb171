package healthz

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SlotReservation/internal/api/handlers"
)

const pingTimeout = 2 * time.Second

// Pinger проверка соединения с базой
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Logger interface {
	Warn(format string, v ...interface{})
}

type Handler struct {
	db     Pinger
	logger Logger
}

func NewHandler(db Pinger, logger Logger) *Handler {
	return &Handler{db: db, logger: logger}
}

// StatusResponse HTTP response model
type StatusResponse struct {
	Status string `json:"status"`
}

// Handle GET /healthz
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Warn("GET /healthz - Database ping failed: %v", err)
		handlers.RespondJSON(w, http.StatusServiceUnavailable, StatusResponse{Status: "unavailable"})
		return
	}
	handlers.RespondJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}
