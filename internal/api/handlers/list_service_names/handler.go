package list_service_names

import (
	"net/http"

	"github.com/m04kA/SMC-SlotReservation/internal/api/handlers"
)

const msgLoadFailed = "не удалось загрузить названия услуг"

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/services/names
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	names, err := h.service.ListServiceNames(r.Context())
	if err != nil {
		h.logger.Error("GET /services/names - Failed to list service names: %v", err)
		handlers.RespondJSON(w, handlers.StatusFromError(err), NamesResponse{
			Names: []string{},
			Error: handlers.ErrorBody(err, msgLoadFailed).Error,
		})
		return
	}

	if names == nil {
		names = []string{}
	}
	handlers.RespondJSON(w, http.StatusOK, NamesResponse{Names: names})
}
