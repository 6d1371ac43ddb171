package list_services

import (
	"net/http"

	"github.com/m04kA/SMC-SlotReservation/internal/api/handlers"
	"github.com/m04kA/SMC-SlotReservation/internal/service/catalog/models"
)

const msgLoadFailed = "не удалось загрузить список услуг"

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

// Handle GET /api/v1/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	services, err := h.service.ListServices(r.Context())
	if err != nil {
		h.logger.Error("GET /services - Failed to list services: %v", err)
		body := handlers.ErrorBody(err, msgLoadFailed)
		handlers.RespondJSON(w, handlers.StatusFromError(err), ServicesResponse{
			Services: []models.ServiceResponse{},
			Error:    body.Error,
		})
		return
	}

	h.logger.Info("GET /services - Services listed: count=%d", len(services))
	handlers.RespondJSON(w, http.StatusOK, ServicesResponse{Services: services})
}
