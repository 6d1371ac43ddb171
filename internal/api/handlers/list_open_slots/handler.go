package list_open_slots

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SlotReservation/internal/api/handlers"
	listOpenSlots "github.com/m04kA/SMC-SlotReservation/internal/usecase/list_open_slots"
	"github.com/m04kA/SMC-SlotReservation/pkg/civiltime"
)

const (
	msgInvalidAsOf     = "некорректный параметр asOf, ожидается RFC3339"
	msgServiceNotFound = "услуга не найдена"
)

type Handler struct {
	useCase ListOpenSlotsUseCase
	zone    civiltime.Zone
	logger  Logger
}

func NewHandler(useCase ListOpenSlotsUseCase, zone civiltime.Zone, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		zone:    zone,
		logger:  logger,
	}
}

// Handle GET /api/v1/services/{serviceId}/open-slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID := mux.Vars(r)["serviceId"]

	req := &listOpenSlots.Request{ServiceID: serviceID}
	if raw := r.URL.Query().Get("asOf"); raw != "" {
		asOf, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.logger.Warn("GET /services/{id}/open-slots - Invalid asOf: %v", err)
			resp := EmptyResponse(serviceID)
			resp.Error = msgInvalidAsOf
			handlers.RespondJSON(w, http.StatusBadRequest, resp)
			return
		}
		req.AsOf = &asOf
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		status := handlers.StatusFromError(err)
		if status == http.StatusNotFound {
			h.logger.Warn("GET /services/{id}/open-slots - Service not found: service_id=%s", serviceID)
		} else {
			h.logger.Error("GET /services/{id}/open-slots - Failed to list slots: service_id=%s, error=%v", serviceID, err)
		}
		resp := EmptyResponse(serviceID)
		resp.Error = handlers.ErrorBody(err, msgServiceNotFound).Error
		handlers.RespondJSON(w, status, resp)
		return
	}

	h.logger.Info("GET /services/{id}/open-slots - Slots listed: service_id=%s, count=%d", serviceID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result, h.zone))
}
