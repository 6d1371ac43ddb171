package reserve_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotReservation/internal/api/handlers"
	"github.com/m04kA/SMC-SlotReservation/internal/domain"
	reserveSlot "github.com/m04kA/SMC-SlotReservation/internal/usecase/reserve_slot"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgSlotNotAvailable   = "выбранный слот больше недоступен, обновите список"
	msgServiceNotFound    = "услуга не найдена"
)

type Handler struct {
	useCase ReserveSlotUseCase
	logger  Logger
}

func NewHandler(useCase ReserveSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ReserveRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("POST /reservations - Validation failed: slot_id=%s, error=%v", req.TimeSlotID, err)
			handlers.RespondDomainError(w, err, msgInvalidRequestBody)

		case errors.Is(err, reserveSlot.ErrSlotNotAvailable):
			h.logger.Warn("POST /reservations - Slot not available: slot_id=%s", req.TimeSlotID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, reserveSlot.ErrServiceNotFound):
			h.logger.Warn("POST /reservations - Service not found: service_id=%s", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		default:
			h.logger.Error("POST /reservations - Failed to reserve slot: slot_id=%s, error=%v", req.TimeSlotID, err)
			handlers.RespondDomainError(w, err, msgInvalidRequestBody)
		}
		return
	}

	h.logger.Info("POST /reservations - Slot reserved: booking_id=%s, slot_id=%s", result.ID, result.TimeSlotID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
