package list_services

import "github.com/m04kA/SMC-SlotReservation/internal/service/catalog/models"

// ServicesResponse HTTP response model. При ошибке services пустой.
type ServicesResponse struct {
	Services []models.ServiceResponse `json:"services"`
	Error    string                   `json:"error,omitempty"`
}
