package models

import "github.com/m04kA/SMC-SlotReservation/internal/domain"

// ServiceResponse услуга каталога
type ServiceResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"durationMinutes"`
}

// FromDomainService конвертирует domain.Service в ответ
func FromDomainService(s domain.Service) ServiceResponse {
	return ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		DurationMinutes: s.DurationMinutes,
	}
}

// FromDomainServices конвертирует список услуг
func FromDomainServices(services []domain.Service) []ServiceResponse {
	out := make([]ServiceResponse, 0, len(services))
	for _, s := range services {
		out = append(out, FromDomainService(s))
	}
	return out
}
