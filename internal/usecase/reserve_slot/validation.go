package reserve_slot

import (
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SlotReservation/internal/domain"
)

// validateRequest проверяет запрос до обращения к хранилищу
// и возвращает нормализованные данные клиента
func validateRequest(req *Request, minPhoneDigits int) (domain.Customer, error) {
	if req == nil {
		return domain.Customer{}, domain.NewFieldError("request", "request is required")
	}

	if err := validateID("serviceId", req.ServiceID); err != nil {
		return domain.Customer{}, err
	}
	if err := validateID("timeSlotId", req.TimeSlotID); err != nil {
		return domain.Customer{}, err
	}

	customer := domain.Customer{
		CompanyName: req.CompanyName,
		ContactName: req.ContactName,
		Phone:       req.Phone,
	}.Normalize()

	if err := customer.ValidateWith(minPhoneDigits); err != nil {
		return domain.Customer{}, err
	}

	return customer, nil
}

func validateID(field, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.NewFieldError(field, field+" is required")
	}
	if _, err := uuid.Parse(id); err != nil {
		return domain.NewFieldError(field, field+" is not a valid id")
	}
	return nil
}
