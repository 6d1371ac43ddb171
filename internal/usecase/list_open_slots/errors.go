package list_open_slots

import (
	"fmt"

	"github.com/m04kA/SMC-SlotReservation/internal/domain"
)

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = fmt.Errorf("list_open_slots: service not found: %w", domain.ErrNotFound)

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = fmt.Errorf("list_open_slots: internal error: %w", domain.ErrUnavailable)
)
