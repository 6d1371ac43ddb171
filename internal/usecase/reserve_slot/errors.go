package reserve_slot

import (
	"fmt"

	"github.com/m04kA/SMC-SlotReservation/internal/domain"
)

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = fmt.Errorf("reserve_slot: service not found: %w", domain.ErrNotFound)

	// ErrSlotNotAvailable возвращается, когда слот уже забронирован, уже начался
	// или больше не существует. Клиент должен перечитать список слотов.
	ErrSlotNotAvailable = fmt.Errorf("reserve_slot: slot is no longer available: %w", domain.ErrConflict)

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = fmt.Errorf("reserve_slot: internal error: %w", domain.ErrUnavailable)
)
