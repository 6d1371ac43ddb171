package catalog

import (
	"fmt"

	"github.com/m04kA/SMC-SlotReservation/internal/domain"
)

var (
	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = fmt.Errorf("catalog: internal error: %w", domain.ErrUnavailable)
)
