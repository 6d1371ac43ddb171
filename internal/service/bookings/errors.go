package bookings

import (
	"fmt"

	"github.com/m04kA/SMC-SlotReservation/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("bookings: booking not found: %w", domain.ErrNotFound)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = fmt.Errorf("bookings: internal error: %w", domain.ErrUnavailable)
)
