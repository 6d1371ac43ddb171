package booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SlotReservation/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("booking.repository: booking not found: %w", domain.ErrNotFound)

	// ErrSlotAlreadyBooked возвращается при нарушении UNIQUE(time_slot_id):
	// на слот уже есть бронирование
	ErrSlotAlreadyBooked = fmt.Errorf("booking.repository: slot already booked: %w", domain.ErrConflict)

	// ErrReferenceNotFound возвращается, когда услуга или слот из бронирования не существуют
	ErrReferenceNotFound = fmt.Errorf("booking.repository: referenced service or slot not found: %w", domain.ErrNotFound)

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
