package timeslot

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SlotReservation/internal/domain"
)

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = fmt.Errorf("timeslot.repository: slot not found: %w", domain.ErrNotFound)

	// ErrSlotNotAvailable возвращается, когда условное обновление не затронуло ни одной строки:
	// слот уже забронирован, уже начался или не принадлежит услуге
	ErrSlotNotAvailable = errors.New("timeslot.repository: slot not available")

	// ErrInvalidSlot возвращается, когда начало слота не раньше конца
	ErrInvalidSlot = fmt.Errorf("timeslot.repository: start must be before end: %w", domain.ErrValidation)

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("timeslot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("timeslot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("timeslot.repository: failed to scan row")
)
