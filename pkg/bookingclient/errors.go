package bookingclient

import "errors"

var (
	// ErrValidation сервер отклонил ввод (400)
	ErrValidation = errors.New("bookingclient: validation error")

	// ErrNotFound услуга или бронирование не найдены (404)
	ErrNotFound = errors.New("bookingclient: not found")

	// ErrConflict слот уже занят, список слотов нужно перечитать (409)
	ErrConflict = errors.New("bookingclient: slot no longer available")

	// ErrUnavailable сервис недоступен или ограничил частоту запросов, можно повторить
	ErrUnavailable = errors.New("bookingclient: service unavailable")

	// ErrInvalidResponse неожиданный ответ сервера
	ErrInvalidResponse = errors.New("bookingclient: invalid response")

	// ErrSuperseded результат запроса устарел и не применён
	ErrSuperseded = errors.New("bookingclient: superseded by a newer request")
)

// FieldError ошибка валидации конкретного поля
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

func (e *FieldError) Unwrap() error {
	return ErrValidation
}
