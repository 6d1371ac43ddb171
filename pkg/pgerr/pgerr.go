// Package pgerr классифицирует ошибки драйвера lib/pq по SQLSTATE кодам.
package pgerr

import (
	"errors"

	"github.com/lib/pq"
)

// SQLSTATE коды, которые обрабатываются приложением
const (
	CodeUniqueViolation      = "23505"
	CodeForeignKeyViolation  = "23503"
	CodeSerializationFailure = "40001"
	CodeDeadlockDetected     = "40P01"
	CodeInvalidTextRepr      = "22P02"
)

// ErrSerializationFailure оборачивает конфликт сериализуемой транзакции,
// чтобы менеджер транзакций мог повторить попытку.
var ErrSerializationFailure = errors.New("pgerr: serialization failure")

// Code возвращает SQLSTATE код ошибки PostgreSQL или пустую строку
func Code(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// IsUniqueViolation нарушение UNIQUE ограничения
func IsUniqueViolation(err error) bool {
	return Code(err) == CodeUniqueViolation
}

// IsForeignKeyViolation нарушение внешнего ключа
func IsForeignKeyViolation(err error) bool {
	return Code(err) == CodeForeignKeyViolation
}

// IsInvalidTextRepresentation некорректный литерал (например, uuid)
func IsInvalidTextRepresentation(err error) bool {
	return Code(err) == CodeInvalidTextRepr
}

// IsSerializationFailure конфликт сериализации или дедлок - транзакцию можно повторить
func IsSerializationFailure(err error) bool {
	if errors.Is(err, ErrSerializationFailure) {
		return true
	}
	code := Code(err)
	return code == CodeSerializationFailure || code == CodeDeadlockDetected
}
