// Package schema хранит DDL хранилища бронирований
package schema

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SlotReservation/pkg/dbmetrics"
)

//go:embed schema.sql
var ddl string

// ErrApply ошибка применения схемы
var ErrApply = errors.New("schema: failed to apply")

// DDL возвращает SQL схемы
func DDL() string {
	return ddl
}

// Apply создает таблицы, индексы и представление, если их ещё нет
func Apply(ctx context.Context, db dbmetrics.DBExecutor) error {
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("%w: %v", ErrApply, err)
	}
	return nil
}
