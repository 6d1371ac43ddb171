package timeslot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SlotReservation/internal/domain"
	"github.com/m04kA/SMC-SlotReservation/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotReservation/pkg/pgerr"
	"github.com/m04kA/SMC-SlotReservation/pkg/psqlbuilder"
)

var columns = []string{"id", "service_id", "start_at", "end_at", "is_booked"}

// Repository репозиторий временных слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListOpen возвращает свободные слоты услуги, которые начинаются не раньше asOf,
// по возрастанию времени начала
func (r *Repository) ListOpen(ctx context.Context, serviceID string, asOf time.Time) ([]domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := listOpenQuery(serviceID, asOf).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListOpen - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOpen - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]domain.TimeSlot, 0)
	for rows.Next() {
		var s domain.TimeSlot
		if err := rows.Scan(&s.ID, &s.ServiceID, &s.StartAt, &s.EndAt, &s.IsBooked); err != nil {
			return nil, fmt.Errorf("%w: ListOpen - scan slot: %v", ErrScanRow, err)
		}
		slots = append(slots, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListOpen - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// GetByID получает слот по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("time_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.TimeSlot
	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.ServiceID, &s.StartAt, &s.EndAt, &s.IsBooked)
	if errors.Is(err, sql.ErrNoRows) || pgerr.IsInvalidTextRepresentation(err) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return &s, nil
}

// MarkBooked атомарно переводит слот в состояние "забронирован".
// Обновление условное: строка меняется, только если слот принадлежит услуге,
// ещё свободен и начинается не раньше asOf. Из двух конкурентных вызовов
// строку получает только один, второй получает ErrSlotNotAvailable.
func (r *Repository) MarkBooked(ctx context.Context, slotID, serviceID string, asOf time.Time) (*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := markBookedQuery(slotID, serviceID, asOf).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: MarkBooked - build update query: %v", ErrBuildQuery, err)
	}

	var s domain.TimeSlot
	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.ServiceID, &s.StartAt, &s.EndAt, &s.IsBooked)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotAvailable
	}
	if err != nil {
		if pgerr.IsSerializationFailure(err) {
			return nil, fmt.Errorf("%w: MarkBooked - execute update: %v", pgerr.ErrSerializationFailure, err)
		}
		return nil, fmt.Errorf("%w: MarkBooked - execute update: %v", ErrExecQuery, err)
	}

	return &s, nil
}

// Create добавляет слот. Слот с тем же началом для той же услуги пропускается.
// Возвращает true, если слот был создан.
func (r *Repository) Create(ctx context.Context, slot *domain.TimeSlot) (bool, error) {
	if !slot.Valid() {
		return false, fmt.Errorf("%w: id=%s", ErrInvalidSlot, slot.ID)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("time_slots").
		Columns("id", "service_id", "start_at", "end_at", "is_booked").
		Values(slot.ID, slot.ServiceID, slot.StartAt, slot.EndAt, slot.IsBooked).
		Suffix("ON CONFLICT (service_id, start_at) DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: Create - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

func listOpenQuery(serviceID string, asOf time.Time) squirrel.SelectBuilder {
	return psqlbuilder.Select(columns...).
		From("time_slots").
		Where(squirrel.Eq{"service_id": serviceID}).
		Where(squirrel.Eq{"is_booked": false}).
		Where(squirrel.GtOrEq{"start_at": asOf}).
		OrderBy("start_at ASC", "id ASC")
}

func markBookedQuery(slotID, serviceID string, asOf time.Time) squirrel.UpdateBuilder {
	return psqlbuilder.Update("time_slots").
		Set("is_booked", true).
		Where(squirrel.Eq{"id": slotID}).
		Where(squirrel.Eq{"service_id": serviceID}).
		Where(squirrel.Eq{"is_booked": false}).
		Where(squirrel.GtOrEq{"start_at": asOf}).
		Suffix("RETURNING id, service_id, start_at, end_at, is_booked")
}
