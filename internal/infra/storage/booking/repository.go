package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SlotReservation/internal/domain"
	"github.com/m04kA/SMC-SlotReservation/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotReservation/pkg/pgerr"
	"github.com/m04kA/SMC-SlotReservation/pkg/psqlbuilder"
)

const viewTable = "bookings_with_details"

var viewColumns = []string{
	"booking_id",
	"company_name",
	"contact_name",
	"phone",
	"service_name",
	"start_at",
	"end_at",
	"created_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование. Вызывается в той же транзакции, что и
// timeslot.Repository.MarkBooked. UNIQUE(time_slot_id) гарантирует не больше
// одного бронирования на слот даже при ошибке в логике выше.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"company_name",
			"contact_name",
			"phone",
			"service_id",
			"time_slot_id",
		).
		Values(
			booking.ID,
			booking.CompanyName,
			booking.ContactName,
			booking.Phone,
			booking.ServiceID,
			booking.TimeSlotID,
		).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.CreatedAt)
	if err != nil {
		switch {
		case pgerr.IsUniqueViolation(err):
			return nil, ErrSlotAlreadyBooked
		case pgerr.IsForeignKeyViolation(err):
			return nil, ErrReferenceNotFound
		case pgerr.IsSerializationFailure(err):
			return nil, fmt.Errorf("%w: Create - execute insert: %v", pgerr.ErrSerializationFailure, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return booking, nil
}

// GetViewByID получает бронирование с данными услуги и слота
func (r *Repository) GetViewByID(ctx context.Context, id string) (*domain.BookingView, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(viewColumns...).
		From(viewTable).
		Where(squirrel.Eq{"booking_id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetViewByID - build select query: %v", ErrBuildQuery, err)
	}

	view, err := scanView(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) || pgerr.IsInvalidTextRepresentation(err) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetViewByID - scan booking: %v", ErrScanRow, err)
	}

	return view, nil
}

// CountViews считает бронирования, подходящие под фильтр
func (r *Repository) CountViews(ctx context.Context, filter domain.BookingsFilter) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := countQuery(filter).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountViews - build count query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: CountViews - scan count: %v", ErrScanRow, err)
	}

	return total, nil
}

// ListViews возвращает страницу бронирований, подходящих под фильтр.
// Сортировка: сначала новые (created_at DESC), при равенстве по id.
func (r *Repository) ListViews(ctx context.Context, filter domain.BookingsFilter, limit, offset int) ([]domain.BookingView, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := listQuery(filter, limit, offset).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListViews - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListViews - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	views := make([]domain.BookingView, 0, limit)
	for rows.Next() {
		view, err := scanView(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListViews - scan booking: %v", ErrScanRow, err)
		}
		views = append(views, *view)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListViews - rows error: %v", ErrScanRow, err)
	}

	return views, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanView(row rowScanner) (*domain.BookingView, error) {
	var v domain.BookingView
	err := row.Scan(
		&v.BookingID,
		&v.CompanyName,
		&v.ContactName,
		&v.Phone,
		&v.ServiceName,
		&v.StartAt,
		&v.EndAt,
		&v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func countQuery(filter domain.BookingsFilter) squirrel.SelectBuilder {
	return applyFilter(psqlbuilder.Select("COUNT(*)").From(viewTable), filter)
}

func listQuery(filter domain.BookingsFilter, limit, offset int) squirrel.SelectBuilder {
	return applyFilter(psqlbuilder.Select(viewColumns...).From(viewTable), filter).
		OrderBy("created_at DESC", "booking_id ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset))
}

// applyFilter добавляет условия фильтра, все через AND.
// Текстовый поиск - буквальная подстрока без учёта регистра по названию
// компании, контактному лицу или телефону: метасимволы LIKE экранируются.
func applyFilter(b squirrel.SelectBuilder, filter domain.BookingsFilter) squirrel.SelectBuilder {
	if filter.IsEmpty() {
		return b
	}
	if filter.ServiceName != nil {
		b = b.Where(squirrel.Eq{"service_name": *filter.ServiceName})
	}
	if filter.StartFrom != nil {
		b = b.Where(squirrel.GtOrEq{"start_at": *filter.StartFrom})
	}
	if filter.StartTo != nil {
		b = b.Where(squirrel.LtOrEq{"start_at": *filter.StartTo})
	}
	if filter.SearchText != nil && *filter.SearchText != "" {
		pattern := psqlbuilder.Contains(*filter.SearchText)
		b = b.Where(squirrel.Or{
			squirrel.ILike{"company_name": pattern},
			squirrel.ILike{"contact_name": pattern},
			squirrel.ILike{"phone": pattern},
		})
	}
	return b
}
