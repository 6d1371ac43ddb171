// Package storagetest поднимает схему в тестовой базе PostgreSQL.
// Тесты с базой запускаются, только если задана SMC_TEST_DATABASE_DSN.
package storagetest

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotReservation/internal/domain"
	"github.com/m04kA/SMC-SlotReservation/internal/infra/storage/schema"
)

// DSNEnv переменная окружения с DSN тестовой базы
const DSNEnv = "SMC_TEST_DATABASE_DSN"

// Open подключается к тестовой базе, применяет схему и очищает таблицы.
// Если DSN не задан, тест пропускается.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv(DSNEnv)
	if dsn == "" {
		t.Skipf("%s is not set", DSNEnv)
	}

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	require.NoError(t, db.PingContext(ctx))
	require.NoError(t, schema.Apply(ctx, db))
	_, err = db.ExecContext(ctx, "TRUNCATE bookings, time_slots, services")
	require.NoError(t, err)

	return db
}

// InsertService добавляет услугу напрямую
func InsertService(t *testing.T, db *sql.DB, name string, durationMinutes int) domain.Service {
	t.Helper()

	s := domain.Service{ID: uuid.NewString(), Name: name, DurationMinutes: durationMinutes}
	err := db.QueryRow(
		"INSERT INTO services (id, name, duration_minutes) VALUES ($1, $2, $3) RETURNING created_at",
		s.ID, s.Name, s.DurationMinutes,
	).Scan(&s.CreatedAt)
	require.NoError(t, err)

	return s
}

// InsertSlot добавляет свободный слот напрямую
func InsertSlot(t *testing.T, db *sql.DB, serviceID string, start time.Time, duration time.Duration) domain.TimeSlot {
	t.Helper()

	slot := domain.TimeSlot{
		ID:        uuid.NewString(),
		ServiceID: serviceID,
		StartAt:   start,
		EndAt:     start.Add(duration),
	}
	_, err := db.Exec(
		"INSERT INTO time_slots (id, service_id, start_at, end_at, is_booked) VALUES ($1, $2, $3, $4, FALSE)",
		slot.ID, slot.ServiceID, slot.StartAt, slot.EndAt,
	)
	require.NoError(t, err)

	return slot
}
