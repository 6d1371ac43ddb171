package timeslot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotReservation/internal/domain"
)

func TestListOpenQuery(t *testing.T) {
	asOf := time.Date(2025, 9, 22, 12, 0, 0, 0, time.UTC)

	query, args, err := listOpenQuery("svc-1", asOf).ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT id, service_id, start_at, end_at, is_booked FROM time_slots "+
		"WHERE service_id = $1 AND is_booked = $2 AND start_at >= $3 ORDER BY start_at ASC, id ASC", query)
	assert.Equal(t, []interface{}{"svc-1", false, asOf}, args)
}

func TestMarkBookedQueryIsConditional(t *testing.T) {
	asOf := time.Date(2025, 9, 22, 12, 0, 0, 0, time.UTC)

	query, args, err := markBookedQuery("slot-1", "svc-1", asOf).ToSql()
	require.NoError(t, err)

	assert.Equal(t, "UPDATE time_slots SET is_booked = $1 "+
		"WHERE id = $2 AND service_id = $3 AND is_booked = $4 AND start_at >= $5 "+
		"RETURNING id, service_id, start_at, end_at, is_booked", query)
	assert.Equal(t, []interface{}{true, "slot-1", "svc-1", false, asOf}, args)
}

func TestErrors(t *testing.T) {
	assert.ErrorIs(t, ErrSlotNotFound, domain.ErrNotFound)
	assert.NotErrorIs(t, ErrSlotNotAvailable, domain.ErrNotFound)
}

func TestCreateRejectsInvertedWindow(t *testing.T) {
	start := time.Date(2025, 9, 22, 12, 0, 0, 0, time.UTC)
	repo := NewRepository(nil)

	created, err := repo.Create(context.Background(), &domain.TimeSlot{ID: "s", ServiceID: "svc", StartAt: start, EndAt: start})
	assert.False(t, created)
	assert.ErrorIs(t, err, ErrInvalidSlot)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
