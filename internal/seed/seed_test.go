package seed

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotReservation/internal/domain"
	"github.com/m04kA/SMC-SlotReservation/pkg/civiltime"
	"github.com/m04kA/SMC-SlotReservation/pkg/logger"
)

var zone = civiltime.MustLoad(domain.DefaultTimezone)

const fixtureYAML = `
services:
  - name: Consultoria
    duration_minutes: 60
    slots:
      - "2025-09-22 09:00"
      - "2025-09-22 10:00"
      - "2025-09-22 09:00"
  - name: Auditoria
    duration_minutes: 30
`

func TestDecodeAndPlan(t *testing.T) {
	f, err := Decode(strings.NewReader(fixtureYAML))
	require.NoError(t, err)

	plans, err := f.Plan(zone)
	require.NoError(t, err)
	require.Len(t, plans, 2)

	consult := plans[0]
	assert.Equal(t, "Consultoria", consult.Service.Name)
	assert.NotEmpty(t, consult.Service.ID)
	require.Len(t, consult.Slots, 2, "duplicate start is dropped")

	// 09:00 в Сан-Паулу = 12:00 UTC
	assert.Equal(t, time.Date(2025, 9, 22, 12, 0, 0, 0, time.UTC), consult.Slots[0].StartAt)
	assert.Equal(t, time.Date(2025, 9, 22, 13, 0, 0, 0, time.UTC), consult.Slots[0].EndAt)
	assert.NotEqual(t, consult.Slots[0].ID, consult.Slots[1].ID)

	assert.Empty(t, plans[1].Slots)
}

func TestPlan_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown key", "services:\n  - name: A\n    duration: 10\n"},
		{"missing name", "services:\n  - duration_minutes: 10\n"},
		{"zero duration", "services:\n  - name: A\n    duration_minutes: 0\n"},
		{"duplicate service", "services:\n  - name: A\n    duration_minutes: 10\n  - name: A\n    duration_minutes: 20\n"},
		{"bad slot", "services:\n  - name: A\n    duration_minutes: 10\n    slots: [\"22/09/2025 09:00\"]\n"},
		{"bad timezone", "timezone: Mars/Olympus\nservices: []\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Decode(strings.NewReader(tt.yaml))
			if err == nil {
				_, err = f.Plan(zone)
			}
			assert.ErrorIs(t, err, ErrInvalidFixture)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

type memServices struct {
	byName map[string]string
}

func (m *memServices) Upsert(_ context.Context, s *domain.Service) (*domain.Service, error) {
	if id, ok := m.byName[s.Name]; ok {
		s.ID = id
	} else {
		m.byName[s.Name] = s.ID
	}
	return s, nil
}

type memSlots struct {
	keys map[string]bool
	err  error
}

func (m *memSlots) Create(_ context.Context, slot *domain.TimeSlot) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	key := slot.ServiceID + "|" + slot.StartAt.String()
	if m.keys[key] {
		return false, nil
	}
	m.keys[key] = true
	return true, nil
}

type inlineTx struct{}

func (inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func TestLoader_Idempotent(t *testing.T) {
	f, err := Decode(strings.NewReader(fixtureYAML))
	require.NoError(t, err)

	services := &memServices{byName: map[string]string{}}
	slots := &memSlots{keys: map[string]bool{}}
	loader := NewLoader(services, slots, inlineTx{}, logger.Nop())

	plans, err := f.Plan(zone)
	require.NoError(t, err)
	stats, err := loader.Load(context.Background(), plans)
	require.NoError(t, err)
	assert.Equal(t, Stats{Services: 2, SlotsCreated: 2}, stats)

	plans, err = f.Plan(zone)
	require.NoError(t, err)
	stats, err = loader.Load(context.Background(), plans)
	require.NoError(t, err)
	assert.Equal(t, Stats{Services: 2, SlotsSkipped: 2}, stats)
}

func TestLoader_Error(t *testing.T) {
	f, err := Decode(strings.NewReader(fixtureYAML))
	require.NoError(t, err)
	plans, err := f.Plan(zone)
	require.NoError(t, err)

	boom := errors.New("boom")
	loader := NewLoader(&memServices{byName: map[string]string{}}, &memSlots{err: boom}, inlineTx{}, logger.Nop())

	stats, err := loader.Load(context.Background(), plans)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, Stats{}, stats)
}
