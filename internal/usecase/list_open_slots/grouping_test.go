package list_open_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotReservation/internal/domain"
	"github.com/m04kA/SMC-SlotReservation/pkg/civiltime"
)

func slotAt(id string, start time.Time, d time.Duration) domain.TimeSlot {
	return domain.TimeSlot{ID: id, ServiceID: "svc", StartAt: start, EndAt: start.Add(d)}
}

func TestGroupByDate_SameLocalDay(t *testing.T) {
	zone := civiltime.MustLoad("America/Sao_Paulo")
	slots := []domain.TimeSlot{
		slotAt("a", time.Date(2025, 9, 22, 13, 0, 0, 0, time.UTC), time.Hour),
		slotAt("b", time.Date(2025, 9, 22, 14, 0, 0, 0, time.UTC), time.Hour),
	}

	days := GroupByDate(slots, zone)

	require.Len(t, days, 1)
	assert.Equal(t, "2025-09-22", days[0].Key)
	assert.Equal(t, "segunda-feira, 22/09/2025", days[0].Label)
	assert.Equal(t, []string{"a", "b"}, []string{days[0].Slots[0].ID, days[0].Slots[1].ID})
}

func TestGroupByDate_UsesLocalNotUTCDate(t *testing.T) {
	zone := civiltime.MustLoad("America/Sao_Paulo")
	slots := []domain.TimeSlot{
		// 22/09 22:00 местного, но уже 23/09 по UTC
		slotAt("late", time.Date(2025, 9, 23, 1, 0, 0, 0, time.UTC), time.Hour),
		// 23/09 00:00 местного
		slotAt("midnight", time.Date(2025, 9, 23, 3, 0, 0, 0, time.UTC), time.Hour),
	}

	days := GroupByDate(slots, zone)

	assert.Equal(t, []string{"2025-09-22", "2025-09-23"}, days.Keys())
	day, ok := days.Get("2025-09-23")
	require.True(t, ok)
	assert.Equal(t, "terça-feira, 23/09/2025", day.Label)
	assert.Equal(t, "midnight", day.Slots[0].ID)
}

func TestGroupByDate_HistoricalDST(t *testing.T) {
	zone := civiltime.MustLoad("America/Sao_Paulo")
	slots := []domain.TimeSlot{
		// 03/11/2018 23:30 (-03)
		slotAt("before", time.Date(2018, 11, 4, 2, 30, 0, 0, time.UTC), 30*time.Minute),
		// 04/11/2018 01:00 (-02), после перехода на летнее время
		slotAt("after", time.Date(2018, 11, 4, 3, 0, 0, 0, time.UTC), 30*time.Minute),
	}

	days := GroupByDate(slots, zone)

	assert.Equal(t, []string{"2018-11-03", "2018-11-04"}, days.Keys())
	assert.Equal(t, "domingo, 04/11/2018", days[1].Label)
}

func TestGroupByDate_FirstAppearanceOrder(t *testing.T) {
	zone := civiltime.MustLoad("America/Sao_Paulo")
	d1 := time.Date(2025, 9, 22, 13, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 1)
	slots := []domain.TimeSlot{
		slotAt("x", d2, time.Hour),
		slotAt("y", d1, time.Hour),
		slotAt("z", d2.Add(time.Hour), time.Hour),
	}

	days := GroupByDate(slots, zone)

	assert.Equal(t, []string{"2025-09-23", "2025-09-22"}, days.Keys())
	assert.Len(t, days[0].Slots, 2)
}

func TestGroupByDate_Idempotent(t *testing.T) {
	zone := civiltime.MustLoad("America/Sao_Paulo")
	base := time.Date(2025, 9, 20, 12, 0, 0, 0, time.UTC)

	var slots []domain.TimeSlot
	for i := 0; i < 30; i++ {
		slots = append(slots, slotAt(string(rune('a'+i%26)), base.Add(time.Duration(i)*5*time.Hour), time.Hour))
	}

	assert.Equal(t, GroupByDate(slots, zone), GroupByDate(slots, zone))
}

func TestGroupByDate_Empty(t *testing.T) {
	days := GroupByDate(nil, civiltime.MustLoad("America/Sao_Paulo"))
	assert.NotNil(t, days)
	assert.Empty(t, days)

	_, ok := days.Get("2025-09-22")
	assert.False(t, ok)
}
