package list_open_slots

import (
	"github.com/m04kA/SMC-SlotReservation/internal/domain"
	"github.com/m04kA/SMC-SlotReservation/pkg/civiltime"
)

// Day слоты одной календарной даты в часовом поясе
type Day struct {
	Key   string // "2006-01-02"
	Label string // "segunda-feira, 22/09/2025"
	Slots []domain.TimeSlot
}

// Days группы по датам в порядке первого появления даты во входе
type Days []Day

// Keys ключи дат по порядку
func (d Days) Keys() []string {
	keys := make([]string, 0, len(d))
	for _, day := range d {
		keys = append(keys, day.Key)
	}
	return keys
}

// Get возвращает группу по ключу даты
func (d Days) Get(key string) (Day, bool) {
	for _, day := range d {
		if day.Key == key {
			return day, true
		}
	}
	return Day{}, false
}

// GroupByDate раскладывает слоты по гражданской дате начала в поясе zone.
// Порядок слотов внутри дня сохраняется, порядок дней - по первому появлению.
// Функция чистая: одинаковый вход даёт одинаковый результат.
func GroupByDate(slots []domain.TimeSlot, zone civiltime.Zone) Days {
	days := make(Days, 0)
	index := make(map[string]int)

	for _, slot := range slots {
		key := zone.DateKey(slot.StartAt)
		i, ok := index[key]
		if !ok {
			i = len(days)
			index[key] = i
			days = append(days, Day{
				Key:   key,
				Label: zone.DateLabel(slot.StartAt),
				Slots: make([]domain.TimeSlot, 0, 1),
			})
		}
		days[i].Slots = append(days[i].Slots, slot)
	}

	return days
}
