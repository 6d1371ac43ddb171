// Package civiltime переводит моменты времени в гражданскую дату и время
// заданного часового пояса и форматирует их для pt-BR интерфейса.
package civiltime

import (
	"fmt"
	"time"
	_ "time/tzdata"
)

const (
	// DateKeyLayout ключ календарной даты
	DateKeyLayout = "2006-01-02"

	dateLayout     = "02/01/2006"
	clockLayout    = "15:04"
	dateTimeLayout = "02/01/2006 15:04"
)

var weekdays = [...]string{
	time.Sunday:    "domingo",
	time.Monday:    "segunda-feira",
	time.Tuesday:   "terça-feira",
	time.Wednesday: "quarta-feira",
	time.Thursday:  "quinta-feira",
	time.Friday:    "sexta-feira",
	time.Saturday:  "sábado",
}

// Zone фиксированный гражданский часовой пояс
type Zone struct {
	loc *time.Location
}

// Load загружает пояс по имени IANA
func Load(name string) (Zone, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return Zone{}, fmt.Errorf("civiltime: load %q: %w", name, err)
	}
	return Zone{loc: loc}, nil
}

// MustLoad как Load, но паникует при ошибке
func MustLoad(name string) Zone {
	z, err := Load(name)
	if err != nil {
		panic(err)
	}
	return z
}

func (z Zone) Location() *time.Location {
	if z.loc == nil {
		return time.UTC
	}
	return z.loc
}

func (z Zone) Name() string {
	return z.Location().String()
}

// Local момент t в этом поясе
func (z Zone) Local(t time.Time) time.Time {
	return t.In(z.Location())
}

// DateKey календарная дата момента t в поясе, "2006-01-02"
func (z Zone) DateKey(t time.Time) string {
	return z.Local(t).Format(DateKeyLayout)
}

// DateLabel подпись даты, например "segunda-feira, 22/09/2025"
func (z Zone) DateLabel(t time.Time) string {
	local := z.Local(t)
	return weekdays[local.Weekday()] + ", " + local.Format(dateLayout)
}

// Clock время суток "HH:MM"
func (z Zone) Clock(t time.Time) string {
	return z.Local(t).Format(clockLayout)
}

// TimeRange диапазон "HH:MM - HH:MM"
func (z Zone) TimeRange(start, end time.Time) string {
	return z.Clock(start) + " - " + z.Clock(end)
}

// DateTime "dd/mm/yyyy HH:MM"
func (z Zone) DateTime(t time.Time) string {
	return z.Local(t).Format(dateTimeLayout)
}

// ParseDate разбирает календарную дату "2006-01-02" в полночь пояса
func (z Zone) ParseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(DateKeyLayout, s, z.Location())
	if err != nil {
		return time.Time{}, err
	}
	return z.DayStart(d), nil
}

// DayStart первый момент календарной даты d (по гражданскому времени пояса).
// Если полночь попадает в переход на летнее время, возвращается первый
// существующий момент этой даты.
func (z Zone) DayStart(d time.Time) time.Time {
	loc := z.Location()
	local := d.In(loc)
	y, m, day := local.Date()

	start := time.Date(y, m, day, 0, 0, 0, 0, loc)
	for i := 0; i < 24; i++ {
		if sy, sm, sd := start.Date(); sy == y && sm == m && sd == day {
			break
		}
		start = start.Add(time.Hour)
	}
	return start
}

// DayEnd последняя секунда календарной даты d, локальные 23:59:59
func (z Zone) DayEnd(d time.Time) time.Time {
	local := d.In(z.Location())
	y, m, day := local.Date()
	next := time.Date(y, m, day+1, 12, 0, 0, 0, z.Location())
	return z.DayStart(next).Add(-time.Second)
}
