// Package seed loads services and explicit slot windows from a YAML fixture.
package seed

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/m04kA/SMC-SlotReservation/internal/domain"
	"github.com/m04kA/SMC-SlotReservation/pkg/civiltime"
)

// SlotLayout формат начала слота в фикстуре, местное время пояса
const SlotLayout = "2006-01-02 15:04"

var ErrInvalidFixture = fmt.Errorf("seed: invalid fixture: %w", domain.ErrValidation)

// Fixture файл фикстуры
type Fixture struct {
	Timezone string           `yaml:"timezone"`
	Services []ServiceFixture `yaml:"services"`
}

// ServiceFixture услуга и её слоты
type ServiceFixture struct {
	Name            string   `yaml:"name"`
	DurationMinutes int      `yaml:"duration_minutes"`
	Slots           []string `yaml:"slots"`
}

// ServicePlan услуга со слотами, готовыми к записи
type ServicePlan struct {
	Service domain.Service
	Slots   []domain.TimeSlot
}

// Decode читает YAML, неизвестные ключи запрещены
func Decode(r io.Reader) (*Fixture, error) {
	var f Fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidFixture, err)
	}
	return &f, nil
}

// Plan проверяет фикстуру и строит слоты. Начало слота задаётся в поясе
// фикстуры (или fallback), конец = начало + длительность услуги.
func (f *Fixture) Plan(fallback civiltime.Zone) ([]ServicePlan, error) {
	zone := fallback
	if f.Timezone != "" {
		z, err := civiltime.Load(f.Timezone)
		if err != nil {
			return nil, fmt.Errorf("%w: timezone %q: %v", ErrInvalidFixture, f.Timezone, err)
		}
		zone = z
	}

	names := make(map[string]struct{}, len(f.Services))
	plans := make([]ServicePlan, 0, len(f.Services))

	for i, sf := range f.Services {
		name := strings.TrimSpace(sf.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: services[%d]: name is required", ErrInvalidFixture, i)
		}
		if _, dup := names[name]; dup {
			return nil, fmt.Errorf("%w: services[%d]: duplicate name %q", ErrInvalidFixture, i, name)
		}
		names[name] = struct{}{}

		if sf.DurationMinutes <= 0 {
			return nil, fmt.Errorf("%w: services[%d]: duration_minutes must be positive", ErrInvalidFixture, i)
		}

		svc := domain.Service{
			ID:              uuid.NewString(),
			Name:            name,
			DurationMinutes: sf.DurationMinutes,
		}

		starts := make(map[time.Time]struct{}, len(sf.Slots))
		slots := make([]domain.TimeSlot, 0, len(sf.Slots))
		for j, raw := range sf.Slots {
			start, err := time.ParseInLocation(SlotLayout, strings.TrimSpace(raw), zone.Location())
			if err != nil {
				return nil, fmt.Errorf("%w: services[%d].slots[%d]: %q is not %q", ErrInvalidFixture, i, j, raw, SlotLayout)
			}
			start = start.UTC()
			if _, dup := starts[start]; dup {
				continue
			}
			starts[start] = struct{}{}

			slots = append(slots, domain.TimeSlot{
				ID:      uuid.NewString(),
				StartAt: start,
				EndAt:   start.Add(svc.Duration()),
			})
		}

		plans = append(plans, ServicePlan{Service: svc, Slots: slots})
	}

	return plans, nil
}
