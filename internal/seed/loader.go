package seed

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SlotReservation/internal/domain"
)

type ServiceRepository interface {
	Upsert(ctx context.Context, s *domain.Service) (*domain.Service, error)
}

type TimeSlotRepository interface {
	Create(ctx context.Context, slot *domain.TimeSlot) (bool, error)
}

type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Stats итог загрузки
type Stats struct {
	Services     int
	SlotsCreated int
	SlotsSkipped int // уже существовали
}

// Loader записывает план в хранилище. Повторная загрузка той же фикстуры
// не создаёт дублей: услуги обновляются по имени, слоты по (услуга, начало).
type Loader struct {
	serviceRepo ServiceRepository
	slotRepo    TimeSlotRepository
	txManager   TransactionManager
	logger      Logger
}

func NewLoader(serviceRepo ServiceRepository, slotRepo TimeSlotRepository, txManager TransactionManager, logger Logger) *Loader {
	return &Loader{
		serviceRepo: serviceRepo,
		slotRepo:    slotRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Load записывает все услуги и слоты в одной транзакции
func (l *Loader) Load(ctx context.Context, plans []ServicePlan) (Stats, error) {
	var stats Stats

	err := l.txManager.Do(ctx, func(txCtx context.Context) error {
		stats = Stats{}
		for _, plan := range plans {
			svc := plan.Service
			saved, err := l.serviceRepo.Upsert(txCtx, &svc)
			if err != nil {
				return fmt.Errorf("upsert service %q: %w", svc.Name, err)
			}
			stats.Services++

			for _, slot := range plan.Slots {
				slot.ServiceID = saved.ID
				created, err := l.slotRepo.Create(txCtx, &slot)
				if err != nil {
					return fmt.Errorf("create slot %s for %q: %w", slot.StartAt.Format("2006-01-02T15:04Z07:00"), svc.Name, err)
				}
				if created {
					stats.SlotsCreated++
				} else {
					stats.SlotsSkipped++
				}
			}

			l.logger.Info("Load: service=%s, id=%s, slots=%d", saved.Name, saved.ID, len(plan.Slots))
		}
		return nil
	})
	if err != nil {
		l.logger.Error("Load: failed: %v", err)
		return Stats{}, err
	}

	return stats, nil
}
