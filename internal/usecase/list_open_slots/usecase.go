package list_open_slots

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SlotReservation/internal/domain"
	serviceRepo "github.com/m04kA/SMC-SlotReservation/internal/infra/storage/service"
	"github.com/m04kA/SMC-SlotReservation/pkg/civiltime"
)

// UseCase use case получения свободных слотов услуги
type UseCase struct {
	serviceRepo  ServiceRepository
	slotRepo     TimeSlotRepository
	zone         civiltime.Zone
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	serviceRepo ServiceRepository,
	slotRepo TimeSlotRepository,
	zone civiltime.Zone,
	logger Logger,
) *UseCase {
	return &UseCase{
		serviceRepo:  serviceRepo,
		slotRepo:     slotRepo,
		zone:         zone,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute возвращает свободные слоты услуги, которые начинаются не раньше
// max(asOf, now)
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	serviceID := strings.TrimSpace(req.ServiceID)
	if serviceID == "" {
		return nil, domain.NewFieldError("serviceId", "serviceId is required")
	}
	// Невалидный ID не может ссылаться на услугу
	if _, err := uuid.Parse(serviceID); err != nil {
		uc.logger.Warn("ListOpenSlots: malformed service id=%q", serviceID)
		return nil, ErrServiceNotFound
	}

	// asOf можно сдвинуть только в будущее: уже начавшиеся слоты не предлагаем
	asOf := uc.timeProvider.Now()
	if req.AsOf != nil && req.AsOf.After(asOf) {
		asOf = *req.AsOf
	}

	if _, err := uc.serviceRepo.GetByID(ctx, serviceID); err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("ListOpenSlots: service id=%s not found", serviceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("ListOpenSlots: failed to get service id=%s: %v", serviceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	slots, err := uc.slotRepo.ListOpen(ctx, serviceID, asOf)
	if err != nil {
		uc.logger.Error("ListOpenSlots: failed to list slots for service id=%s: %v", serviceID, err)
		return nil, fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
	}

	// Прошедшие и забронированные слоты клиенту не отдаём
	open := make([]domain.TimeSlot, 0, len(slots))
	for _, slot := range slots {
		if slot.IsOpenAt(asOf) {
			open = append(open, slot)
		}
	}

	uc.logger.Info("ListOpenSlots: service=%s, asOf=%s, slots=%d", serviceID, asOf.UTC().Format("2006-01-02T15:04:05Z"), len(open))

	return &Response{
		ServiceID: serviceID,
		AsOf:      asOf,
		Slots:     open,
		Days:      GroupByDate(open, uc.zone),
	}, nil
}
