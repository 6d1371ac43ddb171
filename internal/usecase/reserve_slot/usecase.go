package reserve_slot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SlotReservation/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SlotReservation/internal/infra/storage/booking"
	serviceRepo "github.com/m04kA/SMC-SlotReservation/internal/infra/storage/service"
	timeslotRepo "github.com/m04kA/SMC-SlotReservation/internal/infra/storage/timeslot"
	"github.com/m04kA/SMC-SlotReservation/pkg/metrics"
	"github.com/m04kA/SMC-SlotReservation/pkg/txmanager"
)

// UUIDGenerator генерирует UUID v4
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// UseCase use case бронирования слота
type UseCase struct {
	serviceRepo    ServiceRepository
	slotRepo       TimeSlotRepository
	bookingRepo    BookingRepository
	txManager      TransactionManager
	notifier       Notifier
	metrics        Metrics
	ids            IDGenerator
	timeProvider   TimeProvider
	logger         Logger
	minPhoneDigits int
}

// NewUseCase создает новый экземпляр use case. notifier и metrics могут быть nil.
func NewUseCase(
	serviceRepo ServiceRepository,
	slotRepo TimeSlotRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	notifier Notifier,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		serviceRepo:    serviceRepo,
		slotRepo:       slotRepo,
		bookingRepo:    bookingRepo,
		txManager:      txManager,
		notifier:       notifier,
		metrics:        metrics,
		ids:            UUIDGenerator{},
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
		minPhoneDigits: domain.MinPhoneDigits,
	}
}

// WithMinPhoneDigits переопределяет минимальную длину телефона
func (uc *UseCase) WithMinPhoneDigits(n int) *UseCase {
	if n > 0 {
		uc.minPhoneDigits = n
	}
	return uc
}

// Execute бронирует слот.
// Перевод слота в "забронирован" и создание бронирования выполняются в одной
// сериализуемой транзакции: условный UPDATE отдаёт строку только одному из
// конкурентных запросов, остальные получают ErrSlotNotAvailable.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных, до обращения к хранилищу
	customer, err := validateRequest(req, uc.minPhoneDigits)
	if err != nil {
		uc.logger.Warn("ReserveSlot: validation failed: %v", err)
		uc.observe(metrics.OutcomeValidation)
		return nil, err
	}

	serviceID := strings.TrimSpace(req.ServiceID)
	slotID := strings.TrimSpace(req.TimeSlotID)

	uc.logger.Info("ReserveSlot: service=%s, slot=%s, company=%q", serviceID, slotID, customer.CompanyName)

	// 2. Получаем услугу
	service, err := uc.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("ReserveSlot: service id=%s not found", serviceID)
			uc.observe(metrics.OutcomeNotFound)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("ReserveSlot: failed to get service id=%s: %v", serviceID, err)
		uc.observe(metrics.OutcomeError)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()

	var (
		booked *domain.TimeSlot
		result *domain.Booking
	)

	// 3. Условное обновление слота и создание бронирования в одной транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		slot, err := uc.slotRepo.MarkBooked(txCtx, slotID, serviceID, now)
		if err != nil {
			if errors.Is(err, timeslotRepo.ErrSlotNotAvailable) {
				return uc.diagnoseUnavailable(txCtx, slotID, serviceID)
			}
			return err
		}

		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			ID:          uc.ids.NewID(),
			CompanyName: customer.CompanyName,
			ContactName: customer.ContactName,
			Phone:       customer.Phone,
			ServiceID:   serviceID,
			TimeSlotID:  slotID,
		})
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotAlreadyBooked) {
				return ErrSlotNotAvailable
			}
			return err
		}

		booked = slot
		result = created
		return nil
	})

	if err != nil {
		return nil, uc.mapTxError(err, slotID)
	}

	uc.logger.Info("ReserveSlot: successfully created booking id=%s for slot=%s", result.ID, slotID)
	uc.observe(metrics.OutcomeReserved)

	if uc.notifier != nil {
		uc.notifier.BookingCreated(ctx, *result, *service, *booked)
	}

	return &Response{
		ID:          result.ID,
		CompanyName: result.CompanyName,
		ContactName: result.ContactName,
		Phone:       result.Phone,
		ServiceID:   result.ServiceID,
		ServiceName: service.Name,
		TimeSlotID:  result.TimeSlotID,
		StartAt:     booked.StartAt,
		EndAt:       booked.EndAt,
		CreatedAt:   result.CreatedAt,
	}, nil
}

// diagnoseUnavailable разбирает, почему условное обновление не сработало.
// Слот другой услуги - ошибка ввода, всё остальное - конфликт.
func (uc *UseCase) diagnoseUnavailable(ctx context.Context, slotID, serviceID string) error {
	slot, err := uc.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, timeslotRepo.ErrSlotNotFound) {
			return ErrSlotNotAvailable
		}
		return err
	}

	if slot.ServiceID != serviceID {
		return domain.NewFieldError("timeSlotId", "time slot does not belong to the service")
	}

	return ErrSlotNotAvailable
}

func (uc *UseCase) mapTxError(err error, slotID string) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		uc.logger.Warn("ReserveSlot: slot=%s rejected: %v", slotID, err)
		uc.observe(metrics.OutcomeValidation)
		return err
	case errors.Is(err, ErrSlotNotAvailable), errors.Is(err, txmanager.ErrSerialization):
		uc.logger.Warn("ReserveSlot: slot=%s is not available: %v", slotID, err)
		uc.observe(metrics.OutcomeConflict)
		return ErrSlotNotAvailable
	case errors.Is(err, bookingRepo.ErrReferenceNotFound):
		// Слот или услуга исчезли между проверкой и вставкой
		uc.logger.Warn("ReserveSlot: slot=%s lost its references: %v", slotID, err)
		uc.observe(metrics.OutcomeConflict)
		return ErrSlotNotAvailable
	default:
		uc.logger.Error("ReserveSlot: transaction failed for slot=%s: %v", slotID, err)
		uc.observe(metrics.OutcomeError)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

func (uc *UseCase) observe(outcome string) {
	if uc.metrics != nil {
		uc.metrics.IncReservation(outcome)
	}
}
