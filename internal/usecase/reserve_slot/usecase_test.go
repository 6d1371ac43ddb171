package reserve_slot

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotReservation/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SlotReservation/internal/infra/storage/booking"
	serviceRepo "github.com/m04kA/SMC-SlotReservation/internal/infra/storage/service"
	timeslotRepo "github.com/m04kA/SMC-SlotReservation/internal/infra/storage/timeslot"
	"github.com/m04kA/SMC-SlotReservation/pkg/logger"
	"github.com/m04kA/SMC-SlotReservation/pkg/metrics"
	"github.com/m04kA/SMC-SlotReservation/pkg/txmanager"
)

const (
	serviceID = "7b0f6d5c-1c1e-4f7a-9f52-2f6a3f1f8e01"
	slotID    = "0c4f1a9e-3d2b-4b8f-8a6e-5b9d2c7e4f10"
	bookingID = "f2b8c4d6-9e1a-4c3b-8d7f-6a5e4d3c2b1a"
)

var now = time.Date(2025, 9, 22, 10, 0, 0, 0, time.UTC)

type mockServiceRepo struct{ mock.Mock }

func (m *mockServiceRepo) GetByID(ctx context.Context, id string) (*domain.Service, error) {
	args := m.Called(ctx, id)
	if s, ok := args.Get(0).(*domain.Service); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockSlotRepo struct{ mock.Mock }

func (m *mockSlotRepo) MarkBooked(ctx context.Context, slotID, serviceID string, asOf time.Time) (*domain.TimeSlot, error) {
	args := m.Called(ctx, slotID, serviceID, asOf)
	if s, ok := args.Get(0).(*domain.TimeSlot); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSlotRepo) GetByID(ctx context.Context, id string) (*domain.TimeSlot, error) {
	args := m.Called(ctx, id)
	if s, ok := args.Get(0).(*domain.TimeSlot); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockBookingRepo struct{ mock.Mock }

func (m *mockBookingRepo) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	args := m.Called(ctx, b)
	switch v := args.Get(0).(type) {
	case *domain.Booking:
		return v, args.Error(1)
	case func(*domain.Booking) *domain.Booking:
		return v(b), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) BookingCreated(ctx context.Context, b domain.Booking, s domain.Service, slot domain.TimeSlot) {
	m.Called(ctx, b, s, slot)
}

type mockMetrics struct{ mock.Mock }

func (m *mockMetrics) IncReservation(outcome string) {
	m.Called(outcome)
}

// inlineTx выполняет fn без транзакции; err подменяет результат
type inlineTx struct {
	err error
}

func (t inlineTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return t.err
}

type fixedTime struct{}

func (fixedTime) Now() time.Time { return now }

type fixedID struct{}

func (fixedID) NewID() string { return bookingID }

type deps struct {
	services *mockServiceRepo
	slots    *mockSlotRepo
	bookings *mockBookingRepo
	notifier *mockNotifier
	metrics  *mockMetrics
}

func newUseCase(tx TransactionManager) (*UseCase, *deps) {
	d := &deps{
		services: new(mockServiceRepo),
		slots:    new(mockSlotRepo),
		bookings: new(mockBookingRepo),
		notifier: new(mockNotifier),
		metrics:  new(mockMetrics),
	}
	uc := NewUseCase(d.services, d.slots, d.bookings, tx, d.notifier, d.metrics, logger.Nop())
	uc.timeProvider = fixedTime{}
	uc.ids = fixedID{}
	return uc, d
}

func validRequest() *Request {
	return &Request{
		ServiceID:   serviceID,
		TimeSlotID:  slotID,
		CompanyName: "  Acme ",
		ContactName: "Jane Doe",
		Phone:       "(11) 98765-4321",
	}
}

func consulting() *domain.Service {
	return &domain.Service{ID: serviceID, Name: "Consulting", DurationMinutes: 60}
}

func bookedSlot() *domain.TimeSlot {
	start := time.Date(2025, 9, 22, 13, 0, 0, 0, time.UTC)
	return &domain.TimeSlot{ID: slotID, ServiceID: serviceID, StartAt: start, EndAt: start.Add(time.Hour), IsBooked: true}
}

func TestExecute_Success(t *testing.T) {
	uc, d := newUseCase(inlineTx{})
	ctx := context.Background()
	createdAt := now.Add(time.Second)

	d.services.On("GetByID", ctx, serviceID).Return(consulting(), nil)
	d.slots.On("MarkBooked", ctx, slotID, serviceID, now).Return(bookedSlot(), nil)
	d.bookings.On("Create", ctx, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.ID == bookingID && b.CompanyName == "Acme" && b.Phone == "11987654321" && b.TimeSlotID == slotID
	})).Return(func(b *domain.Booking) *domain.Booking {
		b.CreatedAt = createdAt
		return b
	}, nil)
	d.metrics.On("IncReservation", metrics.OutcomeReserved).Once()
	d.notifier.On("BookingCreated", ctx, mock.AnythingOfType("domain.Booking"), *consulting(), *bookedSlot()).Once()

	resp, err := uc.Execute(ctx, validRequest())
	require.NoError(t, err)

	assert.Equal(t, bookingID, resp.ID)
	assert.Equal(t, "Acme", resp.CompanyName)
	assert.Equal(t, "Jane Doe", resp.ContactName)
	assert.Equal(t, "11987654321", resp.Phone)
	assert.Equal(t, "Consulting", resp.ServiceName)
	assert.True(t, resp.StartAt.Equal(bookedSlot().StartAt))
	assert.Equal(t, createdAt, resp.CreatedAt)

	d.slots.AssertExpectations(t)
	d.bookings.AssertExpectations(t)
	d.notifier.AssertExpectations(t)
	d.metrics.AssertExpectations(t)
}

func TestExecute_ValidationBeforeStorage(t *testing.T) {
	tests := []struct {
		name  string
		mod   func(r *Request)
		field string
	}{
		{name: "empty company", mod: func(r *Request) { r.CompanyName = "  " }, field: "companyName"},
		{name: "empty contact", mod: func(r *Request) { r.ContactName = "" }, field: "contactName"},
		{name: "short phone", mod: func(r *Request) { r.Phone = "12345-678" }, field: "phone"},
		{name: "missing service", mod: func(r *Request) { r.ServiceID = "" }, field: "serviceId"},
		{name: "malformed slot", mod: func(r *Request) { r.TimeSlotID = "slot-13:00" }, field: "timeSlotId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, d := newUseCase(inlineTx{})
			d.metrics.On("IncReservation", metrics.OutcomeValidation).Once()

			req := validRequest()
			tt.mod(req)

			_, err := uc.Execute(context.Background(), req)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrValidation)

			fe, ok := domain.AsFieldError(err)
			require.True(t, ok)
			assert.Equal(t, tt.field, fe.Field)

			d.services.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
			d.slots.AssertNotCalled(t, "MarkBooked", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			d.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestExecute_ServiceNotFound(t *testing.T) {
	uc, d := newUseCase(inlineTx{})
	ctx := context.Background()

	d.services.On("GetByID", ctx, serviceID).Return(nil, serviceRepo.ErrServiceNotFound)
	d.metrics.On("IncReservation", metrics.OutcomeNotFound).Once()

	_, err := uc.Execute(ctx, validRequest())
	assert.ErrorIs(t, err, ErrServiceNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	d.slots.AssertNotCalled(t, "MarkBooked", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_SlotAlreadyBooked(t *testing.T) {
	uc, d := newUseCase(inlineTx{})
	ctx := context.Background()

	d.services.On("GetByID", ctx, serviceID).Return(consulting(), nil)
	d.slots.On("MarkBooked", ctx, slotID, serviceID, now).Return(nil, timeslotRepo.ErrSlotNotAvailable)
	d.slots.On("GetByID", ctx, slotID).Return(bookedSlot(), nil)
	d.metrics.On("IncReservation", metrics.OutcomeConflict).Once()

	_, err := uc.Execute(ctx, validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.ErrorIs(t, err, domain.ErrConflict)

	d.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	d.notifier.AssertNotCalled(t, "BookingCreated", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_SlotMissingIsConflict(t *testing.T) {
	uc, d := newUseCase(inlineTx{})
	ctx := context.Background()

	d.services.On("GetByID", ctx, serviceID).Return(consulting(), nil)
	d.slots.On("MarkBooked", ctx, slotID, serviceID, now).Return(nil, timeslotRepo.ErrSlotNotAvailable)
	d.slots.On("GetByID", ctx, slotID).Return(nil, timeslotRepo.ErrSlotNotFound)
	d.metrics.On("IncReservation", metrics.OutcomeConflict).Once()

	_, err := uc.Execute(ctx, validRequest())
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestExecute_SlotOfAnotherService(t *testing.T) {
	uc, d := newUseCase(inlineTx{})
	ctx := context.Background()

	foreign := bookedSlot()
	foreign.ServiceID = "11111111-2222-3333-4444-555555555555"
	foreign.IsBooked = false

	d.services.On("GetByID", ctx, serviceID).Return(consulting(), nil)
	d.slots.On("MarkBooked", ctx, slotID, serviceID, now).Return(nil, timeslotRepo.ErrSlotNotAvailable)
	d.slots.On("GetByID", ctx, slotID).Return(foreign, nil)
	d.metrics.On("IncReservation", metrics.OutcomeValidation).Once()

	_, err := uc.Execute(ctx, validRequest())
	assert.ErrorIs(t, err, domain.ErrValidation)
	fe, ok := domain.AsFieldError(err)
	require.True(t, ok)
	assert.Equal(t, "timeSlotId", fe.Field)
}

func TestExecute_UniqueViolationIsConflict(t *testing.T) {
	uc, d := newUseCase(inlineTx{})
	ctx := context.Background()

	d.services.On("GetByID", ctx, serviceID).Return(consulting(), nil)
	d.slots.On("MarkBooked", ctx, slotID, serviceID, now).Return(bookedSlot(), nil)
	d.bookings.On("Create", ctx, mock.Anything).Return(nil, bookingRepo.ErrSlotAlreadyBooked)
	d.metrics.On("IncReservation", metrics.OutcomeConflict).Once()

	_, err := uc.Execute(ctx, validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	d.notifier.AssertNotCalled(t, "BookingCreated", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_SerializationRetriesExhausted(t *testing.T) {
	uc, d := newUseCase(inlineTx{err: fmt.Errorf("%w: 3 attempts", txmanager.ErrSerialization)})
	ctx := context.Background()

	d.services.On("GetByID", ctx, serviceID).Return(consulting(), nil)
	d.slots.On("MarkBooked", ctx, slotID, serviceID, now).Return(bookedSlot(), nil)
	d.bookings.On("Create", ctx, mock.Anything).Return(&domain.Booking{ID: bookingID}, nil)
	d.metrics.On("IncReservation", metrics.OutcomeConflict).Once()

	_, err := uc.Execute(ctx, validRequest())
	assert.ErrorIs(t, err, domain.ErrConflict)
	d.notifier.AssertNotCalled(t, "BookingCreated", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_StorageFailureIsUnavailable(t *testing.T) {
	uc, d := newUseCase(inlineTx{})
	ctx := context.Background()

	d.services.On("GetByID", ctx, serviceID).Return(consulting(), nil)
	d.slots.On("MarkBooked", ctx, slotID, serviceID, now).Return(nil, fmt.Errorf("%w: boom", timeslotRepo.ErrExecQuery))
	d.metrics.On("IncReservation", metrics.OutcomeError).Once()

	_, err := uc.Execute(ctx, validRequest())
	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, domain.ErrUnavailable)
	assert.False(t, errors.Is(err, domain.ErrConflict))
}

func TestExecute_NilOptionalDeps(t *testing.T) {
	d := &deps{services: new(mockServiceRepo), slots: new(mockSlotRepo), bookings: new(mockBookingRepo)}
	uc := NewUseCase(d.services, d.slots, d.bookings, inlineTx{}, nil, nil, logger.Nop())
	uc.timeProvider = fixedTime{}
	ctx := context.Background()

	d.services.On("GetByID", ctx, serviceID).Return(consulting(), nil)
	d.slots.On("MarkBooked", ctx, slotID, serviceID, now).Return(bookedSlot(), nil)
	d.bookings.On("Create", ctx, mock.Anything).Return(&domain.Booking{ID: bookingID}, nil)

	resp, err := uc.Execute(ctx, validRequest())
	require.NoError(t, err)
	assert.Equal(t, bookingID, resp.ID)
}
