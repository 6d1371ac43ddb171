package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotReservation/internal/domain"
	"github.com/m04kA/SMC-SlotReservation/pkg/logger"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishJSON(ctx context.Context, key string, v any) error {
	args := m.Called(ctx, key, v)
	return args.Error(0)
}

func fixtures() (domain.Booking, domain.Service, domain.TimeSlot) {
	start := time.Date(2025, 9, 22, 13, 0, 0, 0, time.UTC)
	return domain.Booking{ID: "b-1", CompanyName: "Acme", ContactName: "Jane Doe", Phone: "11987654321", CreatedAt: start.Add(-time.Hour)},
		domain.Service{ID: "s-1", Name: "Consulting", DurationMinutes: 60},
		domain.TimeSlot{ID: "t-1", ServiceID: "s-1", StartAt: start, EndAt: start.Add(time.Hour)}
}

func TestNotifier_BookingCreated(t *testing.T) {
	pub := new(mockPublisher)
	booking, service, slot := fixtures()

	pub.On("PublishJSON", mock.Anything, RoutingKeyBookingCreated, mock.MatchedBy(func(e BookingCreated) bool {
		return e.BookingID == "b-1" && e.ServiceName == "Consulting" && e.StartAt.Equal(slot.StartAt)
	})).Return(nil).Once()

	NewNotifier(pub, logger.Nop()).BookingCreated(context.Background(), booking, service, slot)

	pub.AssertExpectations(t)
}

func TestNotifier_PublishErrorIsSwallowed(t *testing.T) {
	pub := new(mockPublisher)
	booking, service, slot := fixtures()
	pub.On("PublishJSON", mock.Anything, RoutingKeyBookingCreated, mock.Anything).Return(errors.New("channel closed"))

	require.NotPanics(t, func() {
		NewNotifier(pub, logger.Nop()).BookingCreated(context.Background(), booking, service, slot)
	})
	pub.AssertNumberOfCalls(t, "PublishJSON", 1)
}

func TestNotifier_CanceledRequestStillPublishes(t *testing.T) {
	pub := new(mockPublisher)
	booking, service, slot := fixtures()
	pub.On("PublishJSON", mock.MatchedBy(func(ctx context.Context) bool { return ctx.Err() == nil }), RoutingKeyBookingCreated, mock.Anything).Return(nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	NewNotifier(pub, logger.Nop()).BookingCreated(ctx, booking, service, slot)

	pub.AssertExpectations(t)
}

func TestNotifier_NilPublisher(t *testing.T) {
	booking, service, slot := fixtures()
	assert.NotPanics(t, func() {
		NewNotifier(nil, logger.Nop()).BookingCreated(context.Background(), booking, service, slot)
	})
}
