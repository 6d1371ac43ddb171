package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotReservation/internal/domain"
	catalogCache "github.com/m04kA/SMC-SlotReservation/internal/infra/cache/catalog"
	"github.com/m04kA/SMC-SlotReservation/pkg/logger"
)

type mockRepo struct{ mock.Mock }

func (m *mockRepo) List(ctx context.Context) ([]domain.Service, error) {
	args := m.Called(ctx)
	if s, ok := args.Get(0).([]domain.Service); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) ListNames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if s, ok := args.Get(0).([]string); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func catalogFixture() []domain.Service {
	return []domain.Service{
		{ID: "1", Name: "Audit", DurationMinutes: 30},
		{ID: "2", Name: "Consulting", DurationMinutes: 60},
	}
}

func TestListServices_KeepsOrder(t *testing.T) {
	repo := new(mockRepo)
	repo.On("List", mock.Anything).Return(catalogFixture(), nil)

	svc := NewService(repo, nil, logger.Nop())

	got, err := svc.ListServices(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Audit", got[0].Name)
	assert.Equal(t, "Consulting", got[1].Name)

}

func TestListServiceNames_FromRepository(t *testing.T) {
	repo := new(mockRepo)
	repo.On("ListNames", mock.Anything).Return([]string{"Audit", "Consulting"}, nil)

	names, err := NewService(repo, nil, logger.Nop()).ListServiceNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Audit", "Consulting"}, names)
	repo.AssertNotCalled(t, "List", mock.Anything)
}

func TestListServiceNames_RepositoryError(t *testing.T) {
	repo := new(mockRepo)
	repo.On("ListNames", mock.Anything).Return(nil, errors.New("db down"))

	names, err := NewService(repo, nil, logger.Nop()).ListServiceNames(context.Background())
	assert.Nil(t, names)
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

func TestListServices_Empty(t *testing.T) {
	repo := new(mockRepo)
	repo.On("List", mock.Anything).Return([]domain.Service{}, nil)

	got, err := NewService(repo, nil, logger.Nop()).ListServices(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListServices_RepositoryError(t *testing.T) {
	repo := new(mockRepo)
	repo.On("List", mock.Anything).Return(nil, errors.New("db down"))

	_, err := NewService(repo, nil, logger.Nop()).ListServices(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

func TestListServices_UsesRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	repo := new(mockRepo)
	repo.On("List", mock.Anything).Return(catalogFixture(), nil).Once()

	svc := NewService(repo, catalogCache.NewCache(rdb, time.Minute, ""), logger.Nop())

	first, err := svc.ListServices(context.Background())
	require.NoError(t, err)
	second, err := svc.ListServices(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)

	names, err := svc.ListServiceNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Audit", "Consulting"}, names)
	repo.AssertNumberOfCalls(t, "List", 1)
}

func TestListServices_CacheDownFallsBackToRepository(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })
	mr.Close()

	repo := new(mockRepo)
	repo.On("List", mock.Anything).Return(catalogFixture(), nil)

	got, err := NewService(repo, catalogCache.NewCache(rdb, time.Minute, ""), logger.Nop()).ListServices(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
