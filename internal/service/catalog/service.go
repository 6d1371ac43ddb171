package catalog

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SlotReservation/internal/domain"
	"github.com/m04kA/SMC-SlotReservation/internal/service/catalog/models"
)

// Service каталог услуг, только чтение
type Service struct {
	repo   ServiceRepository
	cache  Cache
	logger Logger
}

// NewService создает сервис каталога. cache может быть nil.
func NewService(repo ServiceRepository, cache Cache, logger Logger) *Service {
	return &Service{repo: repo, cache: cache, logger: logger}
}

// ListServices возвращает услуги в порядке хранилища (по названию)
func (s *Service) ListServices(ctx context.Context) ([]models.ServiceResponse, error) {
	services, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return models.FromDomainServices(services), nil
}

// ListServiceNames возвращает названия услуг для фильтров.
// С кэшем названия берутся из закэшированного каталога.
func (s *Service) ListServiceNames(ctx context.Context) ([]string, error) {
	if s.cache == nil {
		names, err := s.repo.ListNames(ctx)
		if err != nil {
			s.logger.Error("ListServiceNames: repository error: %v", err)
			return nil, fmt.Errorf("%w: ListServiceNames - repository error: %v", ErrInternal, err)
		}
		if names == nil {
			names = []string{}
		}
		return names, nil
	}

	services, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(services))
	for _, svc := range services {
		names = append(names, svc.Name)
	}
	return names, nil
}

func (s *Service) load(ctx context.Context) ([]domain.Service, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.GetServices(ctx)
		if err != nil {
			// Кэш не обязателен, идём в базу
			s.logger.Warn("ListServices: cache read failed: %v", err)
		} else if ok {
			return cached, nil
		}
	}

	services, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("ListServices: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListServices - repository error: %v", ErrInternal, err)
	}

	if s.cache != nil {
		if err := s.cache.SetServices(ctx, services); err != nil {
			s.logger.Warn("ListServices: cache write failed: %v", err)
		}
	}

	return services, nil
}
