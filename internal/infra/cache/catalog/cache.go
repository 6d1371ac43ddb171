package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SlotReservation/internal/domain"
)

const servicesKey = "catalog:services"

var (
	// ErrCache ошибка обращения к Redis
	ErrCache = errors.New("catalog.cache: redis error")
)

type cachedService struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	DurationMinutes int       `json:"durationMinutes"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Cache хранит список услуг в Redis как JSON с TTL
type Cache struct {
	rdb    redis.Cmdable
	ttl    time.Duration
	prefix string
}

// NewCache создает кэш каталога. prefix может быть пустым.
func NewCache(rdb redis.Cmdable, ttl time.Duration, prefix string) *Cache {
	return &Cache{rdb: rdb, ttl: ttl, prefix: prefix}
}

// GetServices возвращает закэшированный каталог. ok=false, если кэша нет.
func (c *Cache) GetServices(ctx context.Context) ([]domain.Service, bool, error) {
	val, err := c.rdb.Get(ctx, c.key()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: GetServices: %v", ErrCache, err)
	}

	var cached []cachedService
	if err := json.Unmarshal(val, &cached); err != nil {
		// Битое значение считаем промахом, его перезапишет следующий SetServices
		return nil, false, nil
	}

	services := make([]domain.Service, 0, len(cached))
	for _, s := range cached {
		services = append(services, domain.Service{
			ID:              s.ID,
			Name:            s.Name,
			DurationMinutes: s.DurationMinutes,
			CreatedAt:       s.CreatedAt,
		})
	}
	return services, true, nil
}

// SetServices кладёт каталог в кэш
func (c *Cache) SetServices(ctx context.Context, services []domain.Service) error {
	cached := make([]cachedService, 0, len(services))
	for _, s := range services {
		cached = append(cached, cachedService{
			ID:              s.ID,
			Name:            s.Name,
			DurationMinutes: s.DurationMinutes,
			CreatedAt:       s.CreatedAt,
		})
	}

	data, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("%w: SetServices - marshal: %v", ErrCache, err)
	}

	if err := c.rdb.Set(ctx, c.key(), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: SetServices: %v", ErrCache, err)
	}
	return nil
}

// Invalidate удаляет каталог из кэша
func (c *Cache) Invalidate(ctx context.Context) error {
	if err := c.rdb.Del(ctx, c.key()).Err(); err != nil {
		return fmt.Errorf("%w: Invalidate: %v", ErrCache, err)
	}
	return nil
}

func (c *Cache) key() string {
	if c.prefix == "" {
		return servicesKey
	}
	return c.prefix + ":" + servicesKey
}
