package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	platformredis "posadmin/internal/platform/redis"
	dErrors "posadmin/pkg/domain-errors"
)

const topProductsLimit = 5

// Service answers dashboard queries, consulting Redis first when a cache is
// configured. Cache failures are logged and degrade to a direct store read.
type Service struct {
	store    Store
	cache    *platformredis.Client
	cacheTTL time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

func NewService(store Store, cache *platformredis.Client, cacheTTL time.Duration, logger *slog.Logger) *Service {
	return &Service{
		store:    store,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *Service) SalesData(ctx context.Context, rawTimeFrame string) (SalesData, error) {
	tf := ParseTimeFrame(rawTimeFrame)
	key := fmt.Sprintf("stats:sales-data:%s", tf)

	var cached SalesData
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	from, to := tf.Window(s.now())
	data, err := s.store.SalesData(ctx, from, to)
	if err != nil {
		return SalesData{}, s.translate(ctx, "sales data", err)
	}

	s.cacheSet(ctx, key, data)
	return data, nil
}

func (s *Service) TopProducts(ctx context.Context) ([]TopProduct, error) {
	const key = "stats:top-products"

	var cached []TopProduct
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	products, err := s.store.TopProducts(ctx, topProductsLimit)
	if err != nil {
		return nil, s.translate(ctx, "top products", err)
	}

	s.cacheSet(ctx, key, products)
	return products, nil
}

func (s *Service) TotalProducts(ctx context.Context) (int, error) {
	return s.cachedCount(ctx, "stats:total-products", "total products", s.store.TotalProducts)
}

func (s *Service) TotalStock(ctx context.Context) (int, error) {
	return s.cachedCount(ctx, "stats:total-stock", "total stock", s.store.TotalStock)
}

func (s *Service) RatedProductsCount(ctx context.Context, rawTimeFrame string) (int, error) {
	tf := ParseTimeFrame(rawTimeFrame)
	key := fmt.Sprintf("stats:rated-products-count:%s", tf)
	return s.cachedCount(ctx, key, "rated products count", func(ctx context.Context) (int, error) {
		from, to := tf.Window(s.now())
		return s.store.RatedProductsCount(ctx, from, to)
	})
}

func (s *Service) cachedCount(ctx context.Context, key, what string, read func(context.Context) (int, error)) (int, error) {
	var cached int
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	n, err := read(ctx)
	if err != nil {
		return 0, s.translate(ctx, what, err)
	}

	s.cacheSet(ctx, key, n)
	return n, nil
}

// cacheGet reports whether key was present and decoded into dest. A nil
// cache client or any Redis error counts as a miss.
func (s *Service) cacheGet(ctx context.Context, key string, dest any) bool {
	if s.cache == nil {
		return false
	}

	raw, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		s.logger.WarnContext(ctx, "discarding malformed cache entry", "key", key, "error", err)
		return false
	}
	return true
}

func (s *Service) cacheSet(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.cacheTTL).Err(); err != nil {
		s.logger.WarnContext(ctx, "cache write failed", "key", key, "error", err)
	}
}

func (s *Service) translate(ctx context.Context, what string, err error) error {
	s.logger.ErrorContext(ctx, "stats query failed", "query", what, "error", err)
	return dErrors.New(dErrors.CodeInternal, "failed to fetch "+what)
}
