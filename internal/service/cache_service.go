package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/ignatzorin/portfolio-backend/internal/logger"
)

// QueryCache кэширует результаты чтения по имени сущности.
// Неудачное чтение повторяется один раз, записи через кэш не проходят.
type QueryCache struct {
	store *cache.Cache
}

// NewQueryCache создаёт кэш с заданным временем жизни записей.
func NewQueryCache(ttl time.Duration) *QueryCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &QueryCache{store: cache.New(ttl, 2*ttl)}
}

// Fetch возвращает значение из кэша или выполняет fetch и кэширует успешный результат.
func (q *QueryCache) Fetch(ctx context.Context, key string, fetch func(context.Context) (any, error)) (any, error) {
	if value, ok := q.store.Get(key); ok {
		return value, nil
	}

	value, err := fetch(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		logger.Component("cache").WithField("key", key).WithError(err).Warn("чтение не удалось, повторяем")
		value, err = fetch(ctx)
		if err != nil {
			return nil, err
		}
	}

	q.store.Set(key, value, cache.DefaultExpiration)
	return value, nil
}

// Invalidate удаляет ключ и все производные от него ключи вида key:*.
func (q *QueryCache) Invalidate(key string) {
	q.store.Delete(key)
	prefix := key + ":"
	for k := range q.store.Items() {
		if strings.HasPrefix(k, prefix) {
			q.store.Delete(k)
		}
	}
}

// Flush очищает кэш полностью.
func (q *QueryCache) Flush() {
	q.store.Flush()
}

// cachedList типизированная обёртка над Fetch для списков.
func cachedList[T any](ctx context.Context, q *QueryCache, key string, fetch func(context.Context) ([]T, error)) ([]T, error) {
	value, err := q.Fetch(ctx, key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		return nil, err
	}

	items, ok := value.([]T)
	if !ok {
		return nil, fmt.Errorf("cache: неожиданный тип значения для ключа %s", key)
	}
	return items, nil
}
