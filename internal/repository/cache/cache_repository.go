package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tourism-microservice/internal/domain"
	"github.com/tourism-microservice/internal/domain/repository"
	"go.uber.org/zap"
)

const scanCount = 100

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // промах
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

// DeleteByPattern проходит ключи курсором SCAN и удаляет их пачками
func (r *cacheRepository) DeleteByPattern(ctx context.Context, pattern string) (int64, error) {
	var (
		cursor  uint64
		deleted int64
	)
	for {
		keys, next, err := r.client.Scan(ctx, cursor, pattern, scanCount).Result()
		if err != nil {
			r.logger.Error("Failed to scan cache keys", zap.String("pattern", pattern), zap.Error(err))
			return deleted, fmt.Errorf("cache scan error: %w", err)
		}
		if len(keys) > 0 {
			n, err := r.client.Del(ctx, keys...).Result()
			if err != nil {
				return deleted, fmt.Errorf("cache delete error: %w", err)
			}
			deleted += n
		}
		if next == 0 {
			break
		}
		cursor = next
	}

	r.logger.Debug("Cache invalidated", zap.String("pattern", pattern), zap.Int64("deleted", deleted))
	return deleted, nil
}

func (r *cacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	val, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		r.logger.Error("Failed to check cache existence", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("cache exists error: %w", err)
	}

	return val > 0, nil
}

func (r *cacheRepository) GetFilters(ctx context.Context) (*domain.Filters, error) {
	var filters domain.Filters
	ok, err := r.getJSON(ctx, domain.CacheKeyFilters, &filters)
	if err != nil || !ok {
		return nil, err
	}
	return &filters, nil
}

func (r *cacheRepository) SetFilters(ctx context.Context, filters *domain.Filters, ttl time.Duration) error {
	return r.setJSON(ctx, domain.CacheKeyFilters, filters, ttl)
}

func (r *cacheRepository) GetSuggestions(ctx context.Context) ([]string, error) {
	var suggestions []string
	ok, err := r.getJSON(ctx, domain.CacheKeySuggestions, &suggestions)
	if err != nil || !ok {
		return nil, err
	}
	return suggestions, nil
}

func (r *cacheRepository) SetSuggestions(ctx context.Context, suggestions []string, ttl time.Duration) error {
	return r.setJSON(ctx, domain.CacheKeySuggestions, suggestions, ttl)
}

func (r *cacheRepository) GetPlaces(ctx context.Context, key string) ([]domain.Place, error) {
	var places []domain.Place
	ok, err := r.getJSON(ctx, key, &places)
	if err != nil || !ok {
		return nil, err
	}
	if places == nil {
		places = []domain.Place{}
	}
	return places, nil
}

func (r *cacheRepository) SetPlaces(ctx context.Context, key string, places []domain.Place, ttl time.Duration) error {
	return r.setJSON(ctx, key, places, ttl)
}

// getJSON возвращает false при промахе
func (r *cacheRepository) getJSON(ctx context.Context, key string, dst interface{}) (bool, error) {
	data, err := r.Get(ctx, key)
	if err != nil || data == nil {
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		r.logger.Warn("Corrupted cache entry", zap.String("key", key), zap.Error(err))
		return false, nil
	}
	return true, nil
}

func (r *cacheRepository) setJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	return r.Set(ctx, key, data, ttl)
}
