package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tourism-microservice/internal/domain"
	"github.com/tourism-microservice/internal/repository/cache"
)

func newTestCache(t *testing.T) (*redis.Client, *cache.Redis) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379", DB: 2})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available for integration tests: %v", err)
	}

	client.FlushDB(ctx)
	t.Cleanup(func() {
		client.FlushDB(context.Background())
		client.Close()
	})
	return client, cache.NewRedisFromClient(client, zap.NewNop())
}

func TestCacheRepository_MissReturnsNil(t *testing.T) {
	_, r := newTestCache(t)
	repo := cache.NewCacheRepository(r)
	ctx := context.Background()

	val, err := repo.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, val)

	filters, err := repo.GetFilters(ctx)
	require.NoError(t, err)
	assert.Nil(t, filters)
}

func TestCacheRepository_TypedRoundTrip(t *testing.T) {
	_, r := newTestCache(t)
	repo := cache.NewCacheRepository(r)
	ctx := context.Background()

	require.NoError(t, repo.SetSuggestions(ctx, []string{"ที่พักใกล้ฉัน"}, time.Minute))
	got, err := repo.GetSuggestions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ที่พักใกล้ฉัน"}, got)

	places := []domain.Place{{ID: 1, Name: "A"}}
	require.NoError(t, repo.SetPlaces(ctx, domain.PlacesCacheKey("published"), places, time.Minute))
	cached, err := repo.GetPlaces(ctx, domain.PlacesCacheKey("published"))
	require.NoError(t, err)
	require.Len(t, cached, 1)
	assert.Equal(t, "A", cached[0].Name)
}

func TestCacheRepository_DeleteByPattern(t *testing.T) {
	client, r := newTestCache(t)
	repo := cache.NewCacheRepository(r)
	ctx := context.Background()

	for _, key := range []string{"places:published", "places:category:1", "places:category:2"} {
		require.NoError(t, repo.Set(ctx, key, []byte("[]"), time.Minute))
	}
	require.NoError(t, repo.Set(ctx, domain.CacheKeyFilters, []byte("{}"), time.Minute))

	deleted, err := repo.DeleteByPattern(ctx, domain.CachePatternPlaces)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)

	n, err := client.Exists(ctx, domain.CacheKeyFilters).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
