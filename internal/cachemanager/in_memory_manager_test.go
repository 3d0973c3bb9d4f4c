package cachemanager

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type countKey string

type headcount struct {
	ManagerID int
	Reports   int
}

func TestNewInMemoryCacheManager(t *testing.T) {
	require.NotPanics(t, func() {
		NewInMemoryCacheManager[string, int]("test", DefaultExpiration, DefaultCleanupInterval)
	})
}

func TestInMemoryCacheManager_GetExistingValue_StructType(t *testing.T) {
	cache := NewInMemoryCacheManager[countKey, headcount]("counts", DefaultExpiration, DefaultCleanupInterval)
	value := headcount{ManagerID: 1, Reports: 2}
	cache.Set(context.Background(), "count:1", value, DefaultExpiration)

	got, ok := cache.Get(context.Background(), "count:1")
	require.True(t, ok)
	require.Equal(t, value, got)
}

func TestInMemoryCacheManager_GetExistingValue(t *testing.T) {
	cache := NewInMemoryCacheManager[string, int]("counts", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(context.Background(), "count:3", 1, DefaultExpiration)

	got, ok := cache.Get(context.Background(), "count:3")
	require.True(t, ok)
	require.Equal(t, 1, got)
}

func TestInMemoryCacheManager_GetWithNoExistingValue(t *testing.T) {
	cache := NewInMemoryCacheManager[string, int]("counts", DefaultExpiration, DefaultCleanupInterval)

	got, ok := cache.Get(context.Background(), "count:3")
	require.False(t, ok)
	require.Zero(t, got)
}

func TestInMemoryCacheManager_GetWithExistingInvalidValueType(t *testing.T) {
	cache := NewInMemoryCacheManager[string, int]("counts", DefaultExpiration, DefaultCleanupInterval)

	cache.cache.Set("count:3", "two", DefaultExpiration)

	got, ok := cache.Get(context.Background(), "count:3")
	require.False(t, ok)
	require.Zero(t, got)
}

func TestInMemoryCacheManager_Expiry(t *testing.T) {
	cache := NewInMemoryCacheManager[string, int]("counts", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(context.Background(), "count:3", 1, 10*time.Millisecond)

	require.Eventually(t, func() bool {
		_, ok := cache.Get(context.Background(), "count:3")
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestInMemoryCacheManager_GetWithRefresh(t *testing.T) {
	cache := NewInMemoryCacheManager[string, int]("counts", DefaultExpiration, DefaultCleanupInterval)
	ctx := context.Background()

	_, ok := cache.GetWithRefresh(ctx, "count:1", time.Minute)
	require.False(t, ok)

	cache.Set(ctx, "count:1", 2, 50*time.Millisecond)
	got, ok := cache.GetWithRefresh(ctx, "count:1", time.Hour)
	require.True(t, ok)
	require.Equal(t, 2, got)

	// The refreshed ttl outlives the original one.
	time.Sleep(80 * time.Millisecond)
	got, ok = cache.Get(ctx, "count:1")
	require.True(t, ok)
	require.Equal(t, 2, got)
}

func TestInMemoryCacheManager_Delete(t *testing.T) {
	cache := NewInMemoryCacheManager[string, int]("counts", DefaultExpiration, DefaultCleanupInterval)
	ctx := context.Background()
	cache.Set(ctx, "count:1", 2, DefaultExpiration)
	cache.Set(ctx, "count:3", 1, DefaultExpiration)

	require.NoError(t, cache.Delete(ctx))
	require.Equal(t, 2, cache.Len())

	require.NoError(t, cache.Delete(ctx, "count:1", "count:missing"))

	_, ok := cache.Get(ctx, "count:1")
	require.False(t, ok)
	_, ok = cache.Get(ctx, "count:3")
	require.True(t, ok)
}

func TestInMemoryCacheManager_Flush(t *testing.T) {
	cache := NewInMemoryCacheManager[string, int]("counts", DefaultExpiration, DefaultCleanupInterval)
	ctx := context.Background()
	cache.Set(ctx, "count:1", 2, DefaultExpiration)
	cache.Set(ctx, "count:3", 1, DefaultExpiration)

	require.NoError(t, cache.Flush(ctx))

	require.Zero(t, cache.Len())
}
