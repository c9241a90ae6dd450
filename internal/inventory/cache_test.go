package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client, time.Minute)
}

func TestCacheFetchAndReuse(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	calls := 0
	loader := func(context.Context) (interface{}, error) {
		calls++
		return []Car{{ID: 1, Make: "Toyota"}}, nil
	}

	key, err := cache.BuildKey(ctx, "inventory", "cars")
	require.NoError(t, err)

	var first []Car
	require.NoError(t, cache.FetchJSON(ctx, key, &first, loader))
	var second []Car
	require.NoError(t, cache.FetchJSON(ctx, key, &second, loader))

	require.Equal(t, 1, calls, "second fetch must hit the cache")
	require.Equal(t, first, second)
}

func TestCacheBumpInvalidates(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	before, err := cache.BuildKey(ctx, "inventory", "cars")
	require.NoError(t, err)
	require.NoError(t, cache.Bump(ctx))
	after, err := cache.BuildKey(ctx, "inventory", "cars")
	require.NoError(t, err)

	require.NotEqual(t, before, after)
}

func TestNilCacheDegradesToLoader(t *testing.T) {
	var cache *Cache
	ctx := context.Background()

	var cars []Car
	err := cache.FetchJSON(ctx, "any", &cars, func(context.Context) (interface{}, error) {
		return []Car{{ID: 5}}, nil
	})
	require.NoError(t, err)
	require.Len(t, cars, 1)
	require.NoError(t, cache.Bump(ctx))
}
