//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()

	redisContainer, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := redisContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	connStr, err := redisContainer.ConnectionString(ctx)
	require.NoError(t, err)
	options, err := redis.ParseURL(connStr)
	require.NoError(t, err)

	client := redis.NewClient(options)
	t.Cleanup(func() { client.Close() })
	require.NoError(t, client.Ping(ctx).Err())
	return client
}

func TestRedisPageCache(t *testing.T) {
	ctx := context.Background()
	client := setupTestRedis(t)
	pages := NewRedisPageCache(client, time.Minute)

	t.Run("miss before set", func(t *testing.T) {
		_, ok := pages.Get(ctx, IndexPageKey)
		assert.False(t, ok)
	})

	t.Run("set then get", func(t *testing.T) {
		pages.Set(ctx, IndexPageKey, []byte("<html>1</html>"))
		page, ok := pages.Get(ctx, IndexPageKey)
		require.True(t, ok)
		assert.Equal(t, "<html>1</html>", string(page))

		ttl, err := client.TTL(ctx, "pages__index_page").Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
		assert.LessOrEqual(t, ttl, time.Minute)
	})

	t.Run("clear keeps foreign keys", func(t *testing.T) {
		pages.Set(ctx, "group_cats", []byte("<html>cats</html>"))
		require.NoError(t, client.Set(ctx, "other", "untouched", 0).Err())

		require.NoError(t, pages.Clear(ctx))

		_, ok := pages.Get(ctx, IndexPageKey)
		assert.False(t, ok)
		_, ok = pages.Get(ctx, "group_cats")
		assert.False(t, ok)
		other, err := client.Get(ctx, "other").Result()
		require.NoError(t, err)
		assert.Equal(t, "untouched", other)
	})

	t.Run("clear on empty cache", func(t *testing.T) {
		assert.NoError(t, pages.Clear(ctx))
	})
}

func TestRedisPageCacheExpires(t *testing.T) {
	ctx := context.Background()
	pages := NewRedisPageCache(setupTestRedis(t), time.Second)

	pages.Set(ctx, IndexPageKey, []byte("<html>stale</html>"))
	_, ok := pages.Get(ctx, IndexPageKey)
	require.True(t, ok)

	assert.Eventually(t, func() bool {
		_, ok := pages.Get(ctx, IndexPageKey)
		return !ok
	}, 5*time.Second, 100*time.Millisecond)
}
