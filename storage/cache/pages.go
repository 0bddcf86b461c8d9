package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const IndexPageKey = "index_page"

const memoryPageCacheSize = 128

// PageCache memoizes rendered pages for a fixed TTL. Entries are never
// invalidated by writes; they expire or are dropped by Clear.
type PageCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, page []byte)
	Clear(ctx context.Context) error
}

type RedisPageCache struct {
	redisClient *redis.Client
	expiration  time.Duration
}

func NewRedisPageCache(redisClient *redis.Client, expiration time.Duration) *RedisPageCache {
	return &RedisPageCache{
		redisClient: redisClient,
		expiration:  expiration,
	}
}

func (c *RedisPageCache) Get(ctx context.Context, key string) ([]byte, bool) {
	page, err := c.redisClient.Get(ctx, c.getRedisKey(key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Errorf("Error reading cached page %s: %v", key, err)
		}
		return nil, false
	}
	return page, true
}

func (c *RedisPageCache) Set(ctx context.Context, key string, page []byte) {
	if err := c.redisClient.Set(ctx, c.getRedisKey(key), page, c.expiration).Err(); err != nil {
		log.Errorf("Error caching page %s: %v", key, err)
	}
}

func (c *RedisPageCache) Clear(ctx context.Context) error {
	iter := c.redisClient.Scan(ctx, 0, c.getRedisKey("*"), 100).Iterator()
	keys := make([]string, 0)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.redisClient.Del(ctx, keys...).Err()
}

func (c *RedisPageCache) getRedisKey(key string) string {
	return fmt.Sprintf("pages__%s", key)
}

type MemoryPageCache struct {
	lru *expirable.LRU[string, []byte]
}

func NewMemoryPageCache(expiration time.Duration) *MemoryPageCache {
	return &MemoryPageCache{
		lru: expirable.NewLRU[string, []byte](memoryPageCacheSize, nil, expiration),
	}
}

func (c *MemoryPageCache) Get(_ context.Context, key string) ([]byte, bool) {
	return c.lru.Get(key)
}

func (c *MemoryPageCache) Set(_ context.Context, key string, page []byte) {
	c.lru.Add(key, page)
}

func (c *MemoryPageCache) Clear(_ context.Context) error {
	c.lru.Purge()
	return nil
}
