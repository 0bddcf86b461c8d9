package commands

import (
	"context"
	"errors"
	"yatube/config"
	"yatube/storage"
	"yatube/storage/cache"
	"yatube/storage/db"
	"yatube/storage/memory"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

var (
	errMemoryBackend = errors.New("this command needs the postgres storage backend")
	errMemoryCache   = errors.New("the memory page cache lives inside the server process; restart the server to clear it")
)

func connectDatabase(ctx context.Context, settings config.Config) (*pgxpool.Pool, error) {
	return db.Connect(ctx, db.Config{
		URL:      settings.Database.URL,
		Host:     settings.Database.Host,
		Port:     settings.Database.Port,
		Database: settings.Database.Name,
		User:     settings.Database.User,
		Password: settings.Database.Password,
		MaxConns: int32(settings.Database.MaxConns),
	})
}

func openStore(ctx context.Context, settings config.Config) (storage.Store, error) {
	if settings.Storage.Backend == config.BackendMemory {
		log.Warn("Using the in-memory store; data is lost on exit")
		return memory.NewStore(), nil
	}

	pool, err := connectDatabase(ctx, settings)
	if err != nil {
		return nil, err
	}
	return db.NewPostgresStore(pool), nil
}

func newRedisClient(settings config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     settings.Redis.Addr(),
		Password: settings.Redis.Password,
		DB:       settings.Redis.DB,
	})
}

// openPageCache returns the configured page cache and a function releasing it.
func openPageCache(ctx context.Context, settings config.Config) (cache.PageCache, func(), error) {
	if settings.Cache.Backend == config.BackendMemory {
		return cache.NewMemoryPageCache(settings.Cache.IndexTTL), func() {}, nil
	}

	redisClient := newRedisClient(settings)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		redisClient.Close()
		return nil, nil, err
	}
	release := func() {
		if err := redisClient.Close(); err != nil {
			log.Errorf("Error closing redis client: %v", err)
		}
	}
	return cache.NewRedisPageCache(redisClient, settings.Cache.IndexTTL), release, nil
}
