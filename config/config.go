// Package config loads settings from defaults, an optional YAML file and the
// environment, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"
	"yatube/utils"

	"gopkg.in/yaml.v3"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	MaxConns int    `yaml:"max_conns"`
}

type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type CacheConfig struct {
	Backend  string        `yaml:"backend"`
	IndexTTL time.Duration `yaml:"index_ttl"`
}

type StorageConfig struct {
	Backend string `yaml:"backend"`
}

type PostsConfig struct {
	PageSize          int `yaml:"page_size"`
	ShortStringLength int `yaml:"short_string_length"`
}

type AuthConfig struct {
	SecretKey  string        `yaml:"secret_key"`
	SessionTTL time.Duration `yaml:"session_ttl"`
	// LoginRate is the number of login attempts per minute allowed per client.
	LoginRate  int `yaml:"login_rate"`
	LoginBurst int `yaml:"login_burst"`
}

type MediaConfig struct {
	Root string `yaml:"root"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type TasksConfig struct {
	StatisticsInterval    time.Duration `yaml:"statistics_interval"`
	MediaCleanupInterval  time.Duration `yaml:"media_cleanup_interval"`
	ThrottlePruneInterval time.Duration `yaml:"throttle_prune_interval"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Cache    CacheConfig    `yaml:"cache"`
	Storage  StorageConfig  `yaml:"storage"`
	Posts    PostsConfig    `yaml:"posts"`
	Auth     AuthConfig     `yaml:"auth"`
	Media    MediaConfig    `yaml:"media"`
	Log      LogConfig      `yaml:"log"`
	Tasks    TasksConfig    `yaml:"tasks"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":3333",
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "yatube",
			Name:     "yatube",
			MaxConns: 10,
		},
		Redis: RedisConfig{
			Host: "localhost",
			Port: 6379,
		},
		Cache: CacheConfig{
			Backend:  BackendMemory,
			IndexTTL: 20 * time.Second,
		},
		Storage: StorageConfig{
			Backend: BackendPostgres,
		},
		Posts: PostsConfig{
			PageSize:          10,
			ShortStringLength: 15,
		},
		Auth: AuthConfig{
			SessionTTL: 14 * 24 * time.Hour,
			LoginRate:  10,
			LoginBurst: 5,
		},
		Media: MediaConfig{
			Root: "media",
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		Tasks: TasksConfig{
			StatisticsInterval:    time.Minute,
			MediaCleanupInterval:  time.Hour,
			ThrottlePruneInterval: time.Minute,
		},
	}
}

// Load builds the configuration. An empty path skips the file.
func Load(path string) (Config, error) {
	config := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	config.applyEnv()
	return config, config.Validate()
}

func (c *Config) applyEnv() {
	c.Server.Addr = utils.StringFromString(os.Getenv("SERVER_ADDR"), c.Server.Addr)
	c.Server.ShutdownTimeout = utils.DurationFromString(os.Getenv("SERVER_SHUTDOWN_TIMEOUT"), c.Server.ShutdownTimeout)

	c.Database.URL = utils.StringFromString(os.Getenv("DATABASE_URL"), c.Database.URL)
	c.Database.Host = utils.StringFromString(os.Getenv("DB_HOST"), c.Database.Host)
	c.Database.Port = utils.IntFromString(os.Getenv("DB_PORT"), c.Database.Port)
	c.Database.User = utils.StringFromString(os.Getenv("DB_USERNAME"), c.Database.User)
	c.Database.Password = utils.StringFromString(os.Getenv("DB_PASSWORD"), c.Database.Password)
	c.Database.Name = utils.StringFromString(os.Getenv("DB_NAME"), c.Database.Name)
	c.Database.MaxConns = utils.IntFromString(os.Getenv("DB_MAX_CONNS"), c.Database.MaxConns)

	c.Redis.Host = utils.StringFromString(os.Getenv("REDIS_HOST"), c.Redis.Host)
	c.Redis.Port = utils.IntFromString(os.Getenv("REDIS_PORT"), c.Redis.Port)
	c.Redis.Password = utils.StringFromString(os.Getenv("REDIS_PASSWORD"), c.Redis.Password)
	c.Redis.DB = utils.IntFromString(os.Getenv("REDIS_DB"), c.Redis.DB)

	c.Cache.Backend = utils.StringFromString(os.Getenv("CACHE_BACKEND"), c.Cache.Backend)
	c.Cache.IndexTTL = utils.DurationFromString(os.Getenv("CACHE_INDEX_TTL"), c.Cache.IndexTTL)
	c.Storage.Backend = utils.StringFromString(os.Getenv("STORAGE_BACKEND"), c.Storage.Backend)

	c.Posts.PageSize = utils.IntFromString(os.Getenv("POSTS_PAGE_SIZE"), c.Posts.PageSize)
	c.Posts.ShortStringLength = utils.IntFromString(os.Getenv("POSTS_SHORT_STRING_LENGTH"), c.Posts.ShortStringLength)

	c.Auth.SecretKey = utils.StringFromString(os.Getenv("SECRET_KEY"), c.Auth.SecretKey)
	c.Auth.SessionTTL = utils.DurationFromString(os.Getenv("SESSION_TTL"), c.Auth.SessionTTL)
	c.Auth.LoginRate = utils.IntFromString(os.Getenv("LOGIN_RATE"), c.Auth.LoginRate)
	c.Auth.LoginBurst = utils.IntFromString(os.Getenv("LOGIN_BURST"), c.Auth.LoginBurst)

	c.Media.Root = utils.StringFromString(os.Getenv("MEDIA_ROOT"), c.Media.Root)

	c.Log.Level = utils.StringFromString(os.Getenv("LOG_LEVEL"), c.Log.Level)
	c.Log.Format = utils.StringFromString(os.Getenv("LOG_FORMAT"), c.Log.Format)

	c.Tasks.StatisticsInterval = utils.DurationFromString(os.Getenv("STATISTICS_INTERVAL"), c.Tasks.StatisticsInterval)
	c.Tasks.MediaCleanupInterval = utils.DurationFromString(os.Getenv("MEDIA_CLEANUP_INTERVAL"), c.Tasks.MediaCleanupInterval)
	c.Tasks.ThrottlePruneInterval = utils.DurationFromString(os.Getenv("THROTTLE_PRUNE_INTERVAL"), c.Tasks.ThrottlePruneInterval)
}

func (c Config) Validate() error {
	var errs []error

	switch c.Storage.Backend {
	case BackendPostgres, BackendMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown storage backend %q", c.Storage.Backend))
	}
	switch c.Cache.Backend {
	case BackendRedis, BackendMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown cache backend %q", c.Cache.Backend))
	}
	if c.Posts.PageSize < 1 {
		errs = append(errs, errors.New("posts.page_size must be positive"))
	}
	if c.Posts.ShortStringLength < 1 {
		errs = append(errs, errors.New("posts.short_string_length must be positive"))
	}
	if c.Cache.IndexTTL <= 0 {
		errs = append(errs, errors.New("cache.index_ttl must be positive"))
	}
	if c.Auth.LoginRate < 1 || c.Auth.LoginBurst < 1 {
		errs = append(errs, errors.New("auth.login_rate and auth.login_burst must be positive"))
	}
	if c.Tasks.StatisticsInterval <= 0 || c.Tasks.MediaCleanupInterval <= 0 || c.Tasks.ThrottlePruneInterval <= 0 {
		errs = append(errs, errors.New("task intervals must be positive"))
	}

	return errors.Join(errs...)
}
