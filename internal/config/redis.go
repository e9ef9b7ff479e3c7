package config

import (
	"crypto/tls"
	"os"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const (
	redisURLEnv      = "REDIS_URL"
	redisAddrEnv     = "REDIS_ADDR"
	redisPasswordEnv = "REDIS_PASSWORD"
	redisDBEnv       = "REDIS_DB"
	redisTLSEnv      = "REDIS_TLS"
	redisPoolSizeEnv = "REDIS_POOL_SIZE"

	defaultRedisAddr = "localhost:6379"
)

// RedisConfig addresses the trigger registry. REDIS_URL wins over the
// individual variables when set.
type RedisConfig struct {
	URL      string
	Addr     string
	Password string
	DB       int
	TLS      bool
	PoolSize int
}

func LoadRedisConfig() (*RedisConfig, error) {
	cfg := &RedisConfig{
		URL:      os.Getenv(redisURLEnv),
		Addr:     getEnvOrDefault(redisAddrEnv, defaultRedisAddr),
		Password: os.Getenv(redisPasswordEnv),
		TLS:      os.Getenv(redisTLSEnv) == "true",
		PoolSize: positiveIntEnv(redisPoolSizeEnv, 0),
	}

	if raw := os.Getenv(redisDBEnv); raw != "" {
		db, err := strconv.Atoi(raw)
		if err != nil || db < 0 {
			return nil, ErrInvalidRedisDB
		}
		cfg.DB = db
	}

	return cfg, nil
}

func (c *RedisConfig) Validate() error {
	if c == nil || (c.Addr == "" && c.URL == "") {
		return ErrRedisAddrMissing
	}
	if c.URL != "" {
		if _, err := redis.ParseURL(c.URL); err != nil {
			return ErrInvalidRedisURL
		}
	}
	return nil
}

// Options builds client options for go-redis.
func (c *RedisConfig) Options() (*redis.Options, error) {
	if c.URL != "" {
		opts, err := redis.ParseURL(c.URL)
		if err != nil {
			return nil, ErrInvalidRedisURL
		}
		if c.PoolSize > 0 {
			opts.PoolSize = c.PoolSize
		}
		return opts, nil
	}

	opts := &redis.Options{
		Addr:     c.Addr,
		Password: c.Password,
		DB:       c.DB,
		PoolSize: c.PoolSize,
	}
	if c.TLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return opts, nil
}
