package service

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"bukid/pkg/config"
)

// ErrCacheMiss is returned by Cache.Get when the key is absent.
var ErrCacheMiss = errors.New("report cache miss")

// Cache is the small slice of Redis the report service uses. Cache failures
// are treated as misses; reports always fall through to Mongo.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type redisCache struct {
	cfg *config.Config
}

func NewRedisCache(cfg *config.Config) Cache {
	return &redisCache{cfg: cfg}
}

func (c *redisCache) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := c.cfg.Client.Redis.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}
	return value, nil
}

func (c *redisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.cfg.Client.Redis.Set(ctx, key, value, ttl).Err()
}
