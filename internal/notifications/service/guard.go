package service

import (
	"context"

	"github.com/redis/go-redis/v9"

	"bukid/pkg/config"
)

// redisGuard implements DedupGuard with SETNX and a TTL. The first replica
// to set the key wins; everyone else skips the emission.
type redisGuard struct {
	client *redis.Client
	cfg    *config.Config
}

func NewRedisGuard(cfg *config.Config) DedupGuard {
	return &redisGuard{
		client: cfg.Client.Redis,
		cfg:    cfg,
	}
}

func (g *redisGuard) Acquire(ctx context.Context, key string) (bool, error) {
	return g.client.SetNX(ctx, key, 1, g.cfg.DedupGuardTTL).Result()
}

func (g *redisGuard) Release(ctx context.Context, key string) error {
	return g.client.Del(ctx, key).Err()
}
