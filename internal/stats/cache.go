package stats

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	cacheKey   = "admin:stats:dashboard"
	DefaultTTL = time.Minute
)

// Cache holds a recently computed dashboard payload. Implementations are
// strictly best effort: a broken cache degrades to direct computation.
type Cache interface {
	Get(ctx context.Context) (*Dashboard, bool)
	Set(ctx context.Context, d *Dashboard)
}

// RedisCache stores the dashboard payload as JSON under a single key with a
// short TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context) (*Dashboard, bool) {
	data, err := c.client.Get(ctx, cacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Msg("dashboard cache read failed")
		}
		return nil, false
	}

	var d Dashboard
	if err := json.Unmarshal(data, &d); err != nil {
		log.Warn().Err(err).Msg("dashboard cache entry is corrupt")
		return nil, false
	}
	return &d, true
}

func (c *RedisCache) Set(ctx context.Context, d *Dashboard) {
	data, err := json.Marshal(d)
	if err != nil {
		log.Warn().Err(err).Msg("dashboard cache marshal failed")
		return
	}
	if err := c.client.Set(ctx, cacheKey, data, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Msg("dashboard cache write failed")
	}
}
