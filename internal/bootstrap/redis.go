package bootstrap

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/caregiver-app/picto-admin-backend/config"
)

// OpenRedis connects to Redis for the dashboard stats cache. Returns nil when
// no address is configured; the API runs fine without a cache.
func OpenRedis(cfg config.RedisConfig) *redis.Client {
	if cfg.Addr == "" {
		log.Info().Msg("no redis address configured, stats caching disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", cfg.Addr).Msg("redis unreachable, stats caching disabled")
		client.Close()
		return nil
	}

	log.Info().Str("addr", cfg.Addr).Msg("connected to redis")
	return client
}
