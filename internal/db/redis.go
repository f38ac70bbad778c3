package db

import (
	"github.com/redis/go-redis/v9"

	"github.com/JoyBrar2001/snapgram/internal/config"
)

// ConnectRedis returns nil when no address is configured; callers fall
// back to in-memory stores.
func ConnectRedis(cfg config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}

	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
}
