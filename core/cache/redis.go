package cache

import (
	"context"
	"time"

	"metra-api/core/constants"
	"metra-api/core/logger"

	"github.com/redis/go-redis/v9"
)

// Cache wraps the redis client used for token blacklisting.
type Cache struct {
	client *redis.Client
}

type CacheConfig struct {
	Addr     string
	Password string
	DB       int
}

func InitCache(config CacheConfig) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to redis", "error", err)
		return nil, err
	}

	logger.Info("Redis initialized successfully", "addr", config.Addr)
	return &Cache{client: client}, nil
}

// BlacklistToken marks a token as revoked until it would have expired anyway.
func (c *Cache) BlacklistToken(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return c.client.Set(ctx, constants.RedisKeyTokenBlacklist+token, "1", ttl).Err()
}

func (c *Cache) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	n, err := c.client.Exists(ctx, constants.RedisKeyTokenBlacklist+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (c *Cache) Close() error {
	return c.client.Close()
}
