package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisResponseCache memoizes JSON-encodable responses in Redis with a
// fixed TTL. It satisfies the upstream client's ResponseCache port.
type RedisResponseCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisResponseCache(url string, ttl time.Duration) (*RedisResponseCache, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return &RedisResponseCache{Client: redis.NewClient(opt), TTL: ttl}, nil
}

func (c *RedisResponseCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	val, err := c.Client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *RedisResponseCache) Set(ctx context.Context, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, key, b, c.TTL).Err()
}
