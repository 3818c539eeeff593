package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

type Client struct {
	rdb *redis.Client
}

func Initialize(redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Allow implements a fixed-window counter. The first hit in a window sets the
// expiry; subsequent hits only increment. Returns false once count exceeds limit.
func (c *Client) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	count, err := c.rdb.Incr(ctx, "ratelimit:"+key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}
	if count == 1 {
		if err := c.rdb.Expire(ctx, "ratelimit:"+key, window).Err(); err != nil {
			return false, fmt.Errorf("failed to set rate limit expiry: %w", err)
		}
	}
	return count <= int64(limit), nil
}

// Verification result caching, keyed by payment reference.

func (c *Client) SetVerification(ctx context.Context, reference string, value interface{}, ttl time.Duration) error {
	jsonData, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal verification data: %w", err)
	}
	return c.rdb.Set(ctx, "verify:"+reference, jsonData, ttl).Err()
}

func (c *Client) GetVerification(ctx context.Context, reference string, dest interface{}) (bool, error) {
	val, err := c.rdb.Get(ctx, "verify:"+reference).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to get verification data: %w", err)
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal verification data: %w", err)
	}
	return true, nil
}

func (c *Client) Close() error {
	return c.rdb.Close()
}
