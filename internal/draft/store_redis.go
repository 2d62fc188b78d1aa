package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"onboard/pkg/sentinel"
)

// DefaultTTL bounds how long an abandoned draft lingers. Links are
// long-lived, so drafts are kept for weeks, not hours.
const DefaultTTL = 30 * 24 * time.Hour

// RedisCache stores drafts in Redis with a TTL so abandoned sessions age
// out on their own.
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

func (c *RedisCache) Put(ctx context.Context, token, email string, entry Entry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}
	if err := c.client.Set(ctx, cacheKey(token, email), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("store draft: %w", err)
	}
	return nil
}

func (c *RedisCache) Get(ctx context.Context, token, email string) (Entry, error) {
	payload, err := c.client.Get(ctx, cacheKey(token, email)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Entry{}, sentinel.ErrNotFound
	}
	if err != nil {
		return Entry{}, fmt.Errorf("load draft: %w", err)
	}
	var entry Entry
	if err := json.Unmarshal(payload, &entry); err != nil {
		return Entry{}, fmt.Errorf("unmarshal draft: %w", err)
	}
	return entry, nil
}

func (c *RedisCache) Delete(ctx context.Context, token, email string) error {
	if err := c.client.Del(ctx, cacheKey(token, email)).Err(); err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	return nil
}
