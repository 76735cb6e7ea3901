package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: ttl}
}

type cachedResult struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

func key(text string) string {
	sum := sha256.Sum256([]byte(text))
	return fmt.Sprintf("sentiment:%x", sum)
}

func (c *RedisCache) Get(ctx context.Context, text string) (string, float64, bool) {
	raw, err := c.rdb.Get(ctx, key(text)).Bytes()
	if err != nil {
		// redis.Nil and transport errors both mean "classify it".
		return "", 0, false
	}

	var val cachedResult
	if err := json.Unmarshal(raw, &val); err != nil {
		return "", 0, false
	}
	return val.Label, val.Score, true
}

func (c *RedisCache) Store(ctx context.Context, text, label string, score float64) error {
	b, err := json.Marshal(cachedResult{Label: label, Score: score})
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key(text), b, c.ttl).Err()
}
