package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	portscache "github.com/SscSPs/mei_retail_app/internal/core/ports/cache"
	redis "github.com/redis/go-redis/v9"
)

const scanBatch = 200

// RedisReportCache stores JSON-encoded reports in Redis.
type RedisReportCache struct {
	client *redis.Client
}

var _ portscache.ReportCache = (*RedisReportCache)(nil)

func NewRedisReportCache(addr string, password string, db int) *RedisReportCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &RedisReportCache{client: client}
}

func (c *RedisReportCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisReportCache) Close() error {
	return c.client.Close()
}

func (c *RedisReportCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(val, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *RedisReportCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if value == nil {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, ttl).Err()
}

// InvalidateUser deletes every key under the owner's prefix.
func (c *RedisReportCache) InvalidateUser(ctx context.Context, userEmail string) error {
	iter := c.client.Scan(ctx, 0, matchPrefix(portscache.UserPrefix(userEmail)), scanBatch).Iterator()
	keys := make([]string, 0, scanBatch)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) == scanBatch {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
			keys = keys[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) > 0 {
		return c.client.Del(ctx, keys...).Err()
	}
	return nil
}

// globSpecials are the characters SCAN MATCH treats as pattern syntax.
var globSpecials = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

// matchPrefix returns a SCAN MATCH pattern selecting exactly the keys that
// start with prefix.
func matchPrefix(prefix string) string {
	return globSpecials.Replace(prefix) + "*"
}
