package api

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisRateCounter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

func incrWithTTL(ctx context.Context, client redisRateCounter, key string, ttl time.Duration) (int64, error) {
	count, err := client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		_ = client.Expire(ctx, key, ttl).Err()
	}
	return count, nil
}

// overLimit 按固定窗口计数，计数器不可用时放行。
func overLimit(ctx context.Context, client redisRateCounter, prefix string, limit int, window time.Duration) bool {
	if client == nil || limit <= 0 {
		return false
	}
	bucket := time.Now().UTC().Truncate(window).Unix()
	key := prefix + ":" + time.Unix(bucket, 0).UTC().Format("200601021504")
	count, err := incrWithTTL(ctx, client, key, window)
	if err != nil {
		return false
	}
	return count > int64(limit)
}
