package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisWindow enforces the same fixed-window policy across instances using
// INCR + PEXPIRE. The window starts with the first request for a key.
type RedisWindow struct {
	client *redis.Client
	limit  int
	window time.Duration
}

func NewRedisWindow(client *redis.Client, limit int, window time.Duration) *RedisWindow {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &RedisWindow{client: client, limit: limit, window: window}
}

func (l *RedisWindow) key(k string) string {
	return "coach:ratelimit:" + k
}

func (l *RedisWindow) Check(ctx context.Context, key string) (Decision, error) {
	k := l.key(key)

	count, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return Decision{}, err
	}
	if count == 1 {
		if err := l.client.PExpire(ctx, k, l.window).Err(); err != nil {
			return Decision{}, err
		}
		return Decision{Allowed: true, Remaining: l.limit - 1, ResetIn: l.window}, nil
	}

	resetIn, err := l.client.PTTL(ctx, k).Result()
	if err != nil || resetIn < 0 {
		resetIn = l.window
	}

	if count > int64(l.limit) {
		return Decision{Allowed: false, Remaining: 0, ResetIn: resetIn}, nil
	}
	return Decision{Allowed: true, Remaining: l.limit - int(count), ResetIn: resetIn}, nil
}
