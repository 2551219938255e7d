package memcache_fx

import (
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	mem "vigor/pkg/memcache"
	"vigor/pkg/ratelimit"
)

// Quiz sessions linger for a day; a funnel abandoned longer than that restarts.
const quizStateTTL = 24 * time.Hour

var Module = fx.Provide(
	provideRedisClient,
	provideQuizStateStore,
	provideRateLimiter,
)

// provideRedisClient returns nil when REDIS_URL is unset; the in-memory
// fallbacks take over then. A single instance works fine without Redis, only
// multi-instance deployments need it.
func provideRedisClient() *redis.Client {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		return nil
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("Invalid REDIS_URL, falling back to in-memory stores: %v", err)
		return nil
	}
	return redis.NewClient(opts)
}

func provideQuizStateStore(client *redis.Client) mem.QuizStateStore {
	if client != nil {
		return mem.NewRedisQuizStates(client, quizStateTTL)
	}
	return mem.NewQuizStates(quizStateTTL)
}

func provideRateLimiter(client *redis.Client) ratelimit.Limiter {
	if client != nil {
		return ratelimit.NewRedisWindow(client, ratelimit.DefaultLimit, ratelimit.DefaultWindow)
	}
	return ratelimit.NewFixedWindow(ratelimit.DefaultLimit, ratelimit.DefaultWindow)
}
