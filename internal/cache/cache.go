// Package cache is a URL-keyed read cache for the public catalog and
// config endpoints. Reads hit Redis first; every mutation of the
// underlying entity invalidates its URL key so clients never see stale
// data after a create/update/delete.
package cache

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	rdb *redis.Client
	ctx = context.Background()
)

// TTL is a backstop only; invalidation on mutation is what keeps
// responses fresh.
const TTL = 10 * time.Minute

func Connect() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Println("ℹ️ REDIS_ADDR not set, response cache disabled")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Println("Warning: Redis unreachable, response cache disabled:", err)
		return
	}

	rdb = client
	log.Println("✅ Connected to Redis!")
}

// Get returns the cached response body for a URL key, if any. A cold or
// disabled cache just reports a miss.
func Get(key string) ([]byte, bool) {
	if rdb == nil {
		return nil, false
	}
	val, err := rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return val, true
}

// Set stores a response body under a URL key. Failures are ignored: the
// cache is an optimization, never a source of truth.
func Set(key string, body []byte) {
	if rdb == nil {
		return
	}
	rdb.Set(ctx, key, body, TTL)
}

// Invalidate drops URL keys after a mutation.
func Invalidate(keys ...string) {
	if rdb == nil {
		return
	}
	rdb.Del(ctx, keys...)
}
