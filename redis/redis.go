package redis

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	Client *redis.Client
	Ctx    = context.Background()
)

const (
	listCacheKey = "appointments:list"
	listCacheTTL = 30 * time.Second
)

// Init connects the cache client. The cache is optional: without
// REDIS_ADDR, or when the ping fails, the dashboard falls through to
// straight DB reads.
func Init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Println("REDIS_ADDR not set, appointment list cache disabled")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})

	if _, err := client.Ping(Ctx).Result(); err != nil {
		log.Printf("Failed to connect to Redis, cache disabled: %v", err)
		return
	}

	Client = client
	log.Println("✅ Connected to Redis")
}

// GetList returns the cached dashboard listing, if present.
func GetList() ([]byte, bool) {
	if Client == nil {
		return nil, false
	}
	b, err := Client.Get(Ctx, listCacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	return b, true
}

// SetList caches a rendered dashboard listing for the poll interval.
func SetList(body []byte) {
	if Client == nil {
		return
	}
	if err := Client.Set(Ctx, listCacheKey, body, listCacheTTL).Err(); err != nil {
		log.Printf("Failed to cache appointment list: %v", err)
	}
}

// InvalidateList drops the cached listing after any appointment mutation.
func InvalidateList() {
	if Client == nil {
		return
	}
	if err := Client.Del(Ctx, listCacheKey).Err(); err != nil {
		log.Printf("Failed to invalidate appointment list cache: %v", err)
	}
}
