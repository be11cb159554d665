package cache

import (
	"context"
	"log"
	"strings"

	"github.com/redis/go-redis/v9"
)

// InitRedis connects to the optional symbol cache. The cache is a pure
// optimization, so an empty address or a failed ping disables it with a
// warning instead of stopping startup.
func InitRedis(ctx context.Context, addr string) *redis.Client {
	if addr == "" {
		log.Println("Warning: REDIS_URL not set, symbol caching disabled")
		return nil
	}

	opts := &redis.Options{Addr: addr}
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			log.Printf("Warning: failed to parse REDIS_URL, symbol caching disabled: %v", err)
			return nil
		}
		opts = parsed
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Warning: redis unreachable, symbol caching disabled: %v", err)
		return nil
	}
	log.Println("Connected to Redis")
	return client
}
