package resolver

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const symbolCacheTTL = 5 * time.Minute

type SymbolSource interface {
	Symbols(ctx context.Context) ([]string, error)
}

type RedisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// CachedSource keeps a resolved symbol list in Redis for a short TTL so
// repeated passes do not re-scrape the watchlist page. Cache errors are
// logged and bypassed; the inner source remains authoritative.
type CachedSource struct {
	inner SymbolSource
	redis RedisClient
	key   string
}

func NewCachedSource(inner SymbolSource, client RedisClient, watchlistID string) *CachedSource {
	return &CachedSource{
		inner: inner,
		redis: client,
		key:   "watchlist:symbols:" + watchlistID,
	}
}

func (c *CachedSource) Symbols(ctx context.Context) ([]string, error) {
	if c.redis != nil {
		raw, err := c.redis.Get(ctx, c.key).Result()
		if err == nil {
			var cached []string
			if json.Unmarshal([]byte(raw), &cached) == nil && len(cached) > 0 {
				return cached, nil
			}
		} else if err != redis.Nil {
			log.Printf("symbol cache read error: %v", err)
		}
	}

	symbols, err := c.inner.Symbols(ctx)
	if err != nil {
		return nil, err
	}

	if c.redis != nil {
		if raw, err := json.Marshal(symbols); err == nil {
			if err := c.redis.Set(ctx, c.key, raw, symbolCacheTTL).Err(); err != nil {
				log.Printf("symbol cache write error: %v", err)
			}
		}
	}
	return symbols, nil
}
