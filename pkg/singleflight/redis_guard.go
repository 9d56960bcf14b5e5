package singleflight

import (
	"context"
	"time"

	"go-screening-backend/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// RedisGuard backs the single-flight flag with a conditional write in a
// shared store, so the "one pass at a time" invariant holds across
// multiple worker instances. The key carries a TTL as a safety net: if an
// instance dies mid-pass without calling Exit, the flag expires instead
// of blocking reconciliation forever.
type RedisGuard struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func NewRedisGuard(client *redis.Client, key string, ttl time.Duration) *RedisGuard {
	return &RedisGuard{
		client: client,
		key:    key,
		ttl:    ttl,
	}
}

// TryEnter wins iff the key did not exist. SET NX is atomic on the
// server, so concurrent callers across instances cannot both win.
func (g *RedisGuard) TryEnter(ctx context.Context) (bool, error) {
	return g.client.SetNX(ctx, g.key, time.Now().UTC().Format(time.RFC3339), g.ttl).Result()
}

func (g *RedisGuard) Exit(ctx context.Context) {
	if err := g.client.Del(ctx, g.key).Err(); err != nil {
		// The TTL will clear the flag; log so operators see the delay.
		logger.Log.Error("Failed to release reconciliation guard", "key", g.key, "error", err)
	}
}
