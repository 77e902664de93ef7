// Package cache is a read-through Redis cache of pricing results, keyed by
// the canonical request fingerprint. Quotes are only reused within their
// effective day (DateEffet is part of the fingerprint), and every cache
// failure degrades into a miss: the partner call is the source of truth.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"crediris/internal/pricing"
)

const keyPrefix = "quote:"

// QuoteCache wraps a Redis client. A nil *QuoteCache is valid and always
// misses, so callers need no wiring branches when Redis is not configured.
type QuoteCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func New(client *redis.Client, ttl time.Duration, logger *slog.Logger) *QuoteCache {
	return &QuoteCache{client: client, ttl: ttl, logger: logger}
}

// envelope keeps the partner's raw payload across the round trip; Result
// itself excludes it from JSON.
type envelope struct {
	Result *pricing.Result `json:"result"`
	Raw    json.RawMessage `json:"raw,omitempty"`
}

// Get returns a previously cached result for an identical canonical request.
func (c *QuoteCache) Get(ctx context.Context, req *pricing.Request) (*pricing.Result, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	key := keyPrefix + pricing.Fingerprint(req)
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.WarnContext(ctx, "quote cache read failed", "error", err)
		}
		return nil, false
	}
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil || env.Result == nil {
		c.logger.WarnContext(ctx, "quote cache entry corrupt, ignoring", "key", key)
		return nil, false
	}
	env.Result.Raw = env.Raw
	return env.Result, true
}

// Put stores a result. Failures are logged and swallowed.
func (c *QuoteCache) Put(ctx context.Context, req *pricing.Request, result *pricing.Result) {
	if c == nil || c.client == nil || result == nil {
		return
	}
	payload, err := json.Marshal(envelope{Result: result, Raw: result.Raw})
	if err != nil {
		c.logger.WarnContext(ctx, "quote cache marshal failed", "error", err)
		return
	}
	key := keyPrefix + pricing.Fingerprint(req)
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "quote cache write failed", "error", err)
	}
}
