package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"prompt-template-store/internal/usecase"
)

var _ usecase.LockStateCache = (*EntitlementCache)(nil)

// EntitlementCache stores per-user lock-map snapshots as JSON with a
// TTL. It is best-effort on purpose: every error degrades to a miss or
// a no-op, so an unavailable Redis never blocks the entitlement gate.
type EntitlementCache struct {
	client RedisClient
	ttl    time.Duration
	log    *zerolog.Logger
}

func NewEntitlementCache(client RedisClient, ttl time.Duration, logger *zerolog.Logger) *EntitlementCache {
	return &EntitlementCache{client: client, ttl: ttl, log: logger}
}

func (c *EntitlementCache) key(userID string) string {
	return "entitlement:lockstate:" + userID
}

func (c *EntitlementCache) Get(ctx context.Context, userID string) (map[string]bool, bool) {
	raw, err := c.client.Get(ctx, c.key(userID))
	if err != nil {
		if !errors.Is(err, Nil) {
			c.log.Warn().Err(err).Str("user_id", userID).Msg("entitlement cache read failed")
		}
		return nil, false
	}
	var state map[string]bool
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		c.log.Warn().Err(err).Str("user_id", userID).Msg("entitlement cache entry corrupt; dropping")
		_ = c.client.Del(ctx, c.key(userID))
		return nil, false
	}
	return state, true
}

func (c *EntitlementCache) Set(ctx context.Context, userID string, state map[string]bool) {
	raw, err := json.Marshal(state)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.key(userID), raw, c.ttl); err != nil {
		c.log.Warn().Err(err).Str("user_id", userID).Msg("entitlement cache write failed")
	}
}

func (c *EntitlementCache) Del(ctx context.Context, userID string) {
	if err := c.client.Del(ctx, c.key(userID)); err != nil {
		c.log.Warn().Err(err).Str("user_id", userID).Msg("entitlement cache invalidation failed")
	}
}
