package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/tapcard/tapcard/pkg/logger"
)

// StatusCache holds recently computed entitlement snapshots. The cache is
// strictly best-effort: every miss, error, and eviction falls through to
// the store, so all methods absorb failures internally.
type StatusCache interface {
	Get(ctx context.Context, userID uuid.UUID) (*Status, bool)
	Set(ctx context.Context, userID uuid.UUID, st *Status, ttl time.Duration)
	Invalidate(ctx context.Context, userID uuid.UUID)
}

type redisStatusCache struct {
	client redis.UniversalClient
	log    *slog.Logger
}

// NewRedisStatusCache returns a StatusCache backed by Redis. Snapshots are
// stored as JSON under a per-user key.
func NewRedisStatusCache(client redis.UniversalClient, log *slog.Logger) StatusCache {
	if client == nil {
		panic("billing: redis client is required")
	}
	return &redisStatusCache{client: client, log: log}
}

func statusKey(userID uuid.UUID) string {
	return fmt.Sprintf("billing:status:%s", userID)
}

func (c *redisStatusCache) Get(ctx context.Context, userID uuid.UUID) (*Status, bool) {
	raw, err := c.client.Get(ctx, statusKey(userID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.WarnContext(ctx, "status cache read failed", logger.UserID(userID), logger.Error(err))
		}
		return nil, false
	}

	var st Status
	if err := json.Unmarshal(raw, &st); err != nil {
		c.log.WarnContext(ctx, "status cache entry corrupt", logger.UserID(userID), logger.Error(err))
		c.Invalidate(ctx, userID)
		return nil, false
	}
	return &st, true
}

func (c *redisStatusCache) Set(ctx context.Context, userID uuid.UUID, st *Status, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	raw, err := json.Marshal(st)
	if err != nil {
		c.log.WarnContext(ctx, "status cache marshal failed", logger.UserID(userID), logger.Error(err))
		return
	}
	if err := c.client.Set(ctx, statusKey(userID), raw, ttl).Err(); err != nil {
		c.log.WarnContext(ctx, "status cache write failed", logger.UserID(userID), logger.Error(err))
	}
}

func (c *redisStatusCache) Invalidate(ctx context.Context, userID uuid.UUID) {
	if err := c.client.Del(ctx, statusKey(userID)).Err(); err != nil {
		c.log.WarnContext(ctx, "status cache invalidation failed", logger.UserID(userID), logger.Error(err))
	}
}

// noopStatusCache is the default when no cache is configured.
type noopStatusCache struct{}

func (noopStatusCache) Get(context.Context, uuid.UUID) (*Status, bool)         { return nil, false }
func (noopStatusCache) Set(context.Context, uuid.UUID, *Status, time.Duration) {}
func (noopStatusCache) Invalidate(context.Context, uuid.UUID)                  {}
