package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/tamiti-backend/internal/logger"
	"github.com/yungbote/tamiti-backend/internal/planner"
)

// PreviewCache memoizes schedule previews per (owner, scope, date) with a TTL.
// Invalidation bumps a per-owner version key folded into every cache key, so
// a mutation to the owner's tasks, calendar, templates or policy makes all of
// that owner's cached previews unreachable without scanning the keyspace.
type PreviewCache interface {
	Get(ctx context.Context, ownerID uuid.UUID, scope, date string) (*planner.Result, bool)
	Set(ctx context.Context, ownerID uuid.UUID, scope, date string, result *planner.Result)
	InvalidateOwner(ctx context.Context, ownerID uuid.UUID)
	Close() error
}

type previewCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func NewPreviewCache(log *logger.Logger, ttl time.Duration) (PreviewCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &previewCache{
		log: log.With("service", "PreviewCache"),
		rdb: rdb,
		ttl: ttl,
	}, nil
}

func (c *previewCache) key(ctx context.Context, ownerID uuid.UUID, scope, date string) string {
	ver, err := c.rdb.Get(ctx, c.versionKey(ownerID)).Result()
	if err != nil {
		ver = "0"
	}
	return fmt.Sprintf("planner:preview:%s:%s:%s:%s", ownerID, ver, scope, date)
}

func (c *previewCache) versionKey(ownerID uuid.UUID) string {
	return fmt.Sprintf("planner:preview_ver:%s", ownerID)
}

func (c *previewCache) Get(ctx context.Context, ownerID uuid.UUID, scope, date string) (*planner.Result, bool) {
	raw, err := c.rdb.Get(ctx, c.key(ctx, ownerID, scope, date)).Bytes()
	if err != nil {
		return nil, false
	}
	var result planner.Result
	if err := json.Unmarshal(raw, &result); err != nil {
		c.log.Warn("Failed to decode cached preview", "error", err)
		return nil, false
	}
	return &result, true
}

func (c *previewCache) Set(ctx context.Context, ownerID uuid.UUID, scope, date string, result *planner.Result) {
	raw, err := json.Marshal(result)
	if err != nil {
		c.log.Warn("Failed to encode preview for caching", "error", err)
		return
	}
	if err := c.rdb.Set(ctx, c.key(ctx, ownerID, scope, date), raw, c.ttl).Err(); err != nil {
		c.log.Warn("Failed to cache preview", "error", err)
	}
}

func (c *previewCache) InvalidateOwner(ctx context.Context, ownerID uuid.UUID) {
	if err := c.rdb.Incr(ctx, c.versionKey(ownerID)).Err(); err != nil {
		c.log.Warn("Failed to bump preview cache version", "error", err, "owner_id", ownerID)
	}
}

func (c *previewCache) Close() error {
	return c.rdb.Close()
}

// NoopPreviewCache satisfies PreviewCache when Redis is not configured;
// previews are simply recomputed every call.
type NoopPreviewCache struct{}

func (NoopPreviewCache) Get(context.Context, uuid.UUID, string, string) (*planner.Result, bool) {
	return nil, false
}
func (NoopPreviewCache) Set(context.Context, uuid.UUID, string, string, *planner.Result) {}
func (NoopPreviewCache) InvalidateOwner(context.Context, uuid.UUID)                      {}
func (NoopPreviewCache) Close() error                                                    { return nil }
