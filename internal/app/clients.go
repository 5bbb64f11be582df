package app

import (
	"os"
	"strings"

	"github.com/yungbote/tamiti-backend/internal/clients/redis"
	"github.com/yungbote/tamiti-backend/internal/logger"
)

type Clients struct {
	PreviewCache redis.PreviewCache
}

// wireClients degrades gracefully: without REDIS_ADDR previews are recomputed
// on every request instead of cached.
func wireClients(log *logger.Logger, cfg Config) Clients {
	log.Info("Wiring clients...")

	if strings.TrimSpace(os.Getenv("REDIS_ADDR")) == "" {
		log.Warn("REDIS_ADDR not set, preview caching disabled")
		return Clients{PreviewCache: redis.NoopPreviewCache{}}
	}

	cache, err := redis.NewPreviewCache(log, cfg.PreviewCacheTTL)
	if err != nil {
		log.Warn("Preview cache init failed, continuing without it", "error", err)
		return Clients{PreviewCache: redis.NoopPreviewCache{}}
	}
	return Clients{PreviewCache: cache}
}
