package cache

import (
	"fmt"
	"io"

	"github.com/eventhub/backend/internal/application/summary"
	"github.com/eventhub/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ClosableCache is a summary.Cache whose backend owns resources
type ClosableCache interface {
	summary.Cache
	io.Closer
}

// NewSummaryCache creates a summary cache for the configured backend.
// The returned cache must be closed on shutdown.
func NewSummaryCache(cfg *config.Config, logger *zap.Logger) (ClosableCache, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Cache.Backend {
	case "redis":
		c, err := NewRedisSummaryCache(cfg.Redis, cfg.Cache.SummaryTTL)
		if err != nil {
			return nil, fmt.Errorf("failed to create redis summary cache: %w", err)
		}
		logger.Info("using redis summary cache",
			zap.String("addr", cfg.Redis.Addr()),
			zap.Duration("ttl", cfg.Cache.SummaryTTL))
		return c, nil

	case "inmemory":
		logger.Info("using in-memory summary cache",
			zap.Duration("ttl", cfg.Cache.SummaryTTL))
		return NewInMemorySummaryCache(cfg.Cache.SummaryTTL), nil

	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}
