package fetcher

import (
	"context"

	"github.com/MrSnakeDoc/bm/internal/domain"
	"github.com/MrSnakeDoc/bm/internal/logger"
)

// Cache stores page metadata by URL.
type Cache interface {
	GetMeta(ctx context.Context, url string) (domain.PageMeta, bool, error)
	SetMeta(ctx context.Context, url string, meta domain.PageMeta) error
}

// Cached serves metadata from a cache and falls through to the wrapped
// fetcher on a miss. Cache failures are logged and otherwise ignored.
type Cached struct {
	next   Fetcher
	cache  Cache
	logger logger.Logger
}

// NewCached wraps next with cache.
func NewCached(next Fetcher, cache Cache, log logger.Logger) *Cached {
	return &Cached{next: next, cache: cache, logger: log}
}

// Fetch implements Fetcher.
func (c *Cached) Fetch(ctx context.Context, rawURL string) (domain.PageMeta, error) {
	meta, ok, err := c.cache.GetMeta(ctx, rawURL)
	if err != nil {
		c.logger.Warn("metadata cache read failed",
			logger.String("url", rawURL),
			logger.Error(err))
	}
	if ok {
		c.logger.Debug("metadata cache hit", logger.String("url", rawURL))
		return meta, nil
	}

	meta, err = c.next.Fetch(ctx, rawURL)
	if err != nil {
		return domain.PageMeta{}, err
	}

	if err := c.cache.SetMeta(ctx, rawURL, meta); err != nil {
		c.logger.Warn("metadata cache write failed",
			logger.String("url", rawURL),
			logger.Error(err))
	}
	return meta, nil
}
