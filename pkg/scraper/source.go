package scraper

import (
	"context"
	"log/slog"

	"github.com/dtnitsch/quotes-scraper/pkg/caching"
)

// CachedSource serves pages from a disk cache and falls back to source on a miss.
type CachedSource struct {
	source PageSource
	cache  *caching.Cache
	logger *slog.Logger
}

func NewCachedSource(source PageSource, cache *caching.Cache, logger *slog.Logger) *CachedSource {
	return &CachedSource{source: source, cache: cache, logger: logger}
}

func (c *CachedSource) GetHtmlBytes(ctx context.Context, url string) ([]byte, error) {
	if data, ok := c.cache.Get(url); ok {
		c.logger.Info("Page found in cache, using it", "url", url)
		return data, nil
	}

	data, err := c.source.GetHtmlBytes(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := c.cache.Set(url, data); err != nil {
		c.logger.Warn("Failed to store page in cache", "url", url, "error", err)
	}
	return data, nil
}
