package fetch

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"
)

// DefaultCacheTTL is how long a fetched job posting is reused.
const DefaultCacheTTL = 7 * 24 * time.Hour

// PageCache stores serialized postings by key. llm.RedisCache satisfies it.
type PageCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// CachedFetcher wraps JobDescription with a PageCache. Cache errors are
// logged and the fetch proceeds uncached.
type CachedFetcher struct {
	cache  PageCache
	ttl    time.Duration
	opts   JobOptions
	logger *slog.Logger
	fetch  func(ctx context.Context, url string, opts JobOptions) (*JobPosting, error)
}

// NewCachedFetcher returns a CachedFetcher. A nil cache disables caching.
func NewCachedFetcher(cache PageCache, ttl time.Duration, opts JobOptions) *CachedFetcher {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedFetcher{cache: cache, ttl: ttl, opts: opts, logger: logger, fetch: JobDescription}
}

func cacheKey(url string) string {
	return "job:" + url
}

// JobDescription returns the cached posting for url, fetching it on a miss.
func (f *CachedFetcher) JobDescription(ctx context.Context, url string) (*JobPosting, error) {
	if f.cache != nil {
		raw, ok, err := f.cache.Get(ctx, cacheKey(url))
		switch {
		case err != nil:
			f.logger.Warn("job cache read failed", slog.String("url", url), slog.Any("error", err))
		case ok:
			var posting JobPosting
			if err := json.Unmarshal([]byte(raw), &posting); err == nil {
				f.logger.Debug("job cache hit", slog.String("url", url))
				return &posting, nil
			}
			f.logger.Warn("discarding undecodable cache entry", slog.String("url", url))
		}
	}

	posting, err := f.fetch(ctx, url, f.opts)
	if err != nil {
		return nil, err
	}

	if f.cache != nil {
		raw, err := json.Marshal(posting)
		if err == nil {
			err = f.cache.Set(ctx, cacheKey(url), string(raw), f.ttl)
		}
		if err != nil {
			f.logger.Warn("job cache write failed", slog.String("url", url), slog.Any("error", err))
		}
	}
	return posting, nil
}
