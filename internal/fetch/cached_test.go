package fetch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapCache struct {
	mu     sync.Mutex
	data   map[string]string
	ttls   map[string]time.Duration
	getErr error
}

func newMapCache() *mapCache {
	return &mapCache{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (c *mapCache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return "", false, c.getErr
	}
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *mapCache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	c.ttls[key] = ttl
	return nil
}

func newTestFetcher(cache PageCache, calls *int, err error) *CachedFetcher {
	f := NewCachedFetcher(cache, 0, JobOptions{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	f.fetch = func(_ context.Context, url string, _ JobOptions) (*JobPosting, error) {
		*calls++
		if err != nil {
			return nil, err
		}
		return &JobPosting{URL: url, Title: "Engineer", Text: "Write Go."}, nil
	}
	return f
}

func TestCachedFetcher_MissThenHit(t *testing.T) {
	cache := newMapCache()
	calls := 0
	f := newTestFetcher(cache, &calls, nil)

	first, err := f.JobDescription(context.Background(), "https://x.example.com/1")
	require.NoError(t, err)
	second, err := f.JobDescription(context.Background(), "https://x.example.com/1")
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
	assert.Contains(t, cache.data, "job:https://x.example.com/1")
	assert.Equal(t, DefaultCacheTTL, cache.ttls["job:https://x.example.com/1"])
}

func TestCachedFetcher_NilCache(t *testing.T) {
	calls := 0
	f := newTestFetcher(nil, &calls, nil)
	for range 2 {
		_, err := f.JobDescription(context.Background(), "https://x.example.com/1")
		require.NoError(t, err)
	}
	assert.Equal(t, 2, calls)
}

func TestCachedFetcher_CacheErrorFailsOpen(t *testing.T) {
	cache := newMapCache()
	cache.getErr = errors.New("connection refused")
	calls := 0
	f := newTestFetcher(cache, &calls, nil)

	posting, err := f.JobDescription(context.Background(), "https://x.example.com/1")
	require.NoError(t, err)
	assert.Equal(t, "Engineer", posting.Title)
	assert.Equal(t, 1, calls)
}

func TestCachedFetcher_CorruptEntryRefetches(t *testing.T) {
	cache := newMapCache()
	cache.data["job:https://x.example.com/1"] = "{not json"
	calls := 0
	f := newTestFetcher(cache, &calls, nil)

	_, err := f.JobDescription(context.Background(), "https://x.example.com/1")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestCachedFetcher_ErrorsNotCached(t *testing.T) {
	cache := newMapCache()
	calls := 0
	f := newTestFetcher(cache, &calls, &Error{URL: "u", Message: "boom"})

	_, err := f.JobDescription(context.Background(), "https://x.example.com/1")
	require.Error(t, err)
	assert.Empty(t, cache.data)
}
