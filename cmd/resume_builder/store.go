package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonathan/resume-builder/internal/assistant"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/fetch"
	"github.com/jonathan/resume-builder/internal/llm"
)

// redisPrefix namespaces every key this program writes to Redis.
const redisPrefix = "resume-builder:"

// newLLMClient is replaced in tests.
var newLLMClient = llm.NewClient

// backends holds the optional services a command may wire in. Every field
// may be nil; close releases whatever was opened.
type backends struct {
	store   db.Store
	cache   *llm.RedisCache
	closers []func() error
}

func (b *backends) close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil {
			logger.Warn("failed to close backend", slog.Any("error", err))
		}
	}
}

// openStore connects the document store when DATABASE_URL or SQLITE_PATH is set.
func (b *backends) openStore(ctx context.Context) error {
	store, err := db.Open(ctx, cfg.DatabaseURL, cfg.SQLitePath)
	if err != nil {
		return fmt.Errorf("failed to open document store: %w", err)
	}
	if store != nil {
		b.store = store
		b.closers = append(b.closers, store.Close)
	}
	return nil
}

// openCache connects Redis when REDIS_URL is set. A connection failure is
// logged and leaves caching off.
func (b *backends) openCache(ctx context.Context) {
	if cfg.RedisURL == "" {
		return
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	cache, client, err := llm.NewRedisCacheFromURL(pingCtx, cfg.RedisURL, redisPrefix)
	if err != nil {
		logger.Warn("redis unavailable, caching disabled", slog.Any("error", err))
		return
	}
	b.cache = cache
	b.closers = append(b.closers, client.Close)
}

// newAssistant builds the writing assistant for the configured provider,
// with Redis response caching when available. It returns nil when no API
// key is configured.
func (b *backends) newAssistant(ctx context.Context) (*assistant.Service, error) {
	if !cfg.LLMEnabled() {
		return nil, nil
	}
	client, err := newLLMClient(ctx, cfg.LLMConfig(), cfg.APIKey())
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	if b.cache != nil {
		client = llm.NewCachedClient(client, b.cache, cfg.CacheTTL, logger)
	}
	b.closers = append(b.closers, client.Close)
	logger.Debug("llm client ready",
		slog.String("provider", string(cfg.Provider())),
		slog.String("model", client.GetModel(llm.TierStandard)),
		slog.Bool("cached", b.cache != nil),
	)
	return assistant.NewService(client, logger), nil
}

// requireAssistant is newAssistant for commands that cannot run without one.
func (b *backends) requireAssistant(ctx context.Context) (*assistant.Service, error) {
	svc, err := b.newAssistant(ctx)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, fmt.Errorf("%s is not set; the assistant needs an API key for the %s provider",
			apiKeyEnv(cfg.Provider()), cfg.Provider())
	}
	return svc, nil
}

func apiKeyEnv(p llm.Provider) string {
	if p == llm.ProviderOpenAI {
		return "OPENAI_API_KEY"
	}
	return "GEMINI_API_KEY"
}

// newJobFetcher fetches job pages, cached in Redis when available.
func (b *backends) newJobFetcher(useBrowser bool) *fetch.CachedFetcher {
	opts := fetch.JobOptions{
		UseBrowser: useBrowser,
		Browser:    fetch.BrowserOptions{ExecPath: cfg.ChromePath, Logger: logger},
		Logger:     logger,
	}
	if b.cache == nil {
		return fetch.NewCachedFetcher(nil, 0, opts)
	}
	return fetch.NewCachedFetcher(b.cache, 0, opts)
}
