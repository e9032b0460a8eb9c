// Package server provides the HTTP API for rendering resumes and running the
// writing assistant.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/resume-builder/internal/assistant"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/fetch"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/server/ratelimit"
)

// ShutdownTimeout bounds graceful shutdown.
const ShutdownTimeout = 30 * time.Second

// JobFetcher resolves a job posting URL. *fetch.CachedFetcher satisfies it.
type JobFetcher interface {
	JobDescription(ctx context.Context, url string) (*fetch.JobPosting, error)
}

// PDFPrinter turns an HTML page into PDF bytes.
type PDFPrinter func(ctx context.Context, html string) ([]byte, error)

// Deps are the optional backends a Server uses. Nil fields disable the
// endpoints that need them.
type Deps struct {
	Store     db.Store
	Assistant *assistant.Service
	Jobs      JobFetcher
	PrintPDF  PDFPrinter
	Logger    *slog.Logger
}

// Server represents the HTTP server.
type Server struct {
	cfg         *config.Config
	store       db.Store
	assistant   *assistant.Service
	jobs        JobFetcher
	printPDF    PDFPrinter
	logger      *slog.Logger
	metrics     *Metrics
	rateLimiter *ratelimit.Limiter
	handler     http.Handler
	httpServer  *http.Server
}

// New builds a Server and its routes.
func New(cfg *config.Config, deps Deps) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("server: nil config")
	}
	if _, err := rendering.LookupTemplate(cfg.DefaultTemplate); err != nil {
		return nil, fmt.Errorf("server: default template: %w", err)
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		cfg:       cfg,
		store:     deps.Store,
		assistant: deps.Assistant,
		jobs:      deps.Jobs,
		printPDF:  deps.PrintPDF,
		logger:    logger,
		metrics:   NewMetrics(),
	}
	if s.printPDF == nil {
		s.printPDF = func(ctx context.Context, html string) ([]byte, error) {
			return rendering.HTMLToPDF(ctx, html, rendering.BrowserOptions{ExecPath: cfg.ChromePath, Logger: logger})
		}
	}

	rlConfig := ratelimit.DefaultConfig(cfg.RateLimitEnabled, cfg.RateLimitRPS, cfg.RateLimitBurst)
	s.rateLimiter = ratelimit.NewLimiter(rlConfig)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", s.metrics.Handler())
	mux.HandleFunc("GET /templates", s.handleTemplates)
	mux.HandleFunc("POST /render", s.handleRender)
	mux.HandleFunc("POST /render/batch", s.handleRenderBatch)
	mux.HandleFunc("GET /documents", s.handleListDocuments)
	mux.HandleFunc("GET /documents/{id}", s.handleGetDocument)
	mux.HandleFunc("POST /extract", s.handleExtract)
	mux.HandleFunc("POST /portfolio", s.handlePortfolio)
	mux.HandleFunc("POST /assist/{kind}", s.handleAssist)

	s.handler = s.withRateLimit(s.withLogging(s.withCORS(s.withMaxBody(mux))))
	s.httpServer = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.LLMTimeout + 30*time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s, nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves until SIGINT/SIGTERM or ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", slog.String("addr", ln.Addr().String()))
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			s.close()
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	err := s.httpServer.Shutdown(shutdownCtx)
	s.close()
	if err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) close() {
	s.rateLimiter.Stop()
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Warn("failed to close document store", slog.Any("error", err))
		}
	}
}
