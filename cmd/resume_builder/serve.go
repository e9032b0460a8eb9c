package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server exposing rendering, extraction, portfolio and writing-assistant endpoints.

Documents are stored when DATABASE_URL (PostgreSQL) or SQLITE_PATH is set; assistant endpoints
answer 503 unless an API key for LLM_PROVIDER is configured.`,
	RunE: runServe,
}

var (
	servePort       int
	serveUseBrowser bool
)

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (defaults to PORT)")
	serveCmd.Flags().BoolVar(&serveUseBrowser, "use-browser", false, "Retry thin job pages with headless Chrome")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if servePort != 0 {
		cfg.Port = servePort
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	var b backends
	defer b.close()
	b.openCache(cmd.Context())
	svc, err := b.newAssistant(cmd.Context())
	if err != nil {
		return err
	}
	if svc == nil {
		logger.Warn("no LLM API key configured, assistant endpoints disabled",
			slog.String("provider", string(cfg.Provider())))
	}

	// The server closes the store on shutdown.
	store, err := db.Open(cmd.Context(), cfg.DatabaseURL, cfg.SQLitePath)
	if err != nil {
		return fmt.Errorf("failed to open document store: %w", err)
	}

	srv, err := server.New(cfg, server.Deps{
		Store:     store,
		Assistant: svc,
		Jobs:      b.newJobFetcher(serveUseBrowser),
		Logger:    logger,
	})
	if err != nil {
		if store != nil {
			_ = store.Close()
		}
		return fmt.Errorf("failed to create server: %w", err)
	}
	return srv.Start(cmd.Context())
}
