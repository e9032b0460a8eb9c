// Package main provides the resume_builder CLI: PDF rendering, section
// extraction, the writing assistant and the HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_builder",
	Short: "Resume builder CLI and HTTP API server",
	Long: `Resume builder renders structured resume data into one of several styled PDF templates,
extracts labelled sections from free text, and offers LLM-backed writing help (summaries,
cover letters, ATS match reports) over the command line, an HTTP API and MCP.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadRuntime,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
