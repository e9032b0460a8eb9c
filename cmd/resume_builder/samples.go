package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
)

var samplesCmd = &cobra.Command{
	Use:   "samples",
	Short: "Render the sample resume with every template",
	Long:  "Renders the built-in sample resume once per registered template, concurrently, into --out-dir.",
	RunE:  runSamples,
}

var samplesOutDir string

func init() {
	samplesCmd.Flags().StringVarP(&samplesOutDir, "out-dir", "o", "samples", "Directory for the rendered PDFs")
	rootCmd.AddCommand(samplesCmd)
}

func runSamples(cmd *cobra.Command, _ []string) error {
	if err := os.MkdirAll(samplesOutDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	data := types.SampleResume()
	templates := rendering.Templates()
	paths := make([]string, len(templates))

	g, ctx := errgroup.WithContext(cmd.Context())
	for i, tmpl := range templates {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			pdf, err := rendering.Render(data, tmpl)
			if err != nil {
				return fmt.Errorf("template %q: %w", tmpl.Name, err)
			}
			path := filepath.Join(samplesOutDir, sampleFilename(tmpl))
			if err := os.WriteFile(path, pdf, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			logger.Debug("rendered sample", slog.String("template", tmpl.Name), slog.Int("bytes", len(pdf)))
			paths[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, path := range paths {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	}
	return nil
}

// sampleFilename is sample_<template_slug>.pdf.
func sampleFilename(tmpl rendering.Template) string {
	return "sample_" + strings.ReplaceAll(tmpl.Slug(), "-", "_") + ".pdf"
}
