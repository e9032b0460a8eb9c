package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/schemas"
)

var portfolioCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Build a static portfolio page from resume JSON",
	Long: `Writes a single HTML page with the name, contact line, summary and projects, styled with the
template's accent color. With --pdf the page is also printed to PDF through headless Chrome.`,
	RunE: runPortfolio,
}

var (
	portfolioDataFile string
	portfolioTemplate string
	portfolioOutFile  string
	portfolioPDFFile  string
)

func init() {
	portfolioCmd.Flags().StringVarP(&portfolioDataFile, "data", "d", "", "Path to resume JSON file (required)")
	portfolioCmd.Flags().StringVarP(&portfolioTemplate, "template", "t", "", "Template whose colors style the page")
	portfolioCmd.Flags().StringVarP(&portfolioOutFile, "out", "o", "portfolio.html", "Path to output HTML file")
	portfolioCmd.Flags().StringVar(&portfolioPDFFile, "pdf", "", "Also print the page to this PDF file (requires Chrome)")

	_ = portfolioCmd.MarkFlagRequired("data")
	rootCmd.AddCommand(portfolioCmd)
}

func runPortfolio(cmd *cobra.Command, _ []string) error {
	data, err := schemas.LoadResumeFile(portfolioDataFile)
	if err != nil {
		return err
	}
	tmpl, err := rendering.LookupTemplate(templateOrDefault(portfolioTemplate))
	if err != nil {
		return err
	}
	page, err := rendering.RenderPortfolio(data, tmpl)
	if err != nil {
		return err
	}
	if err := writeOutput(portfolioOutFile, []byte(page)); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", portfolioOutFile)

	if portfolioPDFFile == "" {
		return nil
	}
	pdf, err := printPortfolio(cmd.Context(), page)
	if err != nil {
		return err
	}
	if err := writeOutput(portfolioPDFFile, pdf); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", portfolioPDFFile, len(pdf))
	return nil
}

// printPortfolio is swapped out in tests that have no Chrome.
var printPortfolio = func(ctx context.Context, page string) ([]byte, error) {
	return rendering.HTMLToPDF(ctx, page, rendering.BrowserOptions{ExecPath: cfg.ChromePath, Logger: logger})
}
