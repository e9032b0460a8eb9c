package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/ingestion"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/schemas"
)

var atsCmd = &cobra.Command{
	Use:   "ats",
	Short: "Score a resume against a job description",
	Long: `Asks the model for an ATS match report: a 0-100 score, matched and missing keywords, skill gaps,
strengths, recommendations and a verdict.

The resume is read from --resume (.pdf, .txt, .md or .json). The job description comes from --job
(a text file) or --job-url (fetched, and cached in Redis when REDIS_URL is set).`,
	RunE: runATS,
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate ATS-optimized resume sections",
	Long: `Rewrites the summary, skills, projects, achievements and extra sections of a resume JSON file
for a target job and writes the result as resume JSON. With --pdf the result is also rendered.`,
	RunE: runGenerate,
}

var (
	atsResumeFile string
	atsJobFile    string
	atsJobURL     string
	atsUseBrowser bool
	atsJSON       bool

	generateDataFile string
	generatePDFFile  string
	generateTemplate string
)

func init() {
	atsCmd.Flags().StringVarP(&atsResumeFile, "resume", "r", "", "Path to the resume (.pdf, .txt, .md or .json) (required)")
	atsCmd.Flags().StringVarP(&atsJobFile, "job", "j", "", "Path to the job description text file")
	atsCmd.Flags().StringVar(&atsJobURL, "job-url", "", "URL of the job posting")
	atsCmd.Flags().BoolVar(&atsUseBrowser, "use-browser", false, "Retry thin pages with headless Chrome")
	atsCmd.Flags().BoolVar(&atsJSON, "json", false, "Print the report as JSON")
	_ = atsCmd.MarkFlagRequired("resume")

	generateCmd.Flags().StringVarP(&generateDataFile, "data", "d", "", "Path to resume JSON file (required)")
	generateCmd.Flags().StringVarP(&atsJobFile, "job", "j", "", "Path to the job description text file")
	generateCmd.Flags().StringVar(&atsJobURL, "job-url", "", "URL of the job posting")
	generateCmd.Flags().BoolVar(&atsUseBrowser, "use-browser", false, "Retry thin pages with headless Chrome")
	generateCmd.Flags().StringVarP(&assistOutFile, "out", "o", "", "Write the resume JSON to a file instead of stdout")
	generateCmd.Flags().StringVar(&generatePDFFile, "pdf", "", "Also render the generated resume to this PDF")
	generateCmd.Flags().StringVarP(&generateTemplate, "template", "t", "", "Template for --pdf")
	_ = generateCmd.MarkFlagRequired("data")

	rootCmd.AddCommand(atsCmd, generateCmd)
}

func runATS(cmd *cobra.Command, _ []string) error {
	source, err := ingestion.LoadResumeText(atsResumeFile)
	if err != nil {
		return err
	}
	logger.Debug("loaded resume",
		slog.String("path", source.Path),
		slog.String("format", string(source.Format)),
		slog.String("hash", source.Hash),
	)

	var b backends
	defer b.close()
	b.openCache(cmd.Context())

	job, err := readJobText(cmd, &b, atsJobFile, atsJobURL, atsUseBrowser)
	if err != nil {
		return err
	}
	if job == "" {
		return fmt.Errorf("one of --job or --job-url is required")
	}

	svc, err := b.requireAssistant(cmd.Context())
	if err != nil {
		return err
	}
	ctx, cancel := llmContext(cmd.Context())
	defer cancel()
	report, err := svc.CheckATS(ctx, source.Text, job)
	if err != nil {
		return err
	}

	if atsJSON {
		return printResult(cmd, report)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintATSReport(report)
	return nil
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	data, err := schemas.LoadResumeFile(generateDataFile)
	if err != nil {
		return err
	}

	var b backends
	defer b.close()
	b.openCache(cmd.Context())

	job, err := readJobText(cmd, &b, atsJobFile, atsJobURL, atsUseBrowser)
	if err != nil {
		return err
	}
	svc, err := b.requireAssistant(cmd.Context())
	if err != nil {
		return err
	}
	ctx, cancel := llmContext(cmd.Context())
	defer cancel()
	out, err := svc.GenerateResume(ctx, data, job)
	if err != nil {
		return err
	}

	if err := printResult(cmd, out); err != nil {
		return err
	}
	if generatePDFFile == "" {
		return nil
	}
	tmpl, err := rendering.LookupTemplate(templateOrDefault(generateTemplate))
	if err != nil {
		return err
	}
	pdf, err := rendering.Render(out, tmpl)
	if err != nil {
		return fmt.Errorf("failed to render generated resume: %w", err)
	}
	if err := writeOutput(generatePDFFile, pdf); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Rendered %s with %q\n", generatePDFFile, tmpl.Name)
	return nil
}

// llmContext bounds one model call by LLM_TIMEOUT.
func llmContext(parent context.Context) (context.Context, context.CancelFunc) {
	if cfg.LLMTimeout > 0 {
		return context.WithTimeout(parent, cfg.LLMTimeout)
	}
	return context.WithCancel(parent)
}
