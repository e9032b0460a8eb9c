package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/schemas"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render resume JSON to a PDF",
	Long: `Validates resume JSON against the resume schema and renders it with one of the built-in templates.

The output file defaults to <Name>_Resume.pdf in the current directory. With --store the PDF is also
saved to the document store configured by DATABASE_URL or SQLITE_PATH.`,
	RunE: runRender,
}

var (
	renderDataFile string
	renderTemplate string
	renderOutFile  string
	renderCompress bool
	renderStore    bool
)

func init() {
	renderCmd.Flags().StringVarP(&renderDataFile, "data", "d", "", "Path to resume JSON file (required)")
	renderCmd.Flags().StringVarP(&renderTemplate, "template", "t", "", "Template name (defaults to DEFAULT_TEMPLATE)")
	renderCmd.Flags().StringVarP(&renderOutFile, "out", "o", "", "Path to output PDF file")
	renderCmd.Flags().BoolVar(&renderCompress, "compress", false, "Deflate page content streams")
	renderCmd.Flags().BoolVar(&renderStore, "store", false, "Also save the PDF to the document store")

	_ = renderCmd.MarkFlagRequired("data")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	data, err := schemas.LoadResumeFile(renderDataFile)
	if err != nil {
		return err
	}
	tmpl, err := rendering.LookupTemplate(templateOrDefault(renderTemplate))
	if err != nil {
		return err
	}

	opts := rendering.DefaultOptions()
	opts.Compress = renderCompress
	pdf, err := rendering.RenderWithOptions(data, tmpl, opts)
	if err != nil {
		return fmt.Errorf("failed to render resume: %w", err)
	}

	out := renderOutFile
	if out == "" {
		out = rendering.DownloadFilename(data.Name)
	}
	if err := writeOutput(out, pdf); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Rendered %s with %q (%d bytes)\n", out, tmpl.Name, len(pdf))

	if !renderStore {
		return nil
	}
	var b backends
	defer b.close()
	if err := b.openStore(cmd.Context()); err != nil {
		return err
	}
	if b.store == nil {
		return fmt.Errorf("--store needs DATABASE_URL or SQLITE_PATH")
	}
	doc := &db.Document{
		OwnerName: data.Name,
		Template:  tmpl.Name,
		Filename:  filepath.Base(out),
		Content:   pdf,
	}
	if err := b.store.SaveDocument(cmd.Context(), doc); err != nil {
		return fmt.Errorf("failed to store document: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Stored document %s\n", doc.ID)
	return nil
}

// templateOrDefault falls back to the configured default template.
func templateOrDefault(name string) string {
	if name != "" {
		return name
	}
	return cfg.DefaultTemplate
}
