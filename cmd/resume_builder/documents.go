package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/observability"
)

var documentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "List stored documents or fetch one by ID",
	Long: `Without --id, lists the most recent documents in the store configured by DATABASE_URL or SQLITE_PATH.
With --id, writes that document's PDF to --out (or its stored filename).`,
	RunE: runDocuments,
}

var (
	documentsID    string
	documentsLimit int
	documentsOut   string
)

func init() {
	documentsCmd.Flags().StringVar(&documentsID, "id", "", "Document ID to fetch")
	documentsCmd.Flags().IntVar(&documentsLimit, "limit", db.DefaultListLimit, "Maximum documents to list")
	documentsCmd.Flags().StringVarP(&documentsOut, "out", "o", "", "Path for the fetched PDF")
	rootCmd.AddCommand(documentsCmd)
}

func runDocuments(cmd *cobra.Command, _ []string) error {
	var b backends
	defer b.close()
	if err := b.openStore(cmd.Context()); err != nil {
		return err
	}
	if b.store == nil {
		return fmt.Errorf("no document store configured; set DATABASE_URL or SQLITE_PATH")
	}

	if documentsID == "" {
		docs, err := b.store.ListDocuments(cmd.Context(), documentsLimit)
		if err != nil {
			return fmt.Errorf("failed to list documents: %w", err)
		}
		observability.NewPrinter(cmd.OutOrStdout()).PrintDocuments(docs)
		return nil
	}

	id, err := uuid.Parse(documentsID)
	if err != nil {
		return fmt.Errorf("invalid document id: %w", err)
	}
	doc, err := b.store.GetDocument(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}
	if doc == nil {
		return fmt.Errorf("document not found: %s", id)
	}
	out := documentsOut
	if out == "" {
		out = doc.Filename
	}
	if err := writeOutput(out, doc.Content); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", out, len(doc.Content))
	return nil
}
