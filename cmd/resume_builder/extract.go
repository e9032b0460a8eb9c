package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/parsing"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract labelled sections from text",
	Long: `Splits free text into the sections named by --labels. A label is written as "[LABEL]" anywhere
or as "LABEL:" at the start of a line, case-insensitively. Reads stdin when --in is "-".`,
	RunE: runExtract,
}

var (
	extractInFile      string
	extractLabels      string
	extractPlaceholder string
	extractJSON        bool
)

func init() {
	extractCmd.Flags().StringVarP(&extractInFile, "in", "i", "-", "Path to the text file, or - for stdin")
	extractCmd.Flags().StringVarP(&extractLabels, "labels", "l", "", "Comma-separated section labels (required)")
	extractCmd.Flags().StringVar(&extractPlaceholder, "placeholder", "", "Value for labels that are not found")
	extractCmd.Flags().BoolVar(&extractJSON, "json", false, "Print the sections as a JSON object")

	_ = extractCmd.MarkFlagRequired("labels")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, _ []string) error {
	labels := splitLabels(extractLabels)
	if len(labels) == 0 {
		return fmt.Errorf("--labels must name at least one section")
	}

	var (
		raw []byte
		err error
	)
	if extractInFile == "-" {
		raw, err = io.ReadAll(cmd.InOrStdin())
	} else {
		raw, err = os.ReadFile(extractInFile)
	}
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	var opts []parsing.Option
	if cmd.Flags().Changed("placeholder") {
		opts = append(opts, parsing.WithPlaceholder(extractPlaceholder))
	}
	sections := parsing.Extract(string(raw), labels, opts...)

	if extractJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(sections); err != nil {
			return fmt.Errorf("failed to encode sections: %w", err)
		}
		return nil
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintSections(sections, labels)
	return nil
}

func splitLabels(s string) []string {
	var labels []string
	for _, l := range strings.Split(s, ",") {
		if l = strings.TrimSpace(l); l != "" {
			labels = append(labels, l)
		}
	}
	return labels
}
