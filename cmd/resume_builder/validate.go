package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate resume JSON",
	Long:  "Checks a resume JSON file against the resume schema and the struct-level rules used before rendering.",
	RunE:  runValidate,
}

var (
	validateDataFile    string
	validatePrintSchema bool
)

func init() {
	validateCmd.Flags().StringVarP(&validateDataFile, "data", "d", "", "Path to resume JSON file")
	validateCmd.Flags().BoolVar(&validatePrintSchema, "print-schema", false, "Print the resume JSON schema and exit")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	if validatePrintSchema {
		_, _ = cmd.OutOrStdout().Write(schemas.ResumeSchema())
		return nil
	}
	if validateDataFile == "" {
		return fmt.Errorf("--data is required")
	}

	data, err := schemas.LoadResumeFile(validateDataFile)
	if err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Validation failed for %s\n", validateDataFile)
		}
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Validation passed: %s (%s)\n", validateDataFile, data.Name)
	return nil
}
