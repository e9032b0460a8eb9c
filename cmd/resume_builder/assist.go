package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/assistant"
	"github.com/jonathan/resume-builder/internal/types"
)

var enhanceCmd = &cobra.Command{
	Use:   "enhance",
	Short: "Rewrite a resume section with the writing assistant",
}

var enhanceSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Rewrite a professional summary for a target role",
	RunE:  runEnhanceSummary,
}

var enhanceExperienceCmd = &cobra.Command{
	Use:   "experience",
	Short: "Rewrite an experience entry as achievement bullets",
	RunE:  runEnhanceExperience,
}

var enhanceProjectCmd = &cobra.Command{
	Use:   "project",
	Short: "Rewrite a project description as resume bullets",
	RunE:  runEnhanceProject,
}

var coverLetterCmd = &cobra.Command{
	Use:   "cover-letter",
	Short: "Write a cover letter",
	RunE:  runCoverLetter,
}

var linkedinCmd = &cobra.Command{
	Use:   "linkedin",
	Short: "Write a LinkedIn About section",
	RunE:  runLinkedIn,
}

var (
	assistText        string
	assistTargetRole  string
	assistRole        string
	assistCompany     string
	assistDuration    string
	assistProjectName string
	assistTech        string
	assistOutFile     string

	coverLetter types.CoverLetterRequest
	linkedin    types.LinkedInRequest
)

func init() {
	enhanceSummaryCmd.Flags().StringVar(&assistText, "text", "", "Current summary (required)")
	enhanceSummaryCmd.Flags().StringVar(&assistTargetRole, "target-role", "", "Role the summary should target (required)")

	enhanceExperienceCmd.Flags().StringVar(&assistText, "text", "", "What you did in the role (required)")
	enhanceExperienceCmd.Flags().StringVar(&assistRole, "role", "", "Job title")
	enhanceExperienceCmd.Flags().StringVar(&assistCompany, "company", "", "Company")
	enhanceExperienceCmd.Flags().StringVar(&assistDuration, "duration", "", "Dates, e.g. Jun 2023 - Aug 2023")
	enhanceExperienceCmd.Flags().StringVar(&assistTargetRole, "target-role", "", "Role to tailor the bullets to")

	enhanceProjectCmd.Flags().StringVar(&assistProjectName, "name", "", "Project name (required)")
	enhanceProjectCmd.Flags().StringVar(&assistTech, "tech", "", "Technologies used")
	enhanceProjectCmd.Flags().StringVar(&assistText, "text", "", "What the project does (required)")

	enhanceCmd.AddCommand(enhanceSummaryCmd, enhanceExperienceCmd, enhanceProjectCmd)
	enhanceCmd.PersistentFlags().StringVarP(&assistOutFile, "out", "o", "", "Write the result to a file instead of stdout")

	f := coverLetterCmd.Flags()
	f.StringVar(&coverLetter.Name, "name", "", "Your name (required)")
	f.StringVar(&coverLetter.Role, "role", "", "Role applied for (required)")
	f.StringVar(&coverLetter.Company, "company", "", "Company (required)")
	f.StringVar(&coverLetter.Skills, "skills", "", "Key skills (required)")
	f.StringVar(&coverLetter.Degree, "degree", "", "Degree")
	f.StringVar(&coverLetter.Experience, "experience", "", "Relevant experience")
	f.StringVar(&coverLetter.Achievement, "achievement", "", "Proudest achievement")
	f.StringVar(&coverLetter.WhyCompany, "why-company", "", "Why this company")
	f.StringVar(&coverLetter.Tone, "tone", "professional", "Tone: professional, enthusiastic, confident or creative")
	f.StringVarP(&assistOutFile, "out", "o", "", "Write the result to a file instead of stdout")

	f = linkedinCmd.Flags()
	f.StringVar(&linkedin.Name, "name", "", "Your name")
	f.StringVar(&linkedin.Degree, "degree", "", "Degree")
	f.StringVar(&linkedin.Target, "target", "", "Target role or industry (required)")
	f.StringVar(&linkedin.Skills, "skills", "", "Key skills (required)")
	f.StringVar(&linkedin.Projects, "projects", "", "Notable projects")
	f.StringVar(&linkedin.Achievement, "achievement", "", "Key achievement")
	f.StringVar(&linkedin.Personality, "personality", "", "A few words about you")
	f.StringVarP(&assistOutFile, "out", "o", "", "Write the result to a file instead of stdout")

	rootCmd.AddCommand(enhanceCmd, coverLetterCmd, linkedinCmd)
}

func runEnhanceSummary(cmd *cobra.Command, _ []string) error {
	return withAssistant(cmd, func(ctx context.Context, svc *assistant.Service) (any, error) {
		return svc.EnhanceSummary(ctx, assistText, assistTargetRole)
	})
}

func runEnhanceExperience(cmd *cobra.Command, _ []string) error {
	return withAssistant(cmd, func(ctx context.Context, svc *assistant.Service) (any, error) {
		exp := types.Experience{Role: assistRole, Company: assistCompany, Duration: assistDuration, Description: assistText}
		return svc.EnhanceExperience(ctx, exp, assistTargetRole)
	})
}

func runEnhanceProject(cmd *cobra.Command, _ []string) error {
	return withAssistant(cmd, func(ctx context.Context, svc *assistant.Service) (any, error) {
		return svc.EnhanceProject(ctx, types.Project{Name: assistProjectName, Tech: assistTech, Description: assistText})
	})
}

func runCoverLetter(cmd *cobra.Command, _ []string) error {
	return withAssistant(cmd, func(ctx context.Context, svc *assistant.Service) (any, error) {
		return svc.CoverLetter(ctx, coverLetter)
	})
}

func runLinkedIn(cmd *cobra.Command, _ []string) error {
	return withAssistant(cmd, func(ctx context.Context, svc *assistant.Service) (any, error) {
		return svc.LinkedInSummary(ctx, linkedin)
	})
}

// withAssistant builds the assistant, runs fn under LLM_TIMEOUT and prints
// its result: strings as text, anything else as indented JSON.
func withAssistant(cmd *cobra.Command, fn func(context.Context, *assistant.Service) (any, error)) error {
	var b backends
	defer b.close()
	b.openCache(cmd.Context())
	svc, err := b.requireAssistant(cmd.Context())
	if err != nil {
		return err
	}

	ctx, cancel := llmContext(cmd.Context())
	defer cancel()
	result, err := fn(ctx, svc)
	if err != nil {
		return err
	}
	return printResult(cmd, result)
}

func printResult(cmd *cobra.Command, result any) error {
	var out []byte
	switch v := result.(type) {
	case string:
		out = []byte(strings.TrimRight(v, "\n") + "\n")
	default:
		raw, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		out = append(raw, '\n')
	}

	if assistOutFile != "" {
		if err := writeOutput(assistOutFile, out); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", assistOutFile)
		return nil
	}
	_, err := cmd.OutOrStdout().Write(out)
	return err
}

// readJobText returns the job description from a file, or fetches it from
// a URL. Both empty is allowed and yields "".
func readJobText(cmd *cobra.Command, b *backends, path, url string, useBrowser bool) (string, error) {
	if path != "" && url != "" {
		return "", fmt.Errorf("--job and --job-url are mutually exclusive")
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read job file: %w", err)
		}
		return string(raw), nil
	}
	if url == "" {
		return "", nil
	}
	posting, err := b.newJobFetcher(useBrowser).JobDescription(cmd.Context(), url)
	if err != nil {
		return "", fmt.Errorf("failed to fetch job posting: %w", err)
	}
	if p := printer(cmd); p != nil {
		p.PrintJobPosting(posting)
	}
	return posting.Description(), nil
}
