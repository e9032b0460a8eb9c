// Package assistant implements the AI writing features: rewriting resume
// fields, cover letters, LinkedIn summaries, ATS match reports and full
// resume generation.
package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/parsing"
	"github.com/jonathan/resume-builder/internal/prompts"
	"github.com/jonathan/resume-builder/internal/types"
)

// Operation names, also used as the {kind} of the HTTP assist endpoint.
const (
	OpSummary     = "summary"
	OpExperience  = "experience"
	OpProject     = "project"
	OpCoverLetter = "cover-letter"
	OpLinkedIn    = "linkedin"
	OpATS         = "ats"
	OpGenerate    = "generate"
)

// Labels of the ATS report sections, in prompt order.
const (
	LabelMatched         = "MATCHED KEYWORDS"
	LabelMissing         = "MISSING KEYWORDS"
	LabelSkillGaps       = "SKILL GAPS"
	LabelStrengths       = "STRENGTHS"
	LabelRecommendations = "RECOMMENDATIONS"
	LabelVerdict         = "VERDICT"
)

// Labels of a generated resume.
const (
	LabelSummary      = "SUMMARY"
	LabelSkills       = "SKILLS"
	LabelProjects     = "PROJECTS"
	LabelAchievements = "ACHIEVEMENTS"
	LabelExtra        = "EXTRA"
)

var (
	atsParser = parsing.NewParser([]string{
		LabelMatched, LabelMissing, LabelSkillGaps, LabelStrengths, LabelRecommendations, LabelVerdict,
	})
	resumeParser = parsing.NewParser([]string{
		LabelSummary, LabelSkills, LabelProjects, LabelAchievements, LabelExtra,
	})
)

// Tones maps a cover letter tone to the wording given to the model.
var Tones = map[string]string{
	"professional": "very formal and professional",
	"enthusiastic": "enthusiastic, warm and energetic",
	"confident":    "confident, direct and concise",
	"creative":     "creative and memorable while staying professional",
}

// DefaultTone is used when a cover letter request names none.
const DefaultTone = "professional"

// Service runs the writing features against an LLM.
type Service struct {
	client llm.Client
	logger *slog.Logger
}

// NewService creates a Service. A nil logger uses slog.Default.
func NewService(client llm.Client, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{client: client, logger: logger}
}

// EnhanceSummary rewrites a professional summary for targetRole.
func (s *Service) EnhanceSummary(ctx context.Context, summary, targetRole string) (string, error) {
	if strings.TrimSpace(summary) == "" || strings.TrimSpace(targetRole) == "" {
		return "", invalidInput("summary and target role are required")
	}
	return s.generate(ctx, OpSummary, "enhance-summary", llm.TierLite, map[string]string{
		"Summary":    summary,
		"TargetRole": targetRole,
	})
}

// EnhanceExperience rewrites an experience description as action-verb bullets.
func (s *Service) EnhanceExperience(ctx context.Context, exp types.Experience, targetRole string) (string, error) {
	if strings.TrimSpace(exp.Description) == "" {
		return "", invalidInput("experience description is required")
	}
	return s.generate(ctx, OpExperience, "enhance-experience", llm.TierLite, map[string]string{
		"Role":        exp.Role,
		"Company":     exp.Company,
		"TargetRole":  orDefault(targetRole, "Software/Data role"),
		"Description": exp.Description,
	})
}

// EnhanceProject rewrites a project description in one or two sentences.
func (s *Service) EnhanceProject(ctx context.Context, p types.Project) (string, error) {
	if strings.TrimSpace(p.Name) == "" || strings.TrimSpace(p.Description) == "" {
		return "", invalidInput("project name and description are required")
	}
	return s.generate(ctx, OpProject, "enhance-project", llm.TierLite, map[string]string{
		"Name":        p.Name,
		"Tech":        p.Tech,
		"Description": p.Description,
	})
}

// CoverLetter writes a cover letter in the requested tone.
func (s *Service) CoverLetter(ctx context.Context, req types.CoverLetterRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", invalidInput("%v", err)
	}
	tone := Tones[orDefault(req.Tone, DefaultTone)]

	var achievementNote, companyNote string
	if a := strings.TrimSpace(req.Achievement); a != "" {
		achievementNote = "\nKey achievement to highlight: " + a
	}
	if w := strings.TrimSpace(req.WhyCompany); w != "" {
		companyNote = "\nWhy this company (use this): " + w
	}

	return s.generate(ctx, OpCoverLetter, "cover-letter", llm.TierStandard, map[string]string{
		"Name":            req.Name,
		"Role":            req.Role,
		"Company":         req.Company,
		"Degree":          orDefault(req.Degree, "Engineering student"),
		"Experience":      orDefault(req.Experience, "Fresher (0 years)"),
		"Skills":          req.Skills,
		"Tone":            tone,
		"AchievementNote": achievementNote,
		"CompanyNote":     companyNote,
	})
}

// LinkedInSummary writes a LinkedIn "About" section.
func (s *Service) LinkedInSummary(ctx context.Context, req types.LinkedInRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", invalidInput("%v", err)
	}
	return s.generate(ctx, OpLinkedIn, "linkedin-summary", llm.TierStandard, map[string]string{
		"Name":        orDefault(req.Name, "the candidate"),
		"Degree":      orDefault(req.Degree, "Engineering student"),
		"Target":      req.Target,
		"Skills":      req.Skills,
		"Projects":    orDefault(req.Projects, "Built multiple academic projects"),
		"Achievement": req.Achievement,
		"Personality": orDefault(req.Personality, "Ambitious & Driven"),
	})
}

// CheckATS scores resumeText against a job description and splits the
// model's report into its sections. A report without a recognizable score
// is still returned, with ScoreFound false and RatingUnknown.
func (s *Service) CheckATS(ctx context.Context, resumeText, jobDescription string) (*types.ATSReport, error) {
	if strings.TrimSpace(resumeText) == "" || strings.TrimSpace(jobDescription) == "" {
		return nil, invalidInput("resume text and job description are required")
	}
	raw, err := s.generate(ctx, OpATS, "ats-analysis", llm.TierStandard, map[string]string{
		"Resume":         resumeText,
		"JobDescription": jobDescription,
	})
	if err != nil {
		return nil, err
	}
	return ParseATSReport(raw), nil
}

// ParseATSReport reads a score and the labelled sections out of an ATS answer.
func ParseATSReport(raw string) *types.ATSReport {
	sections := atsParser.Parse(raw)
	report := &types.ATSReport{
		MatchedKeywords: sections.Get(LabelMatched),
		MissingKeywords: sections.Get(LabelMissing),
		SkillGaps:       sections.Get(LabelSkillGaps),
		Strengths:       sections.Get(LabelStrengths),
		Recommendations: sections.Get(LabelRecommendations),
		Verdict:         sections.Get(LabelVerdict),
		Raw:             raw,
		Rating:          types.RatingUnknown,
	}
	if score, ok := parsing.ParseScore(raw); ok {
		report.Score = score
		report.ScoreFound = true
		report.Rating = types.RatingForScore(score)
	}
	return report
}

// GenerateResume asks the model for ATS-optimized prose and returns a copy of
// data with the generated summary, skills, projects, achievements and extra
// sections. Sections the model leaves out keep their original text.
func (s *Service) GenerateResume(ctx context.Context, data *types.ResumeData, jobDescription string) (*types.ResumeData, error) {
	if data == nil || strings.TrimSpace(data.Name) == "" {
		return nil, invalidInput("resume name is required")
	}
	raw, err := s.generate(ctx, OpGenerate, "generate-resume", llm.TierAdvanced, map[string]string{
		"Name":           data.Name,
		"Education":      educationText(data.Education),
		"Experience":     experienceText(data.Experience),
		"Skills":         data.Skills,
		"Projects":       data.Projects,
		"Achievements":   data.Achievements,
		"Extra":          data.Extra,
		"Summary":        data.Summary,
		"JobDescription": orDefault(jobDescription, "General software role"),
	})
	if err != nil {
		return nil, err
	}

	sections := resumeParser.Parse(raw)
	out := data.Clone()
	filled := 0
	for label, field := range map[string]*string{
		LabelSummary:      &out.Summary,
		LabelSkills:       &out.Skills,
		LabelProjects:     &out.Projects,
		LabelAchievements: &out.Achievements,
		LabelExtra:        &out.Extra,
	} {
		if v := sections.Get(label); v != "" {
			*field = v
			filled++
		}
	}
	if filled == 0 {
		return nil, &GenerationError{Operation: OpGenerate, Message: "response contained no labelled sections"}
	}
	return out, nil
}

// generate renders a prompt, calls the model and returns its trimmed answer.
func (s *Service) generate(ctx context.Context, op, promptKey string, tier llm.ModelTier, data map[string]string) (string, error) {
	if s.client == nil {
		return "", ErrNoClient
	}
	prompt, err := prompts.Render(prompts.Assistant, promptKey, data)
	if err != nil {
		return "", &GenerationError{Operation: op, Message: "failed to build prompt", Cause: err}
	}

	start := time.Now()
	text, err := s.client.GenerateContent(ctx, prompt, tier)
	s.logger.Debug("llm call",
		slog.String("operation", op),
		slog.String("model", s.client.GetModel(tier)),
		slog.Duration("duration", time.Since(start)),
		slog.Bool("ok", err == nil),
	)
	if err != nil {
		return "", &GenerationError{Operation: op, Message: "model call failed", Cause: err}
	}
	text = llm.StripFences(text)
	if text == "" {
		return "", &GenerationError{Operation: op, Message: "model returned an empty response"}
	}
	return text, nil
}

func educationText(entries []types.Education) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		var fields []string
		for _, f := range []string{e.Degree, e.Institution, e.Year, e.Grade} {
			if f = strings.TrimSpace(f); f != "" {
				fields = append(fields, f)
			}
		}
		if len(fields) > 0 {
			parts = append(parts, strings.Join(fields, ", "))
		}
	}
	return strings.Join(parts, "; ")
}

func experienceText(entries []types.Experience) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		head := strings.TrimSpace(e.Role)
		if c := strings.TrimSpace(e.Company); c != "" {
			head = strings.TrimSpace(fmt.Sprintf("%s at %s", head, c))
		}
		if d := strings.TrimSpace(e.Duration); d != "" {
			head += " (" + d + ")"
		}
		if desc := strings.TrimSpace(e.Description); desc != "" {
			head += ": " + desc
		}
		if head != "" {
			parts = append(parts, head)
		}
	}
	return strings.Join(parts, "\n")
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return def
}
