package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/types"
)

const atsAnswer = `ATS MATCH SCORE: 72/100

MATCHED KEYWORDS:
• Go

MISSING KEYWORDS:
• Kubernetes

VERDICT:
Apply.`

func promptContains(parts ...string) gomock.Matcher {
	return gomock.Cond(func(p any) bool {
		for _, part := range parts {
			if !strings.Contains(p.(string), part) {
				return false
			}
		}
		return true
	})
}

func TestAssistCommands_NoAPIKey(t *testing.T) {
	isolateEnv(t)
	_, err := execute(t, "", "enhance", "summary", "--text", "x", "--target-role", "y")
	assert.ErrorContains(t, err, "GEMINI_API_KEY is not set")

	t.Setenv("LLM_PROVIDER", "openai")
	_, err = execute(t, "", "linkedin", "--target", "SRE", "--skills", "Go")
	assert.ErrorContains(t, err, "OPENAI_API_KEY is not set")
}

func TestEnhanceSummaryCommand(t *testing.T) {
	isolateEnv(t)
	client := mockLLM(t)
	client.EXPECT().
		GenerateContent(gomock.Any(), promptContains("Built dashboards.", "Data Analyst"), llm.TierLite).
		Return("Results-driven analyst.", nil)

	out, err := execute(t, "", "enhance", "summary", "--text", "Built dashboards.", "--target-role", "Data Analyst")
	require.NoError(t, err)
	assert.Equal(t, "Results-driven analyst.\n", out)
}

func TestEnhanceProjectCommand_ToFile(t *testing.T) {
	isolateEnv(t)
	client := mockLLM(t)
	client.EXPECT().
		GenerateContent(gomock.Any(), promptContains("Tracker", "Go, Redis"), gomock.Any()).
		Return("• Built a tracker", nil)

	path := filepath.Join(t.TempDir(), "project.txt")
	out, err := execute(t, "", "enhance", "project", "--name", "Tracker", "--tech", "Go, Redis", "--text", "Tracks jobs", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "• Built a tracker\n", string(got))
}

func TestEnhanceExperienceCommand_InvalidInput(t *testing.T) {
	isolateEnv(t)
	mockLLM(t)
	_, err := execute(t, "", "enhance", "experience", "--role", "Engineer")
	assert.ErrorContains(t, err, "experience description is required")
}

func TestCoverLetterCommand(t *testing.T) {
	isolateEnv(t)
	client := mockLLM(t)
	client.EXPECT().
		GenerateContent(gomock.Any(), promptContains("Jane Doe", "Acme", "enthusiastic"), llm.TierStandard).
		Return("Dear Hiring Manager,", nil)

	out, err := execute(t, "", "cover-letter", "--name", "Jane Doe", "--role", "Engineer",
		"--company", "Acme", "--skills", "Go", "--tone", "enthusiastic")
	require.NoError(t, err)
	assert.Equal(t, "Dear Hiring Manager,\n", out)
}

func TestCoverLetterCommand_BadTone(t *testing.T) {
	isolateEnv(t)
	mockLLM(t)
	_, err := execute(t, "", "cover-letter", "--name", "Jane", "--role", "Eng",
		"--company", "Acme", "--skills", "Go", "--tone", "sarcastic")
	assert.ErrorContains(t, err, "Tone")
}

func TestATSCommand(t *testing.T) {
	isolateEnv(t)
	client := mockLLM(t)
	client.EXPECT().
		GenerateContent(gomock.Any(), promptContains("Go developer", "We need Kubernetes"), gomock.Any()).
		Return(atsAnswer, nil)

	resume := writeFile(t, "resume.txt", "Jane Doe\n\nGo developer\n")
	job := writeFile(t, "job.txt", "We need Kubernetes.")

	out, err := execute(t, "", "ats", "--resume", resume, "--job", job)
	require.NoError(t, err)
	assert.Contains(t, out, "ATS MATCH REPORT")
	assert.Contains(t, out, "72/100")
	assert.Contains(t, out, "• Kubernetes")
}

func TestATSCommand_JSONFromResumeJSON(t *testing.T) {
	isolateEnv(t)
	client := mockLLM(t)
	client.EXPECT().
		GenerateContent(gomock.Any(), promptContains("Jane Doe", "SKILLS"), gomock.Any()).
		Return(atsAnswer, nil)

	resume := writeFile(t, "resume.json", janeJSON)
	job := writeFile(t, "job.txt", "Go role")

	out, err := execute(t, "", "ats", "--resume", resume, "--job", job, "--json")
	require.NoError(t, err)

	var report types.ATSReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 72, report.Score)
	assert.Equal(t, types.RatingGood, report.Rating)
	assert.Equal(t, "Apply.", report.Verdict)
}

func TestATSCommand_JobRequired(t *testing.T) {
	isolateEnv(t)
	mockLLM(t)
	resume := writeFile(t, "resume.txt", "Go developer")

	_, err := execute(t, "", "ats", "--resume", resume)
	assert.ErrorContains(t, err, "one of --job or --job-url is required")

	_, err = execute(t, "", "ats", "--resume", resume, "--job", "a.txt", "--job-url", "https://example.com")
	assert.ErrorContains(t, err, "mutually exclusive")
}

func TestATSCommand_ModelFailure(t *testing.T) {
	isolateEnv(t)
	client := mockLLM(t)
	client.EXPECT().GenerateContent(gomock.Any(), gomock.Any(), gomock.Any()).
		Return("", errors.New("quota exceeded"))

	resume := writeFile(t, "resume.txt", "Go developer")
	job := writeFile(t, "job.txt", "Go role")
	_, err := execute(t, "", "ats", "--resume", resume, "--job", job)
	assert.ErrorContains(t, err, "quota exceeded")
}

func TestGenerateCommand(t *testing.T) {
	isolateEnv(t)
	client := mockLLM(t)
	client.EXPECT().
		GenerateContent(gomock.Any(), promptContains("Name: Jane Doe", "Platform team"), llm.TierAdvanced).
		Return("[SUMMARY]\nPlatform engineer.\n[SKILLS]\nLanguages: Go\n", nil)

	data := writeFile(t, "jane.json", janeJSON)
	job := writeFile(t, "job.txt", "Platform team")
	dir := t.TempDir()
	outJSON := filepath.Join(dir, "generated.json")
	outPDF := filepath.Join(dir, "generated.pdf")

	stdout, err := execute(t, "", "generate", "--data", data, "--job", job, "--out", outJSON, "--pdf", outPDF, "--template", "Bold Red")
	require.NoError(t, err)
	assert.Contains(t, stdout, `Rendered `+outPDF+` with "Bold Red"`)

	raw, err := os.ReadFile(outJSON)
	require.NoError(t, err)
	var got types.ResumeData
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "Platform engineer.", got.Summary)
	assert.Equal(t, "Languages: Go", got.Skills)
	assert.Equal(t, "- Resume builder\n- Job tracker", got.Projects)
	assert.FileExists(t, outPDF)
}
