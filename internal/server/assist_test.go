package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jonathan/resume-builder/internal/assistant"
	"github.com/jonathan/resume-builder/internal/fetch"
	llmmocks "github.com/jonathan/resume-builder/internal/llm/mocks"
	"github.com/jonathan/resume-builder/internal/types"
)

type fakeJobs struct {
	posting *fetch.JobPosting
	err     error
	urls    []string
}

func (f *fakeJobs) JobDescription(_ context.Context, url string) (*fetch.JobPosting, error) {
	f.urls = append(f.urls, url)
	return f.posting, f.err
}

func newAssistServer(t *testing.T, jobs JobFetcher) (*Server, *llmmocks.MockClient) {
	t.Helper()
	ctrl := gomock.NewController(t)
	client := llmmocks.NewMockClient(ctrl)
	client.EXPECT().GetModel(gomock.Any()).Return("test-model").AnyTimes()
	deps := Deps{Assistant: assistant.NewService(client, discardLogger())}
	if jobs != nil {
		deps.Jobs = jobs
	}
	return newTestServer(t, nil, deps), client
}

func TestAssist_NoAssistant(t *testing.T) {
	s := newTestServer(t, nil, Deps{})
	rec := do(t, s, http.MethodPost, "/assist/summary", `{"summary":"x","target_role":"y"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "LLM provider is not configured")
}

func TestAssist_UnknownKind(t *testing.T) {
	s, _ := newAssistServer(t, nil)
	rec := do(t, s, http.MethodPost, "/assist/poem", `{}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAssist_Summary(t *testing.T) {
	s, client := newAssistServer(t, nil)
	client.EXPECT().
		GenerateContent(gomock.Any(), gomock.Cond(func(p any) bool {
			return strings.Contains(p.(string), "Data Analyst")
		}), gomock.Any()).
		Return("Results-driven analyst.", nil)

	rec := do(t, s, http.MethodPost, "/assist/summary", `{"summary":"Built dashboards.","target_role":"Data Analyst"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decodeBody[TextResponse](t, rec)
	assert.Equal(t, TextResponse{Kind: assistant.OpSummary, Text: "Results-driven analyst."}, resp)

	metrics := do(t, s, http.MethodGet, "/metrics", "").Body.String()
	assert.Contains(t, metrics, `assistant_requests_total{kind="summary",outcome="ok"} 1`)
}

func TestAssist_InvalidInput(t *testing.T) {
	s, _ := newAssistServer(t, nil)
	rec := do(t, s, http.MethodPost, "/assist/project", `{"name":"","description":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "project name and description are required")
}

func TestAssist_ModelFailure(t *testing.T) {
	s, client := newAssistServer(t, nil)
	client.EXPECT().GenerateContent(gomock.Any(), gomock.Any(), gomock.Any()).
		Return("", errors.New("quota exceeded"))

	rec := do(t, s, http.MethodPost, "/assist/experience",
		`{"role":"Engineer","company":"Acme","description":"Shipped things","target_role":"SRE"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	metrics := do(t, s, http.MethodGet, "/metrics", "").Body.String()
	assert.Contains(t, metrics, `assistant_requests_total{kind="experience",outcome="error"} 1`)
}

func TestAssist_ATSWithJobURL(t *testing.T) {
	jobs := &fakeJobs{posting: &fetch.JobPosting{Markdown: "We need Go and Kubernetes."}}
	s, client := newAssistServer(t, jobs)
	client.EXPECT().
		GenerateContent(gomock.Any(), gomock.Cond(func(p any) bool {
			prompt := p.(string)
			return strings.Contains(prompt, "We need Go and Kubernetes.") && strings.Contains(prompt, "Jane Doe")
		}), gomock.Any()).
		Return("ATS MATCH SCORE: 72/100\n\nMATCHED KEYWORDS:\n• Go\n\nMISSING KEYWORDS:\n• Kubernetes", nil)

	body := `{"resume":{"name":"Jane Doe","skills":"Go, SQL"},"job_url":"https://boards.greenhouse.io/acme/jobs/1"}`
	rec := do(t, s, http.MethodPost, "/assist/ats", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	report := decodeBody[types.ATSReport](t, rec)
	assert.Equal(t, 72, report.Score)
	assert.True(t, report.ScoreFound)
	assert.Equal(t, "• Kubernetes", report.MissingKeywords)
	assert.Equal(t, []string{"https://boards.greenhouse.io/acme/jobs/1"}, jobs.urls)
}

func TestAssist_ATSJobURLWithoutFetcher(t *testing.T) {
	s, _ := newAssistServer(t, nil)
	rec := do(t, s, http.MethodPost, "/assist/ats", `{"resume_text":"Go","job_url":"https://example.com/job"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAssist_ATSFetchFailure(t *testing.T) {
	jobs := &fakeJobs{err: &fetch.Error{URL: "https://example.com/job", Message: "HTTP status 404", StatusCode: 404}}
	s, _ := newAssistServer(t, jobs)
	rec := do(t, s, http.MethodPost, "/assist/ats", `{"resume_text":"Go","job_url":"https://example.com/job"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestAssist_Generate(t *testing.T) {
	s, client := newAssistServer(t, nil)
	client.EXPECT().GenerateContent(gomock.Any(), gomock.Any(), gomock.Any()).
		Return("[SUMMARY]\nBackend engineer focused on Go.\n[SKILLS]\nGo, PostgreSQL\n", nil)

	body := `{"resume":{"name":"Jane Doe","summary":"Engineer.","skills":"Go","projects":"- Tracker"},"job_description":"Go backend role"}`
	rec := do(t, s, http.MethodPost, "/assist/generate", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	out := decodeBody[types.ResumeData](t, rec)
	assert.Equal(t, "Jane Doe", out.Name)
	assert.Equal(t, "Backend engineer focused on Go.", out.Summary)
	assert.Equal(t, "Go, PostgreSQL", out.Skills)
	assert.Equal(t, "- Tracker", out.Projects)
}
