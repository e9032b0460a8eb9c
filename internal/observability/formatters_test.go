package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/fetch"
	"github.com/jonathan/resume-builder/internal/parsing"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
)

func TestPrintSections(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	sections := parsing.Sections{
		"SUMMARY": "Backend engineer.",
		"SKILLS":  "Go\nSQL",
		"EXTRA":   "",
	}
	p.PrintSections(sections, []string{"SUMMARY", "SKILLS", "EXTRA", "PROJECTS"})
	output := buf.String()

	assert.Contains(t, output, "EXTRACTED SECTIONS")
	assert.Contains(t, output, "Backend engineer.")
	assert.Contains(t, output, "  Go ")
	assert.Contains(t, output, "  SQL ")
	assert.Contains(t, output, "(empty)")
	assert.Contains(t, output, "(missing)")
	assert.Less(t, strings.Index(output, "SUMMARY:"), strings.Index(output, "PROJECTS:"))
}

func TestPrintSections_NoLabels(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintSections(parsing.Sections{"A": "x"}, nil)
	assert.Empty(t, buf.String())
}

func TestPrintATSReport(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintATSReport(&types.ATSReport{
		Score:           72,
		ScoreFound:      true,
		Rating:          types.RatingGood,
		MatchedKeywords: "• Go\n• SQL",
		MissingKeywords: "• Kubernetes",
		Recommendations: "1. Add Kubernetes\n2. Quantify results\n3. a\n4. b\n5. c\n6. d",
		Verdict:         "Apply.\nGood fit.",
	})
	output := buf.String()

	assert.Contains(t, output, "ATS MATCH REPORT")
	assert.Contains(t, output, "72/100")
	assert.Contains(t, output, "good")
	assert.Contains(t, output, "• Kubernetes")
	assert.Contains(t, output, "• Add Kubernetes")
	assert.Contains(t, output, "... and 1 more")
	assert.Contains(t, output, "Apply. Good fit.")
	assert.NotContains(t, output, "Skill Gaps")
}

func TestPrintATSReport_NoScore(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintATSReport(&types.ATSReport{Rating: types.RatingUnknown})
	assert.Contains(t, buf.String(), "not reported")
	assert.Contains(t, buf.String(), "unknown")
}

func TestPrintATSReport_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintATSReport(nil)
	assert.Empty(t, buf.String())
}

func TestPrintTemplates(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintTemplates(rendering.Templates(), rendering.DefaultTemplateName)
	output := buf.String()

	assert.Contains(t, output, "TEMPLATES")
	for _, name := range rendering.TemplateNames() {
		assert.Contains(t, output, name)
	}
	assert.Contains(t, output, "* Classic Professional")
	assert.Contains(t, output, "  Minimal Green")
	assert.Contains(t, output, "#27ae60")
}

func TestPrintDocuments(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	id := uuid.New()
	p.PrintDocuments([]db.Document{{
		ID:        id,
		Template:  "Bold Red",
		Filename:  "Jane_Doe_Resume.pdf",
		Size:      2048,
		CreatedAt: time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
	}})
	output := buf.String()

	assert.Contains(t, output, "Total: 1")
	assert.Contains(t, output, id.String())
	assert.Contains(t, output, "Jane_Doe_Resume.pdf (Bold Red, 2048 bytes)")
	assert.Contains(t, output, "2026-03-01 09:30:00")
}

func TestPrintDocuments_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintDocuments(nil)
	assert.Contains(t, buf.String(), "No documents stored")
}

func TestPrintJobPosting(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintJobPosting(&fetch.JobPosting{
		Title:    "Backend Engineer",
		Company:  "Acme",
		Platform: fetch.PlatformGreenhouse,
		Markdown: "## About\n\nWe build things.\n\n- Go\n- SQL\n- Redis\n- Kafka\n- Docker",
	})
	output := buf.String()

	assert.Contains(t, output, "Backend Engineer")
	assert.Contains(t, output, "Acme")
	assert.Contains(t, output, "greenhouse")
	assert.Contains(t, output, "## About")
	assert.Contains(t, output, "... and 2 more lines")
	assert.NotContains(t, output, "headless browser")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("é", 100))
	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line), line)
	}
	assert.Contains(t, buf.String(), "...")
}
