package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/schemas"
)

func TestTemplatesCommand(t *testing.T) {
	isolateEnv(t)
	out, err := execute(t, "", "templates")
	require.NoError(t, err)

	for _, name := range rendering.TemplateNames() {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "* Classic Professional")
}

func TestTemplatesCommand_DefaultFromEnv(t *testing.T) {
	isolateEnv(t)
	t.Setenv("DEFAULT_TEMPLATE", "Bold Red")
	out, err := execute(t, "", "templates")
	require.NoError(t, err)
	assert.Contains(t, out, "* Bold Red")
}

func TestTemplatesCommand_JSON(t *testing.T) {
	isolateEnv(t)
	out, err := execute(t, "", "templates", "--json")
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, len(rendering.TemplateNames()))
	assert.Equal(t, "Classic Professional", got[0]["name"])
	assert.Equal(t, "classic", got[0]["layout"])
	assert.Equal(t, "modern", got[1]["layout"])
}

func TestRenderCommand(t *testing.T) {
	isolateEnv(t)
	data := writeFile(t, "jane.json", janeJSON)
	out := filepath.Join(t.TempDir(), "nested", "jane.pdf")

	stdout, err := execute(t, "", "render", "--data", data, "--template", "modern-purple", "--out", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, `with "Modern Purple"`)

	pdf, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
}

func TestRenderCommand_Errors(t *testing.T) {
	isolateEnv(t)
	valid := writeFile(t, "jane.json", janeJSON)
	noName := writeFile(t, "anon.json", `{"email":"jane@example.com"}`)
	out := filepath.Join(t.TempDir(), "out.pdf")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing data flag", []string{"render"}, `required flag(s) "data" not set`},
		{"unknown template", []string{"render", "--data", valid, "--template", "Neon", "--out", out}, "unknown template"},
		{"schema failure", []string{"render", "--data", noName, "--out", out}, "validation failed"},
		{"store without backend", []string{"render", "--data", valid, "--out", out, "--store"}, "--store needs DATABASE_URL or SQLITE_PATH"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRenderCommand_StoreAndDocuments(t *testing.T) {
	isolateEnv(t)
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "docs.db"))
	data := writeFile(t, "jane.json", janeJSON)
	out := filepath.Join(t.TempDir(), "Jane_Doe_Resume.pdf")

	stdout, err := execute(t, "", "render", "--data", data, "--out", out, "--store")
	require.NoError(t, err)
	require.Contains(t, stdout, "Stored document ")
	id := strings.TrimSpace(stdout[strings.Index(stdout, "Stored document ")+len("Stored document "):])

	listing, err := execute(t, "", "documents")
	require.NoError(t, err)
	assert.Contains(t, listing, id)
	assert.Contains(t, listing, "Jane_Doe_Resume.pdf (Classic Professional")

	fetched := filepath.Join(t.TempDir(), "fetched.pdf")
	_, err = execute(t, "", "documents", "--id", id, "--out", fetched)
	require.NoError(t, err)
	want, err := os.ReadFile(out)
	require.NoError(t, err)
	got, err := os.ReadFile(fetched)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = execute(t, "", "documents", "--id", "not-a-uuid")
	assert.ErrorContains(t, err, "invalid document id")
}

func TestSamplesCommand(t *testing.T) {
	isolateEnv(t)
	dir := filepath.Join(t.TempDir(), "samples")

	stdout, err := execute(t, "", "samples", "--out-dir", dir)
	require.NoError(t, err)

	for _, tmpl := range rendering.Templates() {
		path := filepath.Join(dir, sampleFilename(tmpl))
		assert.Contains(t, stdout, path)
		pdf, err := os.ReadFile(path)
		require.NoError(t, err, tmpl.Name)
		assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")), tmpl.Name)
	}
	assert.FileExists(t, filepath.Join(dir, "sample_minimal_green.pdf"))
}

func TestExtractCommand(t *testing.T) {
	isolateEnv(t)
	text := "[SUMMARY]\nBackend engineer.\n\nSKILLS:\nGo\nSQL\n"

	out, err := execute(t, text, "extract", "--labels", "SUMMARY, SKILLS, EXTRA", "--json", "--placeholder", "n/a")
	require.NoError(t, err)

	var sections map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &sections))
	assert.Equal(t, "Backend engineer.", sections["SUMMARY"])
	assert.Equal(t, "Go\nSQL", sections["SKILLS"])
	assert.Equal(t, "n/a", sections["EXTRA"])
}

func TestExtractCommand_BoxOutput(t *testing.T) {
	isolateEnv(t)
	in := writeFile(t, "answer.txt", "SUMMARY: Backend engineer.")

	out, err := execute(t, "", "extract", "--in", in, "--labels", "SUMMARY")
	require.NoError(t, err)
	assert.Contains(t, out, "EXTRACTED SECTIONS")
	assert.Contains(t, out, "Backend engineer.")
}

func TestExtractCommand_NoLabels(t *testing.T) {
	isolateEnv(t)
	_, err := execute(t, "text", "extract", "--labels", " , ")
	assert.ErrorContains(t, err, "--labels must name at least one section")
}

func TestPortfolioCommand(t *testing.T) {
	isolateEnv(t)
	data := writeFile(t, "jane.json", janeJSON)
	dir := t.TempDir()
	page := filepath.Join(dir, "site", "index.html")
	pdfPath := filepath.Join(dir, "site", "index.pdf")

	var printed string
	prev := printPortfolio
	printPortfolio = func(_ context.Context, html string) ([]byte, error) {
		printed = html
		return []byte("%PDF-1.4 fake"), nil
	}
	t.Cleanup(func() { printPortfolio = prev })

	_, err := execute(t, "", "portfolio", "--data", data, "--template", "Minimal Green", "--out", page, "--pdf", pdfPath)
	require.NoError(t, err)

	html, err := os.ReadFile(page)
	require.NoError(t, err)
	assert.Contains(t, string(html), "<li>Resume builder</li>")
	assert.Contains(t, string(html), "#27ae60")
	assert.Equal(t, string(html), printed)

	pdf, err := os.ReadFile(pdfPath)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake", string(pdf))
}

func TestPortfolioCommand_PrintFailure(t *testing.T) {
	isolateEnv(t)
	data := writeFile(t, "jane.json", janeJSON)
	prev := printPortfolio
	printPortfolio = func(context.Context, string) ([]byte, error) {
		return nil, errors.New("chrome not found")
	}
	t.Cleanup(func() { printPortfolio = prev })

	dir := t.TempDir()
	_, err := execute(t, "", "portfolio", "--data", data, "--out", filepath.Join(dir, "p.html"), "--pdf", filepath.Join(dir, "p.pdf"))
	assert.ErrorContains(t, err, "chrome not found")
	assert.FileExists(t, filepath.Join(dir, "p.html"))
}

func TestValidateCommand(t *testing.T) {
	isolateEnv(t)

	out, err := execute(t, "", "validate", "--data", writeFile(t, "ok.json", janeJSON))
	require.NoError(t, err)
	assert.Contains(t, out, "Validation passed")
	assert.Contains(t, out, "Jane Doe")

	out, err = execute(t, "", "validate", "--data", writeFile(t, "bad.json", `{"name":"Jane","email":"nope"}`))
	require.Error(t, err)
	assert.Contains(t, out, "Validation failed")
	var validationErr *schemas.ValidationError
	assert.True(t, errors.As(err, &validationErr))

	_, err = execute(t, "", "validate")
	assert.ErrorContains(t, err, "--data is required")
}

func TestValidateCommand_PrintSchema(t *testing.T) {
	isolateEnv(t)
	out, err := execute(t, "", "validate", "--print-schema")
	require.NoError(t, err)
	assert.JSONEq(t, string(schemas.ResumeSchema()), out)
}

func TestConfigValidationFailsCommand(t *testing.T) {
	isolateEnv(t)
	_, err := execute(t, "", "templates", "--log-format", "xml")
	assert.ErrorContains(t, err, "config error: 'LOG_FORMAT'")
}

func TestConfigFile(t *testing.T) {
	isolateEnv(t)
	path := writeFile(t, "config.json", `{"DEFAULT_TEMPLATE":"Corporate Blue"}`)
	out, err := execute(t, "", "templates", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "* Corporate Blue")
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		format, level string
		verbose       bool
		debug, warn   bool
		json          bool
	}{
		{"text", "info", false, false, true, false},
		{"json", "warn", false, false, true, true},
		{"text", "error", false, false, false, false},
		{"TEXT", "error", true, true, true, false},
		{"text", "debug", false, true, true, false},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		l := newLogger(&buf, tt.format, tt.level, tt.verbose)
		assert.Equal(t, tt.debug, l.Enabled(context.Background(), slog.LevelDebug), "%+v", tt)
		assert.Equal(t, tt.warn, l.Enabled(context.Background(), slog.LevelWarn), "%+v", tt)

		l.Error("boom")
		assert.Equal(t, tt.json, strings.HasPrefix(buf.String(), "{"), "%+v", tt)
	}
}

func TestSplitLabels(t *testing.T) {
	assert.Equal(t, []string{"A", "B C"}, splitLabels(" A ,, B C ,"))
	assert.Nil(t, splitLabels(""))
}

func TestSampleFilename(t *testing.T) {
	tmpl, err := rendering.LookupTemplate("Classic Professional")
	require.NoError(t, err)
	assert.Equal(t, "sample_classic_professional.pdf", sampleFilename(tmpl))
}
