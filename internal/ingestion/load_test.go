package ingestion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"cv.pdf", FormatPDF, false},
		{"CV.PDF", FormatPDF, false},
		{"cv.txt", FormatText, false},
		{"cv", FormatText, false},
		{"cv.md", FormatMarkdown, false},
		{"cv.markdown", FormatMarkdown, false},
		{"cv.json", FormatJSON, false},
		{"cv.docx", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatForPath(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadResumeText_Text(t *testing.T) {
	path := writeFile(t, "cv.txt", []byte("Jane   Doe\r\n\n\n\nGo, SQL"))

	src, err := LoadResumeText(path)
	require.NoError(t, err)
	assert.Equal(t, FormatText, src.Format)
	assert.Equal(t, "Jane Doe\n\nGo, SQL", src.Text)
	assert.Len(t, src.Hash, 64)
}

func TestLoadResumeText_HashFollowsContent(t *testing.T) {
	a, err := LoadResumeText(writeFile(t, "a.md", []byte("Content 1")))
	require.NoError(t, err)
	b, err := LoadResumeText(writeFile(t, "b.md", []byte("Content 1  ")))
	require.NoError(t, err)
	c, err := LoadResumeText(writeFile(t, "c.md", []byte("Content 2")))
	require.NoError(t, err)

	assert.Equal(t, a.Hash, b.Hash)
	assert.NotEqual(t, a.Hash, c.Hash)
}

func TestLoadResumeText_JSON(t *testing.T) {
	raw := []byte(`{"name":"Jane Doe","email":"jane@example.com","skills":"Go, SQL"}`)
	src, err := LoadResumeText(writeFile(t, "cv.json", raw))
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, src.Format)
	assert.Contains(t, src.Text, "Jane Doe")
	assert.Contains(t, src.Text, "SKILLS\nGo, SQL")
}

func TestLoadResumeText_InvalidJSON(t *testing.T) {
	_, err := LoadResumeText(writeFile(t, "cv.json", []byte(`{"name":""}`)))
	var verr *schemas.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestLoadResumeText_Missing(t *testing.T) {
	_, err := LoadResumeText(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}

func TestLoadResumeText_Unsupported(t *testing.T) {
	_, err := LoadResumeText("resume.docx")
	assert.ErrorContains(t, err, "unsupported resume format")
}

func TestLoadResumeText_RenderedPDF(t *testing.T) {
	data := &types.ResumeData{
		Name:    "Jane Doe",
		Summary: "Backend engineer.",
		Skills:  "Go, PostgreSQL",
	}
	pdfBytes, err := rendering.RenderNamed(data, "Modern Purple")
	require.NoError(t, err)

	src, err := LoadResumeText(writeFile(t, "cv.pdf", pdfBytes))
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, src.Format)
	assert.Contains(t, src.Text, "Backend engineer.")
	assert.Contains(t, src.Text, "Go, PostgreSQL")
}
