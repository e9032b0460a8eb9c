package rendering

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/types"
)

func TestRenderPortfolio(t *testing.T) {
	tmpl, err := LookupTemplate("Minimal Green")
	require.NoError(t, err)

	html, err := RenderPortfolio(types.SampleResume(), tmpl)
	require.NoError(t, err)

	assert.Contains(t, html, "<h1>Priya Sharma</h1>")
	assert.Contains(t, html, "background: #27ae60")
	assert.Contains(t, html, "color: #ffffff")
	assert.Contains(t, html, `<section id="about">`)
	assert.Equal(t, len(ProjectItems(types.SampleResume().Projects)), strings.Count(html, "<li>"))
}

func TestRenderPortfolio_ClassicUsesWhiteHeaderText(t *testing.T) {
	tmpl, err := LookupTemplate(DefaultTemplateName)
	require.NoError(t, err)

	html, err := RenderPortfolio(&types.ResumeData{Name: "Jane Doe"}, tmpl)
	require.NoError(t, err)
	assert.Contains(t, html, "background: #000000")
	assert.Contains(t, html, "color: #ffffff")
	assert.NotContains(t, html, `<section id="about">`)
	assert.NotContains(t, html, `<section id="projects">`)
}

func TestRenderPortfolio_EscapesContent(t *testing.T) {
	tmpl, err := LookupTemplate("Bold Red")
	require.NoError(t, err)

	html, err := RenderPortfolio(&types.ResumeData{
		Name:     "<script>alert(1)</script>",
		Projects: "• <b>Tool</b>",
	}, tmpl)
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.Contains(t, html, "<li>&lt;b&gt;Tool&lt;/b&gt;</li>")
}

func TestRenderPortfolio_UnregisteredTemplate(t *testing.T) {
	_, err := RenderPortfolio(types.SampleResume(), Template{Name: "raw"})
	var cfgErr *ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestProjectItems(t *testing.T) {
	items := ProjectItems("• First project\n\n- Second\n   * Third  \n— Fourth")
	assert.Equal(t, []string{"First project", "Second", "Third", "Fourth"}, items)
	assert.Nil(t, ProjectItems("  \n "))
}
