package rendering

import (
	"bytes"
	"embed"
	"html/template"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

//go:embed templates/portfolio.html.tmpl
var portfolioFS embed.FS

var portfolioTemplate = template.Must(template.ParseFS(portfolioFS, "templates/portfolio.html.tmpl"))

// portfolioView is the data handed to the portfolio template.
type portfolioView struct {
	Name       string
	Contact    string
	Links      string
	Summary    string
	Projects   []string
	Accent     template.CSS
	HeaderText template.CSS
}

// RenderPortfolio builds a static HTML page with the name, contact line,
// summary and one list item per project line, styled with the template's
// accent color.
func RenderPortfolio(data *types.ResumeData, tmpl Template) (string, error) {
	if tmpl.header == nil {
		return "", &ConfigurationError{Template: tmpl.Name, Message: "template is not registered"}
	}
	if data == nil {
		data = &types.ResumeData{}
	}

	accent, headerText := tmpl.Accent, tmpl.HeaderText
	if tmpl.Layout == LayoutClassic {
		// A white band would hide the name; use the accent as the band.
		headerText = Color{255, 255, 255}
	}

	view := portfolioView{
		Name:       strings.TrimSpace(data.Name),
		Contact:    data.ContactLine(" | "),
		Links:      data.LinksLine(" | "),
		Summary:    strings.TrimSpace(data.Summary),
		Projects:   ProjectItems(data.Projects),
		Accent:     template.CSS(accent.Hex()),
		HeaderText: template.CSS(headerText.Hex()),
	}

	var buf bytes.Buffer
	if err := portfolioTemplate.Execute(&buf, view); err != nil {
		return "", &RenderError{Message: "failed to execute portfolio template", Cause: err}
	}
	return buf.String(), nil
}

// ProjectItems splits a projects block into one entry per non-blank line,
// dropping any leading bullet marker.
func ProjectItems(projects string) []string {
	var items []string
	for _, line := range strings.Split(projects, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "•*-–— \t")
		if line == "" {
			continue
		}
		items = append(items, line)
	}
	return items
}
