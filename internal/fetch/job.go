package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"html"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// JobPosting is the readable content of a job posting page.
type JobPosting struct {
	URL      string   `json:"url"`
	Title    string   `json:"title,omitempty"`
	Company  string   `json:"company,omitempty"`
	Platform Platform `json:"platform"`
	Text     string   `json:"text"`
	Markdown string   `json:"markdown,omitempty"`
	Rendered bool     `json:"rendered,omitempty"`
}

// Description returns the Markdown body when available, else the plain text.
func (p *JobPosting) Description() string {
	if p.Markdown != "" {
		return p.Markdown
	}
	return p.Text
}

// JobOptions configures JobDescription.
type JobOptions struct {
	HTTP *Options
	// UseBrowser enables a headless browser retry when the HTTP page yields
	// less than MinContentLength characters.
	UseBrowser bool
	Browser    BrowserOptions
	Logger     *slog.Logger
}

// ErrNoContent is returned when a page yields no description text.
var ErrNoContent = errors.New("no job description found on page")

// JobDescription downloads a job posting and extracts its title and
// description. Structured JobPosting data embedded in the page is preferred
// over selector-based extraction.
func JobDescription(ctx context.Context, url string, opts JobOptions) (*JobPosting, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	res, err := URL(ctx, url, opts.HTTP)
	if err != nil {
		return nil, err
	}
	posting, err := ParseJobPage(url, res.HTML)
	if err != nil && !errors.Is(err, ErrNoContent) {
		return nil, err
	}

	if opts.UseBrowser && (posting == nil || ShouldUseBrowser(posting.Text)) {
		logger.Info("job page content too short, retrying with browser", slog.String("url", url))
		rendered, berr := RenderPage(ctx, url, opts.Browser)
		if berr != nil {
			if posting != nil {
				logger.Warn("browser fallback failed, keeping HTTP content", slog.String("url", url), slog.Any("error", berr))
				return posting, nil
			}
			return nil, berr
		}
		fromBrowser, rerr := ParseJobPage(url, rendered)
		if rerr == nil {
			fromBrowser.Rendered = true
			return fromBrowser, nil
		}
		if posting == nil {
			return nil, rerr
		}
	}

	if posting == nil {
		return nil, &Error{URL: url, Message: "page has no readable content", Cause: ErrNoContent}
	}
	return posting, nil
}

// ParseJobPage extracts a JobPosting from already-downloaded HTML.
func ParseJobPage(url, page string) (*JobPosting, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, &Error{URL: url, Message: "failed to parse HTML", Cause: err}
	}

	posting := &JobPosting{URL: url, Platform: DetectPlatform(url)}
	if ld, ok := jobPostingLD(doc); ok {
		posting.Title = strings.TrimSpace(ld.Title)
		posting.Company = strings.TrimSpace(ld.HiringOrganization.Name)
		if desc := ldDescriptionHTML(ld.Description); desc != "" {
			posting.Markdown, _ = ToMarkdown(desc)
			if text, terr := ExtractMainText("<body>"+desc+"</body>", nil); terr == nil {
				posting.Text = text
			}
		}
	}
	if posting.Title == "" {
		posting.Title = pageTitle(doc)
	}

	if posting.Text == "" {
		content := PlatformContentSelectors(posting.Platform)
		noise := PlatformNoiseSelectors(posting.Platform)
		if posting.Text, err = ExtractMainText(page, content, noise...); err != nil {
			return nil, &Error{URL: url, Message: "failed to extract text", Cause: err}
		}
		posting.Markdown, _ = ExtractMainMarkdown(page, content, noise...)
	}

	if posting.Text == "" {
		return nil, ErrNoContent
	}
	return posting, nil
}

type ldJobPosting struct {
	Type               any    `json:"@type"`
	Title              string `json:"title"`
	Description        string `json:"description"`
	HiringOrganization struct {
		Name string `json:"name"`
	} `json:"hiringOrganization"`
}

func (p ldJobPosting) isJobPosting() bool {
	switch t := p.Type.(type) {
	case string:
		return t == "JobPosting"
	case []any:
		for _, v := range t {
			if s, ok := v.(string); ok && s == "JobPosting" {
				return true
			}
		}
	}
	return false
}

// jobPostingLD finds a schema.org JobPosting in the page's JSON-LD blocks.
func jobPostingLD(doc *goquery.Document) (ldJobPosting, bool) {
	var found ldJobPosting
	var ok bool
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		raw := []byte(strings.TrimSpace(s.Text()))
		var single ldJobPosting
		if json.Unmarshal(raw, &single) == nil && single.isJobPosting() {
			found, ok = single, true
			return false
		}
		var many []ldJobPosting
		if json.Unmarshal(raw, &many) == nil {
			for _, p := range many {
				if p.isJobPosting() {
					found, ok = p, true
					return false
				}
			}
		}
		return true
	})
	return found, ok
}

// ldDescriptionHTML undoes the entity escaping some boards apply to the
// description markup.
func ldDescriptionHTML(desc string) string {
	desc = strings.TrimSpace(desc)
	if strings.Contains(desc, "&lt;") {
		desc = html.UnescapeString(desc)
	}
	return desc
}

func pageTitle(doc *goquery.Document) string {
	if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" {
		return h1
	}
	if og, exists := doc.Find(`meta[property="og:title"]`).Attr("content"); exists && strings.TrimSpace(og) != "" {
		return strings.TrimSpace(og)
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}
