package rendering

import (
	"bytes"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/go-pdf/fpdf"

	"github.com/jonathan/resume-builder/internal/types"
)

// Section titles in render order.
const (
	TitleSummary      = "Professional Summary"
	TitleEducation    = "Education"
	TitleExperience   = "Internships & Work Experience"
	TitleProjects     = "Projects"
	TitleSkills       = "Technical Skills"
	TitleAchievements = "Achievements & Certifications"
	TitleExtra        = "Extra-Curricular Activities"
)

const (
	contactSeparator = "  |  "
	bulletPrefix     = "- "
)

// documentEpoch is the creation date stamped on documents when the caller
// does not supply one, so identical input yields identical bytes.
var documentEpoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// Options tunes the PDF writer. The zero value writes uncompressed streams.
type Options struct {
	// Compress deflates page content streams.
	Compress bool
	// CreationDate is written to the document info; zero means a fixed date.
	CreationDate time.Time
}

// DefaultOptions returns the options used by Render.
func DefaultOptions() Options {
	return Options{Compress: true}
}

// Render lays out data with tmpl and returns the PDF bytes.
//
// Render only reads data and keeps no state between calls, so concurrent
// calls are safe. A template that did not come from NewTemplate or the
// registry yields a ConfigurationError before any layout work.
func Render(data *types.ResumeData, tmpl Template) ([]byte, error) {
	return RenderWithOptions(data, tmpl, DefaultOptions())
}

// RenderNamed looks name up in the built-in registry and renders with it.
func RenderNamed(data *types.ResumeData, name string) ([]byte, error) {
	tmpl, err := LookupTemplate(name)
	if err != nil {
		return nil, err
	}
	return Render(data, tmpl)
}

// RenderWithOptions is Render with explicit writer options.
func RenderWithOptions(data *types.ResumeData, tmpl Template, opts Options) ([]byte, error) {
	if tmpl.header == nil {
		return nil, &ConfigurationError{Template: tmpl.Name, Message: "template is not registered"}
	}
	if data == nil {
		data = &types.ResumeData{}
	}
	clean := sanitizeResume(data)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginLeft, marginTop, marginRight)
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.SetCompression(opts.Compress)
	pdf.SetCatalogSort(true)
	created := opts.CreationDate
	if created.IsZero() {
		created = documentEpoch
	}
	pdf.SetCreationDate(created)
	pdf.SetModificationDate(created)
	pdf.SetCreator("resume-builder", false)
	if clean.Name != "" {
		pdf.SetTitle(clean.Name+" - Resume", true)
		pdf.SetAuthor(clean.Name, true)
	}

	l := newLayout(tmpl, pdf)
	l.addPage()
	tmpl.header(l, clean)
	l.sections(clean)

	if err := pdf.Error(); err != nil {
		return nil, &RenderError{Message: "layout failed", Cause: err}
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &RenderError{Message: "failed to write PDF", Cause: err}
	}
	return buf.Bytes(), nil
}

// DownloadFilename returns the suggested file name for a rendered resume.
func DownloadFilename(name string) string {
	base := strings.Join(strings.Fields(name), "_")
	if base == "" {
		return "Resume.pdf"
	}
	return base + "_Resume.pdf"
}

// sanitizeResume returns a sanitized deep copy of data.
func sanitizeResume(data *types.ResumeData) *types.ResumeData {
	c := data.Clone()
	for _, f := range []*string{
		&c.Name, &c.Email, &c.Phone, &c.Location, &c.LinkedIn, &c.GitHub,
		&c.Summary, &c.Projects, &c.Skills, &c.Achievements, &c.Extra,
	} {
		*f = strings.TrimSpace(Sanitize(*f))
	}
	for i := range c.Education {
		e := &c.Education[i]
		e.Degree = strings.TrimSpace(Sanitize(e.Degree))
		e.Institution = strings.TrimSpace(Sanitize(e.Institution))
		e.Year = strings.TrimSpace(Sanitize(e.Year))
		e.Grade = strings.TrimSpace(Sanitize(e.Grade))
	}
	for i := range c.Experience {
		e := &c.Experience[i]
		e.Role = strings.TrimSpace(Sanitize(e.Role))
		e.Company = strings.TrimSpace(Sanitize(e.Company))
		e.Duration = strings.TrimSpace(Sanitize(e.Duration))
		e.Description = strings.TrimSpace(Sanitize(e.Description))
	}
	return c
}

// drawModernHeader paints a filled band across the top of the first page
// with the name and contact lines inside it.
func drawModernHeader(l *layout, d *types.ResumeData) {
	bg := l.tmpl.HeaderBackground
	l.pdf.SetFillColor(bg.R, bg.G, bg.B)
	l.pdf.Rect(0, 0, pageWidth, bandHeight, "F")

	l.textColor(l.tmpl.HeaderText)
	l.cur.Y = 8
	if d.Name != "" {
		l.font("B", 22)
		l.cell(marginLeft, contentWidth, 10, l.upper(d.Name), "L")
		l.cur.Y += 12
	}
	if contact := Sanitize(d.ContactLine(contactSeparator)); contact != "" {
		l.font("", 9)
		l.cell(marginLeft, contentWidth, 5.5, contact, "L")
		l.cur.Y += 6
	}
	if links := Sanitize(d.LinksLine(contactSeparator)); links != "" {
		l.font("", 8.5)
		l.cell(marginLeft, contentWidth, 5.5, links, "L")
		l.cur.Y += 6
	}
	l.cur.Y = max(l.cur.Y, bandHeight) + 6
}

// drawClassicHeader centers the name and contact lines and rules them off.
func drawClassicHeader(l *layout, d *types.ResumeData) {
	l.cur.Y = marginTop
	if d.Name != "" {
		l.font("B", 22)
		l.textColor(l.tmpl.Accent)
		l.cell(marginLeft, contentWidth, 10, l.upper(d.Name), "C")
		l.cur.Y += 11
	}
	l.textColor(entryDetailColor)
	if contact := Sanitize(d.ContactLine(contactSeparator)); contact != "" {
		l.font("", 9)
		l.cell(marginLeft, contentWidth, 5.5, contact, "C")
		l.cur.Y += 5.5
	}
	if links := Sanitize(d.LinksLine(contactSeparator)); links != "" {
		l.font("", 8.5)
		l.cell(marginLeft, contentWidth, 5.5, links, "C")
		l.cur.Y += 5.5
	}
	l.cur.Y += 2
	l.rule(l.tmpl.Divider, headerRuleWidth)
	l.cur.Y += 6
}

// sections draws every non-empty section in the fixed order.
func (l *layout) sections(d *types.ResumeData) {
	text := func(body string) func() {
		return func() {
			l.paragraph(body, 0)
			l.gap(sectionGap)
		}
	}

	if d.Summary != "" {
		l.section(TitleSummary, bodyLineHeight, text(d.Summary))
	}
	if len(d.Education) > 0 {
		l.section(TitleEducation, entryHeadHeight, func() {
			for _, e := range d.Education {
				l.educationEntry(e)
			}
			l.gap(sectionGap - entryGap)
		})
	}
	if len(d.Experience) > 0 {
		l.section(TitleExperience, entryHeadHeight, func() {
			for _, e := range d.Experience {
				l.experienceEntry(e)
			}
			l.gap(sectionGap - entryGap)
		})
	}
	if d.Projects != "" {
		l.section(TitleProjects, bodyLineHeight, text(d.Projects))
	}
	if d.Skills != "" {
		l.section(TitleSkills, bodyLineHeight, text(d.Skills))
	}
	if d.Achievements != "" {
		l.section(TitleAchievements, bodyLineHeight, text(d.Achievements))
	}
	if d.Extra != "" {
		l.section(TitleExtra, bodyLineHeight, text(d.Extra))
	}
}

// section draws a title and divider, then the body. The title is only placed
// when it and firstRow, the height the body's first element keeps together,
// fit on the current page.
func (l *layout) section(title string, firstRow float64, body func()) {
	l.ensure(titleHeight + titleGap + firstRow)

	l.font("B", 11)
	l.textColor(l.tmpl.Accent)
	l.cell(marginLeft, contentWidth, titleHeight, l.upper(title), "L")
	l.cur.Y += titleHeight
	l.rule(l.tmpl.Divider, ruleWidth)
	l.cur.Y += titleGap

	body()
}

// entryRow draws a bold primary text with a right-aligned italic date on the
// same row. Primary text wider than its cell continues on further rows.
func (l *layout) entryRow(primary, date string) {
	l.font("B", 10)
	rows := l.fitRows(primary, primaryCellWidth)
	if len(rows) == 0 {
		rows = []string{""}
	}
	l.ensure(entryHeadHeight)

	for i, row := range rows {
		if i > 0 {
			l.ensure(entryRowHeight)
		}
		l.font("B", 10)
		l.textColor(entryTitleColor)
		l.cell(marginLeft, primaryCellWidth, entryRowHeight, row, "L")
		if i == 0 && date != "" {
			l.font("I", 9)
			l.textColor(entryDateColor)
			l.cell(marginLeft, contentWidth, entryRowHeight, date, "R")
		}
		l.cur.Y += entryRowHeight
	}
}

func (l *layout) educationEntry(e types.Education) {
	primary := l.upper(e.Institution)
	detailParts := []string{e.Degree, e.Grade}
	if primary == "" {
		primary = e.Degree
		detailParts = []string{e.Grade}
	}
	l.entryRow(primary, e.Year)

	l.font("", 9)
	l.textColor(entryDetailColor)
	x := marginLeft + entryIndent
	for _, row := range l.packParts(detailParts, contactSeparator, contentRight-x) {
		l.textLine(x, row)
	}
	l.gap(entryGap)
}

func (l *layout) experienceEntry(e types.Experience) {
	l.entryRow(joinParts(" - ", e.Role, e.Company), e.Duration)
	l.paragraph(e.Description, entryIndent)
	l.gap(entryGap)
}

// paragraph draws free text at the given indent.
func (l *layout) paragraph(text string, indent float64) {
	l.font("", 9.5)
	l.textColor(bodyTextColor)
	for _, row := range paragraphRows(text, indent) {
		if row.Text == "" {
			l.gap(row.Gap)
			continue
		}
		l.textLine(row.X, row.Text)
	}
}

// textRow is one laid-out row of a paragraph: either text at X or a blank gap.
type textRow struct {
	X    float64
	Text string
	Gap  float64
}

// paragraphRows lays out free text. Each input line is wrapped at
// BodyWrapWidth; bullet lines get a "- " marker and extra indent, and all of
// their continuation rows sit exactly one level further in. Blank lines
// become a small gap.
func paragraphRows(text string, indent float64) []textRow {
	x := marginLeft + indent
	var rows []textRow
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			rows = append(rows, textRow{Gap: blankLineGap})
			continue
		}
		if item, ok := bulletItem(line); ok {
			for i, row := range Wrap(item, BodyWrapWidth-len(bulletPrefix)) {
				row = strings.TrimSpace(row)
				switch {
				case row == "":
				case i == 0:
					rows = append(rows, textRow{X: x + bulletIndent, Text: bulletPrefix + row})
				default:
					rows = append(rows, textRow{X: x + bulletIndent + continuationIndent, Text: row})
				}
			}
			continue
		}
		for _, row := range Wrap(line, BodyWrapWidth) {
			if row = strings.TrimSpace(row); row != "" {
				rows = append(rows, textRow{X: x, Text: row})
			}
		}
	}
	return rows
}

// bulletItem reports whether a sanitized line is a bullet item and returns
// its text without the marker. Bullet glyphs and en-dashes have already been
// mapped to '-' by Sanitize. "-5%" or "**bold**" are not bullets.
func bulletItem(line string) (string, bool) {
	if len(line) < 2 || (line[0] != '-' && line[0] != '*') {
		return "", false
	}
	rest := line[1:]
	if rest[0] == ' ' {
		item := strings.TrimSpace(rest)
		return item, item != ""
	}
	r, _ := utf8.DecodeRuneInString(rest)
	if unicode.IsLetter(r) {
		return rest, true
	}
	return "", false
}

func joinParts(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
