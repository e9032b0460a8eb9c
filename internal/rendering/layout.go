package rendering

import (
	"strings"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Page geometry in millimetres (A4 portrait).
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 12.0
	marginRight  = 12.0
	marginTop    = 12.0
	marginBottom = 15.0
	contentWidth = pageWidth - marginLeft - marginRight
	contentRight = pageWidth - marginRight
	pageBottom   = pageHeight - marginBottom
)

// Vertical rhythm and indentation.
const (
	bandHeight         = 45.0
	titleHeight        = 8.0
	titleGap           = 3.0
	sectionGap         = 3.0
	entryGap           = 2.0
	blankLineGap       = 2.0
	bodyLineHeight     = 5.5
	entryRowHeight     = 6.0
	entryIndent        = 4.0
	bulletIndent       = 4.0
	continuationIndent = 3.0
	primaryCellWidth   = 130.0
	ruleWidth          = 0.4
	headerRuleWidth    = 0.6

	// entryHeadHeight is what an entry keeps together: its primary row and
	// the first body row under it.
	entryHeadHeight = entryRowHeight + bodyLineHeight
)

const fontFamily = "Helvetica"

var (
	bodyTextColor    = Color{40, 40, 40}
	entryTitleColor  = Color{30, 30, 30}
	entryDetailColor = Color{60, 60, 60}
	entryDateColor   = Color{110, 110, 110}
)

// cursor is the current draw position. X is passed explicitly to every draw
// call; only the vertical offset and page index carry between calls.
type cursor struct {
	Y    float64
	Page int
}

// layout is the per-render drawing context. One is created for every
// Render call and discarded afterwards; nothing in it is shared.
type layout struct {
	pdf   *fpdf.Fpdf
	tmpl  Template
	cur   cursor
	caser cases.Caser
}

func newLayout(tmpl Template, pdf *fpdf.Fpdf) *layout {
	return &layout{
		pdf:   pdf,
		tmpl:  tmpl,
		caser: cases.Upper(language.Und),
	}
}

// addPage starts a new page and resets the cursor to the top margin.
func (l *layout) addPage() {
	l.pdf.AddPage()
	l.cur.Page++
	l.cur.Y = marginTop
}

// fits reports whether h millimetres fit above the bottom margin.
func (l *layout) fits(h float64) bool {
	return l.cur.Y+h <= pageBottom
}

// ensure breaks the page unless h millimetres fit below the cursor.
func (l *layout) ensure(h float64) {
	if !l.fits(h) {
		l.addPage()
	}
}

// gap advances the cursor without drawing. A gap that runs past the bottom
// margin is absorbed by the next ensure.
func (l *layout) gap(h float64) {
	l.cur.Y += h
}

// upper upper-cases s and sanitizes the result, since case mapping can
// produce characters outside Latin-1.
func (l *layout) upper(s string) string {
	return Sanitize(l.caser.String(s))
}

func (l *layout) font(style string, size float64) {
	l.pdf.SetFont(fontFamily, style, size)
}

func (l *layout) textColor(c Color) {
	l.pdf.SetTextColor(c.R, c.G, c.B)
}

// cell draws sanitized text in a w-wide cell at (x, cursor) without moving
// the cursor.
func (l *layout) cell(x, w, h float64, text, align string) {
	l.pdf.SetXY(x, l.cur.Y)
	l.pdf.CellFormat(w, h, encodeLatin1(text), "", 0, align, false, 0, "")
}

// textLine draws one body row at x and advances the cursor, breaking the
// page first when the row would not fit.
func (l *layout) textLine(x float64, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	l.ensure(bodyLineHeight)
	l.cell(x, contentRight-x, bodyLineHeight, text, "L")
	l.cur.Y += bodyLineHeight
}

// rule draws a full-width horizontal line at the cursor.
func (l *layout) rule(c Color, width float64) {
	l.pdf.SetDrawColor(c.R, c.G, c.B)
	l.pdf.SetLineWidth(width)
	l.pdf.Line(marginLeft, l.cur.Y, contentRight, l.cur.Y)
}

// measure returns the width of sanitized text in the current font.
func (l *layout) measure(text string) float64 {
	return l.pdf.GetStringWidth(encodeLatin1(text))
}

// fitRows splits text into rows no wider than maxW in the current font.
// A single word wider than maxW gets a row of its own.
func (l *layout) fitRows(text string, maxW float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var rows []string
	row := words[0]
	for _, w := range words[1:] {
		candidate := row + " " + w
		if l.measure(candidate) > maxW {
			rows = append(rows, row)
			row = w
			continue
		}
		row = candidate
	}
	return append(rows, row)
}

// packParts joins the non-blank parts with sep into rows no wider than maxW.
// Rows break only between parts, so sep is drawn exactly as given; a part
// wider than maxW on its own is split at word boundaries.
func (l *layout) packParts(parts []string, sep string, maxW float64) []string {
	var rows []string
	row := ""
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if row != "" && l.measure(row+sep+p) <= maxW {
			row += sep + p
			continue
		}
		if row != "" {
			rows = append(rows, row)
		}
		if l.measure(p) <= maxW {
			row = p
			continue
		}
		split := l.fitRows(p, maxW)
		rows = append(rows, split[:len(split)-1]...)
		row = split[len(split)-1]
	}
	if row != "" {
		rows = append(rows, row)
	}
	return rows
}
