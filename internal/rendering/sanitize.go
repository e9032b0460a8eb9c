package rendering

import (
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"
)

// Placeholder replaces any character the core PDF fonts cannot encode.
const Placeholder = "?"

// asciiReplacements maps typographic characters onto plain ASCII.
var asciiReplacements = map[rune]string{
	// single quotes and primes
	'\u2018': "'", '\u2019': "'", '\u201A': "'", '\u201B': "'", '\u2032': "'",
	// double quotes
	'\u201C': `"`, '\u201D': `"`, '\u201E': `"`, '\u201F': `"`, '\u2033': `"`,
	// hyphens and dashes
	'\u2010': "-", '\u2011': "-", '\u2012': "-", '\u2013': "-", '\u2014': "-", '\u2015': "-", '\u2212': "-",
	// bullet glyphs
	'\u2022': "-", '\u2023': "-", '\u2043': "-", '\u25AA': "-", '\u25CF': "-", '\u25E6': "-", '\u2219': "-",
	// spaces
	'\u00A0': " ", '\u2002': " ", '\u2003': " ", '\u2007': " ", '\u2009': " ", '\u202F': " ", '\t': " ",
	// zero-width characters
	'\u200B': "", '\u200C': "", '\u200D': "", '\uFEFF': "",
	'\u2026': "...",
	'\r':     "\n",
}

// Sanitize prepares text for the single-byte encoding used by the PDF core
// fonts. Typographic quotes, dashes, bullets, special spaces and ellipses
// become ASCII; anything else outside printable Latin-1 becomes Placeholder.
// Newlines are kept. Sanitize is idempotent.
func Sanitize(text string) string {
	if text == "" {
		return ""
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = norm.NFC.String(text)

	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		if repl, ok := asciiReplacements[r]; ok {
			sb.WriteString(repl)
			continue
		}
		if encodable(r) {
			sb.WriteRune(r)
			continue
		}
		sb.WriteString(Placeholder)
	}
	return sb.String()
}

// encodable reports whether r is printable in Latin-1, or a newline.
func encodable(r rune) bool {
	switch {
	case r == '\n':
		return true
	case r < 0x20, r == 0x7F, r >= 0x80 && r < 0xA0:
		return false
	}
	_, ok := charmap.ISO8859_1.EncodeRune(r)
	return ok
}

// encodeLatin1 converts sanitized text into the byte string fpdf expects.
func encodeLatin1(text string) string {
	b := make([]byte, 0, len(text))
	for _, r := range text {
		c, ok := charmap.ISO8859_1.EncodeRune(r)
		if !ok {
			c = Placeholder[0]
		}
		b = append(b, c)
	}
	return string(b)
}
