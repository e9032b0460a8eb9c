package rendering

import "strings"

// BodyWrapWidth is the column width, in characters, of wrapped body text.
const BodyWrapWidth = 92

// NormalizeSpace collapses every run of whitespace to one space and trims the ends.
func NormalizeSpace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Wrap breaks text into lines of at most width runes.
//
// Whitespace is normalized first and each separating space stays at the end
// of the line it follows, so concatenating the returned lines reproduces
// NormalizeSpace(text) exactly. Words longer than width are split across
// lines. Callers trim the trailing space when drawing.
func Wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if width < 1 {
		width = 1
	}

	var lines []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			lines = append(lines, string(cur))
			cur = nil
		}
	}

	for i, w := range words {
		chunk := []rune(w)
		if i < len(words)-1 {
			chunk = append(chunk, ' ')
		}
		if len(cur)+len(chunk) > width {
			flush()
		}
		for len(chunk) > width {
			lines = append(lines, string(chunk[:width]))
			chunk = chunk[width:]
		}
		cur = append(cur, chunk...)
	}
	flush()
	return lines
}
