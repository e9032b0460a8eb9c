// Package parsing splits free-form generated text into labelled sections
// and reads simple values (such as match scores) out of model responses.
package parsing

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Sections maps each requested label to the text found after it.
// Every label passed to the parser is present, even when absent from the text.
type Sections map[string]string

// Get returns the section for label, matching case-insensitively.
func (s Sections) Get(label string) string {
	if v, ok := s[label]; ok {
		return v
	}
	want := canonicalLabel(label)
	for k, v := range s {
		if canonicalLabel(k) == want {
			return v
		}
	}
	return ""
}

// Option configures a Parser.
type Option func(*Parser)

// WithPlaceholder sets the value reported for labels that never occur.
func WithPlaceholder(placeholder string) Option {
	return func(p *Parser) {
		p.placeholder = placeholder
	}
}

// Parser recognizes a fixed set of labels. A label is written either as
// "[LABEL]" anywhere in the text or as "LABEL:" at the start of a line
// (leading whitespace and markdown '#', '*' or '>' decoration allowed).
// Matching ignores case, and a space inside a label matches any run of
// spaces or tabs.
//
// A Parser is immutable after construction and safe for concurrent use.
type Parser struct {
	requested   []string
	keys        []string   // canonical key per requested label
	patterns    [][]string // unique canonical keys split into words, longest first
	patternKeys []string
	placeholder string
}

// NewParser builds a parser for labels. Empty labels are kept in the result
// map but can never match.
func NewParser(labels []string, opts ...Option) *Parser {
	p := &Parser{
		requested: append([]string(nil), labels...),
		keys:      make([]string, len(labels)),
	}
	for _, opt := range opts {
		opt(p)
	}

	seen := make(map[string]bool, len(labels))
	for i, label := range labels {
		key := canonicalLabel(label)
		p.keys[i] = key
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		p.patternKeys = append(p.patternKeys, key)
	}
	sort.SliceStable(p.patternKeys, func(i, j int) bool {
		return len(p.patternKeys[i]) > len(p.patternKeys[j])
	})
	p.patterns = make([][]string, len(p.patternKeys))
	for i, key := range p.patternKeys {
		p.patterns[i] = strings.Split(key, " ")
	}
	return p
}

// Extract is shorthand for NewParser(labels, opts...).Parse(text).
func Extract(text string, labels []string, opts ...Option) Sections {
	return NewParser(labels, opts...).Parse(text)
}

// marker is one label occurrence: text[start:end] is the marker itself.
type marker struct {
	key        string
	start, end int
}

// Parse returns the section text for every label the parser was built with.
// A section runs from just after its marker to the next recognized marker, in
// whatever order the markers appear, or to the end of the text. When a label
// occurs more than once, the first occurrence wins. Parse never fails.
func (p *Parser) Parse(text string) Sections {
	found := make(map[string]string, len(p.patternKeys))
	markers := p.scan(text)
	for i, m := range markers {
		if _, dup := found[m.key]; dup {
			continue
		}
		end := len(text)
		if i+1 < len(markers) {
			end = markers[i+1].start
		}
		found[m.key] = strings.TrimSpace(text[m.end:end])
	}

	out := make(Sections, len(p.requested))
	for i, label := range p.requested {
		if v, ok := found[p.keys[i]]; ok && p.keys[i] != "" {
			out[label] = v
			continue
		}
		out[label] = p.placeholder
	}
	return out
}

// scan walks the text once and returns the markers in order of appearance.
func (p *Parser) scan(text string) []marker {
	if len(p.patterns) == 0 {
		return nil
	}

	var markers []marker
	lineStart := true
	for i := 0; i < len(text); {
		if lineStart {
			if m, ok := p.colonMarker(text, i); ok {
				markers = append(markers, m)
				i = m.end
				lineStart = false
				continue
			}
		}
		if text[i] == '[' {
			if m, ok := p.bracketMarker(text, i); ok {
				markers = append(markers, m)
				i = m.end
				lineStart = false
				continue
			}
		}
		lineStart = text[i] == '\n'
		i++
	}
	return markers
}

// bracketMarker matches "[ LABEL ]" starting at text[i] == '['.
func (p *Parser) bracketMarker(text string, i int) (marker, bool) {
	j := skipBlanks(text, i+1)
	for n, words := range p.patterns {
		k, ok := matchWords(text, j, words)
		if !ok {
			continue
		}
		k = skipBlanks(text, k)
		if k < len(text) && text[k] == ']' {
			return marker{key: p.patternKeys[n], start: i, end: k + 1}, true
		}
	}
	return marker{}, false
}

// colonMarker matches "LABEL:" at the start of the line beginning at text[i].
func (p *Parser) colonMarker(text string, i int) (marker, bool) {
	j := skipDecoration(text, i)
	for n, words := range p.patterns {
		k, ok := matchWords(text, j, words)
		if !ok {
			continue
		}
		k = skipDecoration(text, k)
		if k < len(text) && text[k] == ':' {
			end := k + 1
			for end < len(text) && text[end] == '*' {
				end++
			}
			return marker{key: p.patternKeys[n], start: i, end: end}, true
		}
	}
	return marker{}, false
}

// matchWords reports whether words appear at text[pos:], separated by at
// least one blank, comparing case-insensitively. It returns the index just
// past the last word.
func matchWords(text string, pos int, words []string) (int, bool) {
	for n, w := range words {
		if n > 0 {
			next := skipBlanks(text, pos)
			if next == pos {
				return 0, false
			}
			pos = next
		}
		end, ok := matchFold(text, pos, w)
		if !ok {
			return 0, false
		}
		pos = end
	}
	return pos, true
}

func matchFold(text string, pos int, word string) (int, bool) {
	for _, want := range word {
		if pos >= len(text) {
			return 0, false
		}
		got, size := utf8.DecodeRuneInString(text[pos:])
		if !equalFoldRune(got, want) {
			return 0, false
		}
		pos += size
	}
	return pos, true
}

func equalFoldRune(a, b rune) bool {
	if a == b {
		return true
	}
	for r := unicode.SimpleFold(a); r != a; r = unicode.SimpleFold(r) {
		if r == b {
			return true
		}
	}
	return false
}

func skipBlanks(text string, i int) int {
	for i < len(text) && (text[i] == ' ' || text[i] == '\t') {
		i++
	}
	return i
}

func skipDecoration(text string, i int) int {
	for i < len(text) {
		switch text[i] {
		case ' ', '\t', '#', '*', '>':
			i++
		default:
			return i
		}
	}
	return i
}

// canonicalLabel upper-cases a label and collapses its internal whitespace.
func canonicalLabel(label string) string {
	return strings.ToUpper(strings.Join(strings.Fields(label), " "))
}
