package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"ascii untouched", "Plain ASCII, 100%!", "Plain ASCII, 100%!"},
		{"smart quotes", "“Hi” it’s", `"Hi" it's`},
		{"dashes", "2020–2024 — now", "2020-2024 - now"},
		{"bullet", "• Built", "- Built"},
		{"ellipsis", "wait…", "wait..."},
		{"nbsp and tab", "a\u00a0b\tc", "a b c"},
		{"zero width", "ab\u200bc", "abc"},
		{"latin1 kept", "Café Zürich", "Café Zürich"},
		{"emoji placeholder", "ship \U0001F680", "ship ?"},
		{"cjk placeholder", "日本", "??"},
		{"newline kept", "a\nb", "a\nb"},
		{"crlf", "a\r\nb", "a\nb"},
		{"lone cr", "a\rb", "a\nb"},
		{"control dropped", "a\x07b", "a?b"},
		{"decomposed accent composed", "e\u0301", "\u00e9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in))
		})
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{
		"“Quoted” — text… \U0001F680",
		"Zoë\r\nO’Neil\t• item",
		"İstanbul ß",
	}
	for _, in := range inputs {
		once := Sanitize(in)
		assert.Equal(t, once, Sanitize(once), in)
	}
}

func TestSanitize_OutputEncodable(t *testing.T) {
	out := Sanitize("mixed 世界 é ☃ ÿ Ā")
	for _, r := range out {
		assert.True(t, encodable(r), "rune %U", r)
	}
}

func TestEncodeLatin1(t *testing.T) {
	assert.Equal(t, "caf\xe9", encodeLatin1("café"))
	assert.Equal(t, "plain", encodeLatin1("plain"))
	assert.Equal(t, "?", encodeLatin1("世"))
}
