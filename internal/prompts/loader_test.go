package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get(Assistant, "ats-analysis")
	require.NoError(t, err)
	assert.Contains(t, prompt, "ATS MATCH SCORE")
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get(Assistant, "nonexistent-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() { MustGet("nonexistent.json", "some-key") })
	assert.NotPanics(t, func() { assert.NotEmpty(t, MustGet(Assistant, "cover-letter")) })
}

func TestList(t *testing.T) {
	keys, err := List(Assistant)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"ats-analysis",
		"cover-letter",
		"enhance-experience",
		"enhance-project",
		"enhance-summary",
		"generate-resume",
		"linkedin-summary",
	}, keys)
}

func TestFormat(t *testing.T) {
	got := Format("Hi {{.Name}}, {{.Name}} applies to {{.Company}} {{.Unknown}}", map[string]string{
		"Name":    "Jane",
		"Company": "Acme",
	})
	assert.Equal(t, "Hi Jane, Jane applies to Acme {{.Unknown}}", got)
}

func TestFormat_ValuesAreNotReexpanded(t *testing.T) {
	got := Format("{{.A}}", map[string]string{"A": "{{.B}}", "B": "x"})
	assert.Equal(t, "{{.B}}", got)
}

func TestPlaceholdersAndMissing(t *testing.T) {
	tmpl := "{{.B}} {{.A}} {{.B}}"
	assert.Equal(t, []string{"A", "B"}, Placeholders(tmpl))
	assert.Equal(t, []string{"B"}, Missing(tmpl, map[string]string{"A": ""}))
	assert.Empty(t, Missing(tmpl, map[string]string{"A": "", "B": ""}))
}

func TestRender_RequiresEveryPlaceholder(t *testing.T) {
	_, err := Render(Assistant, "enhance-summary", map[string]string{"Summary": "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TargetRole")

	out, err := Render(Assistant, "enhance-summary", map[string]string{"Summary": "Built things.", "TargetRole": "SDE"})
	require.NoError(t, err)
	assert.Contains(t, out, "Original: Built things.")
	assert.NotContains(t, out, "{{.")
}

func TestAssistantPromptsHavePlaceholders(t *testing.T) {
	keys, err := List(Assistant)
	require.NoError(t, err)
	for _, key := range keys {
		prompt := MustGet(Assistant, key)
		assert.NotEmpty(t, Placeholders(prompt), key)
		assert.False(t, strings.Contains(prompt, "{{ ."), key)
	}
}
