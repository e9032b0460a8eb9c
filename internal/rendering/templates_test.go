package rendering

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinTemplates(t *testing.T) {
	want := []struct {
		name   string
		layout LayoutStyle
		accent Color
	}{
		{"Classic Professional", LayoutClassic, Color{0, 0, 0}},
		{"Modern Purple", LayoutModern, Color{108, 99, 255}},
		{"Corporate Blue", LayoutModern, Color{26, 82, 160}},
		{"Minimal Green", LayoutModern, Color{39, 174, 96}},
		{"Bold Red", LayoutModern, Color{192, 57, 43}},
	}

	all := Templates()
	require.Len(t, all, len(want))
	for i, w := range want {
		got := all[i]
		assert.Equal(t, w.name, got.Name)
		assert.Equal(t, w.layout, got.Layout)
		assert.Equal(t, w.accent, got.Accent)
		assert.Equal(t, w.accent, got.Divider)
		if w.layout == LayoutModern {
			assert.Equal(t, w.accent, got.HeaderBackground)
			assert.Equal(t, Color{255, 255, 255}, got.HeaderText)
		}
	}
	assert.Equal(t, DefaultTemplateName, TemplateNames()[0])
}

func TestTemplates_ReturnsCopy(t *testing.T) {
	all := Templates()
	all[0].Name = "changed"
	assert.Equal(t, DefaultTemplateName, Templates()[0].Name)
}

func TestLookupTemplate(t *testing.T) {
	for _, name := range []string{"Modern Purple", "modern purple", "  MODERN   PURPLE ", "modern-purple"} {
		tmpl, err := LookupTemplate(name)
		require.NoError(t, err, name)
		assert.Equal(t, "Modern Purple", tmpl.Name)
	}
}

func TestLookupTemplate_Unknown(t *testing.T) {
	tmpl, err := LookupTemplate("Neon Pink")
	require.Error(t, err)
	assert.Equal(t, Template{}, tmpl)

	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "Neon Pink", cfgErr.Template)
	assert.True(t, errors.Is(err, ErrUnknownTemplate))
	assert.Equal(t, `configuration error: unknown template: "Neon Pink"`, err.Error())
}

func TestNewTemplate(t *testing.T) {
	tmpl, err := NewTemplate("Ocean", LayoutModern, Palette{Accent: Color{0, 105, 148}})
	require.NoError(t, err)
	assert.Equal(t, "ocean", tmpl.Slug())
	assert.NotNil(t, tmpl.header)

	_, err = NewTemplate("Broken", LayoutStyle(9), Palette{})
	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "Broken", cfgErr.Template)

	_, err = NewTemplate("  ", LayoutClassic, Palette{})
	assert.Error(t, err)
}

func TestNewRegistry(t *testing.T) {
	a, err := NewTemplate("Ocean", LayoutModern, Palette{})
	require.NoError(t, err)
	b, err := NewTemplate("ocean", LayoutClassic, Palette{})
	require.NoError(t, err)

	_, err = NewRegistry(a, b)
	assert.Error(t, err, "duplicate names differing only in case")

	_, err = NewRegistry(Template{Name: "raw"})
	assert.Error(t, err, "template not built with NewTemplate")

	reg, err := NewRegistry(a)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ocean"}, reg.Names())
	got, err := reg.Lookup("OCEAN")
	require.NoError(t, err)
	assert.Equal(t, a.Name, got.Name)
}

func TestColorHex(t *testing.T) {
	assert.Equal(t, "#6c63ff", Color{108, 99, 255}.Hex())
	assert.Equal(t, "#000000", Color{}.Hex())
}

func TestLayoutStyle_JSON(t *testing.T) {
	tmpl, err := LookupTemplate("Bold Red")
	require.NoError(t, err)
	raw, err := json.Marshal(tmpl)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"name": "Bold Red",
		"header_background": {"r": 192, "g": 57, "b": 43},
		"header_text": {"r": 255, "g": 255, "b": 255},
		"accent": {"r": 192, "g": 57, "b": 43},
		"divider": {"r": 192, "g": 57, "b": 43},
		"layout": "modern"
	}`, string(raw))

	_, err = LayoutStyle(0).MarshalText()
	assert.Error(t, err)
	assert.Equal(t, "LayoutStyle(7)", LayoutStyle(7).String())
}
