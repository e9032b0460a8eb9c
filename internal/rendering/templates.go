package rendering

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// LayoutStyle selects how the header block is drawn.
type LayoutStyle int

// Supported layout styles.
const (
	LayoutClassic LayoutStyle = iota + 1
	LayoutModern
)

func (s LayoutStyle) String() string {
	switch s {
	case LayoutClassic:
		return "classic"
	case LayoutModern:
		return "modern"
	default:
		return fmt.Sprintf("LayoutStyle(%d)", int(s))
	}
}

// MarshalText encodes the style by name.
func (s LayoutStyle) MarshalText() ([]byte, error) {
	switch s {
	case LayoutClassic, LayoutModern:
		return []byte(s.String()), nil
	}
	return nil, fmt.Errorf("invalid layout style %d", int(s))
}

// Color is an RGB triple with 0-255 components.
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// Hex returns the color as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// headerPainter draws the header block and leaves the cursor below it.
type headerPainter func(l *layout, data *types.ResumeData)

// Template is an immutable named style. Only templates built by NewTemplate
// can be rendered; the zero value is rejected with a ConfigurationError.
type Template struct {
	Name             string      `json:"name"`
	HeaderBackground Color       `json:"header_background"`
	HeaderText       Color       `json:"header_text"`
	Accent           Color       `json:"accent"`
	Divider          Color       `json:"divider"`
	Layout           LayoutStyle `json:"layout"`

	header headerPainter
}

// Palette groups the colors of a template.
type Palette struct {
	HeaderBackground Color
	HeaderText       Color
	Accent           Color
	Divider          Color
}

// NewTemplate builds a template and binds the header painter for its layout.
func NewTemplate(name string, layout LayoutStyle, p Palette) (Template, error) {
	if strings.TrimSpace(name) == "" {
		return Template{}, &ConfigurationError{Message: "template name is empty"}
	}
	t := Template{
		Name:             name,
		HeaderBackground: p.HeaderBackground,
		HeaderText:       p.HeaderText,
		Accent:           p.Accent,
		Divider:          p.Divider,
		Layout:           layout,
	}
	switch layout {
	case LayoutClassic:
		t.header = drawClassicHeader
	case LayoutModern:
		t.header = drawModernHeader
	default:
		return Template{}, &ConfigurationError{
			Template: name,
			Message:  fmt.Sprintf("unsupported layout style %d", int(layout)),
		}
	}
	return t, nil
}

// Slug returns the lower-case, dash-separated form of the name.
func (t Template) Slug() string {
	return slugify(t.Name)
}

// Registry is a fixed set of templates looked up by name. It is read-only
// after construction.
type Registry struct {
	byKey map[string]Template
	order []Template
}

// NewRegistry indexes templates by name and slug. Duplicate names are rejected.
func NewRegistry(templates ...Template) (*Registry, error) {
	r := &Registry{byKey: make(map[string]Template, len(templates)*2)}
	for _, t := range templates {
		if t.header == nil {
			return nil, &ConfigurationError{Template: t.Name, Message: "template was not built with NewTemplate"}
		}
		key := templateKey(t.Name)
		if _, dup := r.byKey[key]; dup {
			return nil, &ConfigurationError{Template: t.Name, Message: "duplicate template name"}
		}
		r.byKey[key] = t
		r.byKey[t.Slug()] = t
		r.order = append(r.order, t)
	}
	return r, nil
}

// Lookup finds a template by display name or slug, ignoring case and
// surrounding whitespace.
func (r *Registry) Lookup(name string) (Template, error) {
	if t, ok := r.byKey[templateKey(name)]; ok {
		return t, nil
	}
	if t, ok := r.byKey[slugify(name)]; ok {
		return t, nil
	}
	return Template{}, &ConfigurationError{
		Template: name,
		Message:  "unknown template",
		Cause:    ErrUnknownTemplate,
	}
}

// All returns the templates in registration order.
func (r *Registry) All() []Template {
	return append([]Template(nil), r.order...)
}

// Names returns the template names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	for i, t := range r.order {
		names[i] = t.Name
	}
	return names
}

// DefaultTemplateName is used when the caller does not choose a template.
const DefaultTemplateName = "Classic Professional"

var builtinRegistry = mustRegistry(
	mustTemplate("Classic Professional", LayoutClassic, Palette{
		HeaderBackground: Color{255, 255, 255},
		HeaderText:       Color{0, 0, 0},
		Accent:           Color{0, 0, 0},
		Divider:          Color{0, 0, 0},
	}),
	modernTemplate("Modern Purple", Color{108, 99, 255}),
	modernTemplate("Corporate Blue", Color{26, 82, 160}),
	modernTemplate("Minimal Green", Color{39, 174, 96}),
	modernTemplate("Bold Red", Color{192, 57, 43}),
)

// DefaultRegistry returns the built-in templates.
func DefaultRegistry() *Registry {
	return builtinRegistry
}

// LookupTemplate finds a built-in template by name.
func LookupTemplate(name string) (Template, error) {
	return builtinRegistry.Lookup(name)
}

// Templates returns the built-in templates in display order.
func Templates() []Template {
	return builtinRegistry.All()
}

// TemplateNames returns the built-in template names in display order.
func TemplateNames() []string {
	return builtinRegistry.Names()
}

// modernTemplate builds a banded template whose accent and divider match the band.
func modernTemplate(name string, c Color) Template {
	return mustTemplate(name, LayoutModern, Palette{
		HeaderBackground: c,
		HeaderText:       Color{255, 255, 255},
		Accent:           c,
		Divider:          c,
	})
}

func mustTemplate(name string, layout LayoutStyle, p Palette) Template {
	t, err := NewTemplate(name, layout, p)
	if err != nil {
		panic(err)
	}
	return t
}

func mustRegistry(templates ...Template) *Registry {
	r, err := NewRegistry(templates...)
	if err != nil {
		panic(err)
	}
	return r
}

func templateKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

func slugify(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}
