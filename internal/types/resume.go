// Package types provides type definitions for structured data used throughout the resume builder.
package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// ResumeData is the structured input to the document renderer.
// Every field except Name is optional; empty fields omit their section.
type ResumeData struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`

	Summary    string       `json:"summary,omitempty"`
	Education  []Education  `json:"education,omitempty" validate:"dive"`
	Experience []Experience `json:"experience,omitempty" validate:"dive"`

	// Free-form blocks; may contain bullet markers.
	Projects     string `json:"projects,omitempty"`
	Skills       string `json:"skills,omitempty"`
	Achievements string `json:"achievements,omitempty"`
	Extra        string `json:"extra,omitempty"`
}

// Education is a single education entry.
type Education struct {
	Degree      string `json:"degree" validate:"required_without=Institution"`
	Institution string `json:"institution,omitempty"`
	Year        string `json:"year,omitempty"`
	Grade       string `json:"grade,omitempty"`
}

// Experience is a single internship or job entry.
type Experience struct {
	Role        string `json:"role" validate:"required_without=Company"`
	Company     string `json:"company,omitempty"`
	Duration    string `json:"duration,omitempty"`
	Description string `json:"description,omitempty"`
}

// Validate validates the ResumeData using the validator.
func (r *ResumeData) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Clone returns a deep copy so callers can modify the result without touching r.
func (r *ResumeData) Clone() *ResumeData {
	if r == nil {
		return nil
	}
	c := *r
	if r.Education != nil {
		c.Education = append([]Education(nil), r.Education...)
	}
	if r.Experience != nil {
		c.Experience = append([]Experience(nil), r.Experience...)
	}
	return &c
}

// ContactLine joins the non-empty email, phone and location with sep.
func (r *ResumeData) ContactLine(sep string) string {
	return joinNonEmpty(sep, r.Email, r.Phone, r.Location)
}

// LinksLine joins the non-empty LinkedIn and GitHub handles with sep.
func (r *ResumeData) LinksLine(sep string) string {
	return joinNonEmpty(sep, r.LinkedIn, r.GitHub)
}

// PlainText flattens the resume into the text a recruiter (or an ATS) would read.
func (r *ResumeData) PlainText() string {
	var sb strings.Builder
	writeLine := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			sb.WriteString(s)
			sb.WriteString("\n")
		}
	}
	block := func(title, body string) {
		if strings.TrimSpace(body) == "" {
			return
		}
		sb.WriteString("\n")
		writeLine(strings.ToUpper(title))
		writeLine(body)
	}

	writeLine(r.Name)
	writeLine(r.ContactLine(" | "))
	writeLine(r.LinksLine(" | "))
	block("Summary", r.Summary)

	if len(r.Education) > 0 {
		sb.WriteString("\nEDUCATION\n")
		for _, e := range r.Education {
			writeLine(joinNonEmpty(", ", e.Degree, e.Institution, e.Year, e.Grade))
		}
	}
	if len(r.Experience) > 0 {
		sb.WriteString("\nEXPERIENCE\n")
		for _, e := range r.Experience {
			writeLine(joinNonEmpty(" - ", e.Role, e.Company) + " " + strings.TrimSpace(e.Duration))
			writeLine(e.Description)
		}
	}

	block("Projects", r.Projects)
	block("Skills", r.Skills)
	block("Achievements", r.Achievements)
	block("Extra-Curricular", r.Extra)

	return strings.TrimSpace(sb.String())
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
