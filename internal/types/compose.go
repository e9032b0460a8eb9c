package types

import (
	"fmt"
	"strings"
)

// SkillGroups holds the categorized skill lists collected by the builder form.
type SkillGroups struct {
	Languages  string `json:"languages,omitempty"`
	Frameworks string `json:"frameworks,omitempty"`
	Databases  string `json:"databases,omitempty"`
	Tools      string `json:"tools,omitempty"`
	Cloud      string `json:"cloud,omitempty"`
	SoftSkills string `json:"soft_skills,omitempty"`
}

// Project is one project entry before it is flattened into ResumeData.Projects.
type Project struct {
	Name        string `json:"name"`
	Tech        string `json:"tech,omitempty"`
	Link        string `json:"link,omitempty"`
	Description string `json:"description,omitempty"`
}

// ComposeSkills renders the groups as "Category: items" lines, skipping empty groups.
func ComposeSkills(g SkillGroups) string {
	var lines []string
	add := func(label, value string) {
		if v := strings.TrimSpace(value); v != "" {
			lines = append(lines, label+": "+v)
		}
	}
	add("Languages", g.Languages)
	add("Frameworks", g.Frameworks)
	add("Databases", g.Databases)
	add("Tools", g.Tools)
	add("Cloud/DevOps", g.Cloud)
	add("Soft Skills", g.SoftSkills)
	return strings.Join(lines, "\n")
}

// ComposeProjects renders one bullet line per named project:
//
//	• name (tech) | link: description
func ComposeProjects(projects []Project) string {
	var lines []string
	for _, p := range projects {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			continue
		}
		line := "• " + name
		if tech := strings.TrimSpace(p.Tech); tech != "" {
			line += fmt.Sprintf(" (%s)", tech)
		}
		if link := strings.TrimSpace(p.Link); link != "" {
			line += " | " + link
		}
		if desc := strings.TrimSpace(p.Description); desc != "" {
			line += ": " + desc
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
