// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/fetch"
	"github.com/jonathan/resume-builder/internal/parsing"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, boxWidth-4), boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, ending in "..." when cut.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

// pad right-fills s with spaces to n runes.
func pad(s string, n int) string {
	if c := utf8.RuneCountInString(s); c < n {
		return s + strings.Repeat(" ", n-c)
	}
	return s
}

// writeItems lists up to limit items, one per line, with a trailing
// "... and N more" when the list is longer.
func writeItems(sb *strings.Builder, items []string, limit int) {
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
}

// PrintSections outputs extracted sections in the order of labels. Missing
// labels are shown as "(missing)".
func (p *Printer) PrintSections(sections parsing.Sections, labels []string) {
	if len(labels) == 0 {
		return
	}

	var sb strings.Builder
	for i, label := range labels {
		body, ok := sections[label]
		sb.WriteString(label + ":\n")
		switch {
		case !ok:
			sb.WriteString("  (missing)\n")
		case strings.TrimSpace(body) == "":
			sb.WriteString("  (empty)\n")
		default:
			for _, line := range strings.Split(body, "\n") {
				sb.WriteString("  " + line + "\n")
			}
		}
		if i < len(labels)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("EXTRACTED SECTIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintATSReport outputs the score, rating and the keyword sections of an ATS check.
func (p *Printer) PrintATSReport(report *types.ATSReport) {
	if report == nil {
		return
	}

	var sb strings.Builder
	if report.ScoreFound {
		sb.WriteString(fmt.Sprintf("Score:    %d/100\n", report.Score))
	} else {
		sb.WriteString("Score:    not reported\n")
	}
	sb.WriteString(fmt.Sprintf("Rating:   %s\n", report.Rating))

	for _, section := range []struct {
		title string
		body  string
	}{
		{"Matched Keywords", report.MatchedKeywords},
		{"Missing Keywords", report.MissingKeywords},
		{"Skill Gaps", report.SkillGaps},
		{"Strengths", report.Strengths},
		{"Recommendations", report.Recommendations},
	} {
		items := listItems(section.body)
		if len(items) == 0 {
			continue
		}
		sb.WriteString("\n" + section.title + ":\n")
		writeItems(&sb, items, maxItemsToShow)
	}
	if report.Verdict != "" {
		sb.WriteString("\nVerdict:\n")
		sb.WriteString("  " + strings.Join(strings.Fields(report.Verdict), " ") + "\n")
	}

	p.printBox("ATS MATCH REPORT", strings.TrimSuffix(sb.String(), "\n"))
}

// listItems splits a bulleted or numbered block into its entries.
func listItems(block string) []string {
	var items []string
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "•*- \t")
		line = strings.TrimLeft(line, "0123456789.) ")
		if line != "" {
			items = append(items, line)
		}
	}
	return items
}

// PrintTemplates outputs the template registry with the default marked.
func (p *Printer) PrintTemplates(templates []rendering.Template, defaultName string) {
	if len(templates) == 0 {
		return
	}

	var sb strings.Builder
	for _, t := range templates {
		marker := " "
		if t.Name == defaultName {
			marker = "*"
		}
		sb.WriteString(fmt.Sprintf("%s %-22s %-8s accent %s\n", marker, t.Name, t.Layout, t.Accent.Hex()))
	}
	sb.WriteString("\n* default")

	p.printBox("TEMPLATES", sb.String())
}

// PrintDocuments outputs stored document metadata, newest first as given.
func (p *Printer) PrintDocuments(docs []db.Document) {
	if len(docs) == 0 {
		p.printBox("STORED DOCUMENTS", "No documents stored")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total: %d\n\n", len(docs)))
	for i, d := range docs {
		sb.WriteString(fmt.Sprintf("%s\n", d.ID))
		sb.WriteString(fmt.Sprintf("  %s (%s, %d bytes)\n", d.Filename, d.Template, d.Size))
		sb.WriteString(fmt.Sprintf("  %s\n", d.CreatedAt.UTC().Format("2006-01-02 15:04:05")))
		if i < len(docs)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("STORED DOCUMENTS", sb.String())
}

// PrintJobPosting outputs the metadata of a fetched job posting and the first
// lines of its description.
func (p *Printer) PrintJobPosting(posting *fetch.JobPosting) {
	if posting == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Title:    %s\n", posting.Title))
	if posting.Company != "" {
		sb.WriteString(fmt.Sprintf("Company:  %s\n", posting.Company))
	}
	sb.WriteString(fmt.Sprintf("Platform: %s\n", posting.Platform))
	if posting.Rendered {
		sb.WriteString("Source:   headless browser\n")
	}

	var lines []string
	for _, line := range strings.Split(posting.Description(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) > 0 {
		sb.WriteString("\n")
		count := min(len(lines), maxItemsToShow)
		for _, line := range lines[:count] {
			sb.WriteString(line + "\n")
		}
		if len(lines) > count {
			sb.WriteString(fmt.Sprintf("... and %d more lines\n", len(lines)-count))
		}
	}

	p.printBox("JOB POSTING", strings.TrimSuffix(sb.String(), "\n"))
}
