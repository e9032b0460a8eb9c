package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/assistant"
	"github.com/jonathan/resume-builder/internal/parsing"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
)

const mcpServerName = "resume_builder"

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve resume tools over MCP on stdio",
	Long: `Runs a Model Context Protocol server on stdin/stdout with the tools render, extract, templates
and ats-score. ats-score needs an LLM API key; the other tools work offline.`,
	RunE: runMCP,
}

var (
	mcpOutDir     string
	mcpUseBrowser bool
)

func init() {
	mcpCmd.Flags().StringVar(&mcpOutDir, "out-dir", ".", "Directory the render tool writes PDFs to")
	mcpCmd.Flags().BoolVar(&mcpUseBrowser, "use-browser", false, "Retry thin job pages with headless Chrome")
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, _ []string) error {
	var b backends
	defer b.close()
	b.openCache(cmd.Context())
	svc, err := b.newAssistant(cmd.Context())
	if err != nil {
		return err
	}

	tools := &mcpTools{
		outDir:          mcpOutDir,
		defaultTemplate: cfg.DefaultTemplate,
		assistant:       svc,
		fetchJob: func(ctx context.Context, url string) (string, error) {
			posting, err := b.newJobFetcher(mcpUseBrowser).JobDescription(ctx, url)
			if err != nil {
				return "", err
			}
			return posting.Description(), nil
		},
	}
	server := newMCPServer(tools)
	logger.Info("mcp server starting", slog.Bool("llm", svc != nil))
	return server.Run(cmd.Context(), &mcp.StdioTransport{})
}

// mcpTools implements the MCP tool handlers.
type mcpTools struct {
	outDir          string
	defaultTemplate string
	assistant       *assistant.Service
	fetchJob        func(ctx context.Context, url string) (string, error)
}

func newMCPServer(t *mcpTools) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: mcpServerName, Version: version}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "render",
		Description: "Render resume data to a PDF file with one of the built-in templates. Returns the written path and size.",
	}, t.render)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "extract",
		Description: "Split text into labelled sections. A label is written as [LABEL] or as LABEL: at the start of a line.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, t.extract)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "templates",
		Description: "List the available resume templates.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, t.templates)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "ats-score",
		Description: "Score resume text against a job description (text or URL). Returns a 0-100 score, keyword matches and gaps, recommendations and a verdict.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, t.atsScore)
	return server
}

// RenderInput is the render tool's argument.
type RenderInput struct {
	Resume   types.ResumeData `json:"resume" jsonschema:"Resume data; name is required"`
	Template string           `json:"template,omitempty" jsonschema:"Template name (default: the configured default template)"`
	Filename string           `json:"filename,omitempty" jsonschema:"Output file name (default: <Name>_Resume.pdf)"`
}

// RenderOutput describes the written PDF.
type RenderOutput struct {
	Path     string `json:"path"`
	Template string `json:"template"`
	Size     int    `json:"size"`
}

func (t *mcpTools) render(_ context.Context, _ *mcp.CallToolRequest, in RenderInput) (*mcp.CallToolResult, RenderOutput, error) {
	raw, err := json.Marshal(in.Resume)
	if err != nil {
		return nil, RenderOutput{}, err
	}
	data, err := schemas.DecodeResume(raw)
	if err != nil {
		return nil, RenderOutput{}, err
	}
	name := in.Template
	if name == "" {
		name = t.defaultTemplate
	}
	tmpl, err := rendering.LookupTemplate(name)
	if err != nil {
		return nil, RenderOutput{}, err
	}
	pdf, err := rendering.Render(data, tmpl)
	if err != nil {
		return nil, RenderOutput{}, err
	}

	filename := filepath.Base(in.Filename)
	if in.Filename == "" {
		filename = rendering.DownloadFilename(data.Name)
	}
	path := filepath.Join(t.outDir, filename)
	if err := os.WriteFile(path, pdf, 0644); err != nil {
		return nil, RenderOutput{}, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil, RenderOutput{Path: path, Template: tmpl.Name, Size: len(pdf)}, nil
}

// ExtractInput is the extract tool's argument.
type ExtractInput struct {
	Text        string   `json:"text" jsonschema:"Text to split"`
	Labels      []string `json:"labels" jsonschema:"Section labels to look for"`
	Placeholder string   `json:"placeholder,omitempty" jsonschema:"Value for labels that are not found (default: empty)"`
}

// ExtractOutput maps every requested label to its section.
type ExtractOutput struct {
	Sections map[string]string `json:"sections"`
}

func (t *mcpTools) extract(_ context.Context, _ *mcp.CallToolRequest, in ExtractInput) (*mcp.CallToolResult, ExtractOutput, error) {
	if len(in.Labels) == 0 {
		return nil, ExtractOutput{}, errors.New("labels is required")
	}
	sections := parsing.Extract(in.Text, in.Labels, parsing.WithPlaceholder(in.Placeholder))
	return nil, ExtractOutput{Sections: sections}, nil
}

// TemplateInfo describes one template.
type TemplateInfo struct {
	Name    string `json:"name"`
	Slug    string `json:"slug"`
	Layout  string `json:"layout"`
	Accent  string `json:"accent"`
	Default bool   `json:"default"`
}

// TemplatesOutput lists the registry in order.
type TemplatesOutput struct {
	Templates []TemplateInfo `json:"templates"`
}

func (t *mcpTools) templates(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, TemplatesOutput, error) {
	var out TemplatesOutput
	for _, tmpl := range rendering.Templates() {
		out.Templates = append(out.Templates, TemplateInfo{
			Name:    tmpl.Name,
			Slug:    tmpl.Slug(),
			Layout:  tmpl.Layout.String(),
			Accent:  tmpl.Accent.Hex(),
			Default: tmpl.Name == t.defaultTemplate,
		})
	}
	return nil, out, nil
}

// ATSInput is the ats-score tool's argument.
type ATSInput struct {
	ResumeText     string `json:"resume_text" jsonschema:"Plain-text resume"`
	JobDescription string `json:"job_description,omitempty" jsonschema:"Job description text"`
	JobURL         string `json:"job_url,omitempty" jsonschema:"Job posting URL, used when job_description is empty"`
}

func (t *mcpTools) atsScore(ctx context.Context, _ *mcp.CallToolRequest, in ATSInput) (*mcp.CallToolResult, types.ATSReport, error) {
	if t.assistant == nil {
		return nil, types.ATSReport{}, errors.New("no LLM API key configured")
	}
	job := in.JobDescription
	if strings.TrimSpace(job) == "" && in.JobURL != "" {
		if t.fetchJob == nil {
			return nil, types.ATSReport{}, errors.New("job URL fetching is not available")
		}
		text, err := t.fetchJob(ctx, in.JobURL)
		if err != nil {
			return nil, types.ATSReport{}, err
		}
		job = text
	}
	report, err := t.assistant.CheckATS(ctx, in.ResumeText, job)
	if err != nil {
		return nil, types.ATSReport{}, err
	}
	return nil, *report, nil
}
