package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/parsing"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
)

// TemplateResponse describes one template in GET /templates.
type TemplateResponse struct {
	rendering.Template
	Slug    string `json:"slug"`
	Default bool   `json:"default"`
}

// StoredDocumentResponse is returned when a render is saved instead of
// streamed.
type StoredDocumentResponse struct {
	ID        string    `json:"id"`
	Template  string    `json:"template"`
	Filename  string    `json:"filename"`
	Size      int       `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

// BatchItem is one template's result in POST /render/batch.
type BatchItem struct {
	Name     string `json:"name"`
	Filename string `json:"filename"`
	Size     int    `json:"size"`
	ID       string `json:"id,omitempty"`
}

// ExtractRequest is the body of POST /extract.
type ExtractRequest struct {
	Text        string   `json:"text"`
	Labels      []string `json:"labels"`
	Placeholder string   `json:"placeholder,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status": "ok",
		"llm":    s.assistant != nil,
		"store":  s.store != nil,
	})
}

func (s *Server) handleTemplates(w http.ResponseWriter, _ *http.Request) {
	def, _ := rendering.LookupTemplate(s.cfg.DefaultTemplate)
	templates := rendering.Templates()
	resp := make([]TemplateResponse, len(templates))
	for i, t := range templates {
		resp[i] = TemplateResponse{Template: t, Slug: t.Slug(), Default: t.Name == def.Name}
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleRender renders the posted ResumeData. With ?store=true the PDF is
// saved and its metadata returned instead.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	data, err := s.decodeResume(r)
	if err != nil {
		s.handleError(w, err)
		return
	}
	tmpl, err := s.template(r.URL.Query().Get("template"))
	if err != nil {
		s.handleError(w, err)
		return
	}
	store, _ := strconv.ParseBool(r.URL.Query().Get("store"))
	if store && s.store == nil {
		s.handleError(w, &ErrUnavailable{Feature: "document store"})
		return
	}

	pdf, err := s.render(data, tmpl)
	if err != nil {
		s.handleError(w, err)
		return
	}
	filename := rendering.DownloadFilename(data.Name)

	if store {
		doc, err := s.save(r.Context(), data, tmpl, filename, pdf)
		if err != nil {
			s.handleError(w, err)
			return
		}
		s.jsonResponse(w, http.StatusCreated, storedResponse(doc))
		return
	}
	s.pdfResponse(w, filename, pdf)
}

// handleRenderBatch renders the posted resume with every template
// concurrently.
func (s *Server) handleRenderBatch(w http.ResponseWriter, r *http.Request) {
	data, err := s.decodeResume(r)
	if err != nil {
		s.handleError(w, err)
		return
	}

	templates := rendering.Templates()
	items := make([]BatchItem, len(templates))
	filename := rendering.DownloadFilename(data.Name)
	g, ctx := errgroup.WithContext(r.Context())
	for i, tmpl := range templates {
		g.Go(func() error {
			pdf, err := s.render(data, tmpl)
			if err != nil {
				return err
			}
			item := BatchItem{
				Name:     tmpl.Name,
				Filename: strings.TrimSuffix(filename, ".pdf") + "_" + strings.ReplaceAll(tmpl.Slug(), "-", "_") + ".pdf",
				Size:     len(pdf),
			}
			if s.store != nil {
				doc, err := s.save(ctx, data, tmpl, item.Filename, pdf)
				if err != nil {
					return err
				}
				item.ID = doc.ID.String()
			}
			items[i] = item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.handleError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, items)
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.handleError(w, &ErrUnavailable{Feature: "document store"})
		return
	}
	limit := db.DefaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			s.handleError(w, &ErrValidation{Field: "limit", Message: "must be a positive integer"})
			return
		}
		limit = n
	}
	docs, err := s.store.ListDocuments(r.Context(), limit)
	if err != nil {
		s.handleError(w, err)
		return
	}
	resp := make([]StoredDocumentResponse, len(docs))
	for i := range docs {
		resp[i] = storedResponse(&docs[i])
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.handleError(w, &ErrUnavailable{Feature: "document store"})
		return
	}
	raw := r.PathValue("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		s.handleError(w, &ErrValidation{Field: "id", Message: "must be a UUID"})
		return
	}
	doc, err := s.store.GetDocument(r.Context(), id)
	if err != nil {
		s.handleError(w, err)
		return
	}
	if doc == nil {
		s.handleError(w, &ErrNotFound{Resource: "document", ID: raw})
		return
	}
	s.pdfResponse(w, doc.Filename, doc.Content)
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req ExtractRequest
	if err := decodeJSON(r, &req); err != nil {
		s.handleError(w, err)
		return
	}
	if len(req.Labels) == 0 {
		s.handleError(w, &ErrValidation{Field: "labels", Message: "at least one label is required"})
		return
	}
	var opts []parsing.Option
	if req.Placeholder != "" {
		opts = append(opts, parsing.WithPlaceholder(req.Placeholder))
	}
	s.jsonResponse(w, http.StatusOK, parsing.Extract(req.Text, req.Labels, opts...))
}

// handlePortfolio returns the HTML portfolio page, or a PDF print of it
// with ?format=pdf.
func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	data, err := s.decodeResume(r)
	if err != nil {
		s.handleError(w, err)
		return
	}
	tmpl, err := s.template(r.URL.Query().Get("template"))
	if err != nil {
		s.handleError(w, err)
		return
	}
	page, err := rendering.RenderPortfolio(data, tmpl)
	if err != nil {
		s.handleError(w, err)
		return
	}

	switch r.URL.Query().Get("format") {
	case "", "html":
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, page)
	case "pdf":
		pdf, err := s.printPDF(r.Context(), page)
		if err != nil {
			s.handleError(w, err)
			return
		}
		name := strings.TrimSuffix(rendering.DownloadFilename(data.Name), "_Resume.pdf")
		s.pdfResponse(w, name+"_Portfolio.pdf", pdf)
	default:
		s.handleError(w, &ErrValidation{Field: "format", Message: "must be html or pdf"})
	}
}

func (s *Server) decodeResume(r *http.Request) (*types.ResumeData, error) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("read request body: %w", err)
	}
	return schemas.DecodeResume(raw)
}

func (s *Server) template(name string) (rendering.Template, error) {
	if strings.TrimSpace(name) == "" {
		name = s.cfg.DefaultTemplate
	}
	return rendering.LookupTemplate(name)
}

func (s *Server) render(data *types.ResumeData, tmpl rendering.Template) ([]byte, error) {
	start := time.Now()
	pdf, err := rendering.Render(data, tmpl)
	s.metrics.observeRender(tmpl.Name, len(pdf), time.Since(start), err)
	return pdf, err
}

func (s *Server) save(ctx context.Context, data *types.ResumeData, tmpl rendering.Template, filename string, pdf []byte) (*db.Document, error) {
	doc := &db.Document{
		OwnerName: data.Name,
		Template:  tmpl.Name,
		Filename:  filename,
		Content:   pdf,
	}
	if err := s.store.SaveDocument(ctx, doc); err != nil {
		return nil, err
	}
	s.logger.Info("document stored", slog.String("id", doc.ID.String()), slog.String("template", tmpl.Name))
	return doc, nil
}

func storedResponse(d *db.Document) StoredDocumentResponse {
	return StoredDocumentResponse{
		ID:        d.ID.String(),
		Template:  d.Template,
		Filename:  d.Filename,
		Size:      d.Size,
		CreatedAt: d.CreatedAt,
	}
}

// decodeJSON decodes a JSON body strictly into v.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return &ErrValidation{Field: "body", Message: err.Error()}
	}
	return nil
}

func (s *Server) pdfResponse(w http.ResponseWriter, filename string, pdf []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// handleError writes err as {"error": ...} with the status from HTTPStatus.
// Internal errors are logged and reported generically.
func (s *Server) handleError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	body := map[string]any{"error": err.Error()}
	var schemaErr *schemas.ValidationError
	if errors.As(err, &schemaErr) {
		body["fields"] = schemaErr.Errors
	}
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable && status != http.StatusBadGateway {
		s.logger.Error("request failed", slog.Any("error", err))
		body["error"] = "internal server error"
	}
	s.jsonResponse(w, status, body)
}
