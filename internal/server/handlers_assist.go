package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/jonathan/resume-builder/internal/assistant"
	"github.com/jonathan/resume-builder/internal/types"
)

// SummaryRequest is the body of POST /assist/summary.
type SummaryRequest struct {
	Summary    string `json:"summary"`
	TargetRole string `json:"target_role"`
}

// ExperienceRequest is the body of POST /assist/experience.
type ExperienceRequest struct {
	types.Experience
	TargetRole string `json:"target_role,omitempty"`
}

// ATSRequest is the body of POST /assist/ats. The resume is given as text or
// as ResumeData; the job as text or as a URL to fetch.
type ATSRequest struct {
	ResumeText     string            `json:"resume_text,omitempty"`
	Resume         *types.ResumeData `json:"resume,omitempty"`
	JobDescription string            `json:"job_description,omitempty"`
	JobURL         string            `json:"job_url,omitempty"`
}

// GenerateRequest is the body of POST /assist/generate.
type GenerateRequest struct {
	Resume         *types.ResumeData `json:"resume"`
	JobDescription string            `json:"job_description,omitempty"`
	JobURL         string            `json:"job_url,omitempty"`
}

// TextResponse carries a generated piece of prose.
type TextResponse struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

// handleAssist dispatches POST /assist/{kind} to the writing assistant.
func (s *Server) handleAssist(w http.ResponseWriter, r *http.Request) {
	kind := r.PathValue("kind")
	run, ok := s.assistHandlers()[kind]
	if !ok {
		s.handleError(w, &ErrNotFound{Resource: "assist kind", ID: kind})
		return
	}
	if s.assistant == nil {
		s.handleError(w, &ErrUnavailable{Feature: "LLM provider"})
		return
	}

	ctx := r.Context()
	if s.cfg.LLMTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.LLMTimeout)
		defer cancel()
	}

	resp, err := run(ctx, r)
	s.metrics.observeAssist(kind, err)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

type assistFunc func(ctx context.Context, r *http.Request) (any, error)

func (s *Server) assistHandlers() map[string]assistFunc {
	return map[string]assistFunc{
		assistant.OpSummary: func(ctx context.Context, r *http.Request) (any, error) {
			var req SummaryRequest
			if err := decodeJSON(r, &req); err != nil {
				return nil, err
			}
			return textResponse(assistant.OpSummary)(s.assistant.EnhanceSummary(ctx, req.Summary, req.TargetRole))
		},
		assistant.OpExperience: func(ctx context.Context, r *http.Request) (any, error) {
			var req ExperienceRequest
			if err := decodeJSON(r, &req); err != nil {
				return nil, err
			}
			return textResponse(assistant.OpExperience)(s.assistant.EnhanceExperience(ctx, req.Experience, req.TargetRole))
		},
		assistant.OpProject: func(ctx context.Context, r *http.Request) (any, error) {
			var req types.Project
			if err := decodeJSON(r, &req); err != nil {
				return nil, err
			}
			return textResponse(assistant.OpProject)(s.assistant.EnhanceProject(ctx, req))
		},
		assistant.OpCoverLetter: func(ctx context.Context, r *http.Request) (any, error) {
			var req types.CoverLetterRequest
			if err := decodeJSON(r, &req); err != nil {
				return nil, err
			}
			return textResponse(assistant.OpCoverLetter)(s.assistant.CoverLetter(ctx, req))
		},
		assistant.OpLinkedIn: func(ctx context.Context, r *http.Request) (any, error) {
			var req types.LinkedInRequest
			if err := decodeJSON(r, &req); err != nil {
				return nil, err
			}
			return textResponse(assistant.OpLinkedIn)(s.assistant.LinkedInSummary(ctx, req))
		},
		assistant.OpATS: func(ctx context.Context, r *http.Request) (any, error) {
			var req ATSRequest
			if err := decodeJSON(r, &req); err != nil {
				return nil, err
			}
			resumeText := req.ResumeText
			if strings.TrimSpace(resumeText) == "" && req.Resume != nil {
				resumeText = req.Resume.PlainText()
			}
			job, err := s.jobText(ctx, req.JobDescription, req.JobURL)
			if err != nil {
				return nil, err
			}
			return s.assistant.CheckATS(ctx, resumeText, job)
		},
		assistant.OpGenerate: func(ctx context.Context, r *http.Request) (any, error) {
			var req GenerateRequest
			if err := decodeJSON(r, &req); err != nil {
				return nil, err
			}
			job, err := s.jobText(ctx, req.JobDescription, req.JobURL)
			if err != nil {
				return nil, err
			}
			return s.assistant.GenerateResume(ctx, req.Resume, job)
		},
	}
}

// jobText returns text, or fetches url when text is empty.
func (s *Server) jobText(ctx context.Context, text, url string) (string, error) {
	if strings.TrimSpace(text) != "" || strings.TrimSpace(url) == "" {
		return text, nil
	}
	if s.jobs == nil {
		return "", &ErrUnavailable{Feature: "job URL fetching"}
	}
	posting, err := s.jobs.JobDescription(ctx, url)
	if err != nil {
		return "", err
	}
	return posting.Description(), nil
}

func textResponse(kind string) func(string, error) (any, error) {
	return func(text string, err error) (any, error) {
		if err != nil {
			return nil, err
		}
		return TextResponse{Kind: kind, Text: text}, nil
	}
}
