// Package server provides the HTTP REST API for the careerdoc builder.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/careerdoc/internal/fetch"
	"github.com/jonathan/careerdoc/internal/types"
)

// createJobRequest is the request body for storing a job posting, either from
// pasted text or imported from a URL.
type createJobRequest struct {
	SourceType types.JobSourceType `json:"source_type" validate:"required,oneof=saved site url paste"`
	Title      string              `json:"title"`
	Company    string              `json:"company"`
	URL        *string             `json:"url,omitempty" validate:"omitempty,url"`
	RawText    string              `json:"raw_text"`
}

// handleCreateJob stores a job posting. For source_type=url the posting text
// is fetched and extracted server-side, falling back to a headless browser
// when the static page carries too little content.
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	var req createJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, firstValidationError(err))
		return
	}

	job := &types.Job{
		UserID:     userID,
		SourceType: req.SourceType,
		Title:      req.Title,
		Company:    req.Company,
		URL:        req.URL,
		RawText:    req.RawText,
	}

	if req.SourceType == types.JobSourceURL {
		if req.URL == nil || *req.URL == "" {
			s.errorResponse(w, http.StatusBadRequest, "url is required for source_type=url")
			return
		}
		text, title, err := s.importJobText(r, *req.URL)
		if err != nil {
			s.errorResponse(w, http.StatusBadGateway, "failed to fetch job posting")
			return
		}
		job.RawText = text
		if job.Title == "" {
			job.Title = title
		}
	}

	if job.RawText == "" {
		s.errorResponse(w, http.StatusBadRequest, "raw_text is required")
		return
	}

	created, err := s.store.CreateJob(r.Context(), job)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to create job")
		return
	}
	s.jsonResponse(w, http.StatusCreated, created)
}

// importJobText fetches a posting URL and extracts its main text, escalating
// to a headless browser for script-rendered pages.
func (s *Server) importJobText(r *http.Request, url string) (text, title string, err error) {
	result, err := fetch.URL(r.Context(), url, fetch.DefaultOptions())
	if err != nil {
		return "", "", err
	}
	text, title = result.Text, result.Title

	if fetch.ShouldUseBrowser(text) {
		html, browserErr := fetch.WithBrowser(r.Context(), url)
		if browserErr == nil {
			if browserText, browserTitle, extractErr := fetch.ExtractMainText(html); extractErr == nil && browserText != "" {
				text, title = browserText, browserTitle
			}
		}
	}
	return text, title, nil
}

// handleListJobs returns the user's stored jobs, newest first.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	jobs, err := s.store.ListJobs(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to list jobs")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"jobs": jobs})
}

// handleGetJob returns one stored job owned by the user.
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid job id")
		return
	}

	job, err := s.store.GetJob(r.Context(), userID, id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to get job")
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "job not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, job)
}

// handleDeleteJob deletes one stored job owned by the user.
func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid job id")
		return
	}

	deleted, err := s.store.DeleteJob(r.Context(), userID, id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to delete job")
		return
	}
	if !deleted {
		s.errorResponse(w, http.StatusNotFound, "job not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleStructureJob runs job structuring over the stored raw text, persists
// the structured form and seeds the job's question list from any questions
// found in the posting.
func (s *Server) handleStructureJob(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid job id")
		return
	}

	job, err := s.store.GetJob(r.Context(), userID, id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to get job")
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "job not found")
		return
	}

	structured := s.pipeline.StructureJob(r.Context(), job.RawText)

	if err := s.store.SetJobStructured(r.Context(), userID, id, structured); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to store structured job")
		return
	}
	if len(structured.Questions) > 0 {
		if err := s.store.ReplaceJobQuestions(r.Context(), userID, id, structured.Questions); err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "failed to seed job questions")
			return
		}
	}

	s.jsonResponse(w, http.StatusOK, structured)
}
