// Package server provides the HTTP REST API for the careerdoc builder.
package server

import (
	"encoding/json"
	"net/http"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/jonathan/careerdoc/internal/types"
)

// saveDocumentRequest persists a synthesized result the user chose to keep.
// The meta char count is recomputed server-side from the plain content.
type saveDocumentRequest struct {
	JobID        uuid.UUID                `json:"job_id" validate:"required"`
	DocType      types.DocumentType       `json:"doc_type" validate:"required,oneof=career_report cover_letter"`
	Content      string                   `json:"content" validate:"required"`
	ContentMD    string                   `json:"content_md"`
	Traceability []types.TraceabilityItem `json:"traceability,omitempty"`
	RiskFlags    []string                 `json:"risk_flags,omitempty"`
}

// handleSaveDocument stores a synthesized document.
func (s *Server) handleSaveDocument(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	var req saveDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, firstValidationError(err))
		return
	}

	job, err := s.store.GetJob(r.Context(), userID, req.JobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to get job")
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "job not found")
		return
	}

	doc := &types.Document{
		UserID:    userID,
		JobID:     req.JobID,
		DocType:   req.DocType,
		Content:   req.Content,
		ContentMD: req.ContentMD,
		Meta: types.DocumentMeta{
			CharCount:    utf8.RuneCountInString(req.Content),
			Traceability: req.Traceability,
			RiskFlags:    req.RiskFlags,
		},
	}

	saved, err := s.store.SaveDocument(r.Context(), doc)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to save document")
		return
	}
	s.jsonResponse(w, http.StatusCreated, saved)
}

// handleListDocuments returns the user's saved documents, newest first.
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	documents, err := s.store.ListDocuments(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to list documents")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"documents": documents})
}

// handleGetDocument returns one saved document owned by the user.
func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid document id")
		return
	}

	doc, err := s.store.GetDocument(r.Context(), userID, id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to get document")
		return
	}
	if doc == nil {
		s.errorResponse(w, http.StatusNotFound, "document not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, doc)
}

// handleDeleteDocument removes one saved document owned by the user.
func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid document id")
		return
	}

	deleted, err := s.store.DeleteDocument(r.Context(), userID, id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to delete document")
		return
	}
	if !deleted {
		s.errorResponse(w, http.StatusNotFound, "document not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
