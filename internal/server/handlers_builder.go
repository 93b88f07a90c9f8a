// Package server provides the HTTP REST API for the careerdoc builder.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/careerdoc/internal/types"
)

// careerReportRequest selects the job and experiences for report synthesis.
// LengthRule, when present, overrides the length rules extracted from the
// job posting.
type careerReportRequest struct {
	JobID         uuid.UUID        `json:"job_id" validate:"required"`
	ExperienceIDs []uuid.UUID      `json:"experience_ids"`
	LengthRule    *types.LengthRule `json:"length_rule,omitempty"`
}

// coverLetterRequest selects the question and experiences for one
// cover-letter answer.
type coverLetterRequest struct {
	Question      string      `json:"question" validate:"required"`
	ExperienceIDs []uuid.UUID `json:"experience_ids"`
	CharLimit     *int        `json:"char_limit,omitempty" validate:"omitempty,gt=0"`
}

// qcRequest is the request body for the quality-control pass.
type qcRequest struct {
	Content          string   `json:"content" validate:"required"`
	CharLimit        *int     `json:"char_limit,omitempty" validate:"omitempty,gt=0"`
	RequiredKeywords []string `json:"required_keywords,omitempty"`
}

// selectedExperiences loads the requested experiences scoped to the user.
// A requested ID that does not resolve to an owned experience fails the
// whole selection.
func (s *Server) selectedExperiences(r *http.Request, userID uuid.UUID, ids []uuid.UUID) ([]types.Experience, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	experiences, err := s.store.ListExperiencesByIDs(r.Context(), userID, ids)
	if err != nil {
		return nil, err
	}
	if len(experiences) != len(ids) {
		return nil, &ErrNotFound{Resource: "experience"}
	}
	return experiences, nil
}

// handleCareerReport synthesizes a career report over the selected
// experiences. The result is transient; clients save it explicitly via the
// documents endpoint.
func (s *Server) handleCareerReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	var req careerReportRequest
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

	structured := job.Structured
	if structured == nil {
		structured = s.pipeline.StructureJob(r.Context(), job.RawText)
	}

	experiences, err := s.selectedExperiences(r, userID, req.ExperienceIDs)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	result, err := s.pipeline.GenerateCareerReport(r.Context(), structured, experiences, req.LengthRule)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), "failed to generate career report")
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleCoverLetter synthesizes one cover-letter answer over the selected
// experiences. An empty selection yields the fixed placeholder answer.
func (s *Server) handleCoverLetter(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	var req coverLetterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, firstValidationError(err))
		return
	}

	experiences, err := s.selectedExperiences(r, userID, req.ExperienceIDs)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	result, err := s.pipeline.GenerateCoverLetterAnswer(r.Context(), req.Question, experiences, req.CharLimit)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), "failed to generate answer")
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleQC runs the quality-control pass over submitted content.
func (s *Server) handleQC(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.userID(w, r); !ok {
		return
	}

	var req qcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, firstValidationError(err))
		return
	}

	result := s.pipeline.QCDocument(req.Content, types.QCConstraints{
		CharLimit:        req.CharLimit,
		RequiredKeywords: req.RequiredKeywords,
	})
	s.jsonResponse(w, http.StatusOK, result)
}
