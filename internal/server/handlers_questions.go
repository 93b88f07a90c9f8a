// Package server provides the HTTP REST API for the careerdoc builder.
package server

import (
	"encoding/json"
	"net/http"
)

// appendQuestionRequest is the request body for adding a cover-letter
// question to a job.
type appendQuestionRequest struct {
	QuestionTitle string `json:"question_title" validate:"required"`
	CharLimit     *int   `json:"char_limit,omitempty" validate:"omitempty,gt=0"`
}

// handleListQuestions returns a job's questions in display order.
func (s *Server) handleListQuestions(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	jobID, err := pathID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid job id")
		return
	}

	questions, err := s.store.ListJobQuestions(r.Context(), userID, jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to list questions")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"questions": questions})
}

// handleAppendQuestion adds a question at the end of a job's question list.
func (s *Server) handleAppendQuestion(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	jobID, err := pathID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid job id")
		return
	}

	var req appendQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, firstValidationError(err))
		return
	}

	job, err := s.store.GetJob(r.Context(), userID, jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to get job")
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "job not found")
		return
	}

	question, err := s.store.AppendJobQuestion(r.Context(), userID, jobID, req.QuestionTitle, req.CharLimit)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to append question")
		return
	}
	s.jsonResponse(w, http.StatusCreated, question)
}

// handleDeleteQuestion removes one question owned by the user.
func (s *Server) handleDeleteQuestion(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid question id")
		return
	}

	deleted, err := s.store.DeleteJobQuestion(r.Context(), userID, id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to delete question")
		return
	}
	if !deleted {
		s.errorResponse(w, http.StatusNotFound, "question not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
