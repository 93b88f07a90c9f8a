// Package server provides the HTTP REST API for the careerdoc builder.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/careerdoc/internal/pipeline"
	"github.com/jonathan/careerdoc/internal/types"
)

// experienceRequest is the create/update request body for an experience.
// Derived fields are never accepted from the client; they are recomputed
// from the raw fields on every write.
type experienceRequest struct {
	StartMonth        string                  `json:"start_month" validate:"required,datetime=2006-01"`
	EndMonth          *string                 `json:"end_month,omitempty" validate:"omitempty,datetime=2006-01"`
	Ongoing           bool                    `json:"ongoing"`
	Company           string                  `json:"company" validate:"required"`
	CompanyVisibility types.CompanyVisibility `json:"company_visibility" validate:"omitempty,oneof=public private"`
	ProjectName       string                  `json:"project_name" validate:"required"`
	RawNotes          string                  `json:"raw_notes" validate:"required,min=10"`
}

// toExperience builds an Experience from the request with freshly derived
// fields.
func (s *Server) toExperience(r *http.Request, req *experienceRequest) *types.Experience {
	visibility := req.CompanyVisibility
	if visibility == "" {
		visibility = types.VisibilityPublic
	}

	exp := &types.Experience{
		StartMonth:        req.StartMonth,
		EndMonth:          req.EndMonth,
		Ongoing:           req.Ongoing,
		Company:           req.Company,
		CompanyVisibility: visibility,
		ProjectName:       req.ProjectName,
		RawNotes:          req.RawNotes,
	}

	meta := types.ExperienceMeta{
		StartMonth:  req.StartMonth,
		EndMonth:    req.EndMonth,
		Ongoing:     req.Ongoing,
		Company:     req.Company,
		ProjectName: req.ProjectName,
	}
	structured := s.pipeline.StructureExperience(r.Context(), meta, req.RawNotes)
	exp.OneLiner = structured.OneLiner
	exp.Tags = structured.Tags
	exp.Keywords = structured.Keywords
	exp.RoleLevel = structured.RoleLevel
	exp.RiskLevel = structured.RiskLevel
	return exp
}

// handleCreateExperience creates an experience with derived fields computed
// by the structuring pipeline.
func (s *Server) handleCreateExperience(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	var req experienceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, firstValidationError(err))
		return
	}

	exp := s.toExperience(r, &req)
	exp.UserID = userID

	created, err := s.store.CreateExperience(r.Context(), exp)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to create experience")
		return
	}
	s.jsonResponse(w, http.StatusCreated, created)
}

// handleListExperiences returns the user's experiences, newest first.
func (s *Server) handleListExperiences(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	experiences, err := s.store.ListExperiences(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to list experiences")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"experiences": experiences})
}

// handleGetExperience returns one experience owned by the user.
func (s *Server) handleGetExperience(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid experience id")
		return
	}

	exp, err := s.store.GetExperience(r.Context(), userID, id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to get experience")
		return
	}
	if exp == nil {
		s.errorResponse(w, http.StatusNotFound, "experience not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, exp)
}

// handleUpdateExperience replaces the raw fields of an experience and
// recomputes the derived fields as a unit.
func (s *Server) handleUpdateExperience(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid experience id")
		return
	}

	var req experienceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, firstValidationError(err))
		return
	}

	exp := s.toExperience(r, &req)
	exp.ID = id
	exp.UserID = userID

	updated, err := s.store.UpdateExperience(r.Context(), userID, exp)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to update experience")
		return
	}
	if updated == nil {
		s.errorResponse(w, http.StatusNotFound, "experience not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, updated)
}

// handleDeleteExperience deletes one experience owned by the user.
func (s *Server) handleDeleteExperience(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid experience id")
		return
	}

	deleted, err := s.store.DeleteExperience(r.Context(), userID, id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to delete experience")
		return
	}
	if !deleted {
		s.errorResponse(w, http.StatusNotFound, "experience not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleRestructureExperiences recomputes the derived fields of every
// experience the user owns, with bounded concurrency.
func (s *Server) handleRestructureExperiences(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	experiences, err := s.store.ListExperiences(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to list experiences")
		return
	}

	results, err := pipeline.StructureAll(r.Context(), s.pipeline, experiences)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to restructure experiences")
		return
	}

	for i := range experiences {
		if err := s.store.UpdateExperienceDerived(r.Context(), userID, experiences[i].ID, &results[i]); err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "failed to store restructured experience")
			return
		}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"restructured": len(experiences)})
}
