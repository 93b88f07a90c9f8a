// Package types provides type definitions for structured data used throughout the careerdoc system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/google/uuid"
)

// RoleLevel classifies how central the user's role was in an experience.
type RoleLevel string

// RoleLevel values, in matching priority order.
const (
	RoleLead    RoleLevel = "lead"
	RolePartial RoleLevel = "partial"
	RoleOperate RoleLevel = "operate"
	RoleCollab  RoleLevel = "collab"
)

// Valid reports whether the role level is one of the four known values.
func (r RoleLevel) Valid() bool {
	switch r {
	case RoleLead, RolePartial, RoleOperate, RoleCollab:
		return true
	}
	return false
}

// RiskLevel classifies how likely an experience text contains sensitive material.
type RiskLevel string

// RiskLevel values.
const (
	RiskGreen  RiskLevel = "green"
	RiskYellow RiskLevel = "yellow"
	RiskRed    RiskLevel = "red"
)

// Valid reports whether the risk level is one of the three known values.
func (r RiskLevel) Valid() bool {
	switch r {
	case RiskGreen, RiskYellow, RiskRed:
		return true
	}
	return false
}

// CompanyVisibility controls whether the employer name may appear in rendered documents.
type CompanyVisibility string

// CompanyVisibility values.
const (
	VisibilityPublic  CompanyVisibility = "public"
	VisibilityPrivate CompanyVisibility = "private"
)

// Experience represents one user-authored project/role record at one employer.
// The derived fields (OneLiner, Tags, Keywords, RoleLevel, RiskLevel) are never
// edited directly; they are recomputed as a unit from Company, ProjectName and
// RawNotes whenever any of those change.
type Experience struct {
	ID                uuid.UUID         `json:"id"`
	UserID            uuid.UUID         `json:"user_id"`
	StartMonth        string            `json:"start_month"` // YYYY-MM
	EndMonth          *string           `json:"end_month,omitempty"`
	Ongoing           bool              `json:"ongoing"`
	Company           string            `json:"company"`
	CompanyVisibility CompanyVisibility `json:"company_visibility"`
	ProjectName       string            `json:"project_name"`
	RawNotes          string            `json:"raw_notes"`
	OneLiner          string            `json:"one_liner"`
	Tags              []string          `json:"tags"`
	Keywords          []string          `json:"keywords"`
	RoleLevel         RoleLevel         `json:"role_level"`
	RiskLevel         RiskLevel         `json:"risk_level"`
	CreatedAt         time.Time         `json:"created_at"`
}

// DisplayCompany returns the employer name, or a neutral placeholder when the
// experience hides its employer from rendered documents.
func (e *Experience) DisplayCompany() string {
	if e.CompanyVisibility == VisibilityPrivate {
		return "비공개 기업"
	}
	return e.Company
}

// ExperienceMeta carries the user-entered metadata of an experience into structuring.
type ExperienceMeta struct {
	StartMonth  string  `json:"start_month"`
	EndMonth    *string `json:"end_month,omitempty"`
	Ongoing     bool    `json:"ongoing"`
	Company     string  `json:"company"`
	ProjectName string  `json:"project_name"`
}

// StructuredExperience is the derived-fields unit produced by experience structuring.
type StructuredExperience struct {
	OneLiner  string    `json:"one_liner"`
	Tags      []string  `json:"tags"`
	Keywords  []string  `json:"keywords"`
	RoleLevel RoleLevel `json:"role_level"`
	RiskLevel RiskLevel `json:"risk_level"`
}
