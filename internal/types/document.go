//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/google/uuid"
)

// DocumentType distinguishes the two synthesized document surfaces.
type DocumentType string

// DocumentType values.
const (
	DocCareerReport DocumentType = "career_report"
	DocCoverLetter  DocumentType = "cover_letter"
)

// TraceabilityItem links one job requirement to one experience claimed to satisfy it.
type TraceabilityItem struct {
	Requirement       string    `json:"requirement"`
	ExperienceID      uuid.UUID `json:"experience_id"`
	ExperienceSummary string    `json:"experience_summary"`
}

// CareerReportResult is the transient output of career-report synthesis.
// Content is the normative, length-bounded rendering; ContentMD is a markdown
// rendering of the same material and is not separately length-checked.
type CareerReportResult struct {
	Content      string             `json:"content"`
	ContentMD    string             `json:"content_md"`
	CharCount    int                `json:"char_count"`
	Traceability []TraceabilityItem `json:"traceability"`
	RiskFlags    []string           `json:"risk_flags"`
}

// CoverLetterAnswerResult is the transient output of cover-letter answer synthesis.
type CoverLetterAnswerResult struct {
	Answer    string   `json:"answer"`
	CharCount int      `json:"char_count"`
	RiskFlags []string `json:"risk_flags"`
}

// DocumentMeta is the metadata persisted alongside a saved document.
type DocumentMeta struct {
	CharCount    int                `json:"char_count"`
	Traceability []TraceabilityItem `json:"traceability,omitempty"`
	RiskFlags    []string           `json:"risk_flags,omitempty"`
}

// Document is a synthesized result the user explicitly saved.
type Document struct {
	ID        uuid.UUID    `json:"id"`
	UserID    uuid.UUID    `json:"user_id"`
	JobID     uuid.UUID    `json:"job_id"`
	DocType   DocumentType `json:"doc_type"`
	Content   string       `json:"content"`
	ContentMD string       `json:"content_md"`
	Meta      DocumentMeta `json:"meta"`
	CreatedAt time.Time    `json:"created_at"`
}
