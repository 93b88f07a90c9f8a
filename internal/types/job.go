//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/google/uuid"
)

// JobSourceType records how a job posting entered the system.
type JobSourceType string

// JobSourceType values.
const (
	JobSourceSaved JobSourceType = "saved"
	JobSourceSite  JobSourceType = "site"
	JobSourceURL   JobSourceType = "url"
	JobSourcePaste JobSourceType = "paste"
)

// ExtractionConfidence signals how trustworthy a structured-job extraction is.
type ExtractionConfidence string

// ExtractionConfidence values. Low means the must-requirement list had to be
// backfilled with a placeholder, so traceability against it is unreliable.
const (
	ConfidenceNormal ExtractionConfidence = "normal"
	ConfidenceLow    ExtractionConfidence = "low"
)

// Job represents a stored job posting with its optional structured form.
type Job struct {
	ID         uuid.UUID     `json:"id"`
	UserID     uuid.UUID     `json:"user_id"`
	SourceType JobSourceType `json:"source_type"`
	Title      string        `json:"title"`
	Company    string        `json:"company"`
	URL        *string       `json:"url,omitempty"`
	RawText    string        `json:"raw_text"`
	Structured *StructuredJob `json:"structured,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
}

// Requirements holds the required and preferred qualification lists of a job.
type Requirements struct {
	Must      []string `json:"must"`
	Preferred []string `json:"preferred"`
}

// QuestionSeed is a cover-letter question extracted from a job posting.
type QuestionSeed struct {
	Title     string `json:"title"`
	CharLimit *int   `json:"char_limit,omitempty"`
}

// LengthRule constrains the length of a synthesized document.
type LengthRule struct {
	MinChars  *int `json:"min_chars,omitempty"`
	MaxChars  *int `json:"max_chars,omitempty"`
	PageLimit *int `json:"page_limit,omitempty"`
}

// MaxCharsOr returns the max-chars limit, or def when the rule carries none.
func (r *LengthRule) MaxCharsOr(def int) int {
	if r == nil || r.MaxChars == nil || *r.MaxChars <= 0 {
		return def
	}
	return *r.MaxChars
}

// StructuredJob is the normalized form of a job posting.
// In a well-formed value Requirements.Must is never empty; when extraction
// finds nothing a placeholder requirement is substituted and Confidence is
// set to low.
type StructuredJob struct {
	Requirements     Requirements         `json:"requirements"`
	Responsibilities []string             `json:"responsibilities"`
	Questions        []QuestionSeed       `json:"questions,omitempty"`
	LengthRules      *LengthRule          `json:"length_rules,omitempty"`
	Confidence       ExtractionConfidence `json:"confidence,omitempty"`
}

// JobQuestion is a persisted cover-letter question attached to a job.
type JobQuestion struct {
	ID            uuid.UUID `json:"id"`
	JobID         uuid.UUID `json:"job_id"`
	UserID        uuid.UUID `json:"user_id"`
	QuestionTitle string    `json:"question_title"`
	CharLimit     *int      `json:"char_limit,omitempty"`
	OrderIdx      int       `json:"order_idx"`
}
