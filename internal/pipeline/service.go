// Package pipeline implements the document-generation pipeline: experience
// and job structuring, career-report and cover-letter synthesis, and the
// post-synthesis quality-control pass. Two interchangeable implementations
// are provided: a deterministic rule-based service and a model-backed
// service delegating free-form generation to an llm.Client. The concrete
// implementation is chosen once at construction; call sites never branch on
// backend identity.
package pipeline

import (
	"context"
	"fmt"

	"github.com/jonathan/careerdoc/internal/types"
)

// Default length budgets.
const (
	// DefaultReportMaxChars is the career-report budget applied when the
	// structured job carries no length signal.
	DefaultReportMaxChars = 3000
	// DefaultAnswerLimit is the cover-letter answer budget applied when the
	// question carries no character limit.
	DefaultAnswerLimit = 1000
)

// EmptySelectionAnswer is returned for a cover-letter request with no
// experiences selected, without invoking any generation backend.
const EmptySelectionAnswer = "선택된 경험이 없습니다. 관련 경험을 선택해주세요."

// Service is the document-generation pipeline exposed to the orchestration
// layer. Structuring operations never fail: on backend trouble they degrade
// to a deterministic best-effort result. Synthesis operations surface a
// *GenerationError instead of silently producing a wrong-but-plausible
// document.
type Service interface {
	// StructureExperience derives the one-liner, tags, keywords and
	// role/risk classification for one experience. Never returns an error.
	StructureExperience(ctx context.Context, meta types.ExperienceMeta, rawNotes string) *types.StructuredExperience

	// StructureJob normalizes raw job-posting text. Never returns an error.
	StructureJob(ctx context.Context, rawText string) *types.StructuredJob

	// GenerateCareerReport synthesizes a length-bounded career report from a
	// structured job and the selected experiences. lengthRule overrides the
	// job's own length rules when non-nil.
	GenerateCareerReport(ctx context.Context, job *types.StructuredJob, experiences []types.Experience, lengthRule *types.LengthRule) (*types.CareerReportResult, error)

	// GenerateCoverLetterAnswer synthesizes one length-bounded answer for a
	// cover-letter question. An empty selection returns the fixed
	// placeholder result rather than an error.
	GenerateCoverLetterAnswer(ctx context.Context, question string, experiences []types.Experience, charLimit *int) (*types.CoverLetterAnswerResult, error)

	// QCDocument runs the quality-control pass over synthesized content.
	QCDocument(content string, constraints types.QCConstraints) *types.QCResult
}

// GenerationError reports a failed generation-backend call during synthesis.
// The message is deliberately generic: user notes and job text must never
// leak through error channels.
type GenerationError struct {
	Op    string
	Cause error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed: %s", e.Op)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}
