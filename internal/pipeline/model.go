package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/careerdoc/internal/llm"
	"github.com/jonathan/careerdoc/internal/prompts"
	"github.com/jonathan/careerdoc/internal/qc"
	"github.com/jonathan/careerdoc/internal/schemas"
	"github.com/jonathan/careerdoc/internal/textsig"
	"github.com/jonathan/careerdoc/internal/trim"
	"github.com/jonathan/careerdoc/internal/types"
)

// jobContextChars caps how much job-posting text is submitted for structuring.
const jobContextChars = 3000

// answerMinTargetRatio is the lower bound, as a fraction of the limit, the
// model is instructed to hit for cover-letter answers.
const answerMinTargetRatio = 0.9

// ModelService is the generation-backed pipeline implementation. Free-form
// summarization and synthesis are delegated to the injected llm.Client;
// role/risk classification and risk flags always come from textsig, and
// oversized model output is trimmed as a safety net since the model is not
// trusted to obey limits exactly.
type ModelService struct {
	client        llm.Client
	reportTrimmer *trim.Trimmer
	answerTrimmer *trim.Trimmer
}

// NewModelService creates a pipeline service backed by a generation client.
func NewModelService(client llm.Client) *ModelService {
	return &ModelService{
		client:        client,
		reportTrimmer: trim.New(reportCutNotice),
		answerTrimmer: trim.New(answerCutNotice),
	}
}

var _ Service = (*ModelService)(nil)

// structuredExperienceResponse is the JSON shape requested from the model for
// experience structuring.
type structuredExperienceResponse struct {
	OneLiner string   `json:"one_liner"`
	Tags     []string `json:"tags"`
	Keywords []string `json:"keywords"`
}

// StructureExperience asks the model for a one-liner, tags and keywords.
// Classification is never delegated: role and risk levels always come from
// textsig over the raw notes. Backend failure or an unparsable response
// degrades to a deterministic fallback; the caller never sees an error.
func (s *ModelService) StructureExperience(ctx context.Context, meta types.ExperienceMeta, rawNotes string) *types.StructuredExperience {
	result := &types.StructuredExperience{
		OneLiner:  fmt.Sprintf("%s에서 %s 수행", meta.Company, meta.ProjectName),
		Tags:      []string{},
		Keywords:  []string{},
		RoleLevel: textsig.DetermineRoleLevel(rawNotes),
		RiskLevel: textsig.DetermineRiskLevel(rawNotes),
	}

	system := prompts.MustGet("structuring.json", "experience-system")
	user := prompts.Format(prompts.MustGet("structuring.json", "experience-user"), map[string]string{
		"Company":     meta.Company,
		"ProjectName": meta.ProjectName,
		"Period":      periodText(meta),
		"RawNotes":    rawNotes,
	})

	response, err := s.client.GenerateText(ctx, system, user)
	if err != nil {
		return result
	}

	jsonText := llm.ExtractJSONObject(llm.CleanJSONBlock(response))
	if jsonText == "" {
		return result
	}

	var parsed structuredExperienceResponse
	if err := json.Unmarshal([]byte(jsonText), &parsed); err != nil {
		return result
	}

	if parsed.OneLiner != "" {
		result.OneLiner = parsed.OneLiner
	}
	if parsed.Tags != nil {
		result.Tags = capList(parsed.Tags, textsig.MaxTags)
	}
	if parsed.Keywords != nil {
		result.Keywords = capList(parsed.Keywords, textsig.MaxKeywords)
	}

	return result
}

// StructureJob asks the model for a structured job in strict JSON, validating
// the response against the structured-job schema before accepting it. Any
// failure falls back to an empty-but-well-formed structured job with the
// default length rule and low extraction confidence.
func (s *ModelService) StructureJob(ctx context.Context, rawText string) *types.StructuredJob {
	fallback := &types.StructuredJob{
		Requirements:     types.Requirements{Must: []string{}, Preferred: []string{}},
		Responsibilities: []string{},
		LengthRules:      defaultLengthRules(),
	}

	system := prompts.MustGet("structuring.json", "job-system")
	user := prompts.Format(prompts.MustGet("structuring.json", "job-user"), map[string]string{
		"RawText": truncateRunes(rawText, jobContextChars),
	})

	response, err := s.client.GenerateText(ctx, system, user)
	if err != nil {
		ensureWellFormed(fallback)
		return fallback
	}

	jsonText := llm.ExtractJSONObject(llm.CleanJSONBlock(response))
	if jsonText == "" || schemas.ValidateStructuredJob(jsonText) != nil {
		ensureWellFormed(fallback)
		return fallback
	}

	var job types.StructuredJob
	if err := json.Unmarshal([]byte(jsonText), &job); err != nil {
		ensureWellFormed(fallback)
		return fallback
	}

	job.Requirements.Must = capList(job.Requirements.Must, maxRequirements)
	job.Requirements.Preferred = capList(job.Requirements.Preferred, maxRequirements)
	job.Responsibilities = capList(job.Responsibilities, maxResponsibilities)
	job.LengthRules = defaultLengthRules()
	job.Confidence = types.ConfidenceNormal
	ensureWellFormed(&job)

	return &job
}

// GenerateCareerReport issues one generation request carrying the job's
// requirement text and the selected experiences' detail text. The model's
// output is trimmed to the budget as a safety net. Risk flags are computed
// exactly as in the deterministic path; traceability links each experience
// to the first must requirement for transparency rather than accuracy.
func (s *ModelService) GenerateCareerReport(ctx context.Context, job *types.StructuredJob, experiences []types.Experience, lengthRule *types.LengthRule) (*types.CareerReportResult, error) {
	maxChars := reportBudget(job, lengthRule)

	data := map[string]string{
		"MaxChars":     fmt.Sprintf("%d", maxChars),
		"Requirements": requirementsText(job),
		"Experiences":  experienceDetailText(experiences),
	}
	system := prompts.Format(prompts.MustGet("synthesis.json", "report-system"), data)
	user := prompts.Format(prompts.MustGet("synthesis.json", "report-user"), data)

	response, err := s.client.GenerateText(ctx, system, user)
	if err != nil {
		return nil, &GenerationError{Op: "career report", Cause: err}
	}

	content := s.reportTrimmer.Trim(strings.TrimSpace(response), maxChars)

	traceability := make([]types.TraceabilityItem, 0, len(experiences))
	firstMust := placeholderMustRequirement
	if len(job.Requirements.Must) > 0 {
		firstMust = job.Requirements.Must[0]
	}
	for _, exp := range experiences {
		traceability = append(traceability, types.TraceabilityItem{
			Requirement:       firstMust,
			ExperienceID:      exp.ID,
			ExperienceSummary: exp.OneLiner,
		})
	}

	return &types.CareerReportResult{
		Content:      content,
		ContentMD:    content,
		CharCount:    utf8.RuneCountInString(content),
		Traceability: traceability,
		RiskFlags:    riskFlagsForReport(experiences),
	}, nil
}

// GenerateCoverLetterAnswer issues one generation request instructing the
// model to land between 90% and 100% of the character limit, then trims the
// response to the limit.
func (s *ModelService) GenerateCoverLetterAnswer(ctx context.Context, question string, experiences []types.Experience, charLimit *int) (*types.CoverLetterAnswerResult, error) {
	if len(experiences) == 0 {
		return emptySelectionResult(), nil
	}

	limit := answerBudget(charLimit)

	data := map[string]string{
		"Question":    question,
		"Limit":       fmt.Sprintf("%d", limit),
		"MinTarget":   fmt.Sprintf("%d", int(float64(limit)*answerMinTargetRatio)),
		"Experiences": experienceDetailText(experiences),
	}
	system := prompts.Format(prompts.MustGet("synthesis.json", "answer-system"), data)
	user := prompts.Format(prompts.MustGet("synthesis.json", "answer-user"), data)

	response, err := s.client.GenerateText(ctx, system, user)
	if err != nil {
		return nil, &GenerationError{Op: "cover letter answer", Cause: err}
	}

	answer := strings.TrimSpace(s.answerTrimmer.Trim(strings.TrimSpace(response), limit))

	return &types.CoverLetterAnswerResult{
		Answer:    answer,
		CharCount: utf8.RuneCountInString(answer),
		RiskFlags: riskFlagsForAnswer(experiences),
	}, nil
}

// QCDocument runs the backend-agnostic quality-control pass.
func (s *ModelService) QCDocument(content string, constraints types.QCConstraints) *types.QCResult {
	return qc.Check(content, constraints)
}

// periodText renders the experience time range for prompts.
func periodText(meta types.ExperienceMeta) string {
	end := ""
	switch {
	case meta.EndMonth != nil && *meta.EndMonth != "":
		end = *meta.EndMonth
	case meta.Ongoing:
		end = "현재"
	}
	return meta.StartMonth + " ~ " + end
}

// requirementsText flattens structured-job lists for the report prompt.
func requirementsText(job *types.StructuredJob) string {
	return fmt.Sprintf("필수요건: %s\n우대사항: %s\n담당업무: %s",
		strings.Join(job.Requirements.Must, ", "),
		strings.Join(job.Requirements.Preferred, ", "),
		strings.Join(job.Responsibilities, ", "))
}

// experienceDetailText renders the selected experiences, raw notes included,
// for synthesis prompts. Employer names respect the visibility flag.
func experienceDetailText(experiences []types.Experience) string {
	blocks := make([]string, 0, len(experiences))
	for _, exp := range experiences {
		blocks = append(blocks, fmt.Sprintf(
			"[%s] %s\n- 기간: %s\n- 역할: %s\n- 핵심역량: %s\n- 상세: %s",
			exp.DisplayCompany(), exp.ProjectName,
			experiencePeriod(&exp),
			displayOneLiner(&exp),
			strings.Join(exp.Keywords, ", "),
			exp.RawNotes,
		))
	}
	return strings.Join(blocks, "\n---\n")
}

func experiencePeriod(exp *types.Experience) string {
	end := ""
	switch {
	case exp.EndMonth != nil && *exp.EndMonth != "":
		end = *exp.EndMonth
	case exp.Ongoing:
		end = "현재"
	}
	return exp.StartMonth + " ~ " + end
}

func truncateRunes(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
