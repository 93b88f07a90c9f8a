package pipeline

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/careerdoc/internal/qc"
	"github.com/jonathan/careerdoc/internal/textsig"
	"github.com/jonathan/careerdoc/internal/trim"
	"github.com/jonathan/careerdoc/internal/types"
)

// Caps on structured-job list lengths.
const (
	maxRequirements     = 10
	maxResponsibilities = 10
)

// Hard-cut notices per document surface.
const (
	reportCutNotice = "\n\n... (글자수 제한으로 생략)"
	answerCutNotice = "... (글자수 제한)"
)

// placeholderMustRequirement backfills an empty must list. Extraction
// confidence is lowered whenever it is used, since a placeholder can never
// legitimately match an experience's keywords.
const placeholderMustRequirement = "관련 분야 경력 보유자"

// placeholderResponsibility backfills an empty responsibility list.
const placeholderResponsibility = "해당 직무 수행"

var (
	// bulletPrefixPattern matches bulleted or numbered list lines in a
	// job posting.
	bulletPrefixPattern = regexp.MustCompile(`^[-•·▪▸◦\d.]+`)
	// bulletCleanPattern strips the list decoration from a line.
	bulletCleanPattern = regexp.MustCompile(`^[-•·▪▸◦\d.)\s]+`)
	// questionPattern matches cover-letter question announcements like
	// "자기소개서 1. 지원 동기를 기술하시오 (500자 이내)".
	questionPattern = regexp.MustCompile(`(?m)(?:자기소개서|질문|문항).*?(\d+)\s*[.:]?\s*(.+?)(?:\((\d+)자[^)]*\))?$`)
)

// sectionHeaderTerms announce requirement/responsibility sections in Korean
// job postings. Lines that only carry one of these are headers, not content.
var sectionHeaderTerms = []string{
	"필수", "자격요건", "요구사항", "우대", "선호", "담당업무", "주요업무", "업무내용",
}

// RuleService is the deterministic pipeline implementation. It is fully
// reproducible: identical inputs always yield identical outputs, with no
// external calls.
type RuleService struct {
	reportTrimmer *trim.Trimmer
	answerTrimmer *trim.Trimmer
}

// NewRuleService creates the deterministic pipeline service.
func NewRuleService() *RuleService {
	return &RuleService{
		reportTrimmer: trim.New(reportCutNotice),
		answerTrimmer: trim.New(answerCutNotice),
	}
}

var _ Service = (*RuleService)(nil)

// StructureExperience derives all structured fields from the experience text
// alone. Role and risk classification read only the raw notes; the one-liner,
// tags and keywords read the full company+project+notes text.
func (s *RuleService) StructureExperience(_ context.Context, meta types.ExperienceMeta, rawNotes string) *types.StructuredExperience {
	fullText := meta.Company + " " + meta.ProjectName + " " + rawNotes

	return &types.StructuredExperience{
		OneLiner:  textsig.GenerateOneLiner(meta.Company, meta.ProjectName, fullText),
		Tags:      textsig.GenerateTags(meta.Company, fullText),
		Keywords:  textsig.ExtractKeywords(fullText),
		RoleLevel: textsig.DetermineRoleLevel(rawNotes),
		RiskLevel: textsig.DetermineRiskLevel(rawNotes),
	}
}

// StructureJob scans non-empty lines of a job posting. Bulleted lines become
// must requirements (years-of-experience phrasing), preferred requirements
// (우대), or responsibilities; section-header lines are skipped. Cover-letter
// questions with optional character limits are extracted separately.
func (s *RuleService) StructureJob(_ context.Context, rawText string) *types.StructuredJob {
	var must, preferred, responsibilities []string

	for _, line := range strings.Split(rawText, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if !bulletPrefixPattern.MatchString(trimmed) {
			continue
		}

		content := strings.TrimSpace(bulletCleanPattern.ReplaceAllString(trimmed, ""))
		if utf8.RuneCountInString(content) <= 5 || isSectionHeader(content) {
			continue
		}

		switch {
		case strings.Contains(trimmed, "경력") || strings.Contains(trimmed, "년"):
			must = append(must, content)
		case strings.Contains(trimmed, "우대"):
			preferred = append(preferred, content)
		default:
			responsibilities = append(responsibilities, content)
		}
	}

	job := &types.StructuredJob{
		Requirements: types.Requirements{
			Must:      capList(must, maxRequirements),
			Preferred: capList(preferred, maxRequirements),
		},
		Responsibilities: capList(responsibilities, maxResponsibilities),
		Questions:        extractQuestions(rawText),
		LengthRules:      defaultLengthRules(),
		Confidence:       types.ConfidenceNormal,
	}
	ensureWellFormed(job)

	return job
}

// GenerateCareerReport renders the deterministic career report: employer
// blocks in first-seen order, chronological sub-entries, a trimmed plain-text
// body, an untrimmed markdown body, full requirement-to-experience
// traceability and per-experience risk flags.
func (s *RuleService) GenerateCareerReport(_ context.Context, job *types.StructuredJob, experiences []types.Experience, lengthRule *types.LengthRule) (*types.CareerReportResult, error) {
	maxChars := reportBudget(job, lengthRule)
	groups := groupByEmployer(experiences)

	var plain strings.Builder
	plain.WriteString("[경력기술서]\n\n지원분야 요구사항에 맞춰 주요 경력을 기술합니다.\n")

	var md strings.Builder
	md.WriteString("# 경력기술서\n\n지원분야 요구사항에 맞춰 주요 경력을 기술합니다.\n")

	var traceability []types.TraceabilityItem

	for _, group := range groups {
		period := group.period()
		plain.WriteString(fmt.Sprintf("\n\n[%s] (%s)", group.company, period))
		md.WriteString(fmt.Sprintf("\n## %s (%s)\n", group.company, period))

		for _, exp := range group.experiences {
			oneLiner := displayOneLiner(&exp)
			plain.WriteString(fmt.Sprintf("\n\n• %s\n  - %s", exp.ProjectName, oneLiner))
			md.WriteString(fmt.Sprintf("\n### %s\n- %s\n", exp.ProjectName, oneLiner))

			if len(exp.Keywords) > 0 {
				top := strings.Join(topN(exp.Keywords, 4), ", ")
				plain.WriteString("\n  - 핵심역량: " + top)
				md.WriteString("- **핵심역량**: " + top + "\n")
			}

			traceability = append(traceability, matchRequirements(job.Requirements.Must, &exp)...)
		}
	}

	content := s.reportTrimmer.Trim(plain.String(), maxChars)

	return &types.CareerReportResult{
		Content:      content,
		ContentMD:    md.String(),
		CharCount:    utf8.RuneCountInString(content),
		Traceability: traceability,
		RiskFlags:    riskFlagsForReport(experiences),
	}, nil
}

// GenerateCoverLetterAnswer concatenates one sentence per selected experience
// and trims the result to the character limit.
func (s *RuleService) GenerateCoverLetterAnswer(_ context.Context, question string, experiences []types.Experience, charLimit *int) (*types.CoverLetterAnswerResult, error) {
	if len(experiences) == 0 {
		return emptySelectionResult(), nil
	}

	limit := answerBudget(charLimit)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[%s]\n\n", question))

	for _, exp := range experiences {
		oneLiner := strings.TrimPrefix(displayOneLiner(&exp), exp.DisplayCompany()+"에서 ")
		sb.WriteString(fmt.Sprintf("%s에서 %s을 수행하며 %s. ", exp.DisplayCompany(), exp.ProjectName, oneLiner))
		if len(exp.Keywords) > 0 {
			sb.WriteString(fmt.Sprintf("이 과정에서 %s 역량을 쌓았습니다. ", strings.Join(topN(exp.Keywords, 3), ", ")))
		}
		sb.WriteString("\n\n")
	}

	answer := strings.TrimSpace(s.answerTrimmer.Trim(sb.String(), limit))

	return &types.CoverLetterAnswerResult{
		Answer:    answer,
		CharCount: utf8.RuneCountInString(answer),
		RiskFlags: riskFlagsForAnswer(experiences),
	}, nil
}

// QCDocument runs the backend-agnostic quality-control pass.
func (s *RuleService) QCDocument(content string, constraints types.QCConstraints) *types.QCResult {
	return qc.Check(content, constraints)
}

// matchRequirements links every must requirement that textually contains one
// of the experience's keywords or tags to that experience. Matching is
// lexical and many-to-many; pairs are not deduplicated across requirements.
func matchRequirements(must []string, exp *types.Experience) []types.TraceabilityItem {
	var items []types.TraceabilityItem
	for _, req := range must {
		if containsAnyOf(req, exp.Keywords) || containsAnyOf(req, exp.Tags) {
			items = append(items, types.TraceabilityItem{
				Requirement:       req,
				ExperienceID:      exp.ID,
				ExperienceSummary: exp.OneLiner,
			})
		}
	}
	return items
}

func containsAnyOf(text string, terms []string) bool {
	for _, term := range terms {
		if term != "" && strings.Contains(text, term) {
			return true
		}
	}
	return false
}

// isSectionHeader reports whether a cleaned line only announces a section
// (e.g. "자격요건", "[우대사항]") rather than carrying content of its own.
func isSectionHeader(content string) bool {
	for _, term := range sectionHeaderTerms {
		if strings.Contains(content, term) &&
			utf8.RuneCountInString(content) <= utf8.RuneCountInString(term)+6 {
			return true
		}
	}
	return false
}

// extractQuestions scans for cover-letter question announcements.
func extractQuestions(rawText string) []types.QuestionSeed {
	var questions []types.QuestionSeed
	for _, m := range questionPattern.FindAllStringSubmatch(rawText, -1) {
		title := strings.TrimSpace(m[2])
		if title == "" {
			continue
		}
		seed := types.QuestionSeed{Title: title}
		if m[3] != "" {
			if limit, err := strconv.Atoi(m[3]); err == nil {
				seed.CharLimit = &limit
			}
		}
		questions = append(questions, seed)
	}
	return questions
}

// ensureWellFormed backfills empty requirement/responsibility lists with
// placeholders and lowers the extraction confidence when it does.
func ensureWellFormed(job *types.StructuredJob) {
	if len(job.Requirements.Must) == 0 {
		job.Requirements.Must = []string{placeholderMustRequirement}
		job.Confidence = types.ConfidenceLow
	}
	if job.Requirements.Preferred == nil {
		job.Requirements.Preferred = []string{}
	}
	if len(job.Responsibilities) == 0 {
		job.Responsibilities = []string{placeholderResponsibility}
	}
}

func defaultLengthRules() *types.LengthRule {
	maxChars := DefaultReportMaxChars
	return &types.LengthRule{MaxChars: &maxChars}
}

// reportBudget resolves the career-report character budget: explicit override
// first, then the job's own rules, then the default.
func reportBudget(job *types.StructuredJob, override *types.LengthRule) int {
	if override != nil {
		return override.MaxCharsOr(DefaultReportMaxChars)
	}
	if job != nil {
		return job.LengthRules.MaxCharsOr(DefaultReportMaxChars)
	}
	return DefaultReportMaxChars
}

func answerBudget(charLimit *int) int {
	if charLimit != nil && *charLimit > 0 {
		return *charLimit
	}
	return DefaultAnswerLimit
}

func emptySelectionResult() *types.CoverLetterAnswerResult {
	return &types.CoverLetterAnswerResult{
		Answer:    EmptySelectionAnswer,
		CharCount: 0,
		RiskFlags: []string{},
	}
}

func capList(list []string, limit int) []string {
	if list == nil {
		return []string{}
	}
	if len(list) > limit {
		return list[:limit]
	}
	return list
}
