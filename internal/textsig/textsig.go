// Package textsig provides deterministic text-signal extraction over free-form
// experience and job text: role/risk classification, keyword and tag
// extraction, and one-liner summaries. All functions are pure and total over
// any input, including the empty string.
package textsig

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/careerdoc/internal/types"
)

// Maximum sizes for derived lists.
const (
	MaxKeywords = 8
	MaxTags     = 5
	maxMetrics  = 3
)

// Role indicator vocabularies, checked in priority order. The first category
// with any match wins; ties are never broken by match count.
var (
	leadTerms    = []string{"총괄", "책임", "PM", "PL", "팀장", "리드", "주도"}
	partialTerms = []string{"담당", "설계", "개발", "구현", "주관"}
	operateTerms = []string{"운영", "관리", "유지보수", "모니터링"}
)

// Risk indicator vocabularies.
var (
	highRiskTerms   = []string{"비밀", "기밀", "NDA", "보안", "특허", "미공개", "대외비"}
	mediumRiskTerms = []string{"내부", "고객사", "프로젝트명", "코드명"}
)

// techTerms is the fixed domain vocabulary matched case-insensitively for
// keyword extraction.
var techTerms = []string{
	"PLC", "SCADA", "HMI", "전기설계", "회로설계", "PCB", "CAD", "AutoCAD",
	"SolidWorks", "CATIA", "3D모델링", "공정설계", "품질관리", "QC", "QA",
	"시운전", "유지보수", "설비관리", "자동화", "PID", "계장", "제어시스템",
	"반도체", "디스플레이", "배터리", "전력", "송전", "배전", "신재생에너지",
	"태양광", "풍력", "ESS", "화학공정", "촉매", "반응기", "증류", "정제",
	"열역학", "유체역학", "구조해석", "FEM", "FEA", "CFD", "진동분석",
	"기계설계", "금형", "사출", "프레스", "용접", "ISO", "KS", "ASME",
	"API", "HAZOP", "P&ID", "DCS", "MES", "ERP", "SAP",
}

// industryTags maps industry keywords to their tag, in a fixed match order.
var industryTags = []struct {
	keyword string
	tag     string
}{
	{"반도체", "반도체"},
	{"디스플레이", "디스플레이"},
	{"배터리", "에너지저장"},
	{"자동차", "자동차"},
	{"조선", "조선해양"},
	{"플랜트", "플랜트"},
	{"화학", "화학공정"},
	{"전력", "전력시스템"},
	{"건설", "건설"},
	{"제조", "제조업"},
}

// roleLabels maps a role level to its Korean one-liner label.
var roleLabels = map[types.RoleLevel]string{
	types.RoleLead:    "총괄",
	types.RolePartial: "담당",
	types.RoleOperate: "운영",
	types.RoleCollab:  "참여",
}

var (
	// metricPattern matches quantified results with units (percentages,
	// currency-scale words, physical units).
	metricPattern = regexp.MustCompile(`\d+(?:\.\d+)?\s?(?:%|억|만|kW|MW|kg|ton|m²|㎡)`)
	// headlineMetricPattern is the narrower subset used in one-liners.
	headlineMetricPattern = regexp.MustCompile(`\d+(?:\.\d+)?\s?(?:%|억|만)`)
)

// DetermineRoleLevel classifies text into a role level. Categories are checked
// in priority order lead > partial > operate and short-circuit on the first
// category containing any matching term; collab is the default.
func DetermineRoleLevel(text string) types.RoleLevel {
	if containsAny(text, leadTerms) {
		return types.RoleLead
	}
	if containsAny(text, partialTerms) {
		return types.RolePartial
	}
	if containsAny(text, operateTerms) {
		return types.RoleOperate
	}
	return types.RoleCollab
}

// DetermineRiskLevel classifies how likely text contains sensitive or
// confidential material.
func DetermineRiskLevel(text string) types.RiskLevel {
	if containsAny(text, highRiskTerms) {
		return types.RiskRed
	}
	if containsAny(text, mediumRiskTerms) {
		return types.RiskYellow
	}
	return types.RiskGreen
}

// ExtractKeywords returns up to MaxKeywords deduplicated keywords: domain
// vocabulary terms found in text (case-insensitive substring match) plus up
// to three quantified-metric tokens.
func ExtractKeywords(text string) []string {
	textLower := strings.ToLower(text)

	var found []string
	for _, term := range techTerms {
		if strings.Contains(textLower, strings.ToLower(term)) {
			found = append(found, term)
		}
	}

	metrics := metricPattern.FindAllString(text, -1)
	if len(metrics) > maxMetrics {
		metrics = metrics[:maxMetrics]
	}
	found = append(found, metrics...)

	return dedupe(found, MaxKeywords)
}

// GenerateTags derives up to MaxTags deduplicated tags from project text and
// the employer name: industry tags, a PM/PL tag for lead roles, and activity
// tags for design/construction/operation work.
func GenerateTags(company, text string) []string {
	var tags []string

	for _, it := range industryTags {
		if strings.Contains(text, it.keyword) || strings.Contains(company, it.keyword) {
			tags = append(tags, it.tag)
		}
	}

	if DetermineRoleLevel(text) == types.RoleLead {
		tags = append(tags, "PM/PL")
	}
	if strings.Contains(text, "설계") {
		tags = append(tags, "설계")
	}
	if strings.Contains(text, "시공") || strings.Contains(text, "시운전") {
		tags = append(tags, "시공")
	}
	if strings.Contains(text, "유지보수") || strings.Contains(text, "운영") {
		tags = append(tags, "운영")
	}

	return dedupe(tags, MaxTags)
}

// GenerateOneLiner builds the single-sentence summary
// "{company}에서 {project} {role-label}", appending the first quantified
// result found in text as a parenthetical when present.
func GenerateOneLiner(company, project, text string) string {
	label := RoleLabel(DetermineRoleLevel(text))

	result := ""
	if m := headlineMetricPattern.FindString(text); m != "" {
		result = fmt.Sprintf(" (%s 달성)", m)
	}

	return fmt.Sprintf("%s에서 %s %s%s", company, project, label, result)
}

// RoleLabel returns the Korean label for a role level.
func RoleLabel(level types.RoleLevel) string {
	if label, ok := roleLabels[level]; ok {
		return label
	}
	return roleLabels[types.RoleCollab]
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

func dedupe(items []string, limit int) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
		if len(out) == limit {
			break
		}
	}
	return out
}
