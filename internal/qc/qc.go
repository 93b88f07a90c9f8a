// Package qc provides the post-synthesis quality-control pass over generated
// documents. It is backend-agnostic: the same checks run regardless of which
// synthesizer produced the text.
package qc

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/careerdoc/internal/types"
)

// minContentChars is the floor below which a document is flagged as too short.
const minContentChars = 100

// confidentialityMarkers flag possibly sensitive content when present verbatim.
var confidentialityMarkers = []string{"비밀", "기밀"}

// Check evaluates content against constraints and returns an itemized result.
// Every rule is evaluated independently; nothing short-circuits. Pass is true
// iff no issue was raised.
func Check(content string, constraints types.QCConstraints) *types.QCResult {
	issues := []string{}
	suggestions := []string{}

	charCount := utf8.RuneCountInString(content)

	if constraints.CharLimit != nil && charCount > *constraints.CharLimit {
		over := charCount - *constraints.CharLimit
		issues = append(issues, fmt.Sprintf("글자수 초과: %d자 / %d자", charCount, *constraints.CharLimit))
		suggestions = append(suggestions, fmt.Sprintf("%d자를 줄여주세요", over))
	}

	for _, keyword := range constraints.RequiredKeywords {
		if !strings.Contains(content, keyword) {
			issues = append(issues, fmt.Sprintf("필수 키워드 누락: %s", keyword))
			suggestions = append(suggestions, fmt.Sprintf("'%s' 관련 내용을 추가해주세요", keyword))
		}
	}

	if charCount < minContentChars {
		issues = append(issues, "내용이 너무 짧습니다")
		suggestions = append(suggestions, "구체적인 경험과 성과를 추가해주세요")
	}

	for _, marker := range confidentialityMarkers {
		if strings.Contains(content, marker) {
			issues = append(issues, "민감정보 포함 가능성")
			suggestions = append(suggestions, "보안 관련 표현을 검토해주세요")
			break
		}
	}

	return &types.QCResult{
		Pass:               len(issues) == 0,
		Issues:             issues,
		Suggestions:        suggestions,
		CharCountBySection: map[string]int{"total": charCount},
	}
}
