// Package observability provides formatted output utilities for the offline
// preview CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/careerdoc/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for preview mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s\n", title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		// Truncate long lines; Korean text needs rune-aware slicing
		if utf8.RuneCountInString(line) > boxWidth-4 {
			line = string([]rune(line)[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %s\n", line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintStructuredJob outputs a human-readable summary of a structured job
// posting.
func (p *Printer) PrintStructuredJob(job *types.StructuredJob) {
	if job == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString("필수요건:\n")
	writeItems(&sb, job.Requirements.Must)
	sb.WriteString("\n우대사항:\n")
	writeItems(&sb, job.Requirements.Preferred)
	sb.WriteString("\n담당업무:\n")
	writeItems(&sb, job.Responsibilities)

	if len(job.Questions) > 0 {
		sb.WriteString("\n자기소개서 문항:\n")
		for _, q := range job.Questions {
			if q.CharLimit != nil {
				sb.WriteString(fmt.Sprintf("  - %s (%d자)\n", q.Title, *q.CharLimit))
			} else {
				sb.WriteString(fmt.Sprintf("  - %s\n", q.Title))
			}
		}
	}
	if job.Confidence == types.ConfidenceLow {
		sb.WriteString("\n(추출 신뢰도 낮음)\n")
	}

	p.printBox("채용공고 구조화 결과", sb.String())
}

// PrintStructuredExperience outputs a human-readable summary of the derived
// fields of one experience.
func (p *Printer) PrintStructuredExperience(exp *types.StructuredExperience) {
	if exp == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("한줄요약:  %s\n", exp.OneLiner))
	sb.WriteString(fmt.Sprintf("역할:      %s\n", exp.RoleLevel))
	sb.WriteString(fmt.Sprintf("리스크:    %s\n", exp.RiskLevel))
	sb.WriteString(fmt.Sprintf("태그:      %s\n", strings.Join(exp.Tags, ", ")))
	sb.WriteString(fmt.Sprintf("키워드:    %s\n", strings.Join(exp.Keywords, ", ")))

	p.printBox("경험 구조화 결과", sb.String())
}

// PrintQCResult outputs the quality-control verdict for a document.
func (p *Printer) PrintQCResult(result *types.QCResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	if result.Pass {
		sb.WriteString("판정: 통과\n")
	} else {
		sb.WriteString("판정: 수정 필요\n")
	}
	sb.WriteString(fmt.Sprintf("글자수: %d자\n", result.CharCountBySection["total"]))

	if len(result.Issues) > 0 {
		sb.WriteString("\n문제점:\n")
		writeItems(&sb, result.Issues)
	}
	if len(result.Suggestions) > 0 {
		sb.WriteString("\n제안:\n")
		writeItems(&sb, result.Suggestions)
	}

	p.printBox("검수 결과", sb.String())
}

// writeItems writes up to maxItemsToShow list items with a trailing count of
// what was omitted.
func writeItems(sb *strings.Builder, items []string) {
	if len(items) == 0 {
		sb.WriteString("  (없음)\n")
		return
	}
	for i, item := range items {
		if i >= maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... 외 %d건\n", len(items)-maxItemsToShow))
			break
		}
		sb.WriteString(fmt.Sprintf("  - %s\n", item))
	}
}
