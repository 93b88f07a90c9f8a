package pipeline

import (
	"sort"
	"strings"

	"github.com/jonathan/careerdoc/internal/types"
)

// employerGroup is one employer block of a career report.
type employerGroup struct {
	company     string // display name, already visibility-masked
	experiences []types.Experience
}

// groupByEmployer groups experiences by employer in insertion order of the
// first-seen experience, sorting each group chronologically by start month.
// Grouping keys on the real employer name; the display name is masked for
// private experiences.
func groupByEmployer(experiences []types.Experience) []employerGroup {
	index := make(map[string]int)
	var groups []employerGroup

	for _, exp := range experiences {
		i, seen := index[exp.Company]
		if !seen {
			i = len(groups)
			index[exp.Company] = i
			groups = append(groups, employerGroup{company: exp.DisplayCompany()})
		}
		groups[i].experiences = append(groups[i].experiences, exp)
	}

	for i := range groups {
		sort.SliceStable(groups[i].experiences, func(a, b int) bool {
			return groups[i].experiences[a].StartMonth < groups[i].experiences[b].StartMonth
		})
	}

	return groups
}

// period renders the covered time range of a group: earliest start to the
// chronologically-last experience's end, or "현재" when that experience is
// ongoing or has no end month.
func (g *employerGroup) period() string {
	first := g.experiences[0]
	last := g.experiences[len(g.experiences)-1]

	end := "현재"
	if !last.Ongoing && last.EndMonth != nil && *last.EndMonth != "" {
		end = *last.EndMonth
	}

	return first.StartMonth + " ~ " + end
}

// displayOneLiner returns the experience one-liner with the employer name
// masked when the experience hides its employer.
func displayOneLiner(exp *types.Experience) string {
	if exp.CompanyVisibility == types.VisibilityPrivate && exp.Company != "" {
		return strings.ReplaceAll(exp.OneLiner, exp.Company, exp.DisplayCompany())
	}
	return exp.OneLiner
}

// riskFlagsForReport emits one career-report warning line per experience
// whose risk level is not green, in input order.
func riskFlagsForReport(experiences []types.Experience) []string {
	flags := []string{}
	for _, exp := range experiences {
		switch exp.RiskLevel {
		case types.RiskRed:
			flags = append(flags, "[주의] "+exp.ProjectName+": 민감정보 포함 가능")
		case types.RiskYellow:
			flags = append(flags, "[확인필요] "+exp.ProjectName+": 내부정보 확인 필요")
		}
	}
	return flags
}

// riskFlagsForAnswer emits one cover-letter review line per non-green
// experience. The cover-letter surface uses its own, single-bucket wording.
func riskFlagsForAnswer(experiences []types.Experience) []string {
	flags := []string{}
	for _, exp := range experiences {
		if exp.RiskLevel == types.RiskGreen {
			continue
		}
		label := "확인"
		if exp.RiskLevel == types.RiskRed {
			label = "주의"
		}
		flags = append(flags, "["+label+"] "+exp.ProjectName+" 관련 내용 검토 필요")
	}
	return flags
}

// topN returns the first n items of list, or the whole list when shorter.
func topN(list []string, n int) []string {
	if len(list) <= n {
		return list
	}
	return list[:n]
}
