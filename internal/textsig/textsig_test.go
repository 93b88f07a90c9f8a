package textsig

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/careerdoc/internal/types"
)

func TestDetermineRoleLevel_LeadWinsOverOperate(t *testing.T) {
	// 리드 matches lead, 유지보수-style terms would match operate; lead is
	// checked first and short-circuits.
	level := DetermineRoleLevel("프로젝트 총괄 및 팀 리드, 설비 운영 지원")
	assert.Equal(t, types.RoleLead, level)
}

func TestDetermineRoleLevel_OperateWithoutHigherSignals(t *testing.T) {
	level := DetermineRoleLevel("유지보수 및 모니터링 수행")
	assert.Equal(t, types.RoleOperate, level)
}

func TestDetermineRoleLevel_PartialBeatsOperate(t *testing.T) {
	level := DetermineRoleLevel("회로 설계 및 설비 운영")
	assert.Equal(t, types.RolePartial, level)
}

func TestDetermineRoleLevel_DefaultsToCollab(t *testing.T) {
	assert.Equal(t, types.RoleCollab, DetermineRoleLevel("현장 지원 업무"))
	assert.Equal(t, types.RoleCollab, DetermineRoleLevel(""))
}

func TestDetermineRoleLevel_Deterministic(t *testing.T) {
	text := "공정 개선 프로젝트 담당"
	first := DetermineRoleLevel(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, DetermineRoleLevel(text))
	}
}

func TestDetermineRiskLevel_RedOnConfidentialTerms(t *testing.T) {
	assert.Equal(t, types.RiskRed, DetermineRiskLevel("대외비 문서 기반 설계 진행"))
	assert.Equal(t, types.RiskRed, DetermineRiskLevel("NDA 체결 후 진행한 과제"))
}

func TestDetermineRiskLevel_YellowOnInternalTerms(t *testing.T) {
	assert.Equal(t, types.RiskYellow, DetermineRiskLevel("고객사 요청으로 사양 변경"))
}

func TestDetermineRiskLevel_RedWinsOverYellow(t *testing.T) {
	// Both 기밀 (red) and 내부 (yellow) present.
	assert.Equal(t, types.RiskRed, DetermineRiskLevel("내부 기밀 자료 검토"))
}

func TestDetermineRiskLevel_GreenByDefault(t *testing.T) {
	assert.Equal(t, types.RiskGreen, DetermineRiskLevel("태양광 발전소 시운전"))
	assert.Equal(t, types.RiskGreen, DetermineRiskLevel(""))
}

func TestExtractKeywords_MatchesDomainVocabulary(t *testing.T) {
	keywords := ExtractKeywords("PLC 프로그램 작성과 SCADA 화면 구성, HMI 연동")

	assert.Contains(t, keywords, "PLC")
	assert.Contains(t, keywords, "SCADA")
	assert.Contains(t, keywords, "HMI")
}

func TestExtractKeywords_CaseInsensitive(t *testing.T) {
	keywords := ExtractKeywords("plc 및 scada 운영")

	assert.Contains(t, keywords, "PLC")
	assert.Contains(t, keywords, "SCADA")
}

func TestExtractKeywords_IncludesMetrics(t *testing.T) {
	keywords := ExtractKeywords("불량률 30% 감소, 생산량 1.5만 대 달성")

	assert.Contains(t, keywords, "30%")
	assert.Contains(t, keywords, "1.5만")
}

func TestExtractKeywords_CapsAtMaxKeywords(t *testing.T) {
	keywords := ExtractKeywords("PLC SCADA HMI 전기설계 회로설계 PCB CAD AutoCAD SolidWorks CATIA 10% 20억")

	assert.LessOrEqual(t, len(keywords), MaxKeywords)
}

func TestExtractKeywords_EmptyInput(t *testing.T) {
	assert.Empty(t, ExtractKeywords(""))
}

func TestGenerateTags_IndustryAndActivity(t *testing.T) {
	tags := GenerateTags("한국전력기술", "전력 설비 설계 및 유지보수")

	assert.Contains(t, tags, "전력시스템")
	assert.Contains(t, tags, "설계")
	assert.Contains(t, tags, "운영")
}

func TestGenerateTags_PMTagForLeadRole(t *testing.T) {
	tags := GenerateTags("", "플랜트 건설 프로젝트 총괄")

	assert.Contains(t, tags, "PM/PL")
	assert.Contains(t, tags, "플랜트")
}

func TestGenerateTags_CompanyNameContributesIndustry(t *testing.T) {
	tags := GenerateTags("삼성반도체", "장비 셋업 지원")

	assert.Contains(t, tags, "반도체")
}

func TestGenerateTags_CapsAtMaxTags(t *testing.T) {
	tags := GenerateTags("반도체", "디스플레이 배터리 자동차 조선 플랜트 설계 시공 운영 총괄")

	assert.LessOrEqual(t, len(tags), MaxTags)
}

func TestGenerateOneLiner_WithMetric(t *testing.T) {
	line := GenerateOneLiner("A사", "수처리 설비 개선", "펌프 효율 15% 개선 담당")

	assert.Equal(t, "A사에서 수처리 설비 개선 담당 (15% 달성)", line)
}

func TestGenerateOneLiner_WithoutMetric(t *testing.T) {
	line := GenerateOneLiner("B사", "배전반 설계", "현장 지원")

	assert.Equal(t, "B사에서 배전반 설계 참여", line)
}

func TestRoleLabel_MapsEveryLevel(t *testing.T) {
	assert.Equal(t, "총괄", RoleLabel(types.RoleLead))
	assert.Equal(t, "담당", RoleLabel(types.RolePartial))
	assert.Equal(t, "운영", RoleLabel(types.RoleOperate))
	assert.Equal(t, "참여", RoleLabel(types.RoleCollab))
	assert.Equal(t, "참여", RoleLabel(types.RoleLevel("unknown")))
}
