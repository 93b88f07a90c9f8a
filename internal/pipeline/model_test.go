package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/careerdoc/internal/types"
)

// fakeClient scripts the generation backend for tests.
type fakeClient struct {
	response string
	err      error
	calls    int
}

func (f *fakeClient) GenerateText(_ context.Context, _, _ string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeClient) Close() error { return nil }

func TestModelStructureExperience_ParsesModelJSON(t *testing.T) {
	client := &fakeClient{response: "```json\n" + `{"one_liner":"D사에서 로봇 셀 구축 주도","tags":["자동화"],"keywords":["PLC","로봇"]}` + "\n```"}
	svc := NewModelService(client)

	meta := types.ExperienceMeta{Company: "D사", ProjectName: "로봇 셀 구축"}
	result := svc.StructureExperience(context.Background(), meta, "생산 라인 자동화 구현 담당")

	assert.Equal(t, "D사에서 로봇 셀 구축 주도", result.OneLiner)
	assert.Equal(t, []string{"자동화"}, result.Tags)
	assert.Equal(t, []string{"PLC", "로봇"}, result.Keywords)
	// Classification never comes from the model.
	assert.Equal(t, types.RolePartial, result.RoleLevel)
	assert.Equal(t, types.RiskGreen, result.RiskLevel)
}

func TestModelStructureExperience_FallsBackOnBackendError(t *testing.T) {
	client := &fakeClient{err: errors.New("quota exceeded")}
	svc := NewModelService(client)

	meta := types.ExperienceMeta{Company: "D사", ProjectName: "로봇 셀 구축"}
	result := svc.StructureExperience(context.Background(), meta, "기밀 과제 총괄")

	assert.Equal(t, "D사에서 로봇 셀 구축 수행", result.OneLiner)
	assert.Empty(t, result.Tags)
	assert.Empty(t, result.Keywords)
	assert.Equal(t, types.RoleLead, result.RoleLevel)
	assert.Equal(t, types.RiskRed, result.RiskLevel)
}

func TestModelStructureExperience_FallsBackOnGarbageResponse(t *testing.T) {
	client := &fakeClient{response: "죄송하지만 JSON을 만들 수 없습니다"}
	svc := NewModelService(client)

	meta := types.ExperienceMeta{Company: "D사", ProjectName: "수처리 개선"}
	result := svc.StructureExperience(context.Background(), meta, "설비 운영")

	assert.Equal(t, "D사에서 수처리 개선 수행", result.OneLiner)
	assert.Equal(t, types.RoleOperate, result.RoleLevel)
}

func TestModelStructureJob_AcceptsSchemaValidJSON(t *testing.T) {
	client := &fakeClient{response: `{
		"requirements": {"must": ["전기설계 경력 3년"], "preferred": ["PLC 경험"]},
		"responsibilities": ["수배전반 설계"],
		"questions": [{"title": "지원 동기", "char_limit": 500}]
	}`}
	svc := NewModelService(client)

	job := svc.StructureJob(context.Background(), "채용공고 본문")

	assert.Equal(t, []string{"전기설계 경력 3년"}, job.Requirements.Must)
	assert.Equal(t, []string{"PLC 경험"}, job.Requirements.Preferred)
	assert.Equal(t, []string{"수배전반 설계"}, job.Responsibilities)
	require.Len(t, job.Questions, 1)
	assert.Equal(t, types.ConfidenceNormal, job.Confidence)
	require.NotNil(t, job.LengthRules)
	assert.Equal(t, DefaultReportMaxChars, job.LengthRules.MaxCharsOr(0))
}

func TestModelStructureJob_FallsBackOnSchemaViolation(t *testing.T) {
	// requirements.must must be an array of strings.
	client := &fakeClient{response: `{"requirements": {"must": "경력 3년"}, "responsibilities": []}`}
	svc := NewModelService(client)

	job := svc.StructureJob(context.Background(), "채용공고 본문")

	assert.Equal(t, []string{"관련 분야 경력 보유자"}, job.Requirements.Must)
	assert.Equal(t, types.ConfidenceLow, job.Confidence)
}

func TestModelStructureJob_FallsBackOnBackendError(t *testing.T) {
	client := &fakeClient{err: errors.New("timeout")}
	svc := NewModelService(client)

	job := svc.StructureJob(context.Background(), "채용공고 본문")

	assert.Equal(t, []string{"관련 분야 경력 보유자"}, job.Requirements.Must)
	assert.Equal(t, []string{"해당 직무 수행"}, job.Responsibilities)
	assert.Equal(t, types.ConfidenceLow, job.Confidence)
}

func TestModelCareerReport_SurfacesGenerationError(t *testing.T) {
	client := &fakeClient{err: errors.New("backend down")}
	svc := NewModelService(client)

	job := &types.StructuredJob{Requirements: types.Requirements{Must: []string{"경력 3년"}}}
	_, err := svc.GenerateCareerReport(context.Background(), job, []types.Experience{expA1()}, nil)

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, "generation failed: career report", genErr.Error())
	// The user's content must never leak through the error.
	assert.NotContains(t, genErr.Error(), "변전소")
}

func TestModelCareerReport_TrimsOversizedOutput(t *testing.T) {
	client := &fakeClient{response: strings.Repeat("경력을 기술합니다. ", 500)}
	svc := NewModelService(client)

	limit := 300
	job := &types.StructuredJob{Requirements: types.Requirements{Must: []string{"경력 3년"}}}
	result, err := svc.GenerateCareerReport(context.Background(), job, []types.Experience{expA1()}, &types.LengthRule{MaxChars: &limit})
	require.NoError(t, err)

	assert.LessOrEqual(t, result.CharCount, limit)
}

func TestModelCareerReport_TraceabilityAndRiskFlags(t *testing.T) {
	client := &fakeClient{response: "경력기술서 본문"}
	svc := NewModelService(client)

	job := &types.StructuredJob{Requirements: types.Requirements{Must: []string{"전기설계 경력"}}}
	a1, b := expA1(), expB()
	result, err := svc.GenerateCareerReport(context.Background(), job, []types.Experience{a1, b}, nil)
	require.NoError(t, err)

	require.Len(t, result.Traceability, 2)
	assert.Equal(t, "전기설계 경력", result.Traceability[0].Requirement)
	assert.Equal(t, a1.ID, result.Traceability[0].ExperienceID)
	assert.Contains(t, result.RiskFlags, "[주의] 플랜트 시운전: 민감정보 포함 가능")
}

func TestModelCoverLetter_EmptySelectionSkipsBackend(t *testing.T) {
	client := &fakeClient{response: "호출되면 안 되는 응답"}
	svc := NewModelService(client)

	result, err := svc.GenerateCoverLetterAnswer(context.Background(), "지원 동기", nil, nil)
	require.NoError(t, err)

	assert.Equal(t, EmptySelectionAnswer, result.Answer)
	assert.Zero(t, client.calls)
}

func TestModelCoverLetter_SurfacesGenerationError(t *testing.T) {
	client := &fakeClient{err: errors.New("backend down")}
	svc := NewModelService(client)

	_, err := svc.GenerateCoverLetterAnswer(context.Background(), "지원 동기", []types.Experience{expA1()}, nil)

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, "generation failed: cover letter answer", genErr.Error())
}

func TestModelCoverLetter_TrimsToLimit(t *testing.T) {
	client := &fakeClient{response: strings.Repeat("역량을 쌓았습니다. ", 200)}
	svc := NewModelService(client)

	limit := 400
	result, err := svc.GenerateCoverLetterAnswer(context.Background(), "지원 동기", []types.Experience{expA1()}, &limit)
	require.NoError(t, err)

	assert.LessOrEqual(t, result.CharCount, 400)
}
