package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock_StripsJSONFence(t *testing.T) {
	input := "```json\n{\"key\": \"value\"}\n```"
	assert.Equal(t, `{"key": "value"}`, CleanJSONBlock(input))
}

func TestCleanJSONBlock_StripsBareFence(t *testing.T) {
	input := "```\n{\"key\": \"value\"}\n```"
	assert.Equal(t, `{"key": "value"}`, CleanJSONBlock(input))
}

func TestCleanJSONBlock_PassesThroughPlainJSON(t *testing.T) {
	input := `{"key": "value"}`
	assert.Equal(t, input, CleanJSONBlock(input))
}

func TestCleanJSONBlock_TrimsWhitespace(t *testing.T) {
	input := "  \n{\"key\": 1}\n  "
	assert.Equal(t, `{"key": 1}`, CleanJSONBlock(input))
}

func TestExtractJSONObject_IgnoresSurroundingProse(t *testing.T) {
	input := "요청하신 결과입니다:\n{\"one_liner\": \"요약\"}\n확인 부탁드립니다."
	assert.Equal(t, `{"one_liner": "요약"}`, ExtractJSONObject(input))
}

func TestExtractJSONObject_HandlesNestedObjects(t *testing.T) {
	input := `{"requirements": {"must": ["a"], "preferred": []}}`
	assert.Equal(t, input, ExtractJSONObject(input))
}

func TestExtractJSONObject_BracesInsideStrings(t *testing.T) {
	input := `{"text": "중괄호 } 포함 문자열"}`
	assert.Equal(t, input, ExtractJSONObject(input))
}

func TestExtractJSONObject_EscapedQuotes(t *testing.T) {
	input := `{"text": "인용 \" 부호"}`
	assert.Equal(t, input, ExtractJSONObject(input))
}

func TestExtractJSONObject_NoObject(t *testing.T) {
	assert.Equal(t, "", ExtractJSONObject("JSON 없이 설명만 있는 응답"))
	assert.Equal(t, "", ExtractJSONObject(""))
}

func TestExtractJSONObject_UnbalancedBraces(t *testing.T) {
	assert.Equal(t, "", ExtractJSONObject(`{"key": "value"`))
}
