package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_LoadsEmbeddedPrompts(t *testing.T) {
	for _, tc := range []struct{ file, key string }{
		{"structuring.json", "experience-system"},
		{"structuring.json", "experience-user"},
		{"structuring.json", "job-system"},
		{"structuring.json", "job-user"},
		{"synthesis.json", "report-system"},
		{"synthesis.json", "report-user"},
		{"synthesis.json", "answer-system"},
		{"synthesis.json", "answer-user"},
	} {
		prompt, err := Get(tc.file, tc.key)
		require.NoError(t, err, "%s/%s", tc.file, tc.key)
		assert.NotEmpty(t, prompt)
	}
}

func TestGet_UnknownKey(t *testing.T) {
	_, err := Get("structuring.json", "nonexistent")
	assert.Error(t, err)
}

func TestGet_UnknownFile(t *testing.T) {
	_, err := Get("missing.json", "any")
	assert.Error(t, err)
}

func TestMustGet_PanicsOnMiss(t *testing.T) {
	assert.Panics(t, func() {
		MustGet("structuring.json", "nonexistent")
	})
}

func TestFormat_ReplacesPlaceholders(t *testing.T) {
	out := Format("회사: {{.Company}}, 프로젝트: {{.ProjectName}}", map[string]string{
		"Company":     "A사",
		"ProjectName": "변전소 설계",
	})
	assert.Equal(t, "회사: A사, 프로젝트: 변전소 설계", out)
}

func TestFormat_LeavesUnknownPlaceholders(t *testing.T) {
	out := Format("{{.Known}} {{.Unknown}}", map[string]string{"Known": "값"})
	assert.Equal(t, "값 {{.Unknown}}", out)
}

func TestFormat_RepeatedPlaceholder(t *testing.T) {
	out := Format("{{.X}}-{{.X}}", map[string]string{"X": "a"})
	assert.Equal(t, "a-a", out)
}
