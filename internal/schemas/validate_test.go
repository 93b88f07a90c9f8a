package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateStructuredJob_AcceptsWellFormedDocument(t *testing.T) {
	doc := `{
		"requirements": {"must": ["전기설계 경력 3년"], "preferred": []},
		"responsibilities": ["수배전반 설계"],
		"questions": [{"title": "지원 동기", "char_limit": 500}]
	}`

	assert.NoError(t, ValidateStructuredJob(doc))
}

func TestValidateStructuredJob_AcceptsEmptyLists(t *testing.T) {
	doc := `{"requirements": {"must": [], "preferred": []}, "responsibilities": []}`

	assert.NoError(t, ValidateStructuredJob(doc))
}

func TestValidateStructuredJob_RejectsWrongMustType(t *testing.T) {
	doc := `{"requirements": {"must": "경력 3년", "preferred": []}, "responsibilities": []}`

	err := ValidateStructuredJob(doc)
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.NotEmpty(t, validationErr.Errors)
}

func TestValidateStructuredJob_RejectsMissingRequirements(t *testing.T) {
	doc := `{"responsibilities": []}`

	var validationErr *ValidationError
	require.True(t, errors.As(ValidateStructuredJob(doc), &validationErr))
}

func TestValidateStructuredJob_RejectsQuestionWithoutTitle(t *testing.T) {
	doc := `{
		"requirements": {"must": [], "preferred": []},
		"responsibilities": [],
		"questions": [{"char_limit": 500}]
	}`

	var validationErr *ValidationError
	require.True(t, errors.As(ValidateStructuredJob(doc), &validationErr))
}

func TestValidateStructuredJob_RejectsNonPositiveCharLimit(t *testing.T) {
	doc := `{
		"requirements": {"must": [], "preferred": []},
		"responsibilities": [],
		"questions": [{"title": "지원 동기", "char_limit": 0}]
	}`

	var validationErr *ValidationError
	require.True(t, errors.As(ValidateStructuredJob(doc), &validationErr))
}

func TestValidationError_ListsFieldPaths(t *testing.T) {
	err := ValidateStructuredJob(`{"requirements": {"must": 1, "preferred": []}, "responsibilities": []}`)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Contains(t, validationErr.Error(), "schema validation failed")
}
