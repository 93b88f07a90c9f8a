package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/careerdoc/internal/types"
)

func TestStructureAll_PreservesInputOrder(t *testing.T) {
	svc := NewRuleService()

	experiences := []types.Experience{expA1(), expA2(), expB()}
	results, err := StructureAll(context.Background(), svc, experiences)
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Result i must correspond to experience i.
	assert.Equal(t, types.RolePartial, results[0].RoleLevel) // 담당
	assert.Equal(t, types.RoleOperate, results[1].RoleLevel) // 운영
	assert.Equal(t, types.RoleCollab, results[2].RoleLevel)  // 참여
	assert.Equal(t, types.RiskRed, results[2].RiskLevel)
}

func TestStructureAll_EmptyInput(t *testing.T) {
	svc := NewRuleService()

	results, err := StructureAll(context.Background(), svc, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestStructureAll_CancelledContext(t *testing.T) {
	svc := NewRuleService()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := StructureAll(ctx, svc, []types.Experience{expA1(), expA2()})
	assert.Error(t, err)
}
