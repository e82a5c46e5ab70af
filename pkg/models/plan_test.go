package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamValue_Placeholder(t *testing.T) {
	assert.Equal(t, "42", Literal(42).Placeholder())
	assert.Equal(t, "<from_call_0>", Reference("call_0").Placeholder())
}

func TestParamValue_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(map[string]ParamValue{
		"team": Reference("call_1"),
		"last": Literal(5),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"team":"<from_call_1>","last":5}`, string(data))
}

func TestParseReference(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		source string
		ok     bool
	}{
		{name: "call id", input: "<from_call_3>", source: "call_3", ok: true},
		{name: "endpoint name", input: "<from_teams_search>", source: "teams_search", ok: true},
		{name: "plain literal", input: "2026-08-26", ok: false},
		{name: "empty source", input: "<from_>", ok: false},
		{name: "missing suffix", input: "<from_call_3", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source, ok := ParseReference(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.source, source)
		})
	}
}

func TestExecutionPlan_Levels(t *testing.T) {
	plan := &ExecutionPlan{Calls: []EndpointCall{
		{CallID: "call_0", EndpointName: "teams_search"},
		{CallID: "call_1", EndpointName: "teams_search"},
		{CallID: "call_2", EndpointName: "fixtures_search", DependsOn: []string{"call_0", "call_1"}},
		{CallID: "call_3", EndpointName: "fixture_full", DependsOn: []string{"call_2"}},
	}}

	levels, err := plan.Levels()
	require.NoError(t, err)
	require.Len(t, levels, 3)

	assert.Len(t, levels[0], 2)
	assert.Equal(t, "call_2", levels[1][0].CallID)
	assert.Equal(t, "call_3", levels[2][0].CallID)
}

func TestExecutionPlan_Levels_Cycle(t *testing.T) {
	plan := &ExecutionPlan{Calls: []EndpointCall{
		{CallID: "call_0", DependsOn: []string{"call_1"}},
		{CallID: "call_1", DependsOn: []string{"call_0"}},
	}}

	_, err := plan.Levels()
	assert.ErrorIs(t, err, ErrPlanCycle)
}

func TestExecutionPlan_Levels_UnknownDependency(t *testing.T) {
	plan := &ExecutionPlan{Calls: []EndpointCall{
		{CallID: "call_0", DependsOn: []string{"call_9"}},
	}}

	_, err := plan.Levels()
	assert.ErrorIs(t, err, ErrPlanCycle)
}

func TestExecutionPlan_Levels_Empty(t *testing.T) {
	plan := &ExecutionPlan{}
	levels, err := plan.Levels()
	require.NoError(t, err)
	assert.Nil(t, levels)
}

func TestExecutionResult_AddResult(t *testing.T) {
	result := NewExecutionResult()

	result.AddResult(CallResult{
		CallID: "call_0", EndpointName: "teams_search",
		Success: true, Data: "psg", FromCache: true,
	})
	result.AddResult(CallResult{
		CallID: "call_1", EndpointName: "fixtures_search",
		Error: "failed after 3 retries: boom",
	})

	assert.Equal(t, 1, result.TotalCacheHits)
	assert.False(t, result.Success)
	assert.Equal(t, []string{"failed after 3 retries: boom"}, result.Errors)

	// Collected data is aliased by call ID and by endpoint name.
	assert.Equal(t, "psg", result.CollectedData["call_0"])
	assert.Equal(t, "psg", result.CollectedData["teams_search"])
	_, ok := result.CollectedData["call_1"]
	assert.False(t, ok)
}
