package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wayfarer/internal/models/request_models"
)

func testRequest() request_models.TravelRequest {
	return request_models.TravelRequest{
		Destination:  "Lisbon",
		DurationDays: 4,
		Travelers:    2,
		Budget:       "moderate",
		Interests:    []string{"food", "history"},
		Mobility:     "walking",
	}
}

func TestExtractBalancedObject(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		candidate string
		err       error
	}{
		{"object with surrounding noise", `noise{"a":{"b":1}}tail`, `{"a":{"b":1}}`, nil},
		{"bare object", `{"x":1}`, `{"x":1}`, nil},
		{"first object wins", `{"a":1} {"b":2}`, `{"a":1}`, nil},
		{"no candidate", "just prose, no braces", "", errNoCandidate},
		{"empty input", "", "", errNoCandidate},
		{"incomplete object", `prefix {"a":{"b":1}`, "", errIncompleteObject},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			candidate, err := extractBalancedObject(tc.input)
			assert.Equal(t, tc.candidate, candidate)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestSynthesizeStrictJSONWins(t *testing.T) {
	// Valid strict JSON also containing a travel_plan pattern: tier 1
	// alone must determine the result.
	text := `Here you go: {"destination":"Lisbon","travel_plan":{"day":1}} enjoy`
	plan := synthesizePlan(synthesisInput{
		request: testRequest(),
		profile: ResolveModeProfile("moderate"),
		text:    text,
	})

	require.Len(t, plan.Plans, 1)
	require.NotNil(t, plan.DebugInfo)
	assert.Equal(t, "agent_json", plan.DebugInfo.Source)
	assert.Equal(t, "Lisbon", plan.Plans[0].StructuredPlan["destination"])
	assert.Equal(t, text, plan.FullAIResponse)
}

func TestSynthesizeAdoptsAgentPlanData(t *testing.T) {
	text := `{"plans":[{"mode_name":"Custom","total_budget":"$1-2"}],"selected_mode":"Custom"}`
	plan := synthesizePlan(synthesisInput{
		request: testRequest(),
		profile: ResolveModeProfile("moderate"),
		text:    text,
	})

	require.Len(t, plan.Plans, 1)
	assert.Equal(t, "Custom", plan.Plans[0].ModeName)
	assert.Equal(t, "Custom", plan.SelectedMode)
	assert.Equal(t, "agent_plan_data", plan.DebugInfo.Source)
}

func TestSynthesizeRelaxedTravelPlanFragment(t *testing.T) {
	// Outer object is broken JSON, but a flat travel_plan sub-object is
	// recoverable by pattern matching.
	text := `{"travel_plan": {"city": "Lisbon", "days": 4}, trailing garbage}`
	plan := synthesizePlan(synthesisInput{
		request: testRequest(),
		profile: ResolveModeProfile("moderate"),
		text:    text,
	})

	require.Len(t, plan.Plans, 1)
	assert.Equal(t, "travel_plan_fragment", plan.DebugInfo.Source)
	assert.Equal(t, "Lisbon", plan.Plans[0].StructuredPlan["city"])
}

func TestSynthesizeNarrativeFallback(t *testing.T) {
	text := "Day 1: wander the Alfama. Day 2: tram 28 and pasteis."
	request := testRequest()
	plan := synthesizePlan(synthesisInput{
		request: request,
		profile: ResolveModeProfile(request.Budget),
		text:    text,
	})

	require.Len(t, plan.Plans, 1)
	assert.Equal(t, "narrative_text", plan.DebugInfo.Source)
	assert.Equal(t, text, plan.Plans[0].DetailedPlan)
	assert.Equal(t, "Balanced Flow", plan.Plans[0].ModeName)
	assert.Equal(t, "$480-720", plan.Plans[0].TotalBudget)
}

func TestSynthesizeIncompleteObjectFallsBackToNarrative(t *testing.T) {
	text := `The plan is {"day": 1, "activities": [`
	plan := synthesizePlan(synthesisInput{
		request: testRequest(),
		profile: ResolveModeProfile("moderate"),
		text:    text,
	})

	require.Len(t, plan.Plans, 1)
	assert.Equal(t, "narrative_text", plan.DebugInfo.Source)
	assert.Contains(t, plan.DebugInfo.ParseError, "never closes")
}

func TestSynthesizeEmptyResponse(t *testing.T) {
	request := request_models.TravelRequest{
		Destination:  "Tokyo",
		DurationDays: 3,
		Travelers:    1,
		Budget:       "luxury",
	}
	profile := ResolveModeProfile(request.Budget)
	plan := synthesizePlan(synthesisInput{
		request: request,
		profile: profile,
		task:    ComposeTask(request, profile),
		text:    "",
	})

	require.Len(t, plan.Plans, 1)
	assert.Equal(t, "Intense Adventure", plan.Plans[0].ModeName)
	assert.Equal(t, "$540-750", plan.Plans[0].TotalBudget)
	assert.Contains(t, plan.Plans[0].DetailedPlan, "No response content was received")
	assert.Equal(t, "empty_response", plan.DebugInfo.Source)
	assert.NotEmpty(t, plan.DebugInfo.TaskPreview)
	assert.LessOrEqual(t, len(plan.DebugInfo.TaskPreview), taskPreviewLimit+3)
}

func TestSynthesizeMalformedJSONRecovery(t *testing.T) {
	text := `Here is the plan: {"mode": "Flow", oops}`
	plan := synthesizePlan(synthesisInput{
		request: testRequest(),
		profile: ResolveModeProfile("moderate"),
		text:    text,
	})

	require.Len(t, plan.Plans, 1)
	assert.Equal(t, "field_recovery", plan.DebugInfo.Source)
	assert.NotEmpty(t, plan.DebugInfo.ParseError)
	assert.Equal(t, "Flow", plan.DebugInfo.RecoveredFields["mode"])
	assert.Equal(t, "Flow", plan.Plans[0].ModeName)
	assert.Equal(t, "Flow", plan.SelectedMode)
}

func TestSynthesizeRecoveryUsesRecoveredFields(t *testing.T) {
	text := `broken {"destination": "Porto", "duration_days": 2, "mode": "Slow", nope}`
	plan := synthesizePlan(synthesisInput{
		request: testRequest(),
		profile: ResolveModeProfile("moderate"),
		text:    text,
	})

	require.Len(t, plan.Plans, 1)
	assert.Equal(t, "Porto", plan.DebugInfo.RecoveredFields["destination"])
	assert.Equal(t, "2", plan.DebugInfo.RecoveredFields["duration"])
	// Recovered duration drives the total, moderate band $120-180 x 2.
	assert.Equal(t, "$240-360", plan.Plans[0].TotalBudget)
	assert.Contains(t, plan.Plans[0].Description, "Porto")
}

func TestSynthesizeTotality(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"plain prose",
		"{",
		"}",
		"{}",
		`{"valid": true}`,
		`{"broken": }`,
		"{{{{",
		"}}}}{",
		`tool output: {"travel_plan": {"a": 1}}`,
	}

	for i, text := range inputs {
		t.Run(fmt.Sprintf("input_%d", i), func(t *testing.T) {
			request := testRequest()
			assert.NotPanics(t, func() {
				plan := synthesizePlan(synthesisInput{
					request: request,
					profile: ResolveModeProfile(request.Budget),
					text:    text,
				})
				require.Len(t, plan.Plans, 1)
				assert.NotEmpty(t, plan.Plans[0].ModeName)
				assert.NotEmpty(t, plan.Plans[0].TotalBudget)
			})
		})
	}
}
