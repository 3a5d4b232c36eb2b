package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"

	"wayfarer/internal/models/request_models"
	"wayfarer/internal/models/response_models"
)

// Extraction signals. They drive strategy selection inside the synthesis
// cascade and never reach a caller.
var (
	errNoCandidate      = errors.New("no object candidate in response text")
	errIncompleteObject = errors.New("object candidate never closes before end of response")
)

// extractBalancedObject returns the substring spanning the first '{' to
// its matching '}' at equal nesting depth. Distinguishes "no candidate"
// (no opening brace at all) from "incomplete object" (the brace never
// closes).
func extractBalancedObject(text string) (string, error) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", errNoCandidate
	}

	depth := 0
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], nil
			}
		}
	}
	return "", errIncompleteObject
}

var (
	// Single-level, non-greedy "travel_plan" sub-object used by the
	// relaxed parse strategy.
	travelPlanPattern = regexp.MustCompile(`"travel_plan"\s*:\s*\{[^{}]*\}`)

	// Best-effort field recovery for the catch-all strategy.
	destinationPattern = regexp.MustCompile(`"destination"\s*:\s*"([^"]+)"`)
	durationPattern    = regexp.MustCompile(`"duration(?:_days)?"\s*:\s*(\d+)`)
	modePattern        = regexp.MustCompile(`"mode"\s*:\s*"([^"]+)"`)
)

const taskPreviewLimit = 200

// streamStats counts events per category while the consumer drains a
// response stream. Diagnostic only.
type streamStats struct {
	textEvents    int
	messageEvents int
	toolUseEvents int
	unknownEvents int
}

// synthesisInput is everything one reconciliation run owns: the request,
// its resolved profile, the composed task, and the accumulated response
// text. No state is shared between runs.
type synthesisInput struct {
	request request_models.TravelRequest
	profile ModeProfile
	task    string
	text    string
	stats   streamStats
}

// synthesisState carries extraction and parse outcomes across strategies
// so a later strategy can report the original failure.
type synthesisState struct {
	synthesisInput

	candidate  string
	extractErr error
	strictErr  error
}

type planStrategy struct {
	name string
	run  func(*synthesisState) (*response_models.PlanData, error)
}

// synthesisStrategies is the ordered cascade. The orchestrator walks the
// list and stops at the first strategy that produces a plan; the final
// strategies cannot fail, so the cascade as a whole is total.
var synthesisStrategies = []planStrategy{
	{name: "strict_json", run: (*synthesisState).strictParse},
	{name: "relaxed_travel_plan", run: (*synthesisState).relaxedParse},
	{name: "narrative_text", run: (*synthesisState).narrativePlan},
	{name: "empty_response", run: (*synthesisState).emptyPlan},
	{name: "field_recovery", run: (*synthesisState).recoveryPlan},
}

// synthesizePlan reconciles an accumulated agent response into a plan.
// It always returns exactly one plan; degraded inputs degrade the plan's
// quality, never its presence.
func synthesizePlan(in synthesisInput) response_models.PlanData {
	state := &synthesisState{synthesisInput: in}
	state.candidate, state.extractErr = extractBalancedObject(in.text)

	for _, strategy := range synthesisStrategies {
		plan, err := strategy.run(state)
		if err != nil {
			log.Printf("plan synthesis: %s: %v", strategy.name, err)
			continue
		}
		if plan != nil {
			return *plan
		}
	}

	// Unreachable: recoveryPlan always produces. Kept as a hard stop so a
	// broken cascade fails loudly in tests rather than returning zero data.
	panic("plan synthesis cascade produced no plan")
}

// strictParse uses the extracted candidate verbatim when it is valid
// JSON. The object shape comes from the agent and is not schema-validated
// beyond the successful parse.
func (s *synthesisState) strictParse() (*response_models.PlanData, error) {
	if s.extractErr != nil {
		return nil, nil
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(s.candidate), &parsed); err != nil {
		s.strictErr = err
		return nil, fmt.Errorf("candidate is not valid JSON: %w", err)
	}

	// When the agent already produced our document shape, adopt it whole.
	var typed response_models.PlanData
	if err := json.Unmarshal([]byte(s.candidate), &typed); err == nil && len(typed.Plans) > 0 {
		typed.FullAIResponse = s.text
		typed.DebugInfo = s.newDebugInfo("agent_plan_data")
		return &typed, nil
	}

	plan := s.templatePlan(s.text, s.newDebugInfo("agent_json"))
	plan.Plans[0].StructuredPlan = parsed
	return plan, nil
}

// relaxedParse retries the same candidate looking for a "travel_plan"
// sub-object. Its own failure re-raises the strict parse error so the
// root cause is what gets logged and recorded.
func (s *synthesisState) relaxedParse() (*response_models.PlanData, error) {
	if s.extractErr != nil || s.strictErr == nil {
		return nil, nil
	}

	match := travelPlanPattern.FindString(s.candidate)
	if match == "" {
		return nil, s.strictErr
	}

	var wrapped struct {
		TravelPlan map[string]any `json:"travel_plan"`
	}
	if err := json.Unmarshal([]byte("{"+match+"}"), &wrapped); err != nil {
		return nil, s.strictErr
	}

	plan := s.templatePlan(s.text, s.newDebugInfo("travel_plan_fragment"))
	plan.Plans[0].StructuredPlan = wrapped.TravelPlan
	return plan, nil
}

// narrativePlan wraps an unstructured but non-empty response verbatim.
func (s *synthesisState) narrativePlan() (*response_models.PlanData, error) {
	if !errors.Is(s.extractErr, errNoCandidate) && !errors.Is(s.extractErr, errIncompleteObject) {
		return nil, nil
	}
	if strings.TrimSpace(s.text) == "" {
		return nil, nil
	}

	debug := s.newDebugInfo("narrative_text")
	debug.ParseError = s.extractErr.Error()
	return s.templatePlan(s.text, debug), nil
}

// emptyPlan covers the no-content case with a templated plan and enough
// diagnostics to see what task was sent.
func (s *synthesisState) emptyPlan() (*response_models.PlanData, error) {
	if strings.TrimSpace(s.text) != "" {
		return nil, nil
	}

	debug := s.newDebugInfo("empty_response")
	debug.TaskPreview = truncate(s.task, taskPreviewLimit)

	detailed := fmt.Sprintf(
		"No response content was received from the travel agent. "+
			"The plan below is a %s-tier template for %s; please retry to get a detailed itinerary.",
		s.profile.TierName, s.request.Destination)
	return s.templatePlan(detailed, debug), nil
}

// recoveryPlan is the catch-all for candidates that defeated both parse
// strategies: scrape what fields we can out of the raw text and fall back
// to the request for the rest.
func (s *synthesisState) recoveryPlan() (*response_models.PlanData, error) {
	recovered := map[string]string{}
	destination := s.request.Destination
	durationDays := s.request.DurationDays
	modeName := s.profile.ModeName

	if m := destinationPattern.FindStringSubmatch(s.text); m != nil {
		destination = m[1]
		recovered["destination"] = m[1]
	}
	if m := durationPattern.FindStringSubmatch(s.text); m != nil {
		if days, err := strconv.Atoi(m[1]); err == nil && days > 0 {
			durationDays = days
			recovered["duration"] = m[1]
		}
	}
	if m := modePattern.FindStringSubmatch(s.text); m != nil {
		modeName = m[1]
		recovered["mode"] = m[1]
	}

	debug := s.newDebugInfo("field_recovery")
	if s.strictErr != nil {
		debug.ParseError = s.strictErr.Error()
	}
	if len(recovered) > 0 {
		debug.RecoveredFields = recovered
	}

	plan := s.buildTemplate(destination, durationDays, s.text, debug)
	plan.Plans[0].ModeName = modeName
	plan.SelectedMode = modeName
	return plan, nil
}

// templatePlan builds the profile-driven plan shape for the request as
// received.
func (s *synthesisState) templatePlan(detailedPlan string, debug *response_models.PlanDebugInfo) *response_models.PlanData {
	return s.buildTemplate(s.request.Destination, s.request.DurationDays, detailedPlan, debug)
}

func (s *synthesisState) buildTemplate(destination string, durationDays int, detailedPlan string, debug *response_models.PlanDebugInfo) *response_models.PlanData {
	result := response_models.PlanResult{
		ModeName:          s.profile.ModeName,
		Emoji:             s.profile.Emoji,
		AttractionsPerDay: s.profile.AttractionsPerDay,
		Pace:              s.profile.Pace,
		DailyBudget:       s.profile.DailyCostBand,
		TotalBudget:       TotalBudget(s.profile.DailyCostBand, durationDays),
		Flexibility:       s.profile.Flexibility,
		Description: fmt.Sprintf("A %s %d-day itinerary for %s",
			strings.ToLower(s.profile.Pace), durationDays, destination),
		DetailedPlan: detailedPlan,
	}

	return &response_models.PlanData{
		Plans:          []response_models.PlanResult{result},
		SelectedMode:   s.profile.ModeName,
		FullAIResponse: s.text,
		DebugInfo:      debug,
	}
}

func (s *synthesisState) newDebugInfo(source string) *response_models.PlanDebugInfo {
	return &response_models.PlanDebugInfo{
		Source:         source,
		TextEvents:     s.stats.textEvents,
		MessageEvents:  s.stats.messageEvents,
		ToolUseEvents:  s.stats.toolUseEvents,
		UnknownEvents:  s.stats.unknownEvents,
		ResponseLength: len(s.text),
	}
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
