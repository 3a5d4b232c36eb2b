package response_models

// PlanDebugInfo carries diagnostic fields attached to a synthesized plan.
// Nothing in here is load-bearing for callers.
type PlanDebugInfo struct {
	Source          string            `json:"source"`
	ParseError      string            `json:"parse_error,omitempty"`
	RecoveredFields map[string]string `json:"recovered_fields,omitempty"`
	TaskPreview     string            `json:"task_preview,omitempty"`
	TextEvents      int               `json:"text_events,omitempty"`
	MessageEvents   int               `json:"message_events,omitempty"`
	ToolUseEvents   int               `json:"tool_use_events,omitempty"`
	UnknownEvents   int               `json:"unknown_events,omitempty"`
	ResponseLength  int               `json:"response_length"`
}

// PlanResult is one synthesized travel plan. It is constructed whole by
// exactly one synthesis strategy; there is no partially built state.
type PlanResult struct {
	ModeName          string         `json:"mode_name"`
	Emoji             string         `json:"emoji"`
	AttractionsPerDay string         `json:"attractions_per_day"`
	Pace              string         `json:"pace"`
	DailyBudget       string         `json:"daily_budget"`
	TotalBudget       string         `json:"total_budget"`
	Flexibility       string         `json:"flexibility"`
	Description       string         `json:"description"`
	DetailedPlan      string         `json:"detailed_plan"`
	StructuredPlan    map[string]any `json:"travel_plan,omitempty"`
	DebugInfo         *PlanDebugInfo `json:"debug_info,omitempty"`
}

// PlanData is the unit returned to the caller. It is always producible;
// the synthesizer guarantees at least one PlanResult.
type PlanData struct {
	Plans          []PlanResult   `json:"plans"`
	SelectedMode   string         `json:"selected_mode"`
	FullAIResponse string         `json:"full_ai_response"`
	DebugInfo      *PlanDebugInfo `json:"debug_info,omitempty"`
}

// AgentError is the boundary error shape returned when the agent
// invocation itself fails before any events are produced. The synthesis
// core never emits this; it always degrades to a plan.
type AgentError struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// SavedPlan is a plan history record as returned by the history endpoints.
type SavedPlan struct {
	ID           string   `json:"id"`
	Destination  string   `json:"destination"`
	DurationDays int      `json:"duration_days"`
	Budget       string   `json:"budget"`
	Interests    []string `json:"interests"`
	SelectedMode string   `json:"selected_mode"`
	TotalBudget  string   `json:"total_budget"`
	Similarity   float64  `json:"similarity,omitempty"`
	CreatedAt    int64    `json:"created_at"`
}
