package agent_models

// EventKind enumerates the closed set of response event categories the
// agent stream can carry. Anything outside the named kinds arrives as
// EventUnknown with its raw payload attached.
type EventKind string

const (
	EventText    EventKind = "text"
	EventMessage EventKind = "message"
	EventToolUse EventKind = "tool_use"
	EventUnknown EventKind = "unknown"
)

// ContentItem is one piece of a multi-part message ("text" or other).
type ContentItem struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// MessageContent holds a complete turn: either a single string or an
// ordered list of tagged items. Exactly one of the two is populated.
type MessageContent struct {
	Text  string        `json:"text,omitempty"`
	Items []ContentItem `json:"items,omitempty"`
}

// ToolUse describes a tool invocation observed on the stream. It is
// logged by the consumer and contributes nothing to the accumulated text.
type ToolUse struct {
	Name  string         `json:"name"`
	Input map[string]any `json:"input,omitempty"`
}

// ResponseEvent is the tagged union produced by an agent client and
// consumed exactly once by the stream consumer. The populated payload
// field matches Kind; events are never mutated after creation.
type ResponseEvent struct {
	Kind    EventKind       `json:"kind"`
	Text    string          `json:"text,omitempty"`
	Message *MessageContent `json:"message,omitempty"`
	Tool    *ToolUse        `json:"tool,omitempty"`
	Raw     map[string]any  `json:"raw,omitempty"`
}

// TextEvent builds a text fragment event.
func TextEvent(fragment string) ResponseEvent {
	return ResponseEvent{Kind: EventText, Text: fragment}
}

// MessageEvent builds a complete-turn event with string content.
func MessageEvent(content string) ResponseEvent {
	return ResponseEvent{Kind: EventMessage, Message: &MessageContent{Text: content}}
}

// MessageItemsEvent builds a complete-turn event with ordered items.
func MessageItemsEvent(items []ContentItem) ResponseEvent {
	return ResponseEvent{Kind: EventMessage, Message: &MessageContent{Items: items}}
}

// ToolUseEvent builds a tool invocation event.
func ToolUseEvent(name string, input map[string]any) ResponseEvent {
	return ResponseEvent{Kind: EventToolUse, Tool: &ToolUse{Name: name, Input: input}}
}

// UnknownEvent wraps an unrecognized payload.
func UnknownEvent(raw map[string]any) ResponseEvent {
	return ResponseEvent{Kind: EventUnknown, Raw: raw}
}
