package utils

import (
	"context"
	"fmt"
	"strings"

	"wayfarer/internal/models/agent_models"
)

// AgentClientInterface is the boundary to the external text-generation
// collaborator. StreamTask sends one task and returns a lazily produced,
// finite, non-restartable event sequence; the channel is closed when the
// stream is exhausted or fails mid-flight. An error is returned only when
// the invocation itself fails before any event is produced.
type AgentClientInterface interface {
	StreamTask(ctx context.Context, task string, model string) (<-chan agent_models.ResponseEvent, error)
}

// NewAgentClient creates an OpenAI or Gemini backed agent client based on
// the configured provider.
func NewAgentClient(provider, apiKey, model string, streaming bool) (AgentClientInterface, error) {
	switch strings.ToLower(provider) {
	case "openai":
		return NewOpenAIAgentClient(apiKey, model, streaming), nil
	case "gemini":
		return NewGeminiAgentClient(apiKey, model, streaming)
	default:
		return nil, fmt.Errorf("unsupported agent provider: %s. Use 'openai' or 'gemini'", provider)
	}
}
