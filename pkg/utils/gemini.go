package utils

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"wayfarer/internal/models/agent_models"
)

// GeminiAgentClient implements AgentClientInterface using Google's Gemini
// models. Free-tier friendly default model.
type GeminiAgentClient struct {
	client    *genai.Client
	model     string
	streaming bool
}

func NewGeminiAgentClient(apiKey, model string, streaming bool) (*GeminiAgentClient, error) {
	if model == "" {
		model = "gemini-1.5-flash"
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiAgentClient{
		client:    client,
		model:     model,
		streaming: streaming,
	}, nil
}

func (c *GeminiAgentClient) StreamTask(ctx context.Context, task string, model string) (<-chan agent_models.ResponseEvent, error) {
	if model == "" {
		model = c.model
	}

	m := c.client.GenerativeModel(model)
	m.SetTemperature(0.3)
	m.SetTopP(0.8)

	if !c.streaming {
		return c.completeOnce(ctx, m, task)
	}

	iter := m.GenerateContentStream(ctx, genai.Text(plannerSystemPrompt+"\n\n"+task))

	events := make(chan agent_models.ResponseEvent)
	go func() {
		defer close(events)

		for {
			chunk, err := iter.Next()
			if errors.Is(err, iterator.Done) {
				return
			}
			if err != nil {
				log.Printf("gemini stream: receive failed: %v", err)
				return
			}
			emitCandidateParts(events, chunk)
		}
	}()

	return events, nil
}

// completeOnce performs a blocking generation and emits one message event
// with the turn's text parts in order.
func (c *GeminiAgentClient) completeOnce(ctx context.Context, m *genai.GenerativeModel, task string) (<-chan agent_models.ResponseEvent, error) {
	response, err := m.GenerateContent(ctx, genai.Text(plannerSystemPrompt+"\n\n"+task))
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}

	var items []agent_models.ContentItem
	var tools []agent_models.ResponseEvent
	for _, candidate := range response.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			switch v := part.(type) {
			case genai.Text:
				items = append(items, agent_models.ContentItem{Type: "text", Text: string(v)})
			case genai.FunctionCall:
				tools = append(tools, agent_models.ToolUseEvent(v.Name, v.Args))
			}
		}
	}

	events := make(chan agent_models.ResponseEvent, len(tools)+1)
	if len(items) > 0 {
		events <- agent_models.MessageItemsEvent(items)
	}
	for _, tool := range tools {
		events <- tool
	}
	close(events)

	return events, nil
}

func emitCandidateParts(events chan<- agent_models.ResponseEvent, chunk *genai.GenerateContentResponse) {
	for _, candidate := range chunk.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			switch v := part.(type) {
			case genai.Text:
				events <- agent_models.TextEvent(string(v))
			case genai.FunctionCall:
				events <- agent_models.ToolUseEvent(v.Name, v.Args)
			default:
				events <- agent_models.UnknownEvent(map[string]any{"part_type": fmt.Sprintf("%T", part)})
			}
		}
	}
}

// Close closes the underlying Gemini client.
func (c *GeminiAgentClient) Close() error {
	return c.client.Close()
}
