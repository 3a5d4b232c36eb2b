package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"

	openai "github.com/sashabaranov/go-openai"

	"wayfarer/internal/models/agent_models"
)

const plannerSystemPrompt = "You are a travel planning agent. Research the destination, " +
	"then produce the itinerary with the generate_travel_plan tool as a single JSON object."

// planToolDefinition is advertised to the model so structured plans come
// back as tool invocations. Tool results are not round-tripped; the
// consumer only observes the calls and the reconciliation pipeline deals
// with whatever text made it onto the stream.
var planToolDefinition = openai.Tool{
	Type: openai.ToolTypeFunction,
	Function: &openai.FunctionDefinition{
		Name:        "generate_travel_plan",
		Description: "Produce the final structured travel plan as JSON",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"travel_plan": {"type": "object"}
			},
			"required": ["travel_plan"]
		}`),
	},
}

// OpenAIAgentClient implements AgentClientInterface over the OpenAI chat
// completion API.
type OpenAIAgentClient struct {
	client    *openai.Client
	model     string
	streaming bool
}

func NewOpenAIAgentClient(apiKey, model string, streaming bool) *OpenAIAgentClient {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIAgentClient{
		client:    openai.NewClient(apiKey),
		model:     model,
		streaming: streaming,
	}
}

func (c *OpenAIAgentClient) StreamTask(ctx context.Context, task string, model string) (<-chan agent_models.ResponseEvent, error) {
	if model == "" {
		model = c.model
	}

	request := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: plannerSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: task},
		},
		Tools: []openai.Tool{planToolDefinition},
	}

	if !c.streaming {
		return c.completeOnce(ctx, request)
	}

	stream, err := c.client.CreateChatCompletionStream(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("openai stream: %w", err)
	}

	events := make(chan agent_models.ResponseEvent)
	go func() {
		defer close(events)
		defer stream.Close()

		for {
			chunk, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				// Mid-stream failures end the sequence; whatever text
				// already arrived still flows into synthesis.
				log.Printf("openai stream: receive failed: %v", err)
				return
			}
			if len(chunk.Choices) == 0 {
				continue
			}

			delta := chunk.Choices[0].Delta
			if delta.Content != "" {
				events <- agent_models.TextEvent(delta.Content)
			}
			for _, call := range delta.ToolCalls {
				if call.Function.Name == "" {
					continue
				}
				events <- agent_models.ToolUseEvent(call.Function.Name, map[string]any{
					"arguments": call.Function.Arguments,
				})
			}
		}
	}()

	return events, nil
}

// completeOnce performs a blocking completion and emits the whole turn as
// a single message event.
func (c *OpenAIAgentClient) completeOnce(ctx context.Context, request openai.ChatCompletionRequest) (<-chan agent_models.ResponseEvent, error) {
	response, err := c.client.CreateChatCompletion(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("openai completion: %w", err)
	}

	var collected []agent_models.ResponseEvent
	for _, choice := range response.Choices {
		if choice.Message.Content != "" {
			collected = append(collected, agent_models.MessageEvent(choice.Message.Content))
		}
		for _, call := range choice.Message.ToolCalls {
			collected = append(collected, agent_models.ToolUseEvent(call.Function.Name, map[string]any{
				"arguments": call.Function.Arguments,
			}))
		}
	}

	events := make(chan agent_models.ResponseEvent, len(collected))
	for _, event := range collected {
		events <- event
	}
	close(events)

	return events, nil
}
