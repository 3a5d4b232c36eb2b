package utils

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"strings"

	"github.com/pgvector/pgvector-go"
	openai "github.com/sashabaranov/go-openai"
)

const embeddingDimensions = 1536

// EmbeddingClientInterface turns free text into a vector for similarity
// search over saved plans.
type EmbeddingClientInterface interface {
	GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error)
}

// NewTextEmbedder picks the embedding backend. With no OpenAI key the
// deterministic hash embedder keeps similarity search working offline.
func NewTextEmbedder(apiKey, model string) EmbeddingClientInterface {
	if apiKey == "" {
		return &HashEmbeddingClient{}
	}
	if model == "" {
		model = string(openai.SmallEmbedding3)
	}
	return &OpenAIEmbeddingClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// OpenAIEmbeddingClient uses the OpenAI embeddings API.
type OpenAIEmbeddingClient struct {
	client *openai.Client
	model  string
}

func (c *OpenAIEmbeddingClient) GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	response, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(c.model),
	})
	if err != nil {
		return pgvector.Vector{}, fmt.Errorf("openai embeddings: %w", err)
	}
	if len(response.Data) == 0 {
		return pgvector.Vector{}, fmt.Errorf("openai embeddings: empty response")
	}
	return pgvector.NewVector(response.Data[0].Embedding), nil
}

// HashEmbeddingClient builds a deterministic word-hash vector. Not a real
// semantic embedding, but stable and dependency-free for tests and
// keyless deployments.
type HashEmbeddingClient struct{}

func (c *HashEmbeddingClient) GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(text)))

	vector := make([]float32, embeddingDimensions)
	for _, word := range words {
		hash := hashWord(word)
		for i := 0; i < embeddingDimensions; i++ {
			vector[i] += float32(math.Sin(float64(hash+uint32(i))) * 0.1)
		}
	}

	var magnitude float32
	for _, value := range vector {
		magnitude += value * value
	}
	magnitude = float32(math.Sqrt(float64(magnitude)))
	if magnitude > 0 {
		for i := range vector {
			vector[i] /= magnitude
		}
	}

	return pgvector.NewVector(vector), nil
}

func hashWord(word string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(word))
	return h.Sum32()
}
