package utils

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashEmbeddingDeterministic(t *testing.T) {
	embedder := &HashEmbeddingClient{}

	first, err := embedder.GetEmbedding(context.Background(), "Lisbon food history")
	require.NoError(t, err)
	second, err := embedder.GetEmbedding(context.Background(), "lisbon  Food   history")
	require.NoError(t, err)

	assert.Equal(t, first, second, "embedding must be case and whitespace insensitive")
}

func TestHashEmbeddingNormalized(t *testing.T) {
	embedder := &HashEmbeddingClient{}

	vector, err := embedder.GetEmbedding(context.Background(), "temples gardens kyoto")
	require.NoError(t, err)

	slice := vector.Slice()
	require.Len(t, slice, embeddingDimensions)

	var magnitude float64
	for _, value := range slice {
		magnitude += float64(value) * float64(value)
	}
	assert.InDelta(t, 1.0, math.Sqrt(magnitude), 1e-3)
}

func TestHashEmbeddingEmptyText(t *testing.T) {
	embedder := &HashEmbeddingClient{}

	vector, err := embedder.GetEmbedding(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, vector.Slice(), embeddingDimensions)
}

func TestNewAgentClientUnknownProvider(t *testing.T) {
	_, err := NewAgentClient("bedrock", "key", "", true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported agent provider")
}
