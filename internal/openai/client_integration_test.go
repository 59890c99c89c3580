//go:build integration

package openai

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegration_EmbedBatch_RealAPI(t *testing.T) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		t.Skip("OPENAI_API_KEY not set, skipping integration test")
	}

	client := NewClient(apiKey)
	ctx := context.Background()
	texts := []string{
		"Refunds are processed within 14 business days.",
		"Standard shipping takes 3-5 business days.",
	}

	embeddings, err := client.EmbedBatch(ctx, texts)

	require.NoError(t, err)
	require.Len(t, embeddings, 2)
	for _, embedding := range embeddings {
		assert.Len(t, embedding, DefaultEmbeddingDimensions)
	}
}

func TestIntegration_Embed_RealAPI(t *testing.T) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		t.Skip("OPENAI_API_KEY not set, skipping integration test")
	}

	client := NewClient(apiKey)
	embedding, err := client.Embed(context.Background(), "What is the return policy?")

	require.NoError(t, err)
	assert.Len(t, embedding, DefaultEmbeddingDimensions)
}
