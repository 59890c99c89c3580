package openai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockOpenAIAPI is a mock for the OpenAI API
type MockOpenAIAPI struct {
	mock.Mock
}

func (m *MockOpenAIAPI) CreateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	args := m.Called(ctx, texts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]float32), args.Error(1)
}

func testEmbedding(dims int, seed float32) []float32 {
	embedding := make([]float32, dims)
	for i := range embedding {
		embedding[i] = seed + float32(i)*0.001
	}
	return embedding
}

func TestClient_Embed_Success(t *testing.T) {
	mockAPI := new(MockOpenAIAPI)
	client := &Client{api: mockAPI, dimensions: 1536}

	ctx := context.Background()
	text := "What is the refund window for returned items?"
	expected := testEmbedding(1536, 0)

	mockAPI.On("CreateEmbeddings", ctx, []string{text}).Return([][]float32{expected}, nil)

	embedding, err := client.Embed(ctx, text)

	assert.NoError(t, err)
	assert.Len(t, embedding, 1536)
	assert.Equal(t, expected, embedding)
	mockAPI.AssertExpectations(t)
}

func TestClient_Embed_EmptyText(t *testing.T) {
	client := NewClient("")

	embedding, err := client.Embed(context.Background(), "")

	assert.Error(t, err)
	assert.Nil(t, embedding)
	assert.Equal(t, ErrEmptyText, err)
}

func TestClient_EmbedBatch_Success(t *testing.T) {
	mockAPI := new(MockOpenAIAPI)
	client := &Client{api: mockAPI, dimensions: 1536}

	ctx := context.Background()
	texts := []string{"chunk one", "chunk two", "chunk three"}
	expected := [][]float32{
		testEmbedding(1536, 0),
		testEmbedding(1536, 1),
		testEmbedding(1536, 2),
	}

	mockAPI.On("CreateEmbeddings", ctx, texts).Return(expected, nil)

	embeddings, err := client.EmbedBatch(ctx, texts)

	assert.NoError(t, err)
	assert.Equal(t, expected, embeddings)
	mockAPI.AssertExpectations(t)
}

func TestClient_EmbedBatch_Empty(t *testing.T) {
	client := NewClient("test-key")

	embeddings, err := client.EmbedBatch(context.Background(), nil)

	assert.Error(t, err)
	assert.Nil(t, embeddings)
	assert.Equal(t, ErrEmptyText, err)
}

func TestClient_EmbedBatch_APIError(t *testing.T) {
	mockAPI := new(MockOpenAIAPI)
	client := &Client{api: mockAPI, dimensions: 1536}

	ctx := context.Background()
	texts := []string{"some text"}
	apiErr := errors.New("API rate limit exceeded")

	mockAPI.On("CreateEmbeddings", ctx, texts).Return(nil, apiErr)

	embeddings, err := client.EmbedBatch(ctx, texts)

	assert.Error(t, err)
	assert.Nil(t, embeddings)
	assert.Contains(t, err.Error(), "failed to create embeddings")
	mockAPI.AssertExpectations(t)
}

func TestClient_EmbedBatch_WrongDimensions(t *testing.T) {
	mockAPI := new(MockOpenAIAPI)
	client := &Client{api: mockAPI, dimensions: 1536}

	ctx := context.Background()
	texts := []string{"some text"}

	mockAPI.On("CreateEmbeddings", ctx, texts).Return([][]float32{make([]float32, 512)}, nil)

	embeddings, err := client.EmbedBatch(ctx, texts)

	assert.Error(t, err)
	assert.Nil(t, embeddings)
	assert.ErrorIs(t, err, ErrWrongDimensions)
	mockAPI.AssertExpectations(t)
}

func TestNewClientWithConfig_Defaults(t *testing.T) {
	client := NewClientWithConfig(Config{APIKey: "test-api-key"})

	assert.NotNil(t, client.api)
	assert.Equal(t, string(DefaultEmbeddingModel), client.Model())
	assert.Equal(t, DefaultEmbeddingDimensions, client.dimensions)
}
