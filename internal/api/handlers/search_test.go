package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/clearpath-labs/policyrag/internal/domain"
)

type MockSearchService struct {
	mock.Mock
}

func (m *MockSearchService) Search(ctx context.Context, query string, topK int) ([]domain.ChunkResult, error) {
	args := m.Called(ctx, query, topK)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChunkResult), args.Error(1)
}

func (m *MockSearchService) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func postSearch(t *testing.T, handler *SearchHandler, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/search", bytes.NewReader(payload))
	w := httptest.NewRecorder()
	handler.Search(w, req)
	return w
}

func TestSearchHandler_Success(t *testing.T) {
	mockSvc := new(MockSearchService)
	handler := NewSearchHandler(mockSvc)

	results := []domain.ChunkResult{
		{Text: "Refunds are issued within 14 days.", Source: "returns.md", Score: 0.9383},
		{Text: "Items must be unused.", Source: "returns.md", Score: 0.8712},
	}
	mockSvc.On("Search", mock.Anything, "refund policy", 2).Return(results, nil)
	mockSvc.On("Count", mock.Anything).Return(42, nil)

	w := postSearch(t, handler, SearchRequest{Query: "refund policy", TopK: 2})

	assert.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data SearchResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "refund policy", envelope.Data.Query)
	assert.Equal(t, 42, envelope.Data.TotalChunks)
	require.Len(t, envelope.Data.Results, 2)
	assert.Equal(t, "returns.md", envelope.Data.Results[0].Source)
	assert.InDelta(t, 0.9383, envelope.Data.Results[0].Score, 1e-9)
	mockSvc.AssertExpectations(t)
}

func TestSearchHandler_EmptyQuery(t *testing.T) {
	mockSvc := new(MockSearchService)
	handler := NewSearchHandler(mockSvc)

	w := postSearch(t, handler, SearchRequest{Query: "   ", TopK: 3})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "query cannot be empty")
	mockSvc.AssertNotCalled(t, "Search")
}

func TestSearchHandler_TopKOutOfRange(t *testing.T) {
	mockSvc := new(MockSearchService)
	handler := NewSearchHandler(mockSvc)

	for _, topK := range []int{-1, MaxTopK + 1} {
		w := postSearch(t, handler, SearchRequest{Query: "refunds", TopK: topK})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "top_k")
	}
	mockSvc.AssertNotCalled(t, "Search")
}

func TestSearchHandler_ZeroTopKUsesDefault(t *testing.T) {
	mockSvc := new(MockSearchService)
	handler := NewSearchHandler(mockSvc)

	mockSvc.On("Search", mock.Anything, "refunds", 0).Return([]domain.ChunkResult{}, nil)
	mockSvc.On("Count", mock.Anything).Return(0, nil)

	w := postSearch(t, handler, SearchRequest{Query: "refunds"})

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestSearchHandler_EmptyResults(t *testing.T) {
	mockSvc := new(MockSearchService)
	handler := NewSearchHandler(mockSvc)

	mockSvc.On("Search", mock.Anything, "refunds", 3).Return([]domain.ChunkResult{}, nil)
	mockSvc.On("Count", mock.Anything).Return(0, nil)

	w := postSearch(t, handler, SearchRequest{Query: "refunds", TopK: 3})

	assert.Equal(t, http.StatusOK, w.Code)
	// results must serialize as [] rather than null
	assert.Contains(t, w.Body.String(), `"results":[]`)
}

func TestSearchHandler_InvalidBody(t *testing.T) {
	mockSvc := new(MockSearchService)
	handler := NewSearchHandler(mockSvc)

	req := httptest.NewRequest(http.MethodPost, "/search", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	handler.Search(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")
}

func TestSearchHandler_ServiceError(t *testing.T) {
	mockSvc := new(MockSearchService)
	handler := NewSearchHandler(mockSvc)

	mockSvc.On("Search", mock.Anything, "refunds", 3).Return(nil, errors.New("provider unavailable"))

	w := postSearch(t, handler, SearchRequest{Query: "refunds", TopK: 3})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "search failed")
	assert.Contains(t, w.Body.String(), "provider unavailable")
}
