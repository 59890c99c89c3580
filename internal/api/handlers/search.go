package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/clearpath-labs/policyrag/internal/api"
	"github.com/clearpath-labs/policyrag/internal/domain"
	"github.com/clearpath-labs/policyrag/internal/telemetry"
)

// MaxTopK bounds how many results a single search may request.
const MaxTopK = 10

type SearchService interface {
	Search(ctx context.Context, query string, topK int) ([]domain.ChunkResult, error)
	Count(ctx context.Context) (int, error)
}

type SearchHandler struct {
	svc SearchService
}

func NewSearchHandler(svc SearchService) *SearchHandler {
	return &SearchHandler{svc: svc}
}

type SearchRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k"`
}

type SearchResultResponse struct {
	Text   string  `json:"text"`
	Source string  `json:"source"`
	Score  float64 `json:"score"`
}

type SearchResponse struct {
	Query       string                 `json:"query"`
	Results     []SearchResultResponse `json:"results"`
	TotalChunks int                    `json:"total_chunks"`
}

func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Query) == "" {
		api.HandleError(w, domain.ErrEmptyQuery)
		return
	}
	if req.TopK < 0 || req.TopK > MaxTopK {
		api.HandleError(w, domain.ErrInvalidTopK)
		return
	}

	results, err := h.svc.Search(r.Context(), req.Query, req.TopK)
	if err != nil {
		telemetry.CaptureError(r.Context(), err)
		api.Error(w, http.StatusInternalServerError, fmt.Sprintf("search failed: %v", err))
		return
	}

	total, err := h.svc.Count(r.Context())
	if err != nil {
		telemetry.CaptureError(r.Context(), err)
		api.Error(w, http.StatusInternalServerError, fmt.Sprintf("search failed: %v", err))
		return
	}

	resp := SearchResponse{
		Query:       req.Query,
		Results:     make([]SearchResultResponse, 0, len(results)),
		TotalChunks: total,
	}
	for _, res := range results {
		resp.Results = append(resp.Results, SearchResultResponse{
			Text:   res.Text,
			Source: res.Source,
			Score:  res.Score,
		})
	}

	api.Success(w, http.StatusOK, resp)
}
