package handlers

import (
	"net/http"

	"github.com/clearpath-labs/policyrag/internal/api"
)

type HealthHandler struct {
	svc            SearchService
	collection     string
	embeddingModel string
}

func NewHealthHandler(svc SearchService, collection, embeddingModel string) *HealthHandler {
	return &HealthHandler{
		svc:            svc,
		collection:     collection,
		embeddingModel: embeddingModel,
	}
}

type HealthResponse struct {
	Status         string `json:"status"`
	CollectionName string `json:"collection_name"`
	TotalChunks    int    `json:"total_chunks"`
	EmbeddingModel string `json:"embedding_model"`
}

// Health reports service status and collection size. A count failure is
// reported as degraded rather than an error so load balancers still get a
// well-formed body.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:         "healthy",
		CollectionName: h.collection,
		EmbeddingModel: h.embeddingModel,
	}

	total, err := h.svc.Count(r.Context())
	if err != nil {
		resp.Status = "degraded"
		api.Success(w, http.StatusOK, resp)
		return
	}
	resp.TotalChunks = total

	api.Success(w, http.StatusOK, resp)
}
