package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/clearpath-labs/policyrag/internal/api"
	"github.com/clearpath-labs/policyrag/internal/service"
	"github.com/clearpath-labs/policyrag/internal/telemetry"
)

type IngestService interface {
	Ingest(ctx context.Context) (service.IngestStats, error)
}

type IngestHandler struct {
	svc IngestService
}

func NewIngestHandler(svc IngestService) *IngestHandler {
	return &IngestHandler{svc: svc}
}

type IngestResponse struct {
	DocumentsProcessed int    `json:"documents_processed"`
	TotalChunks        int    `json:"total_chunks"`
	Message            string `json:"message"`
}

// Ingest rebuilds the collection from the configured document source.
func (h *IngestHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Ingest(r.Context())
	if err != nil {
		telemetry.CaptureError(r.Context(), err)
		api.Error(w, http.StatusInternalServerError, fmt.Sprintf("ingestion failed: %v", err))
		return
	}

	api.Success(w, http.StatusOK, IngestResponse{
		DocumentsProcessed: stats.DocumentsProcessed,
		TotalChunks:        stats.TotalChunks,
		Message:            fmt.Sprintf("ingested %d chunks from %d documents", stats.TotalChunks, stats.DocumentsProcessed),
	})
}
