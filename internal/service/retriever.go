package service

import (
	"context"
	"fmt"
	"log"

	"github.com/clearpath-labs/policyrag/internal/domain"
	"github.com/clearpath-labs/policyrag/internal/telemetry"
	"github.com/clearpath-labs/policyrag/internal/vectorstore"
)

// UnknownSource is the provenance reported when a stored chunk carries no
// source metadata. Absent metadata is a data-integrity concern, not a
// request-time failure.
const UnknownSource = "unknown"

// Embedder defines the embedding provider interface consumed by the
// retriever and the ingestor. Embeddings are order-preserving: one vector
// per input text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Retriever answers natural-language queries by embedding them and
// returning the most similar stored chunks with provenance.
type Retriever struct {
	embedder    Embedder
	store       vectorstore.Store
	scorer      ScoreMapper
	defaultTopK int
}

// NewRetriever creates a Retriever with the cosine-distance score mapping.
func NewRetriever(embedder Embedder, store vectorstore.Store, defaultTopK int) *Retriever {
	return NewRetrieverWithScorer(embedder, store, CosineDistanceMapper{}, defaultTopK)
}

// NewRetrieverWithScorer creates a Retriever with an explicit score mapper.
func NewRetrieverWithScorer(embedder Embedder, store vectorstore.Store, scorer ScoreMapper, defaultTopK int) *Retriever {
	if defaultTopK <= 0 {
		defaultTopK = 3
	}
	return &Retriever{
		embedder:    embedder,
		store:       store,
		scorer:      scorer,
		defaultTopK: defaultTopK,
	}
}

// Search embeds the query and returns up to topK results ranked best
// first, in the order the index returned them (ascending distance).
// An empty collection yields an empty result list, not an error.
// Embedding provider and index failures propagate to the caller.
func (r *Retriever) Search(ctx context.Context, query string, topK int) ([]domain.ChunkResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "Retriever.Search", telemetry.SpanAttributes{
		Operation: "search",
	})
	defer span.End()

	if topK <= 0 {
		topK = r.defaultTopK
	}

	count, err := r.store.Count(ctx)
	if err != nil {
		span.SetError(err)
		return nil, fmt.Errorf("failed to count collection: %w", err)
	}
	if count == 0 {
		log.Println("retriever: collection is empty, has ingestion run?")
		return []domain.ChunkResult{}, nil
	}

	embedding, err := r.embedder.Embed(ctx, query)
	if err != nil {
		span.SetError(err)
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	k := topK
	if count < k {
		k = count
	}

	matches, err := r.store.Query(ctx, embedding, k)
	if err != nil {
		span.SetError(err)
		return nil, fmt.Errorf("failed to query collection: %w", err)
	}

	results := make([]domain.ChunkResult, 0, len(matches))
	for _, match := range matches {
		source, ok := match.Metadata["source"]
		if !ok || source == "" {
			log.Printf("retriever: chunk missing source metadata, using %q", UnknownSource)
			source = UnknownSource
		}

		results = append(results, domain.ChunkResult{
			Text:   match.Text,
			Source: source,
			Score:  r.scorer.Score(match.Distance),
		})
	}

	if len(results) > 0 {
		log.Printf("retriever: query %q -> %d results (top score: %.4f)",
			truncate(query, 60), len(results), results[0].Score)
	}

	return results, nil
}

// Count returns the number of chunks in the collection.
func (r *Retriever) Count(ctx context.Context) (int, error) {
	return r.store.Count(ctx)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
