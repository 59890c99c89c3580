package service

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/clearpath-labs/policyrag/internal/chunker"
	"github.com/clearpath-labs/policyrag/internal/domain"
	"github.com/clearpath-labs/policyrag/internal/telemetry"
	"github.com/clearpath-labs/policyrag/internal/vectorstore"
)

// DocumentSource yields (filename, content) pairs for ingestion, sorted by
// filename so chunk id assignment is deterministic.
type DocumentSource interface {
	Load(ctx context.Context) ([]domain.Document, error)
}

// IngestStats reports the outcome of an ingest run.
type IngestStats struct {
	DocumentsProcessed int
	TotalChunks        int
}

// Ingestor runs the full ingest pipeline: load documents, chunk, embed,
// store. Ingestion is full-replace: the collection is cleared first, so
// re-ingesting the same document set is idempotent but never additive.
//
// Concurrent searches during an ingest can observe a transiently empty or
// partially populated collection; callers needing strict consistency must
// serialize ingest against search themselves.
type Ingestor struct {
	source   DocumentSource
	embedder Embedder
	store    vectorstore.Store
	chunker  chunker.Chunker
}

func NewIngestor(source DocumentSource, embedder Embedder, store vectorstore.Store, c chunker.Chunker) *Ingestor {
	return &Ingestor{
		source:   source,
		embedder: embedder,
		store:    store,
		chunker:  c,
	}
}

// Ingest loads all documents from the source and rebuilds the collection.
// A missing or unreadable document source degrades to a no-op returning
// zero counts; embedding provider and index failures propagate.
func (s *Ingestor) Ingest(ctx context.Context) (IngestStats, error) {
	ctx, span := telemetry.StartSpan(ctx, "Ingestor.Ingest", telemetry.SpanAttributes{
		Operation: "ingest",
	})
	defer span.End()

	if err := s.store.Clear(ctx); err != nil {
		span.SetError(err)
		return IngestStats{}, fmt.Errorf("failed to clear collection: %w", err)
	}

	docs, err := s.source.Load(ctx)
	if err != nil {
		log.Printf("ingest: no documents found: %v", err)
		return IngestStats{}, nil
	}
	if len(docs) == 0 {
		log.Println("ingest: no documents found to ingest")
		return IngestStats{}, nil
	}

	var entries []vectorstore.Entry
	var texts []string

	for _, doc := range docs {
		for i, text := range s.chunker.Split(doc.Content) {
			chunk := domain.Chunk{Text: text, Source: doc.Filename, Index: i}
			if err := domain.ValidateChunk(chunk); err != nil {
				span.SetError(err)
				return IngestStats{}, fmt.Errorf("invalid chunk from %q: %w", doc.Filename, err)
			}
			entries = append(entries, vectorstore.Entry{
				ID:   chunk.ID(),
				Text: chunk.Text,
				Metadata: map[string]string{
					"source":      chunk.Source,
					"chunk_index": strconv.Itoa(chunk.Index),
				},
			})
			texts = append(texts, chunk.Text)
		}
	}

	if len(entries) == 0 {
		log.Printf("ingest: %d documents produced no chunks", len(docs))
		return IngestStats{DocumentsProcessed: len(docs)}, nil
	}

	log.Printf("ingest: embedding %d chunks...", len(entries))
	embeddings, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		span.SetError(err)
		return IngestStats{}, fmt.Errorf("failed to embed chunks: %w", err)
	}
	if len(embeddings) != len(entries) {
		err := fmt.Errorf("embedding count mismatch: %d chunks, %d embeddings", len(entries), len(embeddings))
		span.SetError(err)
		return IngestStats{}, err
	}

	for i := range entries {
		entries[i].Embedding = embeddings[i]
	}

	if err := s.store.Add(ctx, entries); err != nil {
		span.SetError(err)
		return IngestStats{}, fmt.Errorf("failed to store chunks: %w", err)
	}

	stats := IngestStats{DocumentsProcessed: len(docs), TotalChunks: len(entries)}
	log.Printf("ingest: %d documents -> %d chunks", stats.DocumentsProcessed, stats.TotalChunks)
	return stats, nil
}
