// Package vectorstore defines the vector index boundary: a collection of
// (id, text, embedding, metadata) entries queried by nearest-neighbor
// search over embeddings.
package vectorstore

import "context"

// Entry is a stored chunk with its embedding and provenance metadata.
type Entry struct {
	ID        string
	Text      string
	Embedding []float32
	Metadata  map[string]string
}

// Match is a query result. Distance is the cosine distance in [0, 2]
// reported by the index; lower means more similar.
type Match struct {
	Text     string
	Metadata map[string]string
	Distance float64
}

// Store is a named collection supporting nearest-neighbor search.
// Implementations must return query matches sorted by ascending distance
// and must treat clearing an absent collection as a no-op.
type Store interface {
	// Clear removes all entries from the collection.
	Clear(ctx context.Context) error
	// Add stores entries in the collection.
	Add(ctx context.Context, entries []Entry) error
	// Query returns up to k nearest entries for the given embedding,
	// sorted by ascending distance.
	Query(ctx context.Context, embedding []float32, k int) ([]Match, error)
	// Count returns the number of entries in the collection.
	Count(ctx context.Context) (int, error)
}
