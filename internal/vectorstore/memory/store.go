// Package memory provides an in-process vector store using brute-force
// cosine distance. It backs local development and tests, where running
// Postgres with pgvector is not worth the setup.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/clearpath-labs/policyrag/internal/vectorstore"
)

// Store holds entries in memory. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	entries []vectorstore.Entry
}

func NewStore() *Store { return &Store{} }

func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	return nil
}

func (s *Store) Add(ctx context.Context, entries []vectorstore.Entry) error {
	for _, e := range entries {
		if len(e.Embedding) == 0 {
			return fmt.Errorf("entry %s has no embedding", e.ID)
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entries...)
	return nil
}

func (s *Store) Query(ctx context.Context, embedding []float32, k int) ([]vectorstore.Match, error) {
	if len(embedding) == 0 {
		return nil, fmt.Errorf("query embedding cannot be empty")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]vectorstore.Match, 0, len(s.entries))
	for _, e := range s.entries {
		matches = append(matches, vectorstore.Match{
			Text:     e.Text,
			Metadata: e.Metadata,
			Distance: cosineDistance(embedding, e.Embedding),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})

	if k < len(matches) {
		matches = matches[:k]
	}
	return matches, nil
}

func (s *Store) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries), nil
}

// cosineDistance returns 1 - cos(a, b), the same convention pgvector's
// <=> operator reports: 0 for identical direction, 2 for opposite.
func cosineDistance(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
}
