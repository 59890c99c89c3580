// Package pgvector implements the vector store on Postgres with the
// pgvector extension. Cosine distance comes from the <=> operator, which
// reports values in [0, 2].
package pgvector

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/clearpath-labs/policyrag/internal/vectorstore"
)

// Store persists chunk embeddings in the policy_chunks table, scoped to a
// named collection.
type Store struct {
	pool       *pgxpool.Pool
	collection string
}

func NewStore(pool *pgxpool.Pool, collection string) *Store {
	return &Store{pool: pool, collection: collection}
}

// Clear removes all entries for the collection. Clearing a collection
// that was never written is a no-op.
func (s *Store) Clear(ctx context.Context) error {
	_, err := s.pool.Exec(ctx,
		`DELETE FROM policy_chunks WHERE collection = $1`, s.collection)
	if err != nil {
		return fmt.Errorf("failed to clear collection %s: %w", s.collection, err)
	}
	return nil
}

func (s *Store) Add(ctx context.Context, entries []vectorstore.Entry) error {
	for _, e := range entries {
		chunkIndex := 0
		if raw, ok := e.Metadata["chunk_index"]; ok {
			if parsed, err := strconv.Atoi(raw); err == nil {
				chunkIndex = parsed
			}
		}

		_, err := s.pool.Exec(ctx,
			`INSERT INTO policy_chunks
				(collection, chunk_id, source, chunk_index, content, embedding)
			 VALUES
				($1, $2, $3, $4, $5, $6)
			 ON CONFLICT (collection, chunk_id) DO UPDATE SET
				source = EXCLUDED.source,
				chunk_index = EXCLUDED.chunk_index,
				content = EXCLUDED.content,
				embedding = EXCLUDED.embedding`,
			s.collection,
			e.ID,
			e.Metadata["source"],
			chunkIndex,
			e.Text,
			pgvector.NewVector(e.Embedding),
		)
		if err != nil {
			return fmt.Errorf("failed to store chunk %s: %w", e.ID, err)
		}
	}
	return nil
}

func (s *Store) Query(ctx context.Context, embedding []float32, k int) ([]vectorstore.Match, error) {
	if k <= 0 {
		return []vectorstore.Match{}, nil
	}

	vec := pgvector.NewVector(embedding)

	rows, err := s.pool.Query(ctx,
		`SELECT content, source, chunk_index, embedding <=> $1 AS distance
		 FROM policy_chunks
		 WHERE collection = $2
		 ORDER BY embedding <=> $1
		 LIMIT $3`,
		vec, s.collection, k)
	if err != nil {
		return nil, fmt.Errorf("failed to query collection %s: %w", s.collection, err)
	}
	defer rows.Close()

	matches := make([]vectorstore.Match, 0, k)
	for rows.Next() {
		var (
			content    string
			source     string
			chunkIndex int
			distance   float64
		)
		if err := rows.Scan(&content, &source, &chunkIndex, &distance); err != nil {
			return nil, err
		}
		matches = append(matches, vectorstore.Match{
			Text: content,
			Metadata: map[string]string{
				"source":      source,
				"chunk_index": strconv.Itoa(chunkIndex),
			},
			Distance: distance,
		})
	}

	return matches, rows.Err()
}

func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx,
		`SELECT count(*) FROM policy_chunks WHERE collection = $1`, s.collection).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count collection %s: %w", s.collection, err)
	}
	return count, nil
}
