package domain

import "fmt"

// Document represents a single policy document loaded from a document source.
// Identity is the filename; content is immutable for the duration of an
// ingest run.
type Document struct {
	Filename string
	Content  string
}

// Chunk is a contiguous, paragraph-respecting segment of a source document,
// sized for embedding and retrieval granularity.
type Chunk struct {
	Text   string
	Source string
	Index  int
}

// ID returns the deterministic composite identifier for the chunk,
// unique within a collection. Re-ingesting the same document with the
// same chunk layout reproduces the same ids.
func (c Chunk) ID() string {
	return fmt.Sprintf("%s::chunk_%d", c.Source, c.Index)
}

// ChunkResult is a retrieved chunk with provenance and a normalized
// similarity score in [0, 1], where higher means more relevant.
// It is derived per query and never stored.
type ChunkResult struct {
	Text   string
	Source string
	Score  float64
}

// ValidateChunk validates a Chunk instance before storage.
func ValidateChunk(c Chunk) error {
	if c.Text == "" {
		return fmt.Errorf("chunk text cannot be empty")
	}
	if c.Source == "" {
		return fmt.Errorf("chunk source cannot be empty")
	}
	if c.Index < 0 {
		return fmt.Errorf("chunk index cannot be negative")
	}
	return nil
}
