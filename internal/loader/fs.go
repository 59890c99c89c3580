// Package loader provides document sources for ingestion: a local
// directory of markdown files and an optional S3-compatible bucket.
package loader

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/clearpath-labs/policyrag/internal/domain"
)

// markdownLike reports whether a filename looks like a markdown document.
func markdownLike(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// FSSource loads policy documents from a local directory.
type FSSource struct {
	dir string
}

func NewFSSource(dir string) *FSSource {
	return &FSSource{dir: dir}
}

// Load returns all markdown-like documents in the directory, sorted by
// filename so chunk id assignment is deterministic. Files that cannot be
// read are logged and skipped.
func (s *FSSource) Load(ctx context.Context) ([]domain.Document, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !markdownLike(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	docs := make([]domain.Document, 0, len(names))
	for _, name := range names {
		content, err := os.ReadFile(filepath.Join(s.dir, name))
		if err != nil {
			log.Printf("loader: skipping unreadable file %s: %v", name, err)
			continue
		}
		docs = append(docs, domain.Document{Filename: name, Content: string(content)})
		log.Printf("loader: loaded %s (%d chars)", name, len(content))
	}

	return docs, nil
}
