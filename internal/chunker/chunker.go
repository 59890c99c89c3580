// Package chunker splits document text into overlapping, paragraph-respecting
// segments sized for embedding and retrieval.
package chunker

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultSize is the default maximum chunk size in characters.
	DefaultSize = 500
	// DefaultOverlap is the default carry-over between consecutive chunks.
	DefaultOverlap = 50
)

// paragraphBreak matches a run of whitespace containing at least one
// blank line. Paragraphs are the semantic unit: splitting on them avoids
// cutting mid-sentence.
var paragraphBreak = regexp.MustCompile(`\n\s*\n`)

// Chunker merges paragraphs into chunks no larger than Size characters,
// seeding each new chunk with the last Overlap characters of the previous
// one so context survives the boundary.
type Chunker struct {
	size    int
	overlap int
}

// New creates a Chunker. Non-positive size falls back to DefaultSize,
// negative overlap is treated as zero.
func New(size, overlap int) Chunker {
	if size <= 0 {
		size = DefaultSize
	}
	if overlap < 0 {
		overlap = 0
	}
	return Chunker{size: size, overlap: overlap}
}

// Split turns raw text into an ordered sequence of chunks.
//
// Paragraphs are accumulated until adding the next one (plus the two-byte
// "\n\n" separator) would exceed the size limit, at which point the
// accumulator is closed. A single paragraph longer than the limit becomes
// its own oversized chunk; paragraph boundaries are never violated.
// Empty input yields no chunks.
func (c Chunker) Split(text string) []string {
	paragraphs := splitParagraphs(text)
	if len(paragraphs) == 0 {
		return nil
	}

	var chunks []string
	var current string

	for _, paragraph := range paragraphs {
		if current != "" && runeLen(current)+runeLen(paragraph)+2 > c.size {
			chunks = append(chunks, strings.TrimSpace(current))

			if c.overlap > 0 && runeLen(current) > c.overlap {
				current = lastRunes(current, c.overlap) + "\n\n" + paragraph
			} else {
				current = paragraph
			}
			continue
		}

		if current != "" {
			current += "\n\n" + paragraph
		} else {
			current = paragraph
		}
	}

	if final := strings.TrimSpace(current); final != "" {
		chunks = append(chunks, final)
	}

	return chunks
}

func splitParagraphs(text string) []string {
	var paragraphs []string
	for _, p := range paragraphBreak.Split(text, -1) {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			paragraphs = append(paragraphs, trimmed)
		}
	}
	return paragraphs
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// lastRunes returns the trailing n characters of s. The suffix is taken
// verbatim and can start mid-word; chunk boundaries stay character-exact
// for compatibility with existing collections.
func lastRunes(s string, n int) string {
	runes := []rune(s)
	if n >= len(runes) {
		return s
	}
	return string(runes[len(runes)-n:])
}
