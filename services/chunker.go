package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/tmc/langchaingo/textsplitter"

	"github.com/docuask/docuask/models"
)

const (
	// DefaultChunkSize and DefaultChunkOverlap match the splitter parameters
	// the documents were originally indexed with.
	DefaultChunkSize    = 500
	DefaultChunkOverlap = 50
)

// Chunker splits extracted text into overlapping windows suitable for
// embedding. Splitting is recursive over paragraph, sentence and word
// boundaries, falling back to raw characters when no separator fits.
type Chunker struct {
	chunkSize int
	overlap   int
}

// NewChunker returns a Chunker with the given window size and overlap.
// Non-positive values fall back to the defaults.
func NewChunker(chunkSize, overlap int) *Chunker {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = DefaultChunkOverlap
	}
	return &Chunker{chunkSize: chunkSize, overlap: overlap}
}

// Split produces the ordered chunk sequence for one document. Each chunk gets
// a fresh unique id and carries its source filename and position. Text
// shorter than the chunk size yields exactly one chunk.
func (c *Chunker) Split(source, text string) ([]models.Chunk, error) {
	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(c.chunkSize),
		textsplitter.WithChunkOverlap(c.overlap),
	)
	parts, err := splitter.SplitText(text)
	if err != nil {
		return nil, fmt.Errorf("failed to split text: %w", err)
	}

	chunks := make([]models.Chunk, 0, len(parts))
	for i, part := range parts {
		chunks = append(chunks, models.Chunk{
			ID:       uuid.New().String(),
			Source:   source,
			Text:     part,
			Position: i,
		})
	}
	return chunks, nil
}
