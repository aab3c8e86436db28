package driven

import "github.com/citewise-labs/citewise-cli/internal/core/domain"

// Chunker cuts parsed documents into embedding-sized chunks.
type Chunker interface {
	// Chunk cuts a parsed document into chunks in reading order, each
	// tagged with the source file name and its ordinal. A document
	// with no usable text yields an empty slice, not an error.
	Chunk(doc *domain.ParsedDocument) []domain.Chunk
}
