// Package driven provides interfaces for infrastructure adapters (secondary/outbound ports).
package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// The same service instance and configuration must be used for
// documents and queries; vectors from different models are not
// comparable. Embedding is deterministic: identical input under
// identical configuration yields identical vectors.
//
// Note: This is separate from VectorIndex which stores and searches
// vectors. EmbeddingService generates vectors; VectorIndex stores them.
//
// Implementations may include:
//   - OpenAI and OpenAI-compatible endpoints (text-embedding-3-small,
//     sentence-transformer servers)
//   - Ollama (nomic-embed-text, all-minilm)
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts in one
	// request, preserving input order. The ingestion pipeline calls
	// this once per batch, never per document.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g. 384, 1536).
	// This is fixed by the model and must match the collection.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request. Used at startup to fail fast on misconfiguration.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
