package driven

import (
	"context"

	"github.com/citewise-labs/citewise-cli/internal/core/domain"
)

// VectorIndex stores embeddings and answers nearest-neighbour queries.
// Records are scoped to named collections; the backend must isolate
// collections from each other so independent sessions never share
// state. Safe for concurrent use by distinct collections.
//
// Implementations may include:
//   - SQLite (local file, brute-force cosine scan)
//   - Qdrant (server, REST API)
//   - In-memory (ephemeral sessions and tests)
type VectorIndex interface {
	// EnsureCollection creates the collection if it does not exist.
	// dims fixes the vector dimension for the collection's lifetime.
	EnsureCollection(ctx context.Context, collection string, dims int) error

	// Upsert writes records to the collection in one call.
	// Each record's vector must match the collection dimension.
	// Upserting into a missing collection returns ErrCollectionNotFound.
	Upsert(ctx context.Context, collection string, records []domain.IndexRecord) error

	// Search returns the k records most similar to the query vector,
	// ordered by similarity score descending. Ties keep insertion
	// order. Fewer than k records are returned when the collection
	// holds fewer; searching a missing collection returns no records.
	Search(ctx context.Context, collection string, vector []float32, k int) ([]domain.ScoredRecord, error)

	// DeleteCollection removes the collection and all its records.
	// Deleting a missing collection is not an error.
	DeleteCollection(ctx context.Context, collection string) error

	// Ping validates the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
