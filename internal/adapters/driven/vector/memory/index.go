// Package memory provides an in-memory vector index.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/citewise-labs/citewise-cli/internal/core/domain"
	"github.com/citewise-labs/citewise-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// collection holds records in insertion order plus an ID lookup for upserts.
type collection struct {
	dimensions int
	records    []domain.IndexRecord
	byID       map[string]int
}

// Index is an in-memory implementation of driven.VectorIndex. It is the
// zero-configuration backend used by ephemeral chat sessions and tests.
type Index struct {
	mu          sync.RWMutex
	collections map[string]*collection
}

// NewIndex creates a new in-memory vector index.
func NewIndex() *Index {
	return &Index{
		collections: make(map[string]*collection),
	}
}

// EnsureCollection creates the collection if it does not exist.
func (x *Index) EnsureCollection(_ context.Context, name string, dims int) error {
	if dims <= 0 {
		return fmt.Errorf("memory: collection %s: dimensions must be positive, got %d", name, dims)
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	if c, ok := x.collections[name]; ok {
		if c.dimensions != dims {
			return fmt.Errorf("memory: collection %s has dimension %d, want %d: %w",
				name, c.dimensions, dims, domain.ErrDimensionMismatch)
		}
		return nil
	}

	x.collections[name] = &collection{
		dimensions: dims,
		byID:       make(map[string]int),
	}
	return nil
}

// Upsert writes records to the collection. Existing IDs are replaced in
// place; new IDs are appended in the given order. The batch is validated
// before any record is written.
func (x *Index) Upsert(_ context.Context, name string, records []domain.IndexRecord) error {
	if len(records) == 0 {
		return nil
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	c, ok := x.collections[name]
	if !ok {
		return fmt.Errorf("memory: %w: %s", domain.ErrCollectionNotFound, name)
	}

	for _, record := range records {
		if len(record.Vector) != c.dimensions {
			return fmt.Errorf("memory: record %s has dimension %d, want %d: %w",
				record.ID, len(record.Vector), c.dimensions, domain.ErrDimensionMismatch)
		}
	}

	for _, record := range records {
		if pos, ok := c.byID[record.ID]; ok {
			c.records[pos] = record
			continue
		}
		c.byID[record.ID] = len(c.records)
		c.records = append(c.records, record)
	}
	return nil
}

// Search returns the k records most similar to the query vector by cosine
// similarity in descending order. Equal scores keep insertion order.
// A missing collection yields no records.
func (x *Index) Search(_ context.Context, name string, vector []float32, k int) ([]domain.ScoredRecord, error) {
	if k <= 0 {
		return nil, nil
	}

	x.mu.RLock()
	defer x.mu.RUnlock()

	c, ok := x.collections[name]
	if !ok {
		return nil, nil
	}
	if len(vector) != c.dimensions {
		return nil, fmt.Errorf("memory: query vector has dimension %d, want %d: %w",
			len(vector), c.dimensions, domain.ErrDimensionMismatch)
	}

	scored := make([]domain.ScoredRecord, 0, len(c.records))
	for _, record := range c.records {
		scored = append(scored, domain.ScoredRecord{
			Record: record,
			Score:  cosineSimilarity(vector, record.Vector),
		})
	}

	// Stable sort keeps insertion order for equal scores
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > k {
		scored = scored[:k]
	}
	return scored, nil
}

// DeleteCollection removes the collection and all its records.
func (x *Index) DeleteCollection(_ context.Context, name string) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	delete(x.collections, name)
	return nil
}

// Ping validates the backend is reachable.
func (x *Index) Ping(_ context.Context) error {
	return nil
}

// Close releases resources.
func (x *Index) Close() error {
	return nil
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Zero vectors score 0 against everything.
func cosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		av := float64(a[i])
		bv := float64(b[i])
		dot += av * bv
		normA += av * av
		normB += bv * bv
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
