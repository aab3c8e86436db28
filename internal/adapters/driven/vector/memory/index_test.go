package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citewise-labs/citewise-cli/internal/core/domain"
)

func record(id string, vector []float32) domain.IndexRecord {
	return domain.IndexRecord{
		ID:       id,
		Vector:   vector,
		Text:     "text for " + id,
		FileName: "file.pdf",
	}
}

func TestNewIndex(t *testing.T) {
	index := NewIndex()
	require.NotNil(t, index)
	assert.NotNil(t, index.collections)
}

func TestIndex_EnsureCollection_Success(t *testing.T) {
	index := NewIndex()
	ctx := context.Background()

	err := index.EnsureCollection(ctx, "docs", 3)
	require.NoError(t, err)

	// Ensuring again with the same dimension is a no-op
	err = index.EnsureCollection(ctx, "docs", 3)
	assert.NoError(t, err)
}

func TestIndex_EnsureCollection_DimensionConflict(t *testing.T) {
	index := NewIndex()
	ctx := context.Background()

	err := index.EnsureCollection(ctx, "docs", 3)
	require.NoError(t, err)

	err = index.EnsureCollection(ctx, "docs", 4)
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
}

func TestIndex_EnsureCollection_InvalidDimensions(t *testing.T) {
	index := NewIndex()
	ctx := context.Background()

	assert.Error(t, index.EnsureCollection(ctx, "docs", 0))
	assert.Error(t, index.EnsureCollection(ctx, "docs", -1))
}

func TestIndex_Upsert_Success(t *testing.T) {
	index := NewIndex()
	ctx := context.Background()

	require.NoError(t, index.EnsureCollection(ctx, "docs", 3))

	records := []domain.IndexRecord{
		record("rec-1", []float32{1, 0, 0}),
		record("rec-2", []float32{0, 1, 0}),
	}
	err := index.Upsert(ctx, "docs", records)
	require.NoError(t, err)

	results, err := index.Search(ctx, "docs", []float32{1, 0, 0}, 10)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestIndex_Upsert_MissingCollection(t *testing.T) {
	index := NewIndex()
	ctx := context.Background()

	err := index.Upsert(ctx, "nonexistent", []domain.IndexRecord{
		record("rec-1", []float32{1, 0, 0}),
	})
	assert.ErrorIs(t, err, domain.ErrCollectionNotFound)
}

func TestIndex_Upsert_Empty(t *testing.T) {
	index := NewIndex()
	ctx := context.Background()

	// Empty and nil batches are no-ops even without the collection
	assert.NoError(t, index.Upsert(ctx, "nonexistent", nil))
	assert.NoError(t, index.Upsert(ctx, "nonexistent", []domain.IndexRecord{}))
}

func TestIndex_Upsert_DimensionMismatch(t *testing.T) {
	index := NewIndex()
	ctx := context.Background()

	require.NoError(t, index.EnsureCollection(ctx, "docs", 3))

	err := index.Upsert(ctx, "docs", []domain.IndexRecord{
		record("rec-1", []float32{1, 0, 0}),
		record("rec-2", []float32{1, 0}),
	})
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)

	// The batch is rejected as a whole: the valid record must not land
	results, err := index.Search(ctx, "docs", []float32{1, 0, 0}, 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestIndex_Upsert_ReplacesByID(t *testing.T) {
	index := NewIndex()
	ctx := context.Background()

	require.NoError(t, index.EnsureCollection(ctx, "docs", 3))

	original := record("rec-1", []float32{1, 0, 0})
	original.Text = "original"
	require.NoError(t, index.Upsert(ctx, "docs", []domain.IndexRecord{original}))

	updated := record("rec-1", []float32{0, 1, 0})
	updated.Text = "updated"
	require.NoError(t, index.Upsert(ctx, "docs", []domain.IndexRecord{updated}))

	results, err := index.Search(ctx, "docs", []float32{0, 1, 0}, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "updated", results[0].Record.Text)
}

func TestIndex_Search_RanksByScore(t *testing.T) {
	index := NewIndex()
	ctx := context.Background()

	require.NoError(t, index.EnsureCollection(ctx, "docs", 3))
	require.NoError(t, index.Upsert(ctx, "docs", []domain.IndexRecord{
		record("opposite", []float32{-1, 0, 0}),
		record("orthogonal", []float32{0, 1, 0}),
		record("exact", []float32{1, 0, 0}),
		record("close", []float32{1, 1, 0}),
	}))

	results, err := index.Search(ctx, "docs", []float32{1, 0, 0}, 4)
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.Equal(t, "exact", results[0].Record.ID)
	assert.Equal(t, "close", results[1].Record.ID)
	assert.Equal(t, "orthogonal", results[2].Record.ID)
	assert.Equal(t, "opposite", results[3].Record.ID)

	// Scores are in descending order
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
	assert.InDelta(t, 1.0, results[0].Score, 1e-9)
}

func TestIndex_Search_TiesKeepInsertionOrder(t *testing.T) {
	index := NewIndex()
	ctx := context.Background()

	require.NoError(t, index.EnsureCollection(ctx, "docs", 3))

	// Identical vectors score identically against any query
	same := []float32{1, 1, 0}
	require.NoError(t, index.Upsert(ctx, "docs", []domain.IndexRecord{
		record("first", same),
		record("second", same),
		record("third", same),
	}))

	results, err := index.Search(ctx, "docs", []float32{1, 0, 0}, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "first", results[0].Record.ID)
	assert.Equal(t, "second", results[1].Record.ID)
}

func TestIndex_Search_FewerThanK(t *testing.T) {
	index := NewIndex()
	ctx := context.Background()

	require.NoError(t, index.EnsureCollection(ctx, "docs", 3))
	require.NoError(t, index.Upsert(ctx, "docs", []domain.IndexRecord{
		record("rec-1", []float32{1, 0, 0}),
	}))

	results, err := index.Search(ctx, "docs", []float32{1, 0, 0}, 10)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestIndex_Search_MissingCollection(t *testing.T) {
	index := NewIndex()
	ctx := context.Background()

	results, err := index.Search(ctx, "nonexistent", []float32{1, 0, 0}, 4)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestIndex_Search_ZeroK(t *testing.T) {
	index := NewIndex()
	ctx := context.Background()

	require.NoError(t, index.EnsureCollection(ctx, "docs", 3))
	require.NoError(t, index.Upsert(ctx, "docs", []domain.IndexRecord{
		record("rec-1", []float32{1, 0, 0}),
	}))

	results, err := index.Search(ctx, "docs", []float32{1, 0, 0}, 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestIndex_Search_QueryDimensionMismatch(t *testing.T) {
	index := NewIndex()
	ctx := context.Background()

	require.NoError(t, index.EnsureCollection(ctx, "docs", 3))

	_, err := index.Search(ctx, "docs", []float32{1, 0}, 4)
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
}

func TestIndex_CollectionIsolation(t *testing.T) {
	index := NewIndex()
	ctx := context.Background()

	require.NoError(t, index.EnsureCollection(ctx, "session-a", 3))
	require.NoError(t, index.EnsureCollection(ctx, "session-b", 3))

	require.NoError(t, index.Upsert(ctx, "session-a", []domain.IndexRecord{
		record("a-1", []float32{1, 0, 0}),
	}))
	require.NoError(t, index.Upsert(ctx, "session-b", []domain.IndexRecord{
		record("b-1", []float32{1, 0, 0}),
	}))

	resultsA, err := index.Search(ctx, "session-a", []float32{1, 0, 0}, 10)
	require.NoError(t, err)
	require.Len(t, resultsA, 1)
	assert.Equal(t, "a-1", resultsA[0].Record.ID)

	resultsB, err := index.Search(ctx, "session-b", []float32{1, 0, 0}, 10)
	require.NoError(t, err)
	require.Len(t, resultsB, 1)
	assert.Equal(t, "b-1", resultsB[0].Record.ID)
}

func TestIndex_DeleteCollection(t *testing.T) {
	index := NewIndex()
	ctx := context.Background()

	require.NoError(t, index.EnsureCollection(ctx, "docs", 3))
	require.NoError(t, index.Upsert(ctx, "docs", []domain.IndexRecord{
		record("rec-1", []float32{1, 0, 0}),
	}))

	err := index.DeleteCollection(ctx, "docs")
	require.NoError(t, err)

	results, err := index.Search(ctx, "docs", []float32{1, 0, 0}, 10)
	require.NoError(t, err)
	assert.Empty(t, results)

	// The name is free for a fresh collection with different dimensions
	assert.NoError(t, index.EnsureCollection(ctx, "docs", 4))
}

func TestIndex_DeleteCollection_NonExistent(t *testing.T) {
	index := NewIndex()
	ctx := context.Background()

	err := index.DeleteCollection(ctx, "nonexistent")
	assert.NoError(t, err)
}

func TestIndex_Concurrency_DistinctCollections(t *testing.T) {
	index := NewIndex()
	ctx := context.Background()

	var wg sync.WaitGroup
	numSessions := 20

	wg.Add(numSessions)
	for i := 0; i < numSessions; i++ {
		go func(id int) {
			defer wg.Done()
			name := fmt.Sprintf("session-%d", id)
			_ = index.EnsureCollection(ctx, name, 3)
			_ = index.Upsert(ctx, name, []domain.IndexRecord{
				record(fmt.Sprintf("rec-%d", id), []float32{1, 0, 0}),
			})
			_, _ = index.Search(ctx, name, []float32{1, 0, 0}, 4)
		}(i)
	}
	wg.Wait()

	// Every session sees exactly its own record
	for i := 0; i < numSessions; i++ {
		name := fmt.Sprintf("session-%d", i)
		results, err := index.Search(ctx, name, []float32{1, 0, 0}, 10)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, fmt.Sprintf("rec-%d", i), results[0].Record.ID)
	}
}

func TestIndex_PingAndClose(t *testing.T) {
	index := NewIndex()

	assert.NoError(t, index.Ping(context.Background()))
	assert.NoError(t, index.Close())
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a        []float32
		b        []float32
		expected float64
	}{
		{name: "identical", a: []float32{1, 2, 3}, b: []float32{1, 2, 3}, expected: 1.0},
		{name: "opposite", a: []float32{1, 0, 0}, b: []float32{-1, 0, 0}, expected: -1.0},
		{name: "orthogonal", a: []float32{1, 0, 0}, b: []float32{0, 1, 0}, expected: 0.0},
		{name: "scaled", a: []float32{1, 1, 0}, b: []float32{3, 3, 0}, expected: 1.0},
		{name: "zero vector", a: []float32{0, 0, 0}, b: []float32{1, 2, 3}, expected: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, cosineSimilarity(tt.a, tt.b), 1e-9)
		})
	}
}
