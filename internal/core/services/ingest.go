package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/citewise-labs/citewise-cli/internal/core/domain"
	"github.com/citewise-labs/citewise-cli/internal/core/ports/driven"
	"github.com/citewise-labs/citewise-cli/internal/core/ports/driving"
	"github.com/citewise-labs/citewise-cli/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// MaxBatchFiles is the largest number of documents one Ingest call
// accepts. Larger batches are rejected before any work starts.
const MaxBatchFiles = 3

// maxConcurrentLoads caps how many documents are parsed at once.
const maxConcurrentLoads = 3

// ProgressFunc receives the report of a document that finished the
// load and chunk phase. It runs on a worker goroutine, so
// implementations must be safe for concurrent use.
type ProgressFunc func(report domain.FileReport)

// IngestOption configures an IngestService.
type IngestOption func(*IngestService)

// WithProgress registers a callback invoked once per document as it
// finishes loading and chunking, before embedding starts.
func WithProgress(fn ProgressFunc) IngestOption {
	return func(s *IngestService) {
		s.progress = fn
	}
}

// IngestService runs the ingestion pipeline: parse each document,
// cut it into chunks, embed the whole batch in one call, and write
// the records to the vector index in one call.
type IngestService struct {
	loaders   driven.LoaderRegistry
	chunker   driven.Chunker
	embedding driven.EmbeddingService
	index     driven.VectorIndex
	progress  ProgressFunc
}

// NewIngestService creates a new ingestion pipeline.
func NewIngestService(
	loaders driven.LoaderRegistry,
	chunker driven.Chunker,
	embedding driven.EmbeddingService,
	index driven.VectorIndex,
	opts ...IngestOption,
) *IngestService {
	s := &IngestService{
		loaders:   loaders,
		chunker:   chunker,
		embedding: embedding,
		index:     index,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ingest processes a batch of documents into the named collection.
// Documents are parsed independently: a corrupted file is reported
// and skipped, sibling files are unaffected. Embedding and indexing
// happen once for the whole batch.
func (s *IngestService) Ingest(ctx context.Context, collection string, docs []domain.Document) (*domain.IngestResult, error) {
	// 1. Validate the batch size before any work starts.
	if len(docs) == 0 {
		return nil, &domain.ValidationError{Field: "documents", Reason: "no documents provided"}
	}
	if len(docs) > MaxBatchFiles {
		return nil, &domain.ValidationError{
			Field:  "documents",
			Reason: fmt.Sprintf("batch of %d files exceeds the limit of %d", len(docs), MaxBatchFiles),
		}
	}

	logger.Section("Ingest")
	logger.Debug("Ingesting %d files into collection %q", len(docs), collection)

	// 2. Load and chunk each document concurrently. Each worker owns
	// its own result slot, so no locking is needed.
	reports := make([]domain.FileReport, len(docs))
	chunkSets := make([][]domain.Chunk, len(docs))
	sem := make(chan struct{}, maxConcurrentLoads)
	var wg sync.WaitGroup

	for i, doc := range docs {
		wg.Add(1)
		go func(i int, doc domain.Document) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				reports[i] = domain.FileReport{FileName: doc.FileName, Err: ctx.Err()}
				return
			}
			chunks, err := s.loadAndChunk(ctx, doc)
			reports[i] = domain.FileReport{FileName: doc.FileName, Chunks: len(chunks), Err: err}
			chunkSets[i] = chunks
			if s.progress != nil {
				s.progress(reports[i])
			}
		}(i, doc)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 3. Collect the chunks of successful documents in input order.
	var chunks []domain.Chunk
	for i, report := range reports {
		if report.Failed() {
			logger.Warn("Skipping %s: %v", report.FileName, report.Err)
			continue
		}
		chunks = append(chunks, chunkSets[i]...)
	}

	// 4. An empty batch means there is nothing to embed or index.
	if len(chunks) == 0 {
		return nil, &domain.ValidationError{
			Field:  "documents",
			Reason: "no content could be extracted from any document",
		}
	}

	// 5. Embed the whole batch in one call.
	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}
	logger.Debug("Embedding %d chunks with %s", len(texts), s.embedding.ModelName())
	vectors, err := s.embedding.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed %d chunks: %w", len(texts), err)
	}
	if err := s.checkVectors(vectors, len(chunks)); err != nil {
		return nil, err
	}

	// 6. Write the records to the index in one call, creating the
	// collection on first use.
	records := make([]domain.IndexRecord, len(chunks))
	for i, chunk := range chunks {
		records[i] = domain.IndexRecord{
			ID:          uuid.NewString(),
			Vector:      vectors[i],
			Text:        chunk.Text,
			FileName:    chunk.FileName,
			ChunkIndex:  chunk.Index,
			SectionPath: chunk.SectionPath,
		}
	}
	if err := s.index.EnsureCollection(ctx, collection, s.embedding.Dimensions()); err != nil {
		return nil, &domain.StorageError{Op: "ensure collection", Err: err}
	}
	if err := s.index.Upsert(ctx, collection, records); err != nil {
		return nil, &domain.StorageError{Op: "upsert", Err: err}
	}

	// 7. Summarise the batch.
	result := &domain.IngestResult{
		RecordsWritten: len(records),
		Reports:        reports,
	}
	for _, report := range reports {
		if report.Failed() {
			result.Failed++
		} else {
			result.Succeeded++
		}
	}
	logger.Info("Ingest complete: %d indexed, %d failed, %d records written",
		result.Succeeded, result.Failed, result.RecordsWritten)
	return result, nil
}

// loadAndChunk parses one document and cuts it into chunks. A file
// with no extractable text yields an empty slice, not an error.
func (s *IngestService) loadAndChunk(ctx context.Context, doc domain.Document) ([]domain.Chunk, error) {
	loader, err := s.loaders.ForType(doc.Type)
	if err != nil {
		return nil, &domain.ParseError{FileName: doc.FileName, Err: err}
	}
	parsed, err := loader.Load(ctx, doc)
	if err != nil {
		return nil, err
	}
	return s.chunker.Chunk(parsed), nil
}

// checkVectors verifies the embedding response covers every chunk at
// the service's advertised dimension. A mismatch means the model and
// the configuration disagree, which no retry can fix.
func (s *IngestService) checkVectors(vectors [][]float32, want int) error {
	if len(vectors) != want {
		return &domain.ValidationError{
			Field:  "embedding",
			Reason: fmt.Sprintf("expected %d vectors, got %d", want, len(vectors)),
		}
	}
	dims := s.embedding.Dimensions()
	for i, vector := range vectors {
		if len(vector) != dims {
			return &domain.ValidationError{
				Field:  "embedding",
				Reason: fmt.Sprintf("vector %d has dimension %d, expected %d", i, len(vector), dims),
				Err:    domain.ErrDimensionMismatch,
			}
		}
	}
	return nil
}
