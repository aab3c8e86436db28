package cli

import (
	"context"

	"github.com/citewise-labs/citewise-cli/internal/core/domain"
)

// mockIngestService implements driving.IngestService for testing.
type mockIngestService struct {
	IngestFunc func(ctx context.Context, collection string, docs []domain.Document) (*domain.IngestResult, error)
}

func (m *mockIngestService) Ingest(
	ctx context.Context, collection string, docs []domain.Document,
) (*domain.IngestResult, error) {
	if m.IngestFunc != nil {
		return m.IngestFunc(ctx, collection, docs)
	}
	reports := make([]domain.FileReport, len(docs))
	for i, doc := range docs {
		reports[i] = domain.FileReport{FileName: doc.FileName, Chunks: 1}
	}
	return &domain.IngestResult{
		Succeeded:      len(docs),
		RecordsWritten: len(docs),
		Reports:        reports,
	}, nil
}

// mockAnswerService implements driving.AnswerService for testing.
type mockAnswerService struct {
	AnswerFunc func(ctx context.Context, collection, query string) (*domain.StructuredAnswer, error)
}

func (m *mockAnswerService) Answer(
	ctx context.Context, collection, query string,
) (*domain.StructuredAnswer, error) {
	if m.AnswerFunc != nil {
		return m.AnswerFunc(ctx, collection, query)
	}
	return &domain.StructuredAnswer{
		Answer:         "The report covers quarterly revenue.",
		SourceExcerpt:  "Revenue grew 12% quarter over quarter.",
		SourceFileName: "report.pdf",
	}, nil
}

// mockVectorIndex implements driven.VectorIndex for testing.
type mockVectorIndex struct {
	DeleteCollectionFunc func(ctx context.Context, collection string) error
	Deleted              []string
}

func (m *mockVectorIndex) EnsureCollection(_ context.Context, _ string, _ int) error {
	return nil
}

func (m *mockVectorIndex) Upsert(_ context.Context, _ string, _ []domain.IndexRecord) error {
	return nil
}

func (m *mockVectorIndex) Search(_ context.Context, _ string, _ []float32, _ int) ([]domain.ScoredRecord, error) {
	return nil, nil
}

func (m *mockVectorIndex) DeleteCollection(ctx context.Context, collection string) error {
	m.Deleted = append(m.Deleted, collection)
	if m.DeleteCollectionFunc != nil {
		return m.DeleteCollectionFunc(ctx, collection)
	}
	return nil
}

func (m *mockVectorIndex) Ping(_ context.Context) error { return nil }

func (m *mockVectorIndex) Close() error { return nil }

// setupTestServices installs happy-path fakes for the pipeline
// services and returns a cleanup restoring the previous state.
func setupTestServices() func() {
	oldIngest := ingestService
	oldAnswer := answerService
	ingestService = &mockIngestService{}
	answerService = &mockAnswerService{}
	return func() {
		ingestService = oldIngest
		answerService = oldAnswer
	}
}
