package mcp

import (
	"context"

	"github.com/citewise-labs/citewise-cli/internal/core/domain"
)

// mockIngestService is a mock implementation of driving.IngestService.
type mockIngestService struct {
	result         *domain.IngestResult
	err            error
	lastCollection string
	lastDocs       []domain.Document
}

func (m *mockIngestService) Ingest(_ context.Context, collection string, docs []domain.Document) (*domain.IngestResult, error) {
	m.lastCollection = collection
	m.lastDocs = docs
	return m.result, m.err
}

// mockAnswerService is a mock implementation of driving.AnswerService.
type mockAnswerService struct {
	answer         *domain.StructuredAnswer
	err            error
	lastCollection string
	lastQuery      string
}

func (m *mockAnswerService) Answer(_ context.Context, collection, query string) (*domain.StructuredAnswer, error) {
	m.lastCollection = collection
	m.lastQuery = query
	return m.answer, m.err
}
