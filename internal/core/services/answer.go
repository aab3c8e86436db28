package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/citewise-labs/citewise-cli/internal/core/domain"
	"github.com/citewise-labs/citewise-cli/internal/core/ports/driven"
	"github.com/citewise-labs/citewise-cli/internal/core/ports/driving"
	"github.com/citewise-labs/citewise-cli/internal/logger"
)

// Ensure AnswerService implements the interface.
var _ driving.AnswerService = (*AnswerService)(nil)

// emptyContextMarker is the context block handed to the model when
// retrieval finds nothing. The prompt instructs the model to state
// absence instead of inventing an answer.
const emptyContextMarker = "No relevant context was retrieved from the documents."

// sourceSeparator joins context entries in the prompt.
const sourceSeparator = "\n\n---\n\n"

// AnswerService runs the retrieval pipeline for one query: embed,
// search, format, generate, validate. The query must be embedded by
// the same service instance used at ingestion, or the vectors are
// not comparable.
type AnswerService struct {
	embedding driven.EmbeddingService
	index     driven.VectorIndex
	llm       driven.LLMService
	prompts   driven.PromptStore
	topK      int
}

// NewAnswerService creates a new retrieval pipeline. topK is the
// number of records retrieved per query, fixed at construction.
func NewAnswerService(
	embedding driven.EmbeddingService,
	index driven.VectorIndex,
	llm driven.LLMService,
	prompts driven.PromptStore,
	topK int,
) *AnswerService {
	return &AnswerService{
		embedding: embedding,
		index:     index,
		llm:       llm,
		prompts:   prompts,
		topK:      topK,
	}
}

// Answer runs one query against the named collection. The pipeline
// is a fixed stage sequence with no automatic retries; a failure is
// returned as a *domain.StageError naming where it happened.
func (s *AnswerService) Answer(ctx context.Context, collection, query string) (*domain.StructuredAnswer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, &domain.ValidationError{Field: "query", Reason: "must not be empty"}
	}

	logger.Section("Answer")
	logger.Debug("Answering against collection %q (top %d)", collection, s.topK)

	// 1. Embed the query with the model used at ingestion.
	vector, err := s.embedding.Embed(ctx, query)
	if err != nil {
		return nil, &domain.StageError{Stage: domain.StageEmbedding, Err: err}
	}

	// 2. Retrieve the nearest records.
	records, err := s.index.Search(ctx, collection, vector, s.topK)
	if err != nil {
		return nil, &domain.StageError{Stage: domain.StageSearching, Err: err}
	}
	logger.Debug("Retrieved %d records", len(records))
	if len(records) == 0 {
		logger.Warn("No relevant records in %q, the model will be told so", collection)
	}

	// 3. Format the retrieved records into the context block.
	contextBlock := formatContext(records)

	// 4. Generate the raw answer.
	raw, err := s.generate(ctx, contextBlock, query)
	if err != nil {
		return nil, &domain.StageError{Stage: domain.StageGenerating, Err: err}
	}

	// 5. Validate the output shape. Malformed output is rejected,
	// never repaired.
	answer, err := domain.ValidateAnswer(raw)
	if err != nil {
		genErr := &domain.GenerationError{Reason: "model output failed validation", Err: err}
		return nil, &domain.StageError{Stage: domain.StageValidating, Err: genErr}
	}

	// With nothing retrieved, any concrete citation is fabricated.
	if len(records) == 0 && answer.HasSource() {
		genErr := &domain.GenerationError{
			Reason: fmt.Sprintf("model cited %q but no context was retrieved", answer.SourceFileName),
		}
		return nil, &domain.StageError{Stage: domain.StageValidating, Err: genErr}
	}

	logger.Debug("Answer validated, cited source: %v", answer.HasSource())
	return answer, nil
}

// generate loads the prompt templates, interpolates the context and
// the question, and calls the model once.
func (s *AnswerService) generate(ctx context.Context, contextBlock, query string) (string, error) {
	systemTmpl, err := s.prompts.Load(driven.PromptAnswerSystem)
	if err != nil {
		return "", fmt.Errorf("load system prompt: %w", err)
	}
	userTmpl, err := s.prompts.Load(driven.PromptAnswerUser)
	if err != nil {
		return "", fmt.Errorf("load user prompt: %w", err)
	}

	systemPrompt := fmt.Sprintf(systemTmpl, contextBlock)
	userPrompt := fmt.Sprintf(userTmpl, query)

	logger.Debug("Generating with %s", s.llm.ModelName())
	raw, err := s.llm.Generate(ctx, systemPrompt, userPrompt)
	if err != nil {
		return "", &domain.GenerationError{Reason: "LLM call failed", Err: err}
	}
	return raw, nil
}

// formatContext builds the context block from retrieved records.
// Each entry is labeled with its rank and source file so the model
// can cite them; an empty result set yields the explicit marker.
func formatContext(records []domain.ScoredRecord) string {
	if len(records) == 0 {
		return emptyContextMarker
	}
	entries := make([]string, len(records))
	for i, record := range records {
		entries[i] = fmt.Sprintf("Source %d — %s:\n%s", i+1, record.Record.FileName, record.Record.Text)
	}
	return strings.Join(entries, sourceSeparator)
}
