package driving

import (
	"context"

	"github.com/citewise-labs/citewise-cli/internal/core/domain"
)

// AnswerService answers questions from previously ingested content.
type AnswerService interface {
	// Answer runs the retrieval pipeline for one query against the
	// named collection: embed, search, format, generate, validate.
	// Failures carry the stage they occurred at via *domain.StageError.
	// The returned answer always satisfies the StructuredAnswer
	// invariant: all fields non-empty, with explicit no-source
	// sentinels when nothing was cited.
	Answer(ctx context.Context, collection, query string) (*domain.StructuredAnswer, error)
}
