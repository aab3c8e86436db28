package driving

import (
	"context"

	"github.com/citewise-labs/citewise-cli/internal/core/domain"
)

// IngestService turns uploaded documents into searchable index records.
type IngestService interface {
	// Ingest parses, chunks, embeds, and indexes a batch of documents
	// into the named collection. Documents are processed independently:
	// a parse failure in one is reported in the result and does not
	// abort the others. The whole batch is rejected with a
	// *domain.ValidationError when it yields no chunks at all, and
	// with a *domain.StorageError when the index write fails.
	Ingest(ctx context.Context, collection string, docs []domain.Document) (*domain.IngestResult, error)
}
