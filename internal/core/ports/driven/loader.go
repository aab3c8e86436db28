package driven

import (
	"context"

	"github.com/citewise-labs/citewise-cli/internal/core/domain"
)

// Loader extracts text from raw document bytes. Each loader handles
// specific file types (e.g. PDF, Word).
type Loader interface {
	// SupportedTypes returns the file types this loader handles.
	SupportedTypes() []domain.FileType

	// Load extracts text blocks from the document in reading order.
	// A document with zero extractable text returns a ParsedDocument
	// with no blocks, not an error. A malformed or corrupted file
	// returns a *domain.ParseError carrying the file name.
	Load(ctx context.Context, doc domain.Document) (*domain.ParsedDocument, error)
}

// LoaderRegistry selects the loader for a document's declared type.
type LoaderRegistry interface {
	// ForType returns the loader handling the given file type.
	// Returns domain.ErrUnsupportedType if no loader matches.
	ForType(fileType domain.FileType) (Loader, error)

	// SupportedTypes returns all file types with a registered loader.
	SupportedTypes() []domain.FileType
}
