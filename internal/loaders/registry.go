// Package loaders wires the format-specific document loaders behind
// a single type-dispatched registry.
package loaders

import (
	"fmt"
	"sort"

	"github.com/citewise-labs/citewise-cli/internal/core/domain"
	"github.com/citewise-labs/citewise-cli/internal/core/ports/driven"
	"github.com/citewise-labs/citewise-cli/internal/loaders/docx"
	"github.com/citewise-labs/citewise-cli/internal/loaders/pdf"
	"github.com/citewise-labs/citewise-cli/internal/loaders/plaintext"
)

// Ensure Registry implements the port.
var _ driven.LoaderRegistry = (*Registry)(nil)

// Registry dispatches documents to the loader for their declared type.
type Registry struct {
	byType map[domain.FileType]driven.Loader
}

// NewRegistry creates a registry with the given loaders.
func NewRegistry(loaders ...driven.Loader) *Registry {
	r := &Registry{byType: make(map[domain.FileType]driven.Loader)}
	for _, loader := range loaders {
		r.Register(loader)
	}
	return r
}

// Default returns a registry with all built-in loaders.
func Default() *Registry {
	return NewRegistry(pdf.New(), docx.New(), plaintext.New())
}

// Register adds a loader. A later registration for the same file
// type replaces the earlier one.
func (r *Registry) Register(loader driven.Loader) {
	for _, fileType := range loader.SupportedTypes() {
		r.byType[fileType] = loader
	}
}

// ForType returns the loader handling the given file type.
func (r *Registry) ForType(fileType domain.FileType) (driven.Loader, error) {
	loader, ok := r.byType[fileType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedType, fileType)
	}
	return loader, nil
}

// SupportedTypes returns all file types with a registered loader,
// sorted for stable display.
func (r *Registry) SupportedTypes() []domain.FileType {
	types := make([]domain.FileType, 0, len(r.byType))
	for fileType := range r.byType {
		types = append(types, fileType)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
