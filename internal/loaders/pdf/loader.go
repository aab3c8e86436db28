// Package pdf extracts text from PDF documents.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/citewise-labs/citewise-cli/internal/core/domain"
	"github.com/citewise-labs/citewise-cli/internal/core/ports/driven"
)

// Ensure Loader implements the interface.
var _ driven.Loader = (*Loader)(nil)

// Loader handles PDF documents. Each page becomes one text block so
// chunk provenance can point at the page it came from.
type Loader struct{}

// New creates a new PDF loader.
func New() *Loader {
	return &Loader{}
}

// SupportedTypes returns the file types this loader handles.
func (l *Loader) SupportedTypes() []domain.FileType {
	return []domain.FileType{domain.FileTypePDF}
}

// Load extracts per-page text blocks from the document.
func (l *Loader) Load(_ context.Context, doc domain.Document) (parsed *domain.ParsedDocument, err error) {
	// The pdf reader panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			parsed = nil
			err = &domain.ParseError{FileName: doc.FileName, Err: fmt.Errorf("pdf reader: %v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(doc.Content), int64(len(doc.Content)))
	if err != nil {
		return nil, &domain.ParseError{FileName: doc.FileName, Err: err}
	}

	parsed = &domain.ParsedDocument{FileName: doc.FileName}
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, pageErr := page.GetPlainText(nil)
		if pageErr != nil {
			// An unreadable page does not make the rest of the
			// document unusable.
			continue
		}

		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		parsed.Blocks = append(parsed.Blocks, domain.TextBlock{
			Path: fmt.Sprintf("Page %d", i),
			Text: text,
		})
	}

	return parsed, nil
}
