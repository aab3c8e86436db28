// Package plaintext extracts text from plain and markdown files.
package plaintext

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/citewise-labs/citewise-cli/internal/core/domain"
	"github.com/citewise-labs/citewise-cli/internal/core/ports/driven"
)

// Ensure Loader implements the interface.
var _ driven.Loader = (*Loader)(nil)

// Loader handles plain text and markdown. Markdown headings open
// sections; everything else accumulates into blocks tagged with the
// active heading chain.
type Loader struct{}

// New creates a new plaintext loader.
func New() *Loader {
	return &Loader{}
}

// SupportedTypes returns the file types this loader handles.
func (l *Loader) SupportedTypes() []domain.FileType {
	return []domain.FileType{domain.FileTypePlaintext}
}

// Load extracts heading-aware text blocks from the document.
func (l *Loader) Load(_ context.Context, doc domain.Document) (*domain.ParsedDocument, error) {
	if !utf8.Valid(doc.Content) {
		return nil, &domain.ParseError{FileName: doc.FileName, Err: errors.New("not valid UTF-8 text")}
	}

	return &domain.ParsedDocument{
		FileName: doc.FileName,
		Blocks:   buildBlocks(string(doc.Content)),
	}, nil
}

// buildBlocks walks the lines and groups body text into blocks under
// the active markdown heading chain.
func buildBlocks(content string) []domain.TextBlock {
	var (
		blocks   []domain.TextBlock
		headings []string
		body     []string
	)

	flush := func() {
		text := strings.TrimSpace(strings.Join(body, "\n"))
		body = nil
		if text == "" {
			return
		}
		blocks = append(blocks, domain.TextBlock{
			Path: strings.Join(headings, " > "),
			Text: text,
		})
	}

	for _, line := range strings.Split(content, "\n") {
		if level, title := headingLine(line); level > 0 {
			flush()
			if level > len(headings)+1 {
				level = len(headings) + 1
			}
			headings = append(headings[:level-1], title)
			continue
		}
		body = append(body, line)
	}
	flush()

	return blocks
}

// headingLine parses a markdown ATX heading ("## Title"). Returns
// level 0 for anything else.
func headingLine(line string) (int, string) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "#") {
		return 0, ""
	}

	level := 0
	for level < len(trimmed) && trimmed[level] == '#' {
		level++
	}
	if level > 6 || level == len(trimmed) || trimmed[level] != ' ' {
		return 0, ""
	}

	title := strings.TrimSpace(trimmed[level:])
	if title == "" {
		return 0, ""
	}
	return level, title
}
