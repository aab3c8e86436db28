// Package chunker cuts parsed documents into embedding-sized chunks.
package chunker

import (
	"strings"
	"unicode/utf8"

	"github.com/citewise-labs/citewise-cli/internal/core/domain"
	"github.com/citewise-labs/citewise-cli/internal/core/ports/driven"
)

// DefaultMaxChars is the default chunk size in characters. It tracks
// the effective input window of small embedding models.
const DefaultMaxChars = 1800

// DefaultOverlap is the default number of characters shared between
// adjacent chunks split from one oversized paragraph.
const DefaultOverlap = 200

// Ensure Chunker implements the port.
var _ driven.Chunker = (*Chunker)(nil)

// Chunker packs text blocks into size-bounded chunks. Structure is
// respected: text is never merged across blocks, so a chunk always
// belongs to exactly one section path.
type Chunker struct {
	maxChars int
	overlap  int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithMaxChars sets the maximum chunk size in characters.
func WithMaxChars(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.maxChars = size
		}
	}
}

// WithOverlap sets the overlap between split chunks in characters.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// New creates a chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		maxChars: DefaultMaxChars,
		overlap:  DefaultOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	// Overlap must leave room for the window to advance.
	if c.overlap >= c.maxChars {
		c.overlap = c.maxChars / 4
	}

	return c
}

// Chunk cuts a parsed document into chunks in reading order. Each
// chunk carries the source file name, a strictly increasing index,
// and the section path of the block it came from. A document with no
// usable text yields an empty slice.
func (c *Chunker) Chunk(doc *domain.ParsedDocument) []domain.Chunk {
	if doc == nil {
		return nil
	}

	var chunks []domain.Chunk
	index := 0

	for _, block := range doc.Blocks {
		for _, text := range c.splitBlock(block.Text) {
			chunks = append(chunks, domain.Chunk{
				Text:        text,
				FileName:    doc.FileName,
				Index:       index,
				SectionPath: block.Path,
			})
			index++
		}
	}

	return chunks
}

// splitBlock packs the block's paragraphs greedily into pieces of at
// most maxChars characters. A single paragraph over the limit is
// windowed with overlap. Returned pieces are trimmed and non-empty.
func (c *Chunker) splitBlock(text string) []string {
	var pieces []string
	var current strings.Builder
	currentLen := 0

	flush := func() {
		piece := strings.TrimSpace(current.String())
		if piece != "" {
			pieces = append(pieces, piece)
		}
		current.Reset()
		currentLen = 0
	}

	for _, para := range splitParagraphs(text) {
		paraLen := utf8.RuneCountInString(para)

		if paraLen > c.maxChars {
			flush()
			pieces = append(pieces, c.window(para)...)
			continue
		}

		// +2 accounts for the paragraph separator.
		if currentLen > 0 && currentLen+2+paraLen > c.maxChars {
			flush()
		}
		if currentLen > 0 {
			current.WriteString("\n\n")
			currentLen += 2
		}
		current.WriteString(para)
		currentLen += paraLen
	}
	flush()

	return pieces
}

// window slices an oversized paragraph into maxChars-sized pieces,
// stepping by maxChars-overlap so adjacent pieces share context.
// Operates on runes so multi-byte characters are never cut.
func (c *Chunker) window(text string) []string {
	runes := []rune(text)
	step := c.maxChars - c.overlap

	var pieces []string
	for start := 0; start < len(runes); start += step {
		end := start + c.maxChars
		if end > len(runes) {
			end = len(runes)
		}

		piece := strings.TrimSpace(string(runes[start:end]))
		if piece != "" {
			pieces = append(pieces, piece)
		}

		if end == len(runes) {
			break
		}
	}

	return pieces
}

// splitParagraphs breaks text on blank lines, dropping empties.
func splitParagraphs(text string) []string {
	var paragraphs []string
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para != "" {
			paragraphs = append(paragraphs, para)
		}
	}
	return paragraphs
}
