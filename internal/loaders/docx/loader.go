// Package docx extracts text from Word (.docx) documents.
package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/citewise-labs/citewise-cli/internal/core/domain"
	"github.com/citewise-labs/citewise-cli/internal/core/ports/driven"
)

// Ensure Loader implements the interface.
var _ driven.Loader = (*Loader)(nil)

// Loader handles Word documents. Paragraphs styled Heading1..9 open
// sections; body paragraphs accumulate into blocks tagged with the
// active heading chain.
type Loader struct{}

// New creates a new Word loader.
func New() *Loader {
	return &Loader{}
}

// SupportedTypes returns the file types this loader handles.
func (l *Loader) SupportedTypes() []domain.FileType {
	return []domain.FileType{domain.FileTypeWord}
}

// Load extracts heading-aware text blocks from the document.
func (l *Loader) Load(_ context.Context, doc domain.Document) (*domain.ParsedDocument, error) {
	reader, err := zip.NewReader(bytes.NewReader(doc.Content), int64(len(doc.Content)))
	if err != nil {
		return nil, &domain.ParseError{FileName: doc.FileName, Err: errors.New("not a valid docx archive")}
	}

	raw, err := readDocumentXML(reader)
	if err != nil {
		return nil, &domain.ParseError{FileName: doc.FileName, Err: err}
	}

	var parsed documentXML
	if err := xml.Unmarshal(raw, &parsed); err != nil {
		return nil, &domain.ParseError{FileName: doc.FileName, Err: err}
	}

	return &domain.ParsedDocument{
		FileName: doc.FileName,
		Blocks:   buildBlocks(parsed.Body.Paragraphs),
	}, nil
}

// readDocumentXML returns the contents of word/document.xml.
func readDocumentXML(reader *zip.Reader) ([]byte, error) {
	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()

		return io.ReadAll(rc)
	}
	return nil, errors.New("word/document.xml not found")
}

// documentXML represents the structure of word/document.xml.
type documentXML struct {
	Body struct {
		Paragraphs []paragraph `xml:"p"`
	} `xml:"body"`
}

type paragraph struct {
	Properties *paragraphProperties `xml:"pPr"`
	Runs       []run                `xml:"r"`
}

type paragraphProperties struct {
	Style *paragraphStyle `xml:"pStyle"`
}

type paragraphStyle struct {
	Val string `xml:"val,attr"`
}

type run struct {
	Text []textElement `xml:"t"`
}

type textElement struct {
	Content string `xml:",chardata"`
}

// text concatenates the paragraph's run text.
func (p paragraph) text() string {
	var b strings.Builder
	for _, r := range p.Runs {
		for _, t := range r.Text {
			b.WriteString(t.Content)
		}
	}
	return strings.TrimSpace(b.String())
}

// headingLevel returns the 1-based heading level, or 0 for body text.
func (p paragraph) headingLevel() int {
	if p.Properties == nil || p.Properties.Style == nil {
		return 0
	}

	val := p.Properties.Style.Val
	switch {
	case val == "Title":
		return 1
	case strings.HasPrefix(val, "Heading"):
		level, err := strconv.Atoi(strings.TrimPrefix(val, "Heading"))
		if err != nil || level < 1 {
			return 1
		}
		return level
	default:
		return 0
	}
}

// buildBlocks walks the paragraphs and groups body text into blocks
// under the active heading chain.
func buildBlocks(paragraphs []paragraph) []domain.TextBlock {
	var (
		blocks   []domain.TextBlock
		headings []string
		body     []string
	)

	flush := func() {
		if len(body) == 0 {
			return
		}
		blocks = append(blocks, domain.TextBlock{
			Path: strings.Join(headings, " > "),
			Text: strings.Join(body, "\n\n"),
		})
		body = nil
	}

	for _, para := range paragraphs {
		text := para.text()
		if text == "" {
			continue
		}

		if level := para.headingLevel(); level > 0 {
			flush()
			if level > len(headings)+1 {
				level = len(headings) + 1
			}
			headings = append(headings[:level-1], text)
			continue
		}

		body = append(body, text)
	}
	flush()

	return blocks
}
