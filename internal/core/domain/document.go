package domain

import (
	"path/filepath"
	"strings"
)

// DefaultCollection is the index collection used when the caller
// names none. Chat sessions use their own throwaway collections.
const DefaultCollection = "default"

// FileType identifies the declared format of an uploaded document.
type FileType string

// Supported file types.
const (
	// FileTypePDF is a PDF document.
	FileTypePDF FileType = "pdf"

	// FileTypeWord is a Word (.docx) document.
	FileTypeWord FileType = "docx"

	// FileTypePlaintext is plain or markdown text.
	FileTypePlaintext FileType = "text"
)

// IsValid returns true if the file type is recognised.
func (t FileType) IsValid() bool {
	switch t {
	case FileTypePDF, FileTypeWord, FileTypePlaintext:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t FileType) String() string {
	return string(t)
}

// Description returns a human-readable description of the type.
func (t FileType) Description() string {
	switch t {
	case FileTypePDF:
		return "PDF document"
	case FileTypeWord:
		return "Word document"
	case FileTypePlaintext:
		return "Plain text"
	default:
		return unknownDescription
	}
}

// DetectFileType infers the file type from a file name extension.
func DetectFileType(name string) (FileType, bool) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return FileTypePDF, true
	case ".docx":
		return FileTypeWord, true
	case ".txt", ".md", ".markdown":
		return FileTypePlaintext, true
	default:
		return "", false
	}
}

// Document is a raw uploaded file awaiting ingestion. It is owned by
// the ingestion pipeline for the duration of one ingestion call and
// discarded after chunking.
type Document struct {
	// FileName is the original name of the uploaded file.
	FileName string

	// Content is the raw file bytes.
	Content []byte

	// Type is the declared file format.
	Type FileType
}

// TextBlock is a structural unit of text extracted by a loader.
type TextBlock struct {
	// Path is the structural location of the text: a heading chain
	// such as "Setup > Requirements", or a page label for PDFs.
	// Empty for unstructured text.
	Path string

	// Text is the extracted text of this block.
	Text string
}

// ParsedDocument is the loader output for one document: text blocks
// in reading order with their structural paths, ready for chunking.
type ParsedDocument struct {
	// FileName is the originating file name, carried for provenance.
	FileName string

	// Blocks are the extracted text blocks in reading order.
	Blocks []TextBlock
}

// Chunk is a contiguous unit of text cut from one document.
// Chunk text is non-empty after trimming; chunks from one document
// preserve reading order via Index and are never mutated after
// creation.
type Chunk struct {
	// Text is the chunk content.
	Text string

	// FileName is the source file the chunk was cut from. Tagged on
	// every chunk so answers can cite their origin.
	FileName string

	// Index is the ordinal position within the source document.
	Index int

	// SectionPath is the structural path of the block that produced
	// this chunk. Empty for unstructured text.
	SectionPath string
}

// IndexRecord is the persisted (vector, text, metadata) triple owned
// by the vector index for the lifetime of its collection.
type IndexRecord struct {
	// ID uniquely identifies the record within its collection.
	ID string

	// Vector is the embedding of Text.
	Vector []float32

	// Text is the chunk text.
	Text string

	// FileName is the source file name.
	FileName string

	// ChunkIndex is the chunk's ordinal within its source document.
	ChunkIndex int

	// SectionPath is the structural path, if any.
	SectionPath string
}

// ScoredRecord is a retrieved IndexRecord with its similarity score.
// A search result is ordered by Score descending with ties broken by
// insertion order.
type ScoredRecord struct {
	// Record is the retrieved index record.
	Record IndexRecord

	// Score is the similarity between Record and the query vector.
	Score float64
}
