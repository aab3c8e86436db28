// Package domain defines the core business entities for CiteWise.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A raw uploaded file awaiting ingestion
//   - Chunk: A unit of extracted text with provenance metadata
//   - IndexRecord: The persisted (vector, text, metadata) triple
//   - StructuredAnswer: A validated, source-attributed answer
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
