package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrUnsupportedType indicates a file type no loader handles.
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrDimensionMismatch indicates an embedding whose dimension does
	// not match the collection's. This is a configuration error, never
	// a retry case.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrCollectionNotFound indicates the collection does not exist in
	// the vector index.
	ErrCollectionNotFound = errors.New("collection not found")

	// ErrNotConfigured indicates a required provider is not set up.
	ErrNotConfigured = errors.New("provider not configured")
)

// ParseError reports a document that could not be parsed. It is
// recoverable at batch level: the file is excluded from the index and
// reported, sibling files are unaffected.
type ParseError struct {
	// FileName is the file that failed to parse.
	FileName string

	// Err is the underlying parser failure.
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.FileName, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError reports input or output that violates a contract:
// an empty chunk batch, an empty query, an oversized upload, or a
// model output that fails the StructuredAnswer shape.
type ValidationError struct {
	// Field names what failed validation. May be empty for
	// batch-level violations.
	Field string

	// Reason describes the violation.
	Reason string

	// Err is the underlying violation when a sentinel applies,
	// e.g. ErrDimensionMismatch. Usually nil.
	Err error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Reason
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// StorageError reports a vector index connection or write failure.
// It is fatal for the current operation and surfaced verbatim.
type StorageError struct {
	// Op is the index operation that failed.
	Op string

	// Err is the underlying failure.
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("vector index %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// GenerationError reports that the language model call failed or that
// its output failed validation. It is never retried with relaxed
// validation.
type GenerationError struct {
	// Reason is the user-facing failure description.
	Reason string

	// Err is the underlying failure, if any.
	Err error
}

func (e *GenerationError) Error() string {
	if e.Err == nil {
		return "could not generate a grounded answer: " + e.Reason
	}
	return fmt.Sprintf("could not generate a grounded answer: %s: %v", e.Reason, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Stage identifies a step of the retrieval pipeline.
type Stage string

// Retrieval pipeline stages, in execution order.
const (
	StageEmbedding  Stage = "embedding"
	StageSearching  Stage = "searching"
	StageFormatting Stage = "formatting"
	StageGenerating Stage = "generating"
	StageValidating Stage = "validating"
)

// StageError wraps a retrieval pipeline failure with the stage it
// occurred at. No stage is retried automatically; every terminal
// failure reports where it happened.
type StageError struct {
	// Stage is where the pipeline failed.
	Stage Stage

	// Err is the failure.
	Err error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
