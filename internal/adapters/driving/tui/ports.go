// Package tui provides the interactive chat session for citewise.
// It implements a driving adapter following hexagonal architecture
// principles.
package tui

import (
	"github.com/citewise-labs/citewise-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Ingest turns the session's documents into index records.
	Ingest driving.IngestService

	// Answer runs the retrieval pipeline for one question.
	Answer driving.AnswerService
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Ingest == nil {
		return ErrMissingIngestService
	}
	if p.Answer == nil {
		return ErrMissingAnswerService
	}
	return nil
}
