package mcp

import (
	"github.com/citewise-labs/citewise-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP
// server. This provides a single injection point for dependency
// injection.
type Ports struct {
	// Ingest turns uploaded documents into index records.
	Ingest driving.IngestService

	// Answer runs the retrieval pipeline for one question.
	Answer driving.AnswerService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Ingest == nil {
		return ErrMissingIngestService
	}
	if p.Answer == nil {
		return ErrMissingAnswerService
	}
	return nil
}
