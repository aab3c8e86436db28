// Package messages defines Bubbletea message types for the TUI.
// Messages represent events that flow through the Elm architecture.
package messages

import (
	"github.com/citewise-labs/citewise-cli/internal/core/domain"
)

// FileIngested is sent as each file of the session batch finishes
// parsing and chunking, before the batch is embedded.
type FileIngested struct {
	Report domain.FileReport
}

// IngestCompleted carries the outcome of the session's ingestion
// batch. Err is set when the whole batch was rejected.
type IngestCompleted struct {
	Result *domain.IngestResult
	Err    error
}

// AnswerReceived carries the outcome of one question.
type AnswerReceived struct {
	Answer *domain.StructuredAnswer
	Err    error
}
