package tui

import (
	"errors"
	"fmt"

	"github.com/citewise-labs/citewise-cli/internal/core/domain"
)

// ErrMissingIngestService is returned when the ingest service is not provided.
var ErrMissingIngestService = errors.New("tui: ingest service is required")

// ErrMissingAnswerService is returned when the answer service is not provided.
var ErrMissingAnswerService = errors.New("tui: answer service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")

// userMessage turns a pipeline failure into the text shown in the
// session. Validation and generation errors keep their detail; index
// failures get a hint, and stage failures name the stage.
func userMessage(err error) string {
	var stageErr *domain.StageError
	if errors.As(err, &stageErr) {
		return fmt.Sprintf("the %s step failed: %s", stageErr.Stage, userMessage(stageErr.Err))
	}

	var storErr *domain.StorageError
	if errors.As(err, &storErr) {
		return fmt.Sprintf("%v (is the vector index backend running?)", err)
	}

	return err.Error()
}
