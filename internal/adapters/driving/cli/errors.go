package cli

import (
	"errors"
	"fmt"

	"github.com/citewise-labs/citewise-cli/internal/core/domain"
)

// friendlyError maps a pipeline failure to the message shown to the
// user. Validation problems are user-fixable and keep their detail;
// infrastructure failures get a hint about the likely cause.
func friendlyError(err error) error {
	var stageErr *domain.StageError
	if errors.As(err, &stageErr) {
		return fmt.Errorf("the %s step failed: %w", stageErr.Stage, friendlyError(stageErr.Err))
	}

	var valErr *domain.ValidationError
	if errors.As(err, &valErr) {
		return err
	}

	var storErr *domain.StorageError
	if errors.As(err, &storErr) {
		return fmt.Errorf("%w\nCheck that the vector index backend is running and reachable", err)
	}

	var genErr *domain.GenerationError
	if errors.As(err, &genErr) {
		return err
	}

	if errors.Is(err, domain.ErrNotConfigured) {
		return fmt.Errorf("%w\nRun 'citewise configure' to set up providers", err)
	}

	return err
}
