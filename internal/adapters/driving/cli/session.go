package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/citewise-labs/citewise-cli/internal/adapters/driven/ai"
	"github.com/citewise-labs/citewise-cli/internal/adapters/driven/config/file"
	"github.com/citewise-labs/citewise-cli/internal/chunker"
	"github.com/citewise-labs/citewise-cli/internal/core/domain"
	"github.com/citewise-labs/citewise-cli/internal/core/ports/driven"
	"github.com/citewise-labs/citewise-cli/internal/core/ports/driving"
	"github.com/citewise-labs/citewise-cli/internal/core/services"
	"github.com/citewise-labs/citewise-cli/internal/loaders"
)

// session bundles the configured adapters a pipeline command needs.
// It is built per command invocation and closed when the command
// finishes.
type session struct {
	settings  *domain.Settings
	providers *ai.Services
	prompts   driven.PromptStore
}

// openSession loads settings, builds the provider adapters, and pings
// every provider so misconfiguration surfaces before any documents or
// questions are accepted.
func openSession(ctx context.Context) (*session, error) {
	store, err := file.NewSettingsStore(configDirFlag)
	if err != nil {
		return nil, err
	}

	settings, err := store.Load()
	if err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("%w\nRun 'citewise configure' to fix the configuration", err)
	}

	providers, err := ai.New(settings)
	if err != nil {
		return nil, fmt.Errorf("%w\nRun 'citewise configure' to fix the configuration", err)
	}

	if err := providers.Validate(ctx); err != nil {
		providers.Close()
		return nil, err
	}

	prompts, err := file.NewPromptStore(filepath.Join(filepath.Dir(store.Path()), "prompts"))
	if err != nil {
		providers.Close()
		return nil, err
	}

	return &session{
		settings:  settings,
		providers: providers,
		prompts:   prompts,
	}, nil
}

// Close releases the provider adapters.
func (s *session) Close() {
	s.providers.Close()
}

// newIngestService builds the ingestion pipeline from the session's
// adapters and chunking settings.
func (s *session) newIngestService(opts ...services.IngestOption) driving.IngestService {
	ck := chunker.New(
		chunker.WithMaxChars(s.settings.Chunking.MaxChars),
		chunker.WithOverlap(s.settings.Chunking.Overlap),
	)
	return services.NewIngestService(
		loaders.Default(),
		ck,
		s.providers.Embedding,
		s.providers.Index,
		opts...,
	)
}

// newAnswerService builds the retrieval pipeline from the session's
// adapters and retrieval settings.
func (s *session) newAnswerService() driving.AnswerService {
	return services.NewAnswerService(
		s.providers.Embedding,
		s.providers.Index,
		s.providers.LLM,
		s.prompts,
		s.settings.Retrieval.TopK,
	)
}

// openIndex builds just the vector index adapter. Used by commands
// that manage collections without running the pipeline, so a broken
// LLM configuration does not block housekeeping.
func openIndex() (driven.VectorIndex, error) {
	store, err := file.NewSettingsStore(configDirFlag)
	if err != nil {
		return nil, err
	}

	settings, err := store.Load()
	if err != nil {
		return nil, err
	}

	return ai.NewVectorIndex(&settings.Index)
}
