package ai

import (
	"context"
	"fmt"

	"github.com/citewise-labs/citewise-cli/internal/core/domain"
	"github.com/citewise-labs/citewise-cli/internal/core/ports/driven"
)

// Ensure ConfigValidator implements the interface.
var _ driven.AIConfigValidator = (*ConfigValidator)(nil)

// ConfigValidator validates provider configurations by building the
// matching adapter and exercising it.
type ConfigValidator struct{}

// NewConfigValidator creates a new AI config validator.
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{}
}

// ValidateEmbedding validates an embedding configuration by pinging the
// provider and probing the vector dimension.
func (v *ConfigValidator) ValidateEmbedding(ctx context.Context, config *domain.EmbeddingSettings) error {
	service, err := NewEmbeddingService(config)
	if err != nil {
		return err
	}
	defer service.Close()

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := service.Ping(pingCtx); err != nil {
		return fmt.Errorf("embedding provider unreachable: %w", err)
	}

	vector, err := service.Embed(ctx, probeText)
	if err != nil {
		return fmt.Errorf("embedding probe failed: %w", err)
	}
	if len(vector) != config.Dimensions {
		return fmt.Errorf("model %s returns %d dimensions, configured %d: %w",
			config.Model, len(vector), config.Dimensions, domain.ErrDimensionMismatch)
	}
	return nil
}

// ValidateLLM validates an LLM configuration by pinging the provider.
func (v *ConfigValidator) ValidateLLM(ctx context.Context, config *domain.LLMSettings) error {
	service, err := NewLLMService(config)
	if err != nil {
		return err
	}
	defer service.Close()

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := service.Ping(pingCtx); err != nil {
		return fmt.Errorf("LLM provider unreachable: %w", err)
	}
	return nil
}

// ValidateIndex validates a vector index configuration by pinging the backend.
func (v *ConfigValidator) ValidateIndex(ctx context.Context, config *domain.IndexSettings) error {
	index, err := NewVectorIndex(config)
	if err != nil {
		return err
	}
	defer index.Close()

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := index.Ping(pingCtx); err != nil {
		return fmt.Errorf("vector index unreachable: %w", err)
	}
	return nil
}
