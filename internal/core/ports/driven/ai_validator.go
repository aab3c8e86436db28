package driven

import (
	"context"

	"github.com/citewise-labs/citewise-cli/internal/core/domain"
)

// AIConfigValidator validates provider configurations.
// Implementations verify that configurations are valid by testing
// connectivity to the underlying services.
type AIConfigValidator interface {
	// ValidateEmbedding validates an embedding configuration by
	// pinging the provider and probing the vector dimension.
	// Returns nil if the configuration works.
	ValidateEmbedding(ctx context.Context, config *domain.EmbeddingSettings) error

	// ValidateLLM validates an LLM configuration by pinging the provider.
	// Returns nil if the configuration works.
	ValidateLLM(ctx context.Context, config *domain.LLMSettings) error

	// ValidateIndex validates a vector index configuration by pinging
	// the backend. Returns nil if the configuration works.
	ValidateIndex(ctx context.Context, config *domain.IndexSettings) error
}
