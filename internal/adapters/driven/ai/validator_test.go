package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citewise-labs/citewise-cli/internal/core/domain"
	"github.com/citewise-labs/citewise-cli/internal/core/ports/driven"
)

func TestNewConfigValidator(t *testing.T) {
	validator := NewConfigValidator()

	require.NotNil(t, validator)
}

func TestConfigValidator_ImplementsInterface(t *testing.T) {
	var _ driven.AIConfigValidator = (*ConfigValidator)(nil)
}

func TestConfigValidator_ValidateEmbedding_NilConfig(t *testing.T) {
	validator := NewConfigValidator()

	err := validator.ValidateEmbedding(context.Background(), nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}

func TestConfigValidator_ValidateEmbedding_UnconfiguredProvider(t *testing.T) {
	validator := NewConfigValidator()
	config := &domain.EmbeddingSettings{
		Provider: "",
		Model:    "test-model",
	}

	err := validator.ValidateEmbedding(context.Background(), config)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}

func TestConfigValidator_ValidateEmbedding_UnknownProvider(t *testing.T) {
	validator := NewConfigValidator()
	config := &domain.EmbeddingSettings{
		Provider: "cohere",
		Model:    "embed-v3",
	}

	err := validator.ValidateEmbedding(context.Background(), config)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "valid providers")
}

func TestConfigValidator_ValidateLLM_NilConfig(t *testing.T) {
	validator := NewConfigValidator()

	err := validator.ValidateLLM(context.Background(), nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}

func TestConfigValidator_ValidateLLM_UnconfiguredProvider(t *testing.T) {
	validator := NewConfigValidator()
	config := &domain.LLMSettings{
		Provider: "",
		Model:    "test-model",
	}

	err := validator.ValidateLLM(context.Background(), config)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}

func TestConfigValidator_ValidateIndex_NilConfig(t *testing.T) {
	validator := NewConfigValidator()

	err := validator.ValidateIndex(context.Background(), nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}

func TestConfigValidator_ValidateIndex_MemoryBackend(t *testing.T) {
	validator := NewConfigValidator()
	config := &domain.IndexSettings{
		Provider: domain.IndexProviderMemory,
	}

	err := validator.ValidateIndex(context.Background(), config)

	// The in-memory index has nothing to reach, so validation passes.
	assert.NoError(t, err)
}

func TestConfigValidator_ValidateIndex_SQLiteBackend(t *testing.T) {
	validator := NewConfigValidator()
	config := &domain.IndexSettings{
		Provider: domain.IndexProviderSQLite,
		Path:     t.TempDir(),
	}

	err := validator.ValidateIndex(context.Background(), config)

	assert.NoError(t, err)
}
