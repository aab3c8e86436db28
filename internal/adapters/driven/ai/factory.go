// Package ai builds the driven AI adapters from settings and validates
// them against the live providers.
package ai

import (
	"context"
	"fmt"
	"time"

	ollamaembed "github.com/citewise-labs/citewise-cli/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/citewise-labs/citewise-cli/internal/adapters/driven/embedding/openai"
	anthropicllm "github.com/citewise-labs/citewise-cli/internal/adapters/driven/llm/anthropic"
	ollamallm "github.com/citewise-labs/citewise-cli/internal/adapters/driven/llm/ollama"
	openaillm "github.com/citewise-labs/citewise-cli/internal/adapters/driven/llm/openai"
	"github.com/citewise-labs/citewise-cli/internal/adapters/driven/vector/memory"
	"github.com/citewise-labs/citewise-cli/internal/adapters/driven/vector/qdrant"
	"github.com/citewise-labs/citewise-cli/internal/adapters/driven/vector/sqlite"
	"github.com/citewise-labs/citewise-cli/internal/core/domain"
	"github.com/citewise-labs/citewise-cli/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// probeText is embedded once during validation to verify the configured
// dimension against what the model actually returns.
const probeText = "ping"

// Services bundles the driven adapters built from one Settings value.
type Services struct {
	Embedding driven.EmbeddingService
	LLM       driven.LLMService
	Index     driven.VectorIndex
}

// New builds the embedding service, LLM service, and vector index from
// settings. Every adapter is constructed or none is.
func New(settings *domain.Settings) (*Services, error) {
	embedding, err := NewEmbeddingService(&settings.Embedding)
	if err != nil {
		return nil, err
	}

	llm, err := NewLLMService(&settings.LLM)
	if err != nil {
		_ = embedding.Close()
		return nil, err
	}

	index, err := NewVectorIndex(&settings.Index)
	if err != nil {
		_ = embedding.Close()
		_ = llm.Close()
		return nil, err
	}

	return &Services{
		Embedding: embedding,
		LLM:       llm,
		Index:     index,
	}, nil
}

// Close releases all resources held by Services.
func (s *Services) Close() {
	if s.Embedding != nil {
		_ = s.Embedding.Close()
	}
	if s.LLM != nil {
		_ = s.LLM.Close()
	}
	if s.Index != nil {
		_ = s.Index.Close()
	}
}

// Validate pings every service and probes the embedding dimension so a
// misconfigured provider fails at startup rather than mid-pipeline.
func (s *Services) Validate(ctx context.Context) error {
	if err := ping(ctx, s.Embedding.Ping); err != nil {
		return fmt.Errorf("embedding service validation failed: %w. Run 'citewise configure' to fix", err)
	}
	if err := ping(ctx, s.LLM.Ping); err != nil {
		return fmt.Errorf("LLM service validation failed: %w. Run 'citewise configure' to fix", err)
	}
	if err := ping(ctx, s.Index.Ping); err != nil {
		return fmt.Errorf("vector index validation failed: %w. Run 'citewise configure' to fix", err)
	}

	vector, err := s.Embedding.Embed(ctx, probeText)
	if err != nil {
		return fmt.Errorf("embedding probe failed: %w", err)
	}
	if len(vector) != s.Embedding.Dimensions() {
		return fmt.Errorf("embedding model returns %d-dimensional vectors, configured %d: %w",
			len(vector), s.Embedding.Dimensions(), domain.ErrDimensionMismatch)
	}
	return nil
}

// ping runs fn under the startup ping timeout.
func ping(ctx context.Context, fn func(context.Context) error) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return fn(pingCtx)
}

// NewEmbeddingService builds the embedding adapter for the configured
// provider. Both pipelines need embeddings, so unconfigured settings are
// an error rather than a degraded mode.
func NewEmbeddingService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if settings == nil || settings.Provider == "" {
		return nil, fmt.Errorf("embedding provider %w: run 'citewise configure'", domain.ErrNotConfigured)
	}
	if settings.Provider.IsValid() && !settings.Provider.SupportsEmbeddings() {
		return nil, fmt.Errorf("%s does not support embeddings, use %s or %s",
			settings.Provider, domain.AIProviderOllama, domain.AIProviderOpenAI)
	}
	if settings.Provider.IsValid() && !settings.IsConfigured() {
		return nil, fmt.Errorf("embedding provider %s is %w: run 'citewise configure'",
			settings.Provider, domain.ErrNotConfigured)
	}

	switch settings.Provider {
	case domain.AIProviderOllama:
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL:    settings.BaseURL,
			Model:      settings.Model,
			Dimensions: settings.Dimensions,
		}), nil

	case domain.AIProviderOpenAI:
		svc, err := openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:     settings.APIKey,
			BaseURL:    settings.BaseURL,
			Model:      settings.Model,
			Dimensions: settings.Dimensions,
		})
		if err != nil {
			return nil, err
		}
		return svc, nil

	default:
		return nil, fmt.Errorf("unsupported embedding provider %q (valid providers: %s, %s)",
			settings.Provider, domain.AIProviderOllama, domain.AIProviderOpenAI)
	}
}

// NewLLMService builds the LLM adapter for the configured provider.
func NewLLMService(settings *domain.LLMSettings) (driven.LLMService, error) {
	if settings == nil || settings.Provider == "" {
		return nil, fmt.Errorf("LLM provider %w: run 'citewise configure'", domain.ErrNotConfigured)
	}
	if settings.Provider.IsValid() && !settings.IsConfigured() {
		return nil, fmt.Errorf("LLM provider %s is %w: run 'citewise configure'",
			settings.Provider, domain.ErrNotConfigured)
	}

	switch settings.Provider {
	case domain.AIProviderOllama:
		return ollamallm.NewLLMService(ollamallm.LLMConfig{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		}), nil

	case domain.AIProviderOpenAI:
		svc, err := openaillm.NewLLMService(openaillm.LLMConfig{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})
		if err != nil {
			return nil, err
		}
		return svc, nil

	case domain.AIProviderAnthropic:
		svc, err := anthropicllm.NewLLMService(anthropicllm.LLMConfig{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})
		if err != nil {
			return nil, err
		}
		return svc, nil

	default:
		return nil, fmt.Errorf("unsupported LLM provider %q (valid providers: %s, %s, %s)",
			settings.Provider, domain.AIProviderOllama, domain.AIProviderOpenAI, domain.AIProviderAnthropic)
	}
}

// NewVectorIndex builds the vector index adapter for the configured backend.
func NewVectorIndex(settings *domain.IndexSettings) (driven.VectorIndex, error) {
	if settings == nil || settings.Provider == "" {
		return nil, fmt.Errorf("vector index %w: run 'citewise configure'", domain.ErrNotConfigured)
	}

	switch settings.Provider {
	case domain.IndexProviderMemory:
		return memory.NewIndex(), nil

	case domain.IndexProviderSQLite:
		index, err := sqlite.NewIndex(settings.Path)
		if err != nil {
			return nil, err
		}
		return index, nil

	case domain.IndexProviderQdrant:
		return qdrant.NewIndex(qdrant.Config{
			URL:    settings.URL,
			APIKey: settings.APIKey,
		}), nil

	default:
		return nil, fmt.Errorf("unsupported index provider %q (valid providers: %s, %s, %s)",
			settings.Provider, domain.IndexProviderMemory, domain.IndexProviderSQLite, domain.IndexProviderQdrant)
	}
}
