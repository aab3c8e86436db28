package ai

import (
	"errors"
	"strings"
	"testing"

	"github.com/citewise-labs/citewise-cli/internal/core/domain"
)

func TestServices_Close(t *testing.T) {
	t.Run("close with nil services", func(t *testing.T) {
		services := &Services{}
		// Should not panic
		services.Close()
	})
}

func TestNew_BuildsAllServices(t *testing.T) {
	settings := &domain.Settings{
		Embedding: domain.EmbeddingSettings{
			Provider:   domain.AIProviderOllama,
			BaseURL:    "http://localhost:11434",
			Model:      "nomic-embed-text",
			Dimensions: 768,
		},
		LLM: domain.LLMSettings{
			Provider: domain.AIProviderOllama,
			BaseURL:  "http://localhost:11434",
			Model:    "llama3.2",
		},
		Index: domain.IndexSettings{
			Provider: domain.IndexProviderMemory,
		},
	}

	services, err := New(settings)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer services.Close()

	if services.Embedding == nil {
		t.Error("expected non-nil embedding service")
	}
	if services.LLM == nil {
		t.Error("expected non-nil LLM service")
	}
	if services.Index == nil {
		t.Error("expected non-nil vector index")
	}
}

func TestNew_UnconfiguredLLM(t *testing.T) {
	settings := &domain.Settings{
		Embedding: domain.EmbeddingSettings{
			Provider:   domain.AIProviderOllama,
			Model:      "nomic-embed-text",
			Dimensions: 768,
		},
		LLM: domain.LLMSettings{
			Provider: domain.AIProviderOpenAI,
			Model:    "gpt-4o-mini",
			// no API key
		},
		Index: domain.IndexSettings{
			Provider: domain.IndexProviderMemory,
		},
	}

	services, err := New(settings)

	if services != nil {
		t.Error("expected nil services")
		services.Close()
	}
	if !errors.Is(err, domain.ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
}

func TestNewEmbeddingService(t *testing.T) {
	tests := []struct {
		name        string
		settings    *domain.EmbeddingSettings
		wantErr     error
		errContains string
	}{
		{
			name:     "nil settings",
			settings: nil,
			wantErr:  domain.ErrNotConfigured,
		},
		{
			name:     "empty settings",
			settings: &domain.EmbeddingSettings{},
			wantErr:  domain.ErrNotConfigured,
		},
		{
			name: "ollama provider creates service",
			settings: &domain.EmbeddingSettings{
				Provider:   domain.AIProviderOllama,
				BaseURL:    "http://localhost:11434",
				Model:      "nomic-embed-text",
				Dimensions: 768,
			},
		},
		{
			name: "openai provider creates service",
			settings: &domain.EmbeddingSettings{
				Provider:   domain.AIProviderOpenAI,
				APIKey:     "test-key",
				Model:      "text-embedding-3-small",
				Dimensions: 1536,
			},
		},
		{
			name: "openai without API key",
			settings: &domain.EmbeddingSettings{
				Provider:   domain.AIProviderOpenAI,
				Model:      "text-embedding-3-small",
				Dimensions: 1536,
			},
			wantErr: domain.ErrNotConfigured,
		},
		{
			name: "anthropic cannot embed",
			settings: &domain.EmbeddingSettings{
				Provider:   domain.AIProviderAnthropic,
				APIKey:     "test-key",
				Model:      "claude-3-5-sonnet-latest",
				Dimensions: 768,
			},
			errContains: "does not support embeddings",
		},
		{
			name: "unknown provider lists valid options",
			settings: &domain.EmbeddingSettings{
				Provider: "cohere",
				Model:    "embed-v3",
			},
			errContains: "valid providers",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewEmbeddingService(tt.settings)

			if tt.wantErr != nil || tt.errContains != "" {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q should contain %q", err.Error(), tt.errContains)
				}
				if svc != nil {
					t.Error("expected nil service on error")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if svc == nil {
				t.Fatal("expected non-nil service")
			}
			_ = svc.Close()
		})
	}
}

func TestNewLLMService(t *testing.T) {
	tests := []struct {
		name        string
		settings    *domain.LLMSettings
		wantErr     error
		errContains string
	}{
		{
			name:     "nil settings",
			settings: nil,
			wantErr:  domain.ErrNotConfigured,
		},
		{
			name:     "empty settings",
			settings: &domain.LLMSettings{},
			wantErr:  domain.ErrNotConfigured,
		},
		{
			name: "ollama provider creates service",
			settings: &domain.LLMSettings{
				Provider: domain.AIProviderOllama,
				BaseURL:  "http://localhost:11434",
				Model:    "llama3.2",
			},
		},
		{
			name: "openai provider creates service",
			settings: &domain.LLMSettings{
				Provider: domain.AIProviderOpenAI,
				APIKey:   "test-key",
				Model:    "gpt-4o-mini",
			},
		},
		{
			name: "openai without API key",
			settings: &domain.LLMSettings{
				Provider: domain.AIProviderOpenAI,
				Model:    "gpt-4o-mini",
			},
			wantErr: domain.ErrNotConfigured,
		},
		{
			name: "anthropic provider creates service",
			settings: &domain.LLMSettings{
				Provider: domain.AIProviderAnthropic,
				APIKey:   "test-key",
				Model:    "claude-3-5-sonnet-latest",
			},
		},
		{
			name: "anthropic without API key",
			settings: &domain.LLMSettings{
				Provider: domain.AIProviderAnthropic,
				Model:    "claude-3-5-sonnet-latest",
			},
			wantErr: domain.ErrNotConfigured,
		},
		{
			name: "unknown provider lists valid options",
			settings: &domain.LLMSettings{
				Provider: "cohere",
				APIKey:   "test-key",
				Model:    "command-r",
			},
			errContains: "valid providers",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewLLMService(tt.settings)

			if tt.wantErr != nil || tt.errContains != "" {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q should contain %q", err.Error(), tt.errContains)
				}
				if svc != nil {
					t.Error("expected nil service on error")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if svc == nil {
				t.Fatal("expected non-nil service")
			}
			_ = svc.Close()
		})
	}
}

func TestNewVectorIndex(t *testing.T) {
	tests := []struct {
		name        string
		settings    *domain.IndexSettings
		wantErr     error
		errContains string
	}{
		{
			name:     "nil settings",
			settings: nil,
			wantErr:  domain.ErrNotConfigured,
		},
		{
			name:     "empty settings",
			settings: &domain.IndexSettings{},
			wantErr:  domain.ErrNotConfigured,
		},
		{
			name: "memory backend creates index",
			settings: &domain.IndexSettings{
				Provider: domain.IndexProviderMemory,
			},
		},
		{
			name: "qdrant backend creates index",
			settings: &domain.IndexSettings{
				Provider: domain.IndexProviderQdrant,
				URL:      "http://localhost:6333",
			},
		},
		{
			name: "unknown backend lists valid options",
			settings: &domain.IndexSettings{
				Provider: "pinecone",
			},
			errContains: "valid providers",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			index, err := NewVectorIndex(tt.settings)

			if tt.wantErr != nil || tt.errContains != "" {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q should contain %q", err.Error(), tt.errContains)
				}
				if index != nil {
					t.Error("expected nil index on error")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if index == nil {
				t.Fatal("expected non-nil index")
			}
			_ = index.Close()
		})
	}
}

func TestNewVectorIndex_SQLite(t *testing.T) {
	index, err := NewVectorIndex(&domain.IndexSettings{
		Provider: domain.IndexProviderSQLite,
		Path:     t.TempDir(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if index == nil {
		t.Fatal("expected non-nil index")
	}
	_ = index.Close()
}
