package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAIProvider_IsValid tests all valid and invalid AI providers
func TestAIProvider_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		provider AIProvider
		expected bool
	}{
		{"ollama is valid", AIProviderOllama, true},
		{"openai is valid", AIProviderOpenAI, true},
		{"anthropic is valid", AIProviderAnthropic, true},
		{"empty string is invalid", AIProvider(""), false},
		{"unknown is invalid", AIProvider("cohere"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.provider.IsValid())
		})
	}
}

// TestAIProvider_RequiresAPIKey tests API key requirements
func TestAIProvider_RequiresAPIKey(t *testing.T) {
	assert.False(t, AIProviderOllama.RequiresAPIKey())
	assert.True(t, AIProviderOpenAI.RequiresAPIKey())
	assert.True(t, AIProviderAnthropic.RequiresAPIKey())
}

// TestAIProvider_SupportsEmbeddings tests which providers can embed
func TestAIProvider_SupportsEmbeddings(t *testing.T) {
	assert.True(t, AIProviderOllama.SupportsEmbeddings())
	assert.True(t, AIProviderOpenAI.SupportsEmbeddings())
	assert.False(t, AIProviderAnthropic.SupportsEmbeddings())

	for _, p := range AllEmbeddingProviders() {
		assert.True(t, p.SupportsEmbeddings(), "provider %s", p)
	}
}

// TestDefaultModels tests that every provider list entry has a default model
func TestDefaultModels(t *testing.T) {
	embeddingDefaults := DefaultEmbeddingModels()
	for _, p := range AllEmbeddingProviders() {
		assert.NotEmpty(t, embeddingDefaults[p], "embedding default for %s", p)
	}

	llmDefaults := DefaultLLMModels()
	for _, p := range AllLLMProviders() {
		assert.NotEmpty(t, llmDefaults[p], "llm default for %s", p)
	}
}

// TestIndexProvider_IsValid tests all valid and invalid index providers
func TestIndexProvider_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		provider IndexProvider
		expected bool
	}{
		{"memory is valid", IndexProviderMemory, true},
		{"sqlite is valid", IndexProviderSQLite, true},
		{"qdrant is valid", IndexProviderQdrant, true},
		{"empty string is invalid", IndexProvider(""), false},
		{"unknown is invalid", IndexProvider("milvus"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.provider.IsValid())
		})
	}
}

// TestEmbeddingSettings_IsConfigured tests embedding configuration checks
func TestEmbeddingSettings_IsConfigured(t *testing.T) {
	tests := []struct {
		name     string
		settings EmbeddingSettings
		expected bool
	}{
		{
			name:     "openai with key",
			settings: EmbeddingSettings{Provider: AIProviderOpenAI, Model: "text-embedding-3-small", APIKey: "sk-test"},
			expected: true,
		},
		{
			name:     "openai without key",
			settings: EmbeddingSettings{Provider: AIProviderOpenAI, Model: "text-embedding-3-small"},
			expected: false,
		},
		{
			name:     "ollama without key",
			settings: EmbeddingSettings{Provider: AIProviderOllama, Model: "nomic-embed-text"},
			expected: true,
		},
		{
			name:     "missing model",
			settings: EmbeddingSettings{Provider: AIProviderOllama},
			expected: false,
		},
		{
			name:     "invalid provider",
			settings: EmbeddingSettings{Provider: AIProvider("hf"), Model: "all-MiniLM-L6-v2"},
			expected: false,
		},
		{
			name:     "anthropic cannot embed",
			settings: EmbeddingSettings{Provider: AIProviderAnthropic, Model: "claude-3-5-sonnet-latest", APIKey: "sk-test"},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.settings.IsConfigured())
		})
	}
}

// TestLLMSettings_IsConfigured tests LLM configuration checks
func TestLLMSettings_IsConfigured(t *testing.T) {
	configured := LLMSettings{Provider: AIProviderOpenAI, Model: "gpt-4o-mini", APIKey: "sk-test"}
	assert.True(t, configured.IsConfigured())

	missingKey := LLMSettings{Provider: AIProviderOpenAI, Model: "gpt-4o-mini"}
	assert.False(t, missingKey.IsConfigured())

	local := LLMSettings{Provider: AIProviderOllama, Model: "llama3.2"}
	assert.True(t, local.IsConfigured())

	anthropic := LLMSettings{Provider: AIProviderAnthropic, Model: "claude-3-5-sonnet-latest", APIKey: "sk-test"}
	assert.True(t, anthropic.IsConfigured())
}

// TestDefaultSettings tests the default configuration values
func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	require.NotNil(t, s)

	assert.Equal(t, AIProviderOpenAI, s.Embedding.Provider)
	assert.Equal(t, "text-embedding-3-small", s.Embedding.Model)
	assert.Equal(t, 1536, s.Embedding.Dimensions)
	assert.Equal(t, AIProviderOpenAI, s.LLM.Provider)
	assert.Equal(t, "gpt-4o-mini", s.LLM.Model)
	assert.Equal(t, IndexProviderSQLite, s.Index.Provider)
	assert.Equal(t, 4, s.Retrieval.TopK)
	assert.Equal(t, 1800, s.Chunking.MaxChars)
	assert.Equal(t, 200, s.Chunking.Overlap)

	// Keys come from the environment, never from defaults.
	assert.Empty(t, s.Embedding.APIKey)
	assert.Empty(t, s.LLM.APIKey)
}

// TestSettings_Validate tests structural validation of settings
func TestSettings_Validate(t *testing.T) {
	assert.NoError(t, DefaultSettings().Validate())

	tests := []struct {
		name      string
		mutate    func(*Settings)
		wantField string
	}{
		{
			name:      "unknown embedding provider",
			mutate:    func(s *Settings) { s.Embedding.Provider = "hf" },
			wantField: "embedding.provider",
		},
		{
			name:      "llm-only provider as embedding provider",
			mutate:    func(s *Settings) { s.Embedding.Provider = AIProviderAnthropic },
			wantField: "embedding.provider",
		},
		{
			name:      "empty embedding model",
			mutate:    func(s *Settings) { s.Embedding.Model = "" },
			wantField: "embedding.model",
		},
		{
			name:      "zero dimensions",
			mutate:    func(s *Settings) { s.Embedding.Dimensions = 0 },
			wantField: "embedding.dimensions",
		},
		{
			name:      "empty llm model",
			mutate:    func(s *Settings) { s.LLM.Model = "" },
			wantField: "llm.model",
		},
		{
			name:      "unknown index provider",
			mutate:    func(s *Settings) { s.Index.Provider = "milvus" },
			wantField: "index.provider",
		},
		{
			name:      "zero top-k",
			mutate:    func(s *Settings) { s.Retrieval.TopK = 0 },
			wantField: "retrieval.top_k",
		},
		{
			name:      "zero max chars",
			mutate:    func(s *Settings) { s.Chunking.MaxChars = 0 },
			wantField: "chunking.max_chars",
		},
		{
			name:      "overlap not below max chars",
			mutate:    func(s *Settings) { s.Chunking.Overlap = 1800 },
			wantField: "chunking.overlap",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(s)

			err := s.Validate()
			require.Error(t, err)

			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.wantField, vErr.Field)
		})
	}
}
