package domain

const unknownDescription = "Unknown"

// AIProvider identifies an AI service provider for embeddings or LLM.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is the OpenAI cloud API or any
	// OpenAI-compatible endpoint.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is the Anthropic cloud API. LLM only;
	// Anthropic has no embeddings endpoint.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic
}

// SupportsEmbeddings returns true if this provider can embed text.
func (p AIProvider) SupportsEmbeddings() bool {
	return p == AIProviderOllama || p == AIProviderOpenAI
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI-compatible (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	default:
		return unknownDescription
	}
}

// AllEmbeddingProviders returns providers that support embeddings.
func AllEmbeddingProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
	}
}

// AllLLMProviders returns providers that support LLM operations.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderAnthropic,
	}
}

// DefaultEmbeddingModels returns the default model for each embedding
// provider.
func DefaultEmbeddingModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama: "nomic-embed-text",
		AIProviderOpenAI: "text-embedding-3-small",
	}
}

// DefaultEmbeddingDimensions returns the vector dimension of each
// provider's default embedding model. Other models need the dimension
// set explicitly.
func DefaultEmbeddingDimensions() map[AIProvider]int {
	return map[AIProvider]int{
		AIProviderOllama: 768,
		AIProviderOpenAI: 1536,
	}
}

// DefaultLLMModels returns the default model for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:    "llama3.2",
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-3-5-sonnet-latest",
	}
}

// IndexProvider identifies a vector index backend.
type IndexProvider string

// Available vector index providers.
const (
	// IndexProviderMemory keeps records in process memory. Nothing
	// survives a restart; useful for tests and throwaway sessions.
	IndexProviderMemory IndexProvider = "memory"

	// IndexProviderSQLite stores records in a local SQLite file.
	IndexProviderSQLite IndexProvider = "sqlite"

	// IndexProviderQdrant talks to a Qdrant server over REST.
	IndexProviderQdrant IndexProvider = "qdrant"
)

// IsValid returns true if the index provider is recognised.
func (p IndexProvider) IsValid() bool {
	switch p {
	case IndexProviderMemory, IndexProviderSQLite, IndexProviderQdrant:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (p IndexProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p IndexProvider) Description() string {
	switch p {
	case IndexProviderMemory:
		return "In-memory (ephemeral)"
	case IndexProviderSQLite:
		return "SQLite (local file)"
	case IndexProviderQdrant:
		return "Qdrant (server)"
	default:
		return unknownDescription
	}
}

// AllIndexProviders returns the selectable index backends.
func AllIndexProviders() []IndexProvider {
	return []IndexProvider{
		IndexProviderSQLite,
		IndexProviderMemory,
		IndexProviderQdrant,
	}
}

// Environment variables carrying API keys. Keys live in the
// environment (or the config directory's .env file), never in the
// settings file itself.
const (
	// EnvEmbeddingAPIKey supplies the embedding provider API key.
	EnvEmbeddingAPIKey = "CITEWISE_EMBEDDING_API_KEY"

	// EnvLLMAPIKey supplies the LLM provider API key.
	EnvLLMAPIKey = "CITEWISE_LLM_API_KEY"

	// EnvIndexAPIKey supplies the vector index API key, for a qdrant
	// server that requires one.
	EnvIndexAPIKey = "CITEWISE_INDEX_API_KEY"
)

// EmbeddingSettings holds embedding provider configuration.
// The same configuration must be used for documents and queries;
// mixing models within one collection makes similarity meaningless.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider AIProvider

	// Model is the embedding model name.
	Model string

	// BaseURL overrides the provider API endpoint. Required for
	// Ollama and OpenAI-compatible servers, empty for openai.com.
	BaseURL string

	// APIKey is the API key. Loaded from the environment, never
	// persisted to the config file.
	APIKey string

	// Dimensions is the embedding vector size produced by Model.
	Dimensions int
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.SupportsEmbeddings() || e.Model == "" {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// LLMSettings holds language model provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL overrides the provider API endpoint.
	BaseURL string

	// APIKey is the API key. Loaded from the environment, never
	// persisted to the config file.
	APIKey string
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() || l.Model == "" {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// IndexSettings holds vector index backend configuration.
type IndexSettings struct {
	// Provider is the vector index backend.
	Provider IndexProvider

	// Path is the database file location for the sqlite provider.
	// Empty means the default under the config directory.
	Path string

	// URL is the server address for the qdrant provider.
	URL string

	// APIKey authenticates against a qdrant server that requires it.
	// Loaded from the environment, never persisted to the config file.
	APIKey string
}

// RetrievalSettings holds query-time behaviour configuration.
type RetrievalSettings struct {
	// TopK is the number of records retrieved per query. Fixed at
	// configuration time, not per call.
	TopK int
}

// ChunkingSettings holds chunk sizing configuration. The bound tracks
// the embedding model's effective input window.
type ChunkingSettings struct {
	// MaxChars is the maximum chunk size in characters.
	MaxChars int

	// Overlap is the number of characters shared between adjacent
	// chunks split from one oversized block.
	Overlap int
}

// Settings holds all application settings. Pipelines receive the
// sections they need at construction time; settings are never read
// as ambient state, so multiple configurations can coexist.
type Settings struct {
	// Embedding holds embedding provider settings.
	Embedding EmbeddingSettings

	// LLM holds LLM provider settings.
	LLM LLMSettings

	// Index holds vector index settings.
	Index IndexSettings

	// Retrieval holds query-time settings.
	Retrieval RetrievalSettings

	// Chunking holds chunk sizing settings.
	Chunking ChunkingSettings
}

// DefaultSettings returns settings with sensible defaults.
// API keys are left empty; they come from the environment.
func DefaultSettings() *Settings {
	return &Settings{
		Embedding: EmbeddingSettings{
			Provider:   AIProviderOpenAI,
			Model:      "text-embedding-3-small",
			Dimensions: 1536,
		},
		LLM: LLMSettings{
			Provider: AIProviderOpenAI,
			Model:    "gpt-4o-mini",
		},
		Index: IndexSettings{
			Provider: IndexProviderSQLite,
		},
		Retrieval: RetrievalSettings{
			TopK: 4,
		},
		Chunking: ChunkingSettings{
			MaxChars: 1800,
			Overlap:  200,
		},
	}
}

// Validate checks the settings for structural problems. API key
// presence is checked separately at provider construction, after
// environment loading.
func (s *Settings) Validate() error {
	if !s.Embedding.Provider.IsValid() {
		return &ValidationError{Field: "embedding.provider", Reason: "unknown provider " + s.Embedding.Provider.String()}
	}
	if !s.Embedding.Provider.SupportsEmbeddings() {
		return &ValidationError{Field: "embedding.provider", Reason: s.Embedding.Provider.String() + " does not support embeddings"}
	}
	if s.Embedding.Model == "" {
		return &ValidationError{Field: "embedding.model", Reason: "must not be empty"}
	}
	if s.Embedding.Dimensions <= 0 {
		return &ValidationError{Field: "embedding.dimensions", Reason: "must be positive"}
	}
	if !s.LLM.Provider.IsValid() {
		return &ValidationError{Field: "llm.provider", Reason: "unknown provider " + s.LLM.Provider.String()}
	}
	if s.LLM.Model == "" {
		return &ValidationError{Field: "llm.model", Reason: "must not be empty"}
	}
	if !s.Index.Provider.IsValid() {
		return &ValidationError{Field: "index.provider", Reason: "unknown provider " + s.Index.Provider.String()}
	}
	if s.Retrieval.TopK <= 0 {
		return &ValidationError{Field: "retrieval.top_k", Reason: "must be positive"}
	}
	if s.Chunking.MaxChars <= 0 {
		return &ValidationError{Field: "chunking.max_chars", Reason: "must be positive"}
	}
	if s.Chunking.Overlap < 0 || s.Chunking.Overlap >= s.Chunking.MaxChars {
		return &ValidationError{Field: "chunking.overlap", Reason: "must be non-negative and smaller than max_chars"}
	}
	return nil
}
