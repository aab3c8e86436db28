package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/citewise-labs/citewise-cli/internal/core/domain"
	"github.com/citewise-labs/citewise-cli/internal/core/ports/driven"
)

// EnvConfigDir overrides the default ~/.citewise config directory.
const EnvConfigDir = "CITEWISE_CONFIG_DIR"

// ConfigFileName is the settings file inside the config directory.
const ConfigFileName = "config.toml"

// Ensure SettingsStore implements the interface.
var _ driven.SettingsStore = (*SettingsStore)(nil)

// SettingsStore persists domain.Settings as a TOML document.
// Values absent from the file keep their defaults, so a sparse
// hand-edited config stays valid. API keys are read from the
// environment and are never written back.
type SettingsStore struct {
	mu       sync.Mutex
	filePath string
}

// tomlSettings mirrors domain.Settings with TOML tags. The domain types
// stay serialisation-free; this adapter owns the file shape. Numeric
// fields are pointers so an explicit zero in the file is distinguishable
// from an absent key.
type tomlSettings struct {
	Embedding tomlEmbedding `toml:"embedding"`
	LLM       tomlLLM       `toml:"llm"`
	Index     tomlIndex     `toml:"index"`
	Retrieval tomlRetrieval `toml:"retrieval"`
	Chunking  tomlChunking  `toml:"chunking"`
}

type tomlEmbedding struct {
	Provider   string `toml:"provider"`
	Model      string `toml:"model"`
	BaseURL    string `toml:"base_url,omitempty"`
	Dimensions *int   `toml:"dimensions"`
}

type tomlLLM struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	BaseURL  string `toml:"base_url,omitempty"`
}

type tomlIndex struct {
	Provider string `toml:"provider"`
	Path     string `toml:"path,omitempty"`
	URL      string `toml:"url,omitempty"`
}

type tomlRetrieval struct {
	TopK *int `toml:"top_k"`
}

type tomlChunking struct {
	MaxChars *int `toml:"max_chars"`
	Overlap  *int `toml:"overlap"`
}

// NewSettingsStore creates a TOML-backed settings store.
// If configDir is empty, CITEWISE_CONFIG_DIR is consulted, then ~/.citewise.
func NewSettingsStore(configDir string) (*SettingsStore, error) {
	dir, err := ResolveConfigDir(configDir)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	return &SettingsStore{
		filePath: filepath.Join(dir, ConfigFileName),
	}, nil
}

// ResolveConfigDir picks the config directory: explicit argument, then
// environment override, then the home default. It does not create the
// directory.
func ResolveConfigDir(configDir string) (string, error) {
	if configDir != "" {
		return configDir, nil
	}
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".citewise"), nil
}

// Load reads settings from the TOML file, merged over defaults.
// A missing file yields the full defaults. API keys are overlaid from
// the environment last.
func (s *SettingsStore) Load() (*domain.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings := domain.DefaultSettings()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvironment(settings)
			return settings, nil
		}
		return nil, fmt.Errorf("reading %s: %w", s.filePath, err)
	}

	var doc tomlSettings
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.filePath, err)
	}

	applyFile(settings, &doc)
	applyEnvironment(settings)
	return settings, nil
}

// Save writes the settings to the TOML file with restricted permissions.
// API keys are deliberately excluded.
func (s *SettingsStore) Save(settings *domain.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := tomlSettings{
		Embedding: tomlEmbedding{
			Provider:   string(settings.Embedding.Provider),
			Model:      settings.Embedding.Model,
			BaseURL:    settings.Embedding.BaseURL,
			Dimensions: &settings.Embedding.Dimensions,
		},
		LLM: tomlLLM{
			Provider: string(settings.LLM.Provider),
			Model:    settings.LLM.Model,
			BaseURL:  settings.LLM.BaseURL,
		},
		Index: tomlIndex{
			Provider: string(settings.Index.Provider),
			Path:     settings.Index.Path,
			URL:      settings.Index.URL,
		},
		Retrieval: tomlRetrieval{
			TopK: &settings.Retrieval.TopK,
		},
		Chunking: tomlChunking{
			MaxChars: &settings.Chunking.MaxChars,
			Overlap:  &settings.Chunking.Overlap,
		},
	}

	data, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}

	if err := os.WriteFile(s.filePath, data, 0600); err != nil {
		return fmt.Errorf("writing %s: %w", s.filePath, err)
	}
	return nil
}

// Path returns the configuration file path.
func (s *SettingsStore) Path() string {
	return s.filePath
}

// applyFile overlays non-empty file values onto the settings.
func applyFile(settings *domain.Settings, doc *tomlSettings) {
	if doc.Embedding.Provider != "" {
		settings.Embedding.Provider = domain.AIProvider(doc.Embedding.Provider)
	}
	if doc.Embedding.Model != "" {
		settings.Embedding.Model = doc.Embedding.Model
	}
	if doc.Embedding.BaseURL != "" {
		settings.Embedding.BaseURL = doc.Embedding.BaseURL
	}
	if doc.Embedding.Dimensions != nil {
		settings.Embedding.Dimensions = *doc.Embedding.Dimensions
	}

	if doc.LLM.Provider != "" {
		settings.LLM.Provider = domain.AIProvider(doc.LLM.Provider)
	}
	if doc.LLM.Model != "" {
		settings.LLM.Model = doc.LLM.Model
	}
	if doc.LLM.BaseURL != "" {
		settings.LLM.BaseURL = doc.LLM.BaseURL
	}

	if doc.Index.Provider != "" {
		settings.Index.Provider = domain.IndexProvider(doc.Index.Provider)
	}
	if doc.Index.Path != "" {
		settings.Index.Path = doc.Index.Path
	}
	if doc.Index.URL != "" {
		settings.Index.URL = doc.Index.URL
	}

	if doc.Retrieval.TopK != nil {
		settings.Retrieval.TopK = *doc.Retrieval.TopK
	}

	if doc.Chunking.MaxChars != nil {
		settings.Chunking.MaxChars = *doc.Chunking.MaxChars
	}
	if doc.Chunking.Overlap != nil {
		settings.Chunking.Overlap = *doc.Chunking.Overlap
	}
}

// applyEnvironment overlays API keys from the environment.
func applyEnvironment(settings *domain.Settings) {
	if key := os.Getenv(domain.EnvEmbeddingAPIKey); key != "" {
		settings.Embedding.APIKey = key
	}
	if key := os.Getenv(domain.EnvLLMAPIKey); key != "" {
		settings.LLM.APIKey = key
	}
	if key := os.Getenv(domain.EnvIndexAPIKey); key != "" {
		settings.Index.APIKey = key
	}
}
