package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/citewise-labs/citewise-cli/internal/adapters/driven/ai"
	"github.com/citewise-labs/citewise-cli/internal/adapters/driven/config/file"
	"github.com/citewise-labs/citewise-cli/internal/core/domain"
	"github.com/citewise-labs/citewise-cli/internal/core/ports/driven"
)

// envFileName is the key file written next to config.toml. API keys
// live here or in the environment, never in the config file itself.
const envFileName = ".env"

// configValidator overrides the provider validator. Tests inject a
// fake; nil means ping the real providers.
var configValidator driven.AIConfigValidator

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Set up providers interactively",
	Long: `Walks through the embedding provider, language model provider, and
vector index backend, validating each against the live service before
anything is saved.

Settings go to config.toml in the configuration directory. API keys
go to a .env file next to it, never into config.toml.`,
	RunE: runConfigure,
}

var configureShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current configuration",
	RunE:  runConfigureShow,
}

func init() {
	configureCmd.AddCommand(configureShowCmd)
	rootCmd.AddCommand(configureCmd)
}

func validator() driven.AIConfigValidator {
	if configValidator != nil {
		return configValidator
	}
	return ai.NewConfigValidator()
}

func runConfigure(cmd *cobra.Command, _ []string) error {
	store, err := file.NewSettingsStore(configDirFlag)
	if err != nil {
		return err
	}
	settings, err := store.Load()
	if err != nil {
		return err
	}

	cmd.Println("Citewise Setup")
	cmd.Println("==============")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())
	keys := make(map[string]string)

	cmd.Println("Step 1: Embedding Provider")
	cmd.Println("--------------------------")
	if err := configureEmbedding(cmd, reader, &settings.Embedding, keys); err != nil {
		return err
	}

	cmd.Println("Step 2: Language Model Provider")
	cmd.Println("-------------------------------")
	if err := configureLLM(cmd, reader, &settings.LLM, keys); err != nil {
		return err
	}

	cmd.Println("Step 3: Vector Index")
	cmd.Println("--------------------")
	if err := configureIndex(cmd, reader, &settings.Index, keys); err != nil {
		return err
	}

	if err := store.Save(settings); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	cmd.Printf("Settings saved to %s\n", store.Path())

	if len(keys) > 0 {
		envPath := filepath.Join(filepath.Dir(store.Path()), envFileName)
		if err := writeEnvFile(envPath, keys); err != nil {
			return err
		}
		cmd.Printf("API keys saved to %s\n", envPath)
	}

	cmd.Println("\nSetup complete. Try: citewise ingest report.pdf")
	return nil
}

func configureEmbedding(
	cmd *cobra.Command, reader *bufio.Reader,
	cfg *domain.EmbeddingSettings, keys map[string]string,
) error {
	providers := domain.AllEmbeddingProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	idx := parseChoice(readLine(reader), len(providers), 1)
	provider := providers[idx-1]

	defaultModel := domain.DefaultEmbeddingModels()[provider]
	cmd.Printf("Model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	cmd.Print("Base URL (empty for provider default): ")
	baseURL := readLine(reader)

	dims := domain.DefaultEmbeddingDimensions()[provider]
	cmd.Printf("Vector dimensions [%d]: ", dims)
	if input := readLine(reader); input != "" {
		v, err := strconv.Atoi(input)
		if err != nil || v <= 0 {
			return errors.New("vector dimensions must be a positive integer")
		}
		dims = v
	}

	var apiKey string
	if provider.RequiresAPIKey() {
		cmd.Print("API key: ")
		apiKey = readPassword(reader)
		cmd.Println()
		if apiKey == "" {
			return errors.New("an API key is required for this provider")
		}
		keys[domain.EnvEmbeddingAPIKey] = apiKey
	}

	cfg.Provider = provider
	cfg.Model = model
	cfg.BaseURL = baseURL
	cfg.Dimensions = dims
	cfg.APIKey = apiKey

	cmd.Print("Validating embedding provider... ")
	if err := validator().ValidateEmbedding(cmd.Context(), cfg); err != nil {
		cmd.Println("FAILED")
		return err
	}
	cmd.Println("OK")
	cmd.Println()
	return nil
}

func configureLLM(
	cmd *cobra.Command, reader *bufio.Reader,
	cfg *domain.LLMSettings, keys map[string]string,
) error {
	providers := domain.AllLLMProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	idx := parseChoice(readLine(reader), len(providers), 1)
	provider := providers[idx-1]

	defaultModel := domain.DefaultLLMModels()[provider]
	cmd.Printf("Model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	cmd.Print("Base URL (empty for provider default): ")
	baseURL := readLine(reader)

	var apiKey string
	if provider.RequiresAPIKey() {
		cmd.Print("API key: ")
		apiKey = readPassword(reader)
		cmd.Println()
		if apiKey == "" {
			return errors.New("an API key is required for this provider")
		}
		keys[domain.EnvLLMAPIKey] = apiKey
	}

	cfg.Provider = provider
	cfg.Model = model
	cfg.BaseURL = baseURL
	cfg.APIKey = apiKey

	cmd.Print("Validating language model provider... ")
	if err := validator().ValidateLLM(cmd.Context(), cfg); err != nil {
		cmd.Println("FAILED")
		return err
	}
	cmd.Println("OK")
	cmd.Println()
	return nil
}

func configureIndex(
	cmd *cobra.Command, reader *bufio.Reader,
	cfg *domain.IndexSettings, keys map[string]string,
) error {
	providers := domain.AllIndexProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	idx := parseChoice(readLine(reader), len(providers), 1)
	provider := providers[idx-1]

	cfg.Provider = provider
	cfg.Path = ""
	cfg.URL = ""
	cfg.APIKey = ""

	switch provider {
	case domain.IndexProviderSQLite:
		cmd.Print("Database directory (empty for config directory): ")
		cfg.Path = readLine(reader)

	case domain.IndexProviderQdrant:
		cmd.Print("Server URL (empty for http://localhost:6333): ")
		cfg.URL = readLine(reader)
		cmd.Print("API key (empty if unsecured): ")
		if key := readPassword(reader); key != "" {
			cfg.APIKey = key
			keys[domain.EnvIndexAPIKey] = key
		}
		cmd.Println()
	}

	cmd.Print("Validating vector index... ")
	if err := validator().ValidateIndex(cmd.Context(), cfg); err != nil {
		cmd.Println("FAILED")
		return err
	}
	cmd.Println("OK")
	cmd.Println()
	return nil
}

func runConfigureShow(cmd *cobra.Command, _ []string) error {
	store, err := file.NewSettingsStore(configDirFlag)
	if err != nil {
		return err
	}
	settings, err := store.Load()
	if err != nil {
		return err
	}

	cmd.Println("Current Configuration")
	cmd.Println("=====================")
	cmd.Println()

	cmd.Println("[Embedding]")
	cmd.Printf("  Provider: %s\n", settings.Embedding.Provider.Description())
	cmd.Printf("  Model: %s\n", settings.Embedding.Model)
	cmd.Printf("  Dimensions: %d\n", settings.Embedding.Dimensions)
	if settings.Embedding.BaseURL != "" {
		cmd.Printf("  Base URL: %s\n", settings.Embedding.BaseURL)
	}
	printAPIKeyStatus(cmd, settings.Embedding.Provider.RequiresAPIKey(), settings.Embedding.APIKey)
	printConfiguredStatus(cmd, settings.Embedding.IsConfigured())
	cmd.Println()

	cmd.Println("[LLM]")
	cmd.Printf("  Provider: %s\n", settings.LLM.Provider.Description())
	cmd.Printf("  Model: %s\n", settings.LLM.Model)
	if settings.LLM.BaseURL != "" {
		cmd.Printf("  Base URL: %s\n", settings.LLM.BaseURL)
	}
	printAPIKeyStatus(cmd, settings.LLM.Provider.RequiresAPIKey(), settings.LLM.APIKey)
	printConfiguredStatus(cmd, settings.LLM.IsConfigured())
	cmd.Println()

	cmd.Println("[Vector Index]")
	cmd.Printf("  Provider: %s\n", settings.Index.Provider.Description())
	if settings.Index.Path != "" {
		cmd.Printf("  Path: %s\n", settings.Index.Path)
	}
	if settings.Index.URL != "" {
		cmd.Printf("  URL: %s\n", settings.Index.URL)
	}
	cmd.Println()

	cmd.Println("[Retrieval]")
	cmd.Printf("  Top K: %d\n", settings.Retrieval.TopK)
	cmd.Println()

	cmd.Println("[Chunking]")
	cmd.Printf("  Max chars: %d\n", settings.Chunking.MaxChars)
	cmd.Printf("  Overlap: %d\n", settings.Chunking.Overlap)
	cmd.Println()

	if err := settings.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'citewise configure' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func printAPIKeyStatus(cmd *cobra.Command, required bool, key string) {
	if !required {
		return
	}
	if key != "" {
		cmd.Printf("  API Key: %s\n", maskAPIKey(key))
	} else {
		cmd.Printf("  API Key: (not set)\n")
	}
}

func printConfiguredStatus(cmd *cobra.Command, configured bool) {
	status := "configured"
	if !configured {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)
}

// writeEnvFile merges the given keys into the .env file, preserving
// unrelated entries already there.
func writeEnvFile(path string, keys map[string]string) error {
	merged, err := godotenv.Read(path)
	if err != nil {
		merged = make(map[string]string)
	}
	for k, v := range keys {
		merged[k] = v
	}
	if err := godotenv.Write(merged, path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return os.Chmod(path, 0600)
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readPassword reads a key without echoing when stdin is a terminal,
// falling back to a plain line read otherwise.
//
//nolint:errcheck // CLI helper, error ignored for UX
func readPassword(reader *bufio.Reader) string {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	return readLine(reader)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
