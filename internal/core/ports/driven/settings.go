package driven

import "github.com/citewise-labs/citewise-cli/internal/core/domain"

// SettingsStore persists application settings.
// Implementations handle storage (e.g. TOML files) and defaulting.
type SettingsStore interface {
	// Load reads settings from storage. Missing values are filled
	// with defaults; a missing file yields the full defaults.
	Load() (*domain.Settings, error)

	// Save persists the settings to storage.
	Save(settings *domain.Settings) error

	// Path returns the backing file path.
	Path() string
}
