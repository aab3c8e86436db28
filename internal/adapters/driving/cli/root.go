// Package cli implements the citewise command-line interface.
package cli

import (
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/citewise-labs/citewise-cli/internal/adapters/driven/config/file"
	"github.com/citewise-labs/citewise-cli/internal/core/ports/driving"
	"github.com/citewise-labs/citewise-cli/internal/logger"
)

// version is the build version, set via Execute.
var version = "dev"

// Global flag values.
var (
	verboseFlag   bool
	configDirFlag string
)

// Pipeline services used by the commands. They are nil by default;
// commands build the real pipeline from the stored settings on each
// run. Tests inject fakes here.
var (
	ingestService driving.IngestService
	answerService driving.AnswerService
)

var rootCmd = &cobra.Command{
	Use:   "citewise",
	Short: "Ask questions about your documents, with citations",
	Long: `Citewise answers questions from your own documents.

Ingest a handful of PDF, Word, or text files into a local vector
index, then ask questions against them. Every answer names the file
and quotes the passage it came from, so claims can be checked against
the source.

Run 'citewise configure' first to pick your embedding and language
model providers.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
		loadEnvFiles()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false,
		"enable verbose pipeline logging")
	rootCmd.PersistentFlags().StringVar(&configDirFlag, "config-dir", "",
		"configuration directory (default ~/.citewise)")
}

// Execute runs the CLI. buildVersion is the version string stamped at
// build time; empty keeps the development default.
func Execute(buildVersion string) error {
	if buildVersion != "" {
		version = buildVersion
	}
	return rootCmd.Execute()
}

// loadEnvFiles loads API keys from .env files into the process
// environment: the working directory first, then the config
// directory. Variables already set in the environment win.
func loadEnvFiles() {
	_ = godotenv.Load()
	if dir, err := file.ResolveConfigDir(configDirFlag); err == nil {
		_ = godotenv.Load(filepath.Join(dir, envFileName))
	}
}
