package cli

import (
	"github.com/spf13/cobra"

	"github.com/citewise-labs/citewise-cli/internal/core/domain"
	"github.com/citewise-labs/citewise-cli/internal/core/ports/driven"
)

var resetCollection string

// resetIndex overrides the vector index used by reset. Tests inject a
// fake; nil means build the configured index.
var resetIndex driven.VectorIndex

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete a collection and all its records",
	Long: `Removes the named collection from the vector index. The next ingest
into that collection starts from nothing.

Ingested records are never replaced in place, so this is the way to
clear out stale content before re-ingesting updated files.`,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().StringVarP(&resetCollection, "collection", "c", domain.DefaultCollection,
		"collection to delete")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, _ []string) error {
	index := resetIndex
	if index == nil {
		built, err := openIndex()
		if err != nil {
			return err
		}
		defer built.Close()
		index = built
	}

	if err := index.DeleteCollection(cmd.Context(), resetCollection); err != nil {
		return friendlyError(err)
	}

	cmd.Printf("Collection %q deleted.\n", resetCollection)
	return nil
}
