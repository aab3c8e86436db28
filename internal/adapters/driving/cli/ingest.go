package cli

import (
	"github.com/spf13/cobra"

	"github.com/citewise-labs/citewise-cli/internal/core/domain"
	"github.com/citewise-labs/citewise-cli/internal/loaders"
)

var ingestCollection string

var ingestCmd = &cobra.Command{
	Use:   "ingest [file]...",
	Short: "Index documents for question answering",
	Long: `Parses the given files, cuts them into chunks, embeds the chunks,
and writes them to the vector index. Up to 3 files per batch; PDF,
Word (.docx), and plain text are supported.

Files are parsed independently: a corrupted file is reported and
skipped while the others are indexed. Re-ingesting a file appends new
records, it does not replace the old ones; use 'citewise reset' to
start a collection over.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestCollection, "collection", "c", domain.DefaultCollection,
		"collection to ingest into")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	docs, err := loaders.ReadFiles(args)
	if err != nil {
		return err
	}

	svc := ingestService
	if svc == nil {
		sess, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer sess.Close()
		svc = sess.newIngestService()
	}

	cmd.Printf("Ingesting %d file(s) into collection %q\n", len(docs), ingestCollection)

	result, err := svc.Ingest(cmd.Context(), ingestCollection, docs)
	if err != nil {
		return friendlyError(err)
	}

	cmd.Println()
	for _, report := range result.Reports {
		if report.Failed() {
			cmd.Printf("  failed  %s: %v\n", report.FileName, report.Err)
		} else {
			cmd.Printf("  ok      %s (%d chunks)\n", report.FileName, report.Chunks)
		}
	}
	cmd.Printf("\nIndexed %d of %d file(s), %d records written.\n",
		result.Succeeded, len(result.Reports), result.RecordsWritten)

	return nil
}
