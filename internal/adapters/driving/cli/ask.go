package cli

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/citewise-labs/citewise-cli/internal/core/domain"
	"github.com/citewise-labs/citewise-cli/internal/core/services"
)

var askCollection string

// citationStyle renders the source block dimmer than the answer, so
// the answer stays the focus when both are printed together.
var citationStyle = lipgloss.NewStyle().Faint(true)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about ingested documents",
	Long: `Runs one question through the retrieval pipeline: the question is
embedded, the closest chunks are retrieved from the collection, and
the language model answers from those chunks alone.

The answer names the source file and quotes the supporting excerpt.
When the documents do not cover the question, the answer says so
instead of guessing.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askCollection, "collection", "c", domain.DefaultCollection,
		"collection to query")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	svc := answerService
	if svc == nil {
		sess, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer sess.Close()
		svc = sess.newAnswerService()
	}

	answer, err := svc.Answer(cmd.Context(), askCollection, args[0])
	if err != nil {
		return friendlyError(err)
	}

	cmd.Println(answer.Answer)
	if citation := services.RenderCitation(answer); citation != "" {
		cmd.Println()
		cmd.Println(citationStyle.Render(citation))
	}

	return nil
}
