package cli

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/citewise-labs/citewise-cli/internal/adapters/driving/tui"
	"github.com/citewise-labs/citewise-cli/internal/core/domain"
	"github.com/citewise-labs/citewise-cli/internal/core/ports/driving"
	"github.com/citewise-labs/citewise-cli/internal/core/services"
	"github.com/citewise-labs/citewise-cli/internal/loaders"
	"github.com/citewise-labs/citewise-cli/internal/logger"
)

var chatCmd = &cobra.Command{
	Use:   "chat [file]...",
	Short: "Start an interactive question session",
	Long: `Opens a terminal session over the given files. The files are
ingested into a throwaway collection that exists only for the
session; it is deleted when the session ends.

Each question is answered independently from the documents. There is
no conversational memory between questions.

Controls:
  enter - Ask the typed question
  esc   - End the session`,
	Args: cobra.MinimumNArgs(1),
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

// progressCloser closes the progress channel once the batch returns,
// ending the TUI's progress subscription.
type progressCloser struct {
	driving.IngestService
	ch chan domain.FileReport
}

func (p progressCloser) Ingest(ctx context.Context, collection string, docs []domain.Document) (*domain.IngestResult, error) {
	defer close(p.ch)
	return p.IngestService.Ingest(ctx, collection, docs)
}

func runChat(cmd *cobra.Command, args []string) error {
	// Panic recovery to get stack traces out of the alt screen.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in chat session: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	docs, err := loaders.ReadFiles(args)
	if err != nil {
		return err
	}

	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	collection := "chat-" + uuid.NewString()[:8]

	progress := make(chan domain.FileReport, len(docs))
	ports := &tui.Ports{
		Ingest: progressCloser{
			IngestService: sess.newIngestService(services.WithProgress(func(report domain.FileReport) {
				progress <- report
			})),
			ch: progress,
		},
		Answer: sess.newAnswerService(),
	}

	// The session collection is throwaway: delete it however the
	// program ends.
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := sess.providers.Index.DeleteCollection(ctx, collection); err != nil {
			logger.Warn("Deleting session collection %s: %v", collection, err)
		}
	}()

	app, err := tui.NewApp(ports, collection, docs, progress)
	if err != nil {
		return fmt.Errorf("starting chat session: %w", err)
	}
	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat session error: %w", err)
	}

	cmd.Printf("Session ended, collection %q deleted.\n", collection)
	return nil
}
