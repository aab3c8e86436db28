package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/citewise-labs/citewise-cli/internal/adapters/driving/tui/components/input"
	"github.com/citewise-labs/citewise-cli/internal/adapters/driving/tui/components/status"
	"github.com/citewise-labs/citewise-cli/internal/adapters/driving/tui/keymap"
	"github.com/citewise-labs/citewise-cli/internal/adapters/driving/tui/messages"
	"github.com/citewise-labs/citewise-cli/internal/adapters/driving/tui/styles"
	"github.com/citewise-labs/citewise-cli/internal/core/domain"
	"github.com/citewise-labs/citewise-cli/internal/core/services"
)

// phase tracks where the session is in its lifecycle. The session
// ingests once at startup, then answers questions one at a time.
type phase int

const (
	phaseIngesting phase = iota
	phaseReady
	phaseAnswering
	phaseFailed
)

// App is the chat session model following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
//
// One session owns one collection: the documents given at startup are
// ingested into it, questions run against it, and the caller deletes
// it when the program exits. Questions are independent; the session
// keeps no conversational memory.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	collection string
	docs       []domain.Document

	// progress streams per-file reports while the batch is parsed.
	// The sender closes it when ingestion completes.
	progress <-chan domain.FileReport

	spinner spinner.Model
	input   *input.QuestionInput
	status  *status.Bar

	phase     phase
	reports   []domain.FileReport
	result    *domain.IngestResult
	ingestErr error

	currentQuestion string
	currentAnswer   *domain.StructuredAnswer
	answerErr       error

	width  int
	height int
	ready  bool
}

// NewApp creates the session model. docs are ingested into collection
// when the program starts. progress may be nil when per-file updates
// are not needed.
func NewApp(ports *Ports, collection string, docs []domain.Document, progress <-chan domain.FileReport) (*App, error) {
	if ports == nil {
		return nil, ErrInvalidPorts
	}
	if err := ports.Validate(); err != nil {
		return nil, err
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Subtitle

	return &App{
		ports:      ports,
		ctx:        context.Background(),
		styles:     s,
		keymap:     km,
		collection: collection,
		docs:       docs,
		progress:   progress,
		spinner:    sp,
		input:      input.NewQuestionInput(s),
		status:     status.NewBar(s, km),
		phase:      phaseIngesting,
	}, nil
}

// WithContext sets the context used for pipeline calls.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Ready returns whether the terminal dimensions are known.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.input.SetWidth(width)
	a.status.SetWidth(width)
	a.ready = true
}

// Init starts the spinner and kicks off the session's ingestion.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		a.spinner.Tick,
		a.input.Init(),
		a.startIngest(),
	}
	if a.progress != nil {
		cmds = append(cmds, a.listenProgress())
	}
	return tea.Batch(cmds...)
}

// startIngest runs the ingestion batch off the UI goroutine.
func (a *App) startIngest() tea.Cmd {
	return func() tea.Msg {
		result, err := a.ports.Ingest.Ingest(a.ctx, a.collection, a.docs)
		return messages.IngestCompleted{Result: result, Err: err}
	}
}

// listenProgress waits for the next per-file report. It re-arms
// itself from Update until the channel is closed.
func (a *App) listenProgress() tea.Cmd {
	if a.progress == nil {
		return nil
	}
	return func() tea.Msg {
		report, ok := <-a.progress
		if !ok {
			return nil
		}
		return messages.FileIngested{Report: report}
	}
}

// ask runs one question off the UI goroutine.
func (a *App) ask(question string) tea.Cmd {
	return func() tea.Msg {
		answer, err := a.ports.Answer.Answer(a.ctx, a.collection, question)
		return messages.AnswerReceived{Answer: answer, Err: err}
	}
}

// Update handles messages and updates the model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case spinner.TickMsg:
		if a.phase != phaseIngesting && a.phase != phaseAnswering {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case messages.FileIngested:
		a.reports = append(a.reports, msg.Report)
		return a, a.listenProgress()

	case messages.IngestCompleted:
		return a.handleIngestCompleted(msg)

	case messages.AnswerReceived:
		return a.handleAnswerReceived(msg)

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a *App) handleIngestCompleted(msg messages.IngestCompleted) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		a.phase = phaseFailed
		a.ingestErr = msg.Err
		a.status.SetState(status.StateError)
		a.status.SetMessage(userMessage(msg.Err))
		return a, nil
	}

	a.result = msg.Result
	// Without a progress channel the per-file reports arrive only here.
	if len(a.reports) == 0 {
		a.reports = msg.Result.Reports
	}
	a.phase = phaseReady
	a.status.SetState(status.StateReady)
	return a, a.input.Focus()
}

func (a *App) handleAnswerReceived(msg messages.AnswerReceived) (tea.Model, tea.Cmd) {
	a.phase = phaseReady
	a.currentAnswer = msg.Answer
	a.answerErr = msg.Err

	if msg.Err != nil {
		a.status.SetState(status.StateError)
		a.status.SetMessage(userMessage(msg.Err))
	} else {
		a.status.SetState(status.StateReady)
		a.status.SetMessage("")
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keymap.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keymap.Submit):
		if a.phase != phaseReady {
			return a, nil
		}
		question := strings.TrimSpace(a.input.Value())
		if question == "" {
			return a, nil
		}
		a.currentQuestion = question
		a.currentAnswer = nil
		a.answerErr = nil
		a.phase = phaseAnswering
		a.status.SetState(status.StateAnswering)
		a.input.Reset()
		return a, tea.Batch(a.ask(question), a.spinner.Tick)
	}

	if a.phase == phaseFailed {
		return a, nil
	}
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// View renders the session.
func (a *App) View() string {
	if !a.ready {
		return "Starting session..."
	}

	var b strings.Builder
	b.WriteString(a.styles.Title.Render("citewise chat"))
	b.WriteString(a.styles.Muted.Render("  session " + a.collection))
	b.WriteString("\n\n")

	b.WriteString(a.renderIngest())

	if a.phase == phaseReady || a.phase == phaseAnswering {
		if a.currentQuestion != "" {
			b.WriteString("\n")
			b.WriteString(a.styles.Subtitle.Render("You: "))
			b.WriteString(a.styles.Normal.Render(a.currentQuestion))
			b.WriteString("\n")
			b.WriteString(a.renderAnswer())
		}
		b.WriteString("\n")
		b.WriteString(a.input.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(a.status.View())
	return b.String()
}

// renderIngest renders the per-file reports and, while the batch is
// still running, the spinner line.
func (a *App) renderIngest() string {
	var b strings.Builder
	for _, report := range a.reports {
		if report.Failed() {
			b.WriteString(a.styles.Warning.Render(
				fmt.Sprintf("  skipped %s: %v", report.FileName, report.Err)))
		} else {
			b.WriteString(a.styles.Success.Render(
				fmt.Sprintf("  indexed %s (%d chunks)", report.FileName, report.Chunks)))
		}
		b.WriteString("\n")
	}

	switch a.phase {
	case phaseIngesting:
		b.WriteString(fmt.Sprintf("%s Ingesting %d file(s)...\n", a.spinner.View(), len(a.docs)))
	case phaseFailed:
		b.WriteString(a.styles.Error.Render("Ingestion failed: " + userMessage(a.ingestErr)))
		b.WriteString("\n")
		b.WriteString(a.styles.Muted.Render("Press esc to quit."))
		b.WriteString("\n")
	}
	return b.String()
}

// renderAnswer renders the outcome of the current question.
func (a *App) renderAnswer() string {
	if a.phase == phaseAnswering {
		return fmt.Sprintf("%s thinking...\n", a.spinner.View())
	}
	if a.answerErr != nil {
		return a.styles.Error.Render(userMessage(a.answerErr)) + "\n"
	}
	if a.currentAnswer == nil {
		return ""
	}

	block := a.styles.Answer.Width(a.contentWidth()).Render(a.currentAnswer.Answer)
	out := block + "\n"
	if citation := services.RenderCitation(a.currentAnswer); citation != "" {
		out += a.styles.Citation.Render(citation) + "\n"
	}
	return out
}

// contentWidth bounds wide blocks to the terminal.
func (a *App) contentWidth() int {
	w := a.width - 4
	if w > 80 {
		w = 80
	}
	if w < 20 {
		w = 20
	}
	return w
}
