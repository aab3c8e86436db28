// Package status provides the status bar component for the TUI.
package status

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/citewise-labs/citewise-cli/internal/adapters/driving/tui/keymap"
	"github.com/citewise-labs/citewise-cli/internal/adapters/driving/tui/styles"
)

// State represents the current session state for display.
type State string

const (
	StateIngesting State = "ingesting"
	StateReady     State = "ready"
	StateAnswering State = "answering"
	StateError     State = "error"
)

// Bar displays session status and keybinding hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	state   State
	message string
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateIngesting,
		width:  80,
	}
}

// Init initialises the status bar.
func (b *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (b *Bar) Update(_ tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return b, nil
}

// View renders the status bar.
func (b *Bar) View() string {
	left := b.renderLeft()
	right := b.renderRight()

	leftLen := lipgloss.Width(left)
	rightLen := lipgloss.Width(right)
	padding := b.width - leftLen - rightLen
	if padding < 1 {
		padding = 1
	}

	return b.styles.StatusBar.Width(b.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the state or message side of the bar.
func (b *Bar) renderLeft() string {
	switch b.state {
	case StateIngesting:
		return b.styles.Muted.Render("Ingesting documents...")
	case StateAnswering:
		return b.styles.Muted.Render("Thinking...")
	case StateError:
		if b.message != "" {
			return b.styles.Error.Render(fmt.Sprintf("Error: %s", b.message))
		}
		return b.styles.Error.Render("Error")
	case StateReady:
		return b.styles.Muted.Render("Ready")
	}
	return b.styles.Muted.Render("Ready")
}

// renderRight renders keybinding hints.
func (b *Bar) renderRight() string {
	bindings := b.keymap.ShortHelp()

	hints := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		h := binding.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return b.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (b *Bar) SetState(state State) {
	b.state = state
}

// State returns the current state.
func (b *Bar) State() State {
	return b.state
}

// SetMessage sets a custom message, shown in the error state.
func (b *Bar) SetMessage(message string) {
	b.message = message
}

// Message returns the current message.
func (b *Bar) Message() string {
	return b.message
}

// SetWidth sets the status bar width.
func (b *Bar) SetWidth(width int) {
	b.width = width
}

// Width returns the current width.
func (b *Bar) Width() int {
	return b.width
}
