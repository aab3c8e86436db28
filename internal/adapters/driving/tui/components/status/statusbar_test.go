package status

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citewise-labs/citewise-cli/internal/adapters/driving/tui/keymap"
	"github.com/citewise-labs/citewise-cli/internal/adapters/driving/tui/styles"
)

func TestNewBar(t *testing.T) {
	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	bar := NewBar(s, km)

	require.NotNil(t, bar)
	assert.Equal(t, StateIngesting, bar.State())
	assert.Equal(t, "", bar.Message())
}

func TestNewBar_NilStyles(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.NotNil(t, bar.styles)
	assert.NotNil(t, bar.keymap)
}

func TestStatusBar_Init(t *testing.T) {
	bar := NewBar(nil, nil)

	cmd := bar.Init()

	assert.Nil(t, cmd)
}

func TestStatusBar_Update(t *testing.T) {
	bar := NewBar(nil, nil)

	msg := tea.KeyMsg{Type: tea.KeyEnter}
	updated, cmd := bar.Update(msg)

	assert.Equal(t, bar, updated)
	assert.Nil(t, cmd)
}

func TestStatusBar_SetState(t *testing.T) {
	bar := NewBar(nil, nil)

	bar.SetState(StateAnswering)

	assert.Equal(t, StateAnswering, bar.State())
}

func TestStatusBar_SetMessage(t *testing.T) {
	bar := NewBar(nil, nil)

	bar.SetMessage("test message")

	assert.Equal(t, "test message", bar.Message())
}

func TestStatusBar_SetWidth(t *testing.T) {
	bar := NewBar(nil, nil)

	bar.SetWidth(120)

	assert.Equal(t, 120, bar.Width())
}

func TestStatusBar_Width(t *testing.T) {
	bar := NewBar(nil, nil)

	assert.Equal(t, 80, bar.Width()) // Default
}

func TestStatusBar_View_Ingesting(t *testing.T) {
	bar := NewBar(nil, nil)

	view := bar.View()

	assert.NotEmpty(t, view)
	assert.Contains(t, view, "Ingesting documents...")
}

func TestStatusBar_View_Ready(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateReady)

	view := bar.View()

	assert.Contains(t, view, "Ready")
}

func TestStatusBar_View_Answering(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateAnswering)

	view := bar.View()

	assert.Contains(t, view, "Thinking...")
}

func TestStatusBar_View_Error(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateError)

	view := bar.View()

	assert.Contains(t, view, "Error")
}

func TestStatusBar_View_ErrorWithMessage(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateError)
	bar.SetMessage("the embedding step failed")

	view := bar.View()

	assert.Contains(t, view, "Error")
	assert.Contains(t, view, "the embedding step failed")
}

func TestStatusBar_View_ShowsKeybindings(t *testing.T) {
	bar := NewBar(nil, nil)

	view := bar.View()

	assert.Contains(t, view, "ask")
	assert.Contains(t, view, "quit")
}

func TestState_Constants(t *testing.T) {
	assert.Equal(t, State("ingesting"), StateIngesting)
	assert.Equal(t, State("ready"), StateReady)
	assert.Equal(t, State("answering"), StateAnswering)
	assert.Equal(t, State("error"), StateError)
}
