package tui

import (
	"context"
	"io"
	"log/slog"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tatianab/text-game/internal/engine"
	"github.com/tatianab/text-game/worlds"
)

func newModel(t *testing.T) model {
	t.Helper()
	s, err := engine.NewSession(worlds.Pirate, engine.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)
	m := NewModel(context.Background(), s)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(model)
}

// enter submits text and runs the resulting command to completion.
func enter(t *testing.T, m model, text string) model {
	t.Helper()
	m.textInput.SetValue(text)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(model)
	if cmd == nil {
		return m
	}
	require.Equal(t, stateWaiting, m.state)
	next, _ = m.Update(cmd())
	return next.(model)
}

func TestTurnUpdatesSidePanel(t *testing.T) {
	m := newModel(t)
	assert.Contains(t, m.gameLog, "The Salt Wraith")
	assert.Len(t, m.view.Inventory, 1)

	m = enter(t, m, "take cutlass")
	assert.Equal(t, statePlaying, m.state)
	assert.Len(t, m.view.Inventory, 2)
	assert.Contains(t, m.gameLog, "You take the rusty cutlass.")
	assert.Contains(t, m.renderState(), "rusty cutlass")
}

func TestQuitThenRestart(t *testing.T) {
	m := newModel(t)
	m = enter(t, m, "go aft")
	assert.Equal(t, "captains_cabin", m.view.Location.ID)

	m = enter(t, m, "quit")
	assert.Equal(t, stateOver, m.state)

	m = enter(t, m, "look")
	assert.Equal(t, stateOver, m.state, "turns are ignored once the adventure is over")

	m = enter(t, m, "/restart")
	assert.Equal(t, statePlaying, m.state)
	assert.Equal(t, "deck", m.view.Location.ID)
	assert.True(t, m.session.Active())
}
