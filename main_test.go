package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tatianab/text-game/internal/engine"
	"github.com/tatianab/text-game/worlds"
)

func newSession(t *testing.T) *engine.Session {
	t.Helper()
	s, err := engine.NewSession(worlds.Pirate, engine.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)
	return s
}

func TestPlayUntilQuit(t *testing.T) {
	s := newSession(t)
	in := strings.NewReader("take cutlass\ninventory\nquit\nlook\n")
	var out bytes.Buffer

	require.NoError(t, play(context.Background(), s, in, &out))

	got := out.String()
	assert.Contains(t, got, "The Salt Wraith")
	assert.Contains(t, got, "You take the rusty cutlass.")
	assert.Contains(t, got, "You carry: brass compass, rusty cutlass.")
	assert.Contains(t, got, engine.MsgFarewell)
	assert.Equal(t, 1, strings.Count(got, "Main Deck\n"), "nothing runs after quit")
	assert.False(t, s.Active())
}

func TestPlayStopsAtEndOfInput(t *testing.T) {
	s := newSession(t)
	var out bytes.Buffer

	require.NoError(t, play(context.Background(), s, strings.NewReader("go aft\n"), &out))
	assert.Contains(t, out.String(), "Captains Cabin")
	assert.True(t, s.Active())
}

func TestPlayWrapsLongLines(t *testing.T) {
	s := newSession(t)
	var out bytes.Buffer

	require.NoError(t, play(context.Background(), s, strings.NewReader(""), &out))
	for _, line := range strings.Split(out.String(), "\n") {
		assert.LessOrEqual(t, len(line), wrapWidth, line)
	}
}
