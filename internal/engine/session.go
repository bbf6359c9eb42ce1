package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/tatianab/text-game/internal/models"
	"github.com/tatianab/text-game/internal/narrator"
	"github.com/tatianab/text-game/internal/parser"
)

const (
	DefaultTimeout      = 30 * time.Second
	DefaultHistoryLimit = 10
)

var errEmptyReply = errors.New("empty reply")

// Session owns one World and drives the parse, resolve, apply, describe
// loop for a single player. A Session is not safe for concurrent use;
// front-ends serving several players keep one Session per player.
type Session struct {
	source       []byte
	world        *models.World
	narrator     narrator.Narrator
	timeout      time.Duration
	historyLimit int
	history      []narrator.Exchange
	logger       *slog.Logger
	active       bool
}

// Option configures a Session.
type Option func(*Session)

// WithNarrator sets the collaborator for unrecognized input. The default
// is narrator.Canned.
func WithNarrator(n narrator.Narrator) Option {
	return func(s *Session) {
		if n != nil {
			s.narrator = n
		}
	}
}

// WithTimeout bounds every narrator call.
func WithTimeout(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithHistoryLimit caps how many narrated exchanges are remembered. Zero
// keeps them all.
func WithHistoryLimit(n int) Option {
	return func(s *Session) {
		s.historyLimit = n
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSession loads the world description in source and returns a session
// ready to Start. Load failures are returned unchanged in the chain, so
// callers can match *models.SchemaError and *models.DanglingReferenceError.
func NewSession(source []byte, opts ...Option) (*Session, error) {
	w, err := models.Load(source)
	if err != nil {
		return nil, fmt.Errorf("load world: %w", err)
	}
	s := &Session{
		source:       slices.Clone(source),
		world:        w,
		narrator:     narrator.Canned{},
		timeout:      DefaultTimeout,
		historyLimit: DefaultHistoryLimit,
		logger:       slog.Default(),
		active:       true,
	}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// Start returns the opening description.
func (s *Session) Start() string {
	return Opening(s.world)
}

// Active reports whether the session still accepts turns.
func (s *Session) Active() bool {
	return s.active
}

// Submit plays one turn and reports whether the session is still running.
// Once it returns false, further calls change nothing.
func (s *Session) Submit(ctx context.Context, text string) (string, bool) {
	if !s.active {
		return MsgSessionOver, false
	}

	cmd := parser.Parse(text)
	res := Resolve(s.world, cmd)
	s.logger.Debug("turn resolved", "verb", string(cmd.Verb), "outcome", res.Outcome.String(), "location", s.world.Player.Location)

	switch res.Outcome {
	case OutcomeTerminate:
		s.active = false
		return res.Message, false
	case OutcomeFallback:
		return s.narrate(ctx, cmd.Raw), true
	default:
		return res.Message, true
	}
}

// Reset reloads the world from the original source, discarding every
// mutation and the narrator history.
func (s *Session) Reset() error {
	w, err := models.Load(s.source)
	if err != nil {
		return fmt.Errorf("reload world: %w", err)
	}
	s.world = w
	s.history = nil
	s.active = true
	return nil
}

// View summarizes the current state for front-ends.
func (s *Session) View() View {
	return newView(s.world, s.active)
}

// Snapshot returns a deep copy of the world.
func (s *Session) Snapshot() *models.World {
	return s.world.Clone()
}

// narrate asks the narrator for a reply, waiting at most s.timeout. Any
// failure degrades to the canned reply. The narrator only ever sees a copy
// of the world.
func (s *Session) narrate(ctx context.Context, input string) string {
	req := narrator.Request{
		World:   s.world.Clone(),
		Input:   input,
		History: slices.Clone(s.history),
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	type reply struct {
		text string
		err  error
	}
	done := make(chan reply, 1)
	go func() {
		text, err := s.narrator.Narrate(ctx, req)
		done <- reply{text: text, err: err}
	}()

	var r reply
	select {
	case r = <-done:
	case <-ctx.Done():
		r.err = ctx.Err()
	}
	if r.err == nil && strings.TrimSpace(r.text) == "" {
		r.err = errEmptyReply
	}

	if r.err != nil {
		var unavailable *narrator.UnavailableError
		if !errors.As(r.err, &unavailable) {
			r.err = &narrator.UnavailableError{Provider: s.narrator.Name(), Err: r.err}
		}
		s.logger.Warn("narrator unavailable, using canned reply", "provider", s.narrator.Name(), "error", r.err)
		return narrator.CannedReply(s.world)
	}

	text := strings.TrimSpace(r.text)
	s.remember(input, text)
	return text
}

func (s *Session) remember(input, reply string) {
	s.history = append(s.history, narrator.Exchange{Command: input, Response: reply})
	if s.historyLimit > 0 && len(s.history) > s.historyLimit {
		s.history = slices.Clone(s.history[len(s.history)-s.historyLimit:])
	}
}
