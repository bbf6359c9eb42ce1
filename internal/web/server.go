// Package web serves sessions over a small JSON API. Every session owns an
// independent World; nothing is shared between players.
package web

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tatianab/text-game/internal/engine"
	"github.com/tatianab/text-game/internal/logger"
	"github.com/tatianab/text-game/internal/models"
	"github.com/tatianab/text-game/internal/narrator"
)

// MaxInputLength bounds a single command.
const MaxInputLength = 512

type ErrorResponse struct {
	Error string `json:"error"`
}

type CommandRequest struct {
	Input string `json:"input"`
}

// TurnResponse is returned by every call that plays or restarts a turn.
type TurnResponse struct {
	ID     uuid.UUID   `json:"id"`
	Text   string      `json:"text"`
	Active bool        `json:"active"`
	View   engine.View `json:"view"`
}

type StateResponse struct {
	ID   uuid.UUID   `json:"id"`
	View engine.View `json:"view"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Narrator string `json:"narrator"`
	Sessions int    `json:"sessions"`
}

// entry serializes the turns of one session.
type entry struct {
	mu       sync.Mutex
	session  *engine.Session
	lastUsed time.Time // guarded by Server.mu
}

// Server owns the session registry.
type Server struct {
	source   []byte
	narrator narrator.Narrator
	timeout  time.Duration
	logger   *slog.Logger
	now      func() time.Time

	mu       sync.Mutex
	sessions map[uuid.UUID]*entry
}

// NewServer checks that source loads and returns a server that starts every
// session from it.
func NewServer(source []byte, n narrator.Narrator, timeout time.Duration, logger *slog.Logger) (*Server, error) {
	if _, err := models.Load(source); err != nil {
		return nil, fmt.Errorf("load world: %w", err)
	}
	if n == nil {
		n = narrator.Canned{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		source:   source,
		narrator: n,
		timeout:  timeout,
		logger:   logger,
		now:      time.Now,
		sessions: make(map[uuid.UUID]*entry),
	}, nil
}

// Handler returns the routes wrapped in request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("POST /api/sessions", s.handleCreate)
	mux.HandleFunc("GET /api/sessions/{id}", s.handleRead)
	mux.HandleFunc("POST /api/sessions/{id}/commands", s.handleCommand)
	mux.HandleFunc("POST /api/sessions/{id}/reset", s.handleReset)
	mux.HandleFunc("DELETE /api/sessions/{id}", s.handleDelete)
	return s.logRequests(mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	n := len(s.sessions)
	s.mu.Unlock()
	s.writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Narrator: s.narrator.Name(), Sessions: n})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	id := uuid.New()
	session, err := engine.NewSession(s.source,
		engine.WithNarrator(s.narrator),
		engine.WithTimeout(s.timeout),
		engine.WithLogger(logger.WithSession(s.logger, id.String())),
	)
	if err != nil {
		s.logger.Error("Failed to create session", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	s.mu.Lock()
	s.sessions[id] = &entry{session: session, lastUsed: s.now()}
	s.mu.Unlock()

	s.logger.Info("Session created", "session_id", id)
	s.writeJSON(w, http.StatusCreated, TurnResponse{
		ID:     id,
		Text:   session.Start(),
		Active: session.Active(),
		View:   session.View(),
	})
}

func (s *Server) handleRead(w http.ResponseWriter, r *http.Request) {
	id, e, ok := s.lookup(w, r)
	if !ok {
		return
	}
	e.mu.Lock()
	view := e.session.View()
	e.mu.Unlock()
	s.writeJSON(w, http.StatusOK, StateResponse{ID: id, View: view})
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	id, e, ok := s.lookup(w, r)
	if !ok {
		return
	}

	var req CommandRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4*MaxInputLength)).Decode(&req); err != nil {
		s.logger.Warn("Invalid JSON in request body", "error", err)
		s.writeError(w, http.StatusBadRequest, "invalid JSON in request body")
		return
	}
	if len(req.Input) > MaxInputLength {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("input exceeds %d bytes", MaxInputLength))
		return
	}

	e.mu.Lock()
	text, active := e.session.Submit(r.Context(), req.Input)
	view := e.session.View()
	e.mu.Unlock()

	s.writeJSON(w, http.StatusOK, TurnResponse{ID: id, Text: text, Active: active, View: view})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	id, e, ok := s.lookup(w, r)
	if !ok {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.session.Reset(); err != nil {
		s.logger.Error("Failed to reset session", "session_id", id, "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to reset session")
		return
	}
	s.writeJSON(w, http.StatusOK, TurnResponse{
		ID:     id,
		Text:   e.session.Start(),
		Active: e.session.Active(),
		View:   e.session.View(),
	})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, _, ok := s.lookup(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()

	s.logger.Info("Session deleted", "session_id", id)
	w.WriteHeader(http.StatusNoContent)
}

// Expire drops every session untouched for longer than idle and reports how
// many were removed.
func (s *Server) Expire(idle time.Duration) int {
	cutoff := s.now().Add(-idle)

	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, e := range s.sessions {
		if e.lastUsed.Before(cutoff) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// ExpireLoop calls Expire every idle/4 until ctx is done.
func (s *Server) ExpireLoop(ctx context.Context, idle time.Duration) {
	ticker := time.NewTicker(max(idle/4, time.Second))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Expire(idle); n > 0 {
				s.logger.Info("Expired idle sessions", "count", n, "idle", idle)
			}
		}
	}
}

// lookup resolves the {id} path value, writing the error response itself
// when it fails.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (uuid.UUID, *entry, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.logger.Warn("Invalid session ID", "id", r.PathValue("id"), "error", err)
		s.writeError(w, http.StatusBadRequest, "invalid session ID format")
		return uuid.Nil, nil, false
	}

	s.mu.Lock()
	e, ok := s.sessions[id]
	if ok {
		e.lastUsed = s.now()
	}
	s.mu.Unlock()
	if !ok {
		s.writeError(w, http.StatusNotFound, "session not found")
		return uuid.Nil, nil, false
	}
	return id, e, true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, ErrorResponse{Error: msg})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start))
	})
}
