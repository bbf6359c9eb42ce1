package web

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tatianab/text-game/internal/engine"
	"github.com/tatianab/text-game/internal/models"
	"github.com/tatianab/text-game/internal/narrator"
	"github.com/tatianab/text-game/worlds"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := NewServer(worlds.Pirate, narrator.Canned{}, time.Second, logger)
	require.NoError(t, err)
	return s.Handler()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&v), rr.Body.String())
	return v
}

func createSession(t *testing.T, h http.Handler) TurnResponse {
	t.Helper()
	rr := do(t, h, http.MethodPost, "/api/sessions", "")
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	return decode[TurnResponse](t, rr)
}

func TestCreateSession(t *testing.T) {
	h := newTestServer(t)
	resp := createSession(t, h)

	assert.NotEqual(t, uuid.Nil, resp.ID)
	assert.True(t, resp.Active)
	assert.Contains(t, resp.Text, "The Salt Wraith")
	assert.Equal(t, "deck", resp.View.Location.ID)
	assert.Equal(t, []engine.ItemView{{ID: "compass", Name: "brass compass"}}, resp.View.Inventory)
}

func TestCommandFlow(t *testing.T) {
	h := newTestServer(t)
	id := createSession(t, h).ID.String()

	rr := do(t, h, http.MethodPost, "/api/sessions/"+id+"/commands", `{"input":"take cutlass"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	turn := decode[TurnResponse](t, rr)
	assert.Equal(t, "You take the rusty cutlass.", turn.Text)
	assert.True(t, turn.Active)
	assert.Len(t, turn.View.Inventory, 2)

	rr = do(t, h, http.MethodGet, "/api/sessions/"+id, "")
	require.Equal(t, http.StatusOK, rr.Code)
	state := decode[StateResponse](t, rr)
	assert.Len(t, state.View.Location.Objects, 2)

	rr = do(t, h, http.MethodPost, "/api/sessions/"+id+"/commands", `{"input":"quit"}`)
	turn = decode[TurnResponse](t, rr)
	assert.Equal(t, engine.MsgFarewell, turn.Text)
	assert.False(t, turn.Active)

	rr = do(t, h, http.MethodPost, "/api/sessions/"+id+"/commands", `{"input":"look"}`)
	turn = decode[TurnResponse](t, rr)
	assert.Equal(t, engine.MsgSessionOver, turn.Text)

	rr = do(t, h, http.MethodPost, "/api/sessions/"+id+"/reset", "")
	require.Equal(t, http.StatusOK, rr.Code)
	turn = decode[TurnResponse](t, rr)
	assert.True(t, turn.Active)
	assert.Len(t, turn.View.Inventory, 1)
	assert.Contains(t, turn.Text, "Main Deck")
}

func TestSessionsAreIndependent(t *testing.T) {
	h := newTestServer(t)
	a := createSession(t, h).ID.String()
	b := createSession(t, h).ID.String()

	do(t, h, http.MethodPost, "/api/sessions/"+a+"/commands", `{"input":"go aft"}`)

	stateA := decode[StateResponse](t, do(t, h, http.MethodGet, "/api/sessions/"+a, ""))
	stateB := decode[StateResponse](t, do(t, h, http.MethodGet, "/api/sessions/"+b, ""))
	assert.Equal(t, "captains_cabin", stateA.View.Location.ID)
	assert.Equal(t, "deck", stateB.View.Location.ID)
}

func TestFallbackUsesCannedNarration(t *testing.T) {
	h := newTestServer(t)
	id := createSession(t, h).ID.String()

	turn := decode[TurnResponse](t, do(t, h, http.MethodPost, "/api/sessions/"+id+"/commands", `{"input":"sing a shanty"}`))
	w, err := models.Load(worlds.Pirate)
	require.NoError(t, err)
	assert.Equal(t, narrator.CannedReply(w), turn.Text)
	assert.True(t, turn.Active)
}

func TestDeleteSession(t *testing.T) {
	h := newTestServer(t)
	id := createSession(t, h).ID.String()

	rr := do(t, h, http.MethodDelete, "/api/sessions/"+id, "")
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = do(t, h, http.MethodGet, "/api/sessions/"+id, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRequestErrors(t *testing.T) {
	h := newTestServer(t)
	id := createSession(t, h).ID.String()

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"malformed id", http.MethodGet, "/api/sessions/not-a-uuid", "", http.StatusBadRequest},
		{"unknown id", http.MethodGet, "/api/sessions/" + uuid.NewString(), "", http.StatusNotFound},
		{"bad json", http.MethodPost, "/api/sessions/" + id + "/commands", `{"input":`, http.StatusBadRequest},
		{"input too long", http.MethodPost, "/api/sessions/" + id + "/commands", `{"input":"` + strings.Repeat("a", MaxInputLength+1) + `"}`, http.StatusBadRequest},
		{"wrong method", http.MethodPut, "/api/sessions/" + id, "", http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, h, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, rr.Code, rr.Body.String())
		})
	}
}

func TestHealth(t *testing.T) {
	h := newTestServer(t)
	createSession(t, h)

	rr := do(t, h, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, HealthResponse{Status: "ok", Narrator: "canned", Sessions: 1}, decode[HealthResponse](t, rr))
}

func TestNewServerRejectsBadWorld(t *testing.T) {
	_, err := NewServer([]byte("locations: []\n"), nil, time.Second, nil)
	var schemaErr *models.SchemaError
	assert.ErrorAs(t, err, &schemaErr)
}

func TestExpireIdleSessions(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := NewServer(worlds.Pirate, narrator.Canned{}, time.Second, logger)
	require.NoError(t, err)
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }
	h := s.Handler()

	idle := createSession(t, h).ID.String()
	busy := createSession(t, h).ID.String()

	clock = clock.Add(45 * time.Minute)
	do(t, h, http.MethodPost, "/api/sessions/"+busy+"/commands", `{"input":"look"}`)

	clock = clock.Add(30 * time.Minute)
	assert.Equal(t, 1, s.Expire(time.Hour))

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/api/sessions/"+idle, "").Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/api/sessions/"+busy, "").Code)
}
