package handlers

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"io"
	mrand "math/rand/v2"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/middleware"
	"github.com/vancomm/minesweeper/internal/repository"
)

type fakeGameStore struct {
	mu       sync.Mutex
	nextID   int64
	sessions map[int64]*repository.GameSession
}

func newFakeGameStore() *fakeGameStore {
	return &fakeGameStore{sessions: make(map[int64]*repository.GameSession)}
}

func (s *fakeGameStore) CreateGameSession(
	_ context.Context, params repository.CreateGameSessionParams,
) (*repository.GameSession, error) {
	state, err := params.Board.Bytes()
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	now := time.Now().UTC()
	session := &repository.GameSession{
		GameSessionID: s.nextID,
		PlayerID:      params.PlayerID,
		Rows:          params.Board.Rows(),
		Cols:          params.Board.Cols(),
		MineCount:     params.Board.MineCount(),
		Status:        params.Board.Status().String(),
		State:         state,
		StartedAt:     now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.sessions[session.GameSessionID] = session
	copied := *session
	return &copied, nil
}

func (s *fakeGameStore) FetchGameSession(_ context.Context, id int64) (*repository.GameSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *session
	return &copied, nil
}

func (s *fakeGameStore) UpdateGameSession(
	_ context.Context, id int64, params repository.UpdateGameSessionParams,
) (*repository.GameSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if params.Status != nil {
		session.Status = params.Status.String()
	}
	if params.State != nil {
		session.State = params.State
	}
	if params.StartedAt != nil {
		session.StartedAt = *params.StartedAt
	}
	if params.ClearEndedAt {
		session.EndedAt = nil
	} else if params.EndedAt != nil {
		ended := *params.EndedAt
		session.EndedAt = &ended
	}
	copied := *session
	return &copied, nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testCookies(t *testing.T) *config.Cookies {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	jwt := config.NewJWTWithKeys(key, &key.PublicKey, time.Hour)
	return config.NewCookiesWith("localhost", false, http.SameSiteLaxMode, jwt)
}

func newTestGameHandler(store GameStore) *GameHandler {
	ws := &config.WebSocket{ReadLimit: 4096, WriteTimeout: time.Second}
	ws.Upgrader.CheckOrigin = func(*http.Request) bool { return true }
	g := NewGameHandler(quietLogger(), store, config.Limits{MaxRows: 20, MaxCols: 20}, ws)
	g.NewRand = func() *mrand.Rand { return mrand.New(mrand.NewPCG(1, 2)) }
	return g
}

func gameMux(g *GameHandler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /game", g.NewGame)
	mux.HandleFunc("GET /game/{id}", g.Fetch)
	mux.HandleFunc("POST /game/{id}/move", g.Move)
	mux.HandleFunc("POST /game/{id}/reset", g.Reset)
	mux.HandleFunc("POST /game/{id}/forfeit", g.Forfeit)
	mux.HandleFunc("GET /game/{id}/connect", g.Connect)
	return mux
}

func serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func decodeSession(t *testing.T, rec *httptest.ResponseRecorder) GameSessionDTO {
	t.Helper()
	var dto GameSessionDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto), rec.Body.String())
	return dto
}

func withClaims(r *http.Request, claims *config.PlayerClaims) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), middleware.CtxPlayerClaims, claims))
}
