package handlers

import (
	"errors"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/middleware"
	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/repository"
)

var (
	ErrBoardTooLarge = errors.New("board dimensions exceed server limits")
	ErrNotYourGame   = errors.New("game session belongs to another player")
)

type GameHandler struct {
	log    *logrus.Logger
	store  GameStore
	limits config.Limits
	ws     *config.WebSocket
	// NewRand supplies the generator of each loaded board.
	NewRand func() *rand.Rand
	now     func() time.Time
}

func NewGameHandler(
	log *logrus.Logger,
	store GameStore,
	limits config.Limits,
	ws *config.WebSocket,
) *GameHandler {
	return &GameHandler{
		log:     log,
		store:   store,
		limits:  limits,
		ws:      ws,
		NewRand: mines.NewRand,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (g *GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	log := middleware.Logger(r.Context(), g.log)

	params, err := ParseNewGameDTO(r.URL.Query())
	if err != nil {
		sendError(w, log, http.StatusBadRequest, err)
		return
	}
	if !g.limits.Allow(params.Rows, params.Cols) {
		sendError(w, log, http.StatusBadRequest, ErrBoardTooLarge)
		return
	}

	b, err := mines.NewFromParams(params, g.NewRand())
	if err != nil {
		sendError(w, log, http.StatusBadRequest, err)
		return
	}

	var playerID *int64
	if claims, ok := middleware.PlayerClaims(r.Context()); ok {
		playerID = &claims.PlayerID
	}

	session, err := g.store.CreateGameSession(r.Context(), repository.CreateGameSessionParams{
		PlayerID: playerID,
		Board:    b,
	})
	if err != nil {
		internalError(w, log, "unable to create game session", err)
		return
	}

	log.WithFields(logrus.Fields{
		"game_session_id": session.GameSessionID,
		"seed":            params.Seed(),
	}).Debug("created game session")

	sendJSONOrLog(w, log, http.StatusCreated, NewGameSessionDTO(session, b))
}

// load fetches the session named by the request path and decodes its
// board. On failure it writes the response and returns ok == false.
func (g *GameHandler) load(
	w http.ResponseWriter, r *http.Request,
) (session *repository.GameSession, b *mines.Board, ok bool) {
	log := middleware.Logger(r.Context(), g.log)

	id, err := sessionID(r)
	if err != nil {
		sendError(w, log, http.StatusBadRequest, err)
		return nil, nil, false
	}

	session, err = g.store.FetchGameSession(r.Context(), id)
	if isNotFound(err) {
		w.WriteHeader(http.StatusNotFound)
		return nil, nil, false
	}
	if err != nil {
		internalError(w, log, "unable to fetch game session", err)
		return nil, nil, false
	}

	b, err = session.Board(g.NewRand())
	if err != nil {
		internalError(w, log, "stored game state is invalid", err)
		return nil, nil, false
	}
	return session, b, true
}

// owns reports whether the requester may modify session. Anonymous
// sessions are open to everyone.
func owns(r *http.Request, session *repository.GameSession) bool {
	if session.PlayerID == nil {
		return true
	}
	claims, ok := middleware.PlayerClaims(r.Context())
	return ok && claims.PlayerID == *session.PlayerID
}

func (g *GameHandler) loadOwned(
	w http.ResponseWriter, r *http.Request,
) (*repository.GameSession, *mines.Board, bool) {
	session, b, ok := g.load(w, r)
	if !ok {
		return nil, nil, false
	}
	if !owns(r, session) {
		sendError(w, middleware.Logger(r.Context(), g.log), http.StatusForbidden, ErrNotYourGame)
		return nil, nil, false
	}
	return session, b, true
}

// persist writes b back into session, stamping the end time when the game
// has just finished. reset forces a fresh start time.
func (g *GameHandler) persist(
	r *http.Request, session *repository.GameSession, b *mines.Board, reset bool,
) (*repository.GameSession, error) {
	now := g.now()
	params, err := repository.UpdateFromBoard(session, b, now)
	if err != nil {
		return nil, err
	}
	if reset {
		params.StartedAt = &now
		if b.Status().Over() {
			params.EndedAt = &now
		} else {
			params.ClearEndedAt = session.EndedAt != nil
		}
	}
	return g.store.UpdateGameSession(r.Context(), session.GameSessionID, params)
}

func (g *GameHandler) respond(
	w http.ResponseWriter, r *http.Request,
	session *repository.GameSession, b *mines.Board, reset bool,
) {
	log := middleware.Logger(r.Context(), g.log)
	updated, err := g.persist(r, session, b, reset)
	if err != nil {
		internalError(w, log, "unable to update game session", err)
		return
	}
	sendJSONOrLog(w, log, http.StatusOK, NewGameSessionDTO(updated, b))
}

func (g *GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	session, b, ok := g.load(w, r)
	if !ok {
		return
	}
	sendJSONOrLog(w, middleware.Logger(r.Context(), g.log), http.StatusOK, NewGameSessionDTO(session, b))
}

func (g *GameHandler) Move(w http.ResponseWriter, r *http.Request) {
	log := middleware.Logger(r.Context(), g.log)

	move, err := ParseMoveDTO(r.URL.Query())
	if err != nil {
		sendError(w, log, http.StatusBadRequest, err)
		return
	}

	session, b, ok := g.loadOwned(w, r)
	if !ok {
		return
	}

	if err := move.Apply(b); err != nil {
		sendError(w, log, http.StatusBadRequest, err)
		return
	}

	g.respond(w, r, session, b, false)
}

func (g *GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	session, b, ok := g.loadOwned(w, r)
	if !ok {
		return
	}
	b.Reset()
	g.respond(w, r, session, b, true)
}

func (g *GameHandler) Forfeit(w http.ResponseWriter, r *http.Request) {
	session, b, ok := g.loadOwned(w, r)
	if !ok {
		return
	}
	b.Forfeit()
	g.respond(w, r, session, b, false)
}
