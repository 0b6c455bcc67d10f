package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/schema"
	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/repository"
)

type GameStore interface {
	CreateGameSession(context.Context, repository.CreateGameSessionParams) (*repository.GameSession, error)
	FetchGameSession(ctx context.Context, gameSessionID int64) (*repository.GameSession, error)
	UpdateGameSession(ctx context.Context, gameSessionID int64, params repository.UpdateGameSessionParams) (*repository.GameSession, error)
}

type PlayerStore interface {
	CreatePlayer(context.Context, repository.CreatePlayerParams) (*repository.Player, error)
	FetchPlayer(ctx context.Context, username string) (*repository.Player, error)
}

type HighscoreStore interface {
	GetHighscores(context.Context, repository.HighscoreFilter) ([]repository.Highscore, error)
}

var (
	_ GameStore      = (*repository.Queries)(nil)
	_ PlayerStore    = (*repository.Queries)(nil)
	_ HighscoreStore = (*repository.Queries)(nil)
)

var ErrBadSessionID = errors.New("game session id must be an integer")

func newDecoder() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}

func sendJSON(w http.ResponseWriter, status int, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(payload)
	return err
}

func sendJSONOrLog(w http.ResponseWriter, log logrus.FieldLogger, status int, v any) {
	if err := sendJSON(w, status, v); err != nil {
		log.WithError(err).Error("unable to send response")
	}
}

func wrapError(err error) map[string]string {
	return map[string]string{
		"error": err.Error(),
	}
}

func sendError(w http.ResponseWriter, log logrus.FieldLogger, status int, err error) {
	sendJSONOrLog(w, log, status, wrapError(err))
}

func internalError(w http.ResponseWriter, log logrus.FieldLogger, msg string, err error) {
	w.WriteHeader(http.StatusInternalServerError)
	log.WithError(err).Error(msg)
}

func isNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

func sessionID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, ErrBadSessionID
	}
	return id, nil
}
