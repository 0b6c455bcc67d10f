package handlers

import (
	"errors"
	"net/http"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/middleware"
	"github.com/vancomm/minesweeper/internal/repository"
)

const maxPasswordLength = 72 // bcrypt input limit

var (
	ErrBadAuthBody        = errors.New("request body must contain url-encoded username and password")
	ErrPasswordTooLong    = errors.New("password too long")
	ErrUsernameTaken      = errors.New("username taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

type AuthHandler struct {
	log     *logrus.Logger
	store   PlayerStore
	cookies *config.Cookies
	cost    int
}

func NewAuthHandler(log *logrus.Logger, store PlayerStore, cookies *config.Cookies) *AuthHandler {
	return &AuthHandler{
		log:     log,
		store:   store,
		cookies: cookies,
		cost:    bcrypt.DefaultCost,
	}
}

type PlayerInfo struct {
	PlayerID int64  `json:"player_id,string"`
	Username string `json:"username"`
}

type AuthStatus struct {
	LoggedIn bool        `json:"logged_in"`
	Player   *PlayerInfo `json:"player,omitempty"`
}

func credentials(r *http.Request) (username, password string, err error) {
	if err := r.ParseForm(); err != nil {
		return "", "", ErrBadAuthBody
	}
	username = r.PostFormValue("username")
	password = r.PostFormValue("password")
	if username == "" || password == "" {
		return "", "", ErrBadAuthBody
	}
	return username, password, nil
}

func (a *AuthHandler) login(
	w http.ResponseWriter, log logrus.FieldLogger, status int, player *repository.Player,
) {
	claims := &config.PlayerClaims{PlayerID: player.PlayerID, Username: player.Username}
	if err := a.cookies.Refresh(w, claims); err != nil {
		internalError(w, log, "unable to set auth cookies", err)
		return
	}
	sendJSONOrLog(w, log, status, AuthStatus{
		LoggedIn: true,
		Player:   &PlayerInfo{player.PlayerID, player.Username},
	})
}

func (a *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	log := middleware.Logger(r.Context(), a.log)

	username, password, err := credentials(r)
	if err != nil {
		sendError(w, log, http.StatusBadRequest, err)
		return
	}
	if len(password) > maxPasswordLength {
		sendError(w, log, http.StatusBadRequest, ErrPasswordTooLong)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.cost)
	if err != nil {
		internalError(w, log, "unable to hash password", err)
		return
	}

	player, err := a.store.CreatePlayer(r.Context(), repository.CreatePlayerParams{
		Username:     username,
		PasswordHash: hash,
	})
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
		sendError(w, log, http.StatusConflict, ErrUsernameTaken)
		return
	}
	if err != nil {
		internalError(w, log, "unable to insert player", err)
		return
	}

	log.WithField("player_id", player.PlayerID).Info("registered player")
	a.login(w, log, http.StatusCreated, player)
}

func (a *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := middleware.Logger(r.Context(), a.log)

	username, password, err := credentials(r)
	if err != nil {
		sendError(w, log, http.StatusBadRequest, err)
		return
	}

	player, err := a.store.FetchPlayer(r.Context(), username)
	if isNotFound(err) {
		sendError(w, log, http.StatusUnauthorized, ErrInvalidCredentials)
		return
	}
	if err != nil {
		internalError(w, log, "unable to fetch player", err)
		return
	}

	err = bcrypt.CompareHashAndPassword(player.PasswordHash, []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		sendError(w, log, http.StatusUnauthorized, ErrInvalidCredentials)
		return
	}
	if err != nil {
		internalError(w, log, "bcrypt compare error", err)
		return
	}

	a.login(w, log, http.StatusOK, player)
}

func (a *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	a.cookies.Clear(w)
	w.WriteHeader(http.StatusNoContent)
}

// Status reports the current login and refreshes valid cookies.
func (a *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	log := middleware.Logger(r.Context(), a.log)

	claims, ok := middleware.PlayerClaims(r.Context())
	if !ok {
		a.cookies.Clear(w)
		sendJSONOrLog(w, log, http.StatusOK, AuthStatus{})
		return
	}
	a.login(w, log, http.StatusOK, &repository.Player{
		PlayerID: claims.PlayerID,
		Username: claims.Username,
	})
}
