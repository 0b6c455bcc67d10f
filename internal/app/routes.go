package app

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/handlers"
	"github.com/vancomm/minesweeper/internal/middleware"
)

// Stores is everything the routes need from persistence.
type Stores interface {
	handlers.GameStore
	handlers.PlayerStore
	handlers.HighscoreStore
}

type Deps struct {
	Log     *logrus.Logger
	Stores  Stores
	Cookies *config.Cookies
	Limits  config.Limits
	WS      *config.WebSocket
}

// NewRouter builds the full handler chain. basePath, when set, is
// stripped before routing.
func NewRouter(deps Deps, basePath string) http.Handler {
	router := http.NewServeMux()

	game := handlers.NewGameHandler(deps.Log, deps.Stores, deps.Limits, deps.WS)
	router.HandleFunc("POST /game", game.NewGame)
	router.HandleFunc("GET /game/{id}", game.Fetch)
	router.HandleFunc("POST /game/{id}/move", game.Move)
	router.HandleFunc("POST /game/{id}/reset", game.Reset)
	router.HandleFunc("POST /game/{id}/forfeit", game.Forfeit)
	router.HandleFunc("GET /game/{id}/connect", game.Connect)

	highscores := handlers.NewHighscoreHandler(deps.Log, deps.Stores)
	router.HandleFunc("GET /highscores", highscores.Fetch)

	auth := handlers.NewAuthHandler(deps.Log, deps.Stores, deps.Cookies)
	router.HandleFunc("POST /auth/register", auth.Register)
	router.HandleFunc("POST /auth/login", auth.Login)
	router.HandleFunc("POST /auth/logout", auth.Logout)
	router.HandleFunc("GET /auth/status", auth.Status)

	router.HandleFunc("GET /status", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	var h http.Handler = router
	if basePath != "" {
		h = http.StripPrefix(basePath, router)
	}
	return middleware.Wrap(
		h,
		middleware.Auth(deps.Cookies),
		middleware.Cors(),
		middleware.Logging(deps.Log),
	)
}
