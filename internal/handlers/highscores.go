package handlers

import (
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/middleware"
	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/repository"
)

type HighscoreHandler struct {
	log   *logrus.Logger
	store HighscoreStore
}

func NewHighscoreHandler(log *logrus.Logger, store HighscoreStore) *HighscoreHandler {
	return &HighscoreHandler{log: log, store: store}
}

// ParseHighscoreFilter accepts either a "seed" or the full rows, cols and
// mine_count triple, plus optional username and limit.
func ParseHighscoreFilter(query map[string][]string) (repository.HighscoreFilter, error) {
	var filter repository.HighscoreFilter
	get := func(key string) string {
		if v := query[key]; len(v) > 0 {
			return v[0]
		}
		return ""
	}

	if seed := get("seed"); seed != "" {
		params, err := mines.ParseSeed(seed)
		if err != nil {
			return filter, err
		}
		filter.Params = params
	} else if get("rows") != "" || get("cols") != "" || get("mine_count") != "" {
		var dto NewGameDTO
		if err := newDecoder().Decode(&dto, query); err != nil {
			return filter, err
		}
		params := mines.Params(dto)
		filter.Params = &params
	}

	if username := get("username"); username != "" {
		filter.Username = &username
	}

	if limit := get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil {
			return filter, err
		}
		filter.Limit = n
	}
	return filter, nil
}

func (h *HighscoreHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	log := middleware.Logger(r.Context(), h.log)

	filter, err := ParseHighscoreFilter(r.URL.Query())
	if err != nil {
		sendError(w, log, http.StatusBadRequest, err)
		return
	}

	highscores, err := h.store.GetHighscores(r.Context(), filter)
	if err != nil {
		internalError(w, log, "unable to fetch highscores", err)
		return
	}
	if highscores == nil {
		highscores = []repository.Highscore{}
	}

	sendJSONOrLog(w, log, http.StatusOK, highscores)
}
