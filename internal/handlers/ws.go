package handlers

import (
	"net/http"
	"slices"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/commands"
	"github.com/vancomm/minesweeper/internal/middleware"
	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/repository"
)

// Connect upgrades to a websocket that accepts newline separated commands.
// Every text message is applied as one batch, persisted, and answered with
// the session DTO.
func (g *GameHandler) Connect(w http.ResponseWriter, r *http.Request) {
	log := middleware.Logger(r.Context(), g.log)

	session, b, ok := g.loadOwned(w, r)
	if !ok {
		return
	}

	conn, err := g.ws.Upgrader.Upgrade(w, r, nil) // headers sent here
	if err != nil {
		log.WithError(err).Error("unable to upgrade")
		return
	}
	defer conn.Close()
	conn.SetReadLimit(g.ws.ReadLimit)

	log = log.WithField("game_session_id", session.GameSessionID)
	log.Debug("established ws connection")

	err = g.runCommandLoop(r, log, conn, session, b)
	if err != nil && !websocket.IsCloseError(
		err, websocket.CloseNormalClosure, websocket.CloseGoingAway,
	) {
		log.WithError(err).Warn("error in ws loop")
	}
}

func (g *GameHandler) writeWS(conn *websocket.Conn, v any) error {
	if err := conn.SetWriteDeadline(time.Now().Add(g.ws.WriteTimeout)); err != nil {
		return err
	}
	return conn.WriteJSON(v)
}

func (g *GameHandler) runCommandLoop(
	r *http.Request,
	log logrus.FieldLogger,
	conn *websocket.Conn,
	session *repository.GameSession,
	b *mines.Board,
) error {
	for {
		mt, buf, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		if mt != websocket.TextMessage {
			return nil
		}

		cmds, err := commands.ParseBatch(string(buf))
		if err != nil {
			if err := g.writeWS(conn, wrapError(err)); err != nil {
				return err
			}
			continue
		}
		log.WithField("commands", len(cmds)).Debug("applying batch")

		n, applyErr := commands.ApplyAll(b, cmds)
		reset := slices.ContainsFunc(cmds[:n], func(c commands.Command) bool {
			return c.Op == commands.Reset
		})
		if applyErr != nil {
			if err := g.writeWS(conn, wrapError(applyErr)); err != nil {
				return err
			}
		}

		session, err = g.persist(r, session, b, reset)
		if err != nil {
			return err
		}

		if err := g.writeWS(conn, NewGameSessionDTO(session, b)); err != nil {
			return err
		}
	}
}
