package repository

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/vancomm/minesweeper/internal/mines"
)

type GameSession struct {
	GameSessionID int64      `db:"game_session_id"`
	PlayerID      *int64     `db:"player_id"`
	Rows          int        `db:"rows"`
	Cols          int        `db:"cols"`
	MineCount     int        `db:"mine_count"`
	Status        string     `db:"status"`
	State         []byte     `db:"state"`
	StartedAt     time.Time  `db:"started_at"`
	EndedAt       *time.Time `db:"ended_at"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

// Board decodes the stored engine state. rnd drives later resets.
func (s GameSession) Board(rnd *rand.Rand) (*mines.Board, error) {
	return mines.Decode(s.State, rnd)
}

var ErrNothingToUpdate = errors.New("nothing to update")

type CreateGameSessionParams struct {
	PlayerID *int64
	Board    *mines.Board
}

func (q Queries) CreateGameSession(
	ctx context.Context, params CreateGameSessionParams,
) (*GameSession, error) {
	state, err := params.Board.Bytes()
	if err != nil {
		return nil, err
	}
	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO game_session (
			player_id, "rows", cols, mine_count, status, state
		)
		VALUES (
			@player_id, @rows, @cols, @mine_count, @status, @state
		)
		RETURNING *;`,
		pgx.NamedArgs{
			"player_id":  params.PlayerID,
			"rows":       params.Board.Rows(),
			"cols":       params.Board.Cols(),
			"mine_count": params.Board.MineCount(),
			"status":     params.Board.Status().String(),
			"state":      state,
		},
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameSession])
}

func (q Queries) FetchGameSession(ctx context.Context, gameSessionID int64) (*GameSession, error) {
	rows, _ := q.db.Query(
		ctx,
		"SELECT * FROM game_session WHERE game_session_id = $1;",
		gameSessionID,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameSession])
}

type UpdateGameSessionParams struct {
	Status       *mines.Status
	State        []byte
	StartedAt    *time.Time
	EndedAt      *time.Time
	ClearEndedAt bool
}

// UpdateFromBoard fills status and state from b and stamps ended_at the
// first time the game is seen over.
func UpdateFromBoard(session *GameSession, b *mines.Board, now time.Time) (UpdateGameSessionParams, error) {
	state, err := b.Bytes()
	if err != nil {
		return UpdateGameSessionParams{}, err
	}
	status := b.Status()
	params := UpdateGameSessionParams{Status: &status, State: state}
	if status.Over() && session.EndedAt == nil {
		params.EndedAt = &now
	}
	if !status.Over() && session.EndedAt != nil {
		params.StartedAt = &now
		params.ClearEndedAt = true
	}
	return params, nil
}

func (p UpdateGameSessionParams) SetClause() (string, pgx.NamedArgs) {
	parts := make([]string, 0, 4)
	args := pgx.NamedArgs{}

	if p.Status != nil {
		parts = append(parts, "status = @status")
		args["status"] = p.Status.String()
	}
	if p.State != nil {
		parts = append(parts, "state = @state")
		args["state"] = p.State
	}
	if p.StartedAt != nil {
		parts = append(parts, "started_at = @started_at")
		args["started_at"] = *p.StartedAt
	}
	if p.ClearEndedAt {
		parts = append(parts, "ended_at = NULL")
	} else if p.EndedAt != nil {
		parts = append(parts, "ended_at = @ended_at")
		args["ended_at"] = *p.EndedAt
	}

	return strings.Join(parts, ", "), args
}

func (q Queries) UpdateGameSession(
	ctx context.Context, gameSessionID int64, params UpdateGameSessionParams,
) (*GameSession, error) {
	setClause, args := params.SetClause()
	if setClause == "" {
		return nil, ErrNothingToUpdate
	}
	args["game_session_id"] = gameSessionID
	rows, _ := q.db.Query(
		ctx,
		"UPDATE game_session SET "+setClause+
			" WHERE game_session_id = @game_session_id RETURNING *;",
		args,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameSession])
}
