package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/vancomm/minesweeper/internal/mines"
)

const defaultHighscoreLimit = 100

type Highscore struct {
	GameSessionID int64   `db:"game_session_id" json:"game_session_id,string"`
	Username      *string `db:"username" json:"username"`
	Rows          int     `db:"rows" json:"rows"`
	Cols          int     `db:"cols" json:"cols"`
	MineCount     int     `db:"mine_count" json:"mine_count"`
	PlaytimeMs    float64 `db:"playtime_ms" json:"playtime_ms"`
}

type HighscoreFilter struct {
	Username *string
	Params   *mines.Params
	Limit    int
}

func (f HighscoreFilter) WhereClause() (string, pgx.NamedArgs) {
	clauses := []string{
		"status = 'won'",
		"ended_at IS NOT NULL",
	}
	args := pgx.NamedArgs{}
	if f.Username != nil {
		clauses = append(clauses, "username = @username")
		args["username"] = *f.Username
	}
	if f.Params != nil {
		clauses = append(
			clauses,
			`"rows" = @rows`,
			"cols = @cols",
			"mine_count = @mine_count",
		)
		args["rows"] = f.Params.Rows
		args["cols"] = f.Params.Cols
		args["mine_count"] = f.Params.MineCount
	}
	return strings.Join(clauses, " AND "), args
}

func (f HighscoreFilter) limit() int {
	if f.Limit <= 0 || f.Limit > defaultHighscoreLimit {
		return defaultHighscoreLimit
	}
	return f.Limit
}

func (q Queries) GetHighscores(
	ctx context.Context, filter HighscoreFilter,
) ([]Highscore, error) {
	whereClause, args := filter.WhereClause()
	args["limit"] = filter.limit()

	query := `
	SELECT
		game_session_id,
		username,
		"rows",
		cols,
		mine_count,
		((
			extract('epoch' from ended_at) -
			extract('epoch' from started_at)
		) * 1000)::float8 playtime_ms
	FROM game_session
		LEFT OUTER JOIN player USING (player_id)
	WHERE ` + whereClause + `
	ORDER BY playtime_ms
	LIMIT @limit;`

	rows, err := q.db.Query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Highscore])
}
