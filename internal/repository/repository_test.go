package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper/internal/mines"
)

func TestSetClauseEmpty(t *testing.T) {
	clause, args := UpdateGameSessionParams{}.SetClause()
	assert.Empty(t, clause)
	assert.Empty(t, args)
}

func TestSetClause(t *testing.T) {
	status := mines.Won
	ended := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	params := UpdateGameSessionParams{
		Status:  &status,
		State:   []byte{1, 2, 3},
		EndedAt: &ended,
	}
	clause, args := params.SetClause()
	assert.Equal(t, "status = @status, state = @state, ended_at = @ended_at", clause)
	assert.Equal(t, "won", args["status"])
	assert.Equal(t, []byte{1, 2, 3}, args["state"])
	assert.Equal(t, ended, args["ended_at"])
}

func TestSetClauseClearEndedAt(t *testing.T) {
	started := time.Now()
	params := UpdateGameSessionParams{
		StartedAt:    &started,
		EndedAt:      &started,
		ClearEndedAt: true,
	}
	clause, args := params.SetClause()
	assert.Equal(t, "started_at = @started_at, ended_at = NULL", clause)
	assert.NotContains(t, args, "ended_at")
}

func newBoard(t *testing.T) *mines.Board {
	t.Helper()
	b, err := mines.New(3, 3, 1, mines.NewRand())
	require.NoError(t, err)
	return b
}

func TestUpdateFromBoardStampsEnd(t *testing.T) {
	b := newBoard(t)
	b.Forfeit()
	now := time.Now()

	params, err := UpdateFromBoard(&GameSession{}, b, now)
	require.NoError(t, err)
	require.NotNil(t, params.Status)
	assert.Equal(t, mines.Lost, *params.Status)
	require.NotNil(t, params.EndedAt)
	assert.Equal(t, now, *params.EndedAt)
	assert.NotEmpty(t, params.State)

	// already stamped
	params, err = UpdateFromBoard(&GameSession{EndedAt: &now}, b, now.Add(time.Minute))
	require.NoError(t, err)
	assert.Nil(t, params.EndedAt)
	assert.False(t, params.ClearEndedAt)
}

func TestUpdateFromBoardAfterReset(t *testing.T) {
	b := newBoard(t)
	ended := time.Now().Add(-time.Minute)
	now := time.Now()

	params, err := UpdateFromBoard(&GameSession{EndedAt: &ended}, b, now)
	require.NoError(t, err)
	assert.Equal(t, mines.Ongoing, *params.Status)
	assert.True(t, params.ClearEndedAt)
	require.NotNil(t, params.StartedAt)
	assert.Equal(t, now, *params.StartedAt)

	decoded, err := GameSession{State: params.State}.Board(mines.NewRand())
	require.NoError(t, err)
	assert.Equal(t, b.Params(), decoded.Params())
}

func TestHighscoreFilterWhereClause(t *testing.T) {
	clause, args := HighscoreFilter{}.WhereClause()
	assert.Equal(t, "status = 'won' AND ended_at IS NOT NULL", clause)
	assert.Empty(t, args)

	name := "alice"
	clause, args = HighscoreFilter{Username: &name, Params: &mines.Beginner}.WhereClause()
	assert.Equal(t,
		`status = 'won' AND ended_at IS NOT NULL AND username = @username AND "rows" = @rows AND cols = @cols AND mine_count = @mine_count`,
		clause,
	)
	assert.Equal(t, "alice", args["username"])
	assert.Equal(t, 9, args["rows"])
	assert.Equal(t, 9, args["cols"])
	assert.Equal(t, 10, args["mine_count"])
}

func TestHighscoreFilterLimit(t *testing.T) {
	assert.Equal(t, defaultHighscoreLimit, HighscoreFilter{}.limit())
	assert.Equal(t, 5, HighscoreFilter{Limit: 5}.limit())
	assert.Equal(t, defaultHighscoreLimit, HighscoreFilter{Limit: 1000}.limit())
}
