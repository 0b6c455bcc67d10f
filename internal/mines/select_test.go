package mines

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exposed(b *Board) []bool {
	out := make([]bool, len(b.cells))
	for i, c := range b.cells {
		out[i] = c.Exposed
	}
	return out
}

func TestTwoByTwoWin(t *testing.T) {
	b := layout(t,
		"*.",
		"..",
	)
	b.firstMove = true

	require.NoError(t, b.Select(0, 0))
	assert.Equal(t, Ongoing, b.Status())
	assert.Equal(t, 1, countMines(b))
	origin, _ := b.Cell(0, 0)
	assert.False(t, origin.Mine)
	moved, _ := b.Cell(0, 1)
	assert.True(t, moved.Mine, "mine goes to the first free cell in row-major order")
	assertNeighborCounts(t, b)

	require.NoError(t, b.Select(1, 0))
	assert.Equal(t, Ongoing, b.Status())
	require.NoError(t, b.Select(1, 1))
	assert.Equal(t, Won, b.Status())
}

func TestTwoByTwoLoss(t *testing.T) {
	b := layout(t,
		"*.",
		"..",
	)
	b.firstMove = true

	require.NoError(t, b.Select(0, 0))
	require.NoError(t, b.Select(0, 1))
	assert.Equal(t, Lost, b.Status())

	cell, _ := b.Cell(0, 1)
	assert.True(t, cell.Exposed)
	assert.True(t, cell.Mine)
}

func TestFirstClickNeverLoses(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(7, 8))
	params := Params{Rows: 6, Cols: 7, MineCount: 20}
	for row := range params.Rows {
		for col := range params.Cols {
			b, err := NewFromParams(params, r)
			require.NoError(t, err)
			wasMine := b.cells[row*b.cols+col].Mine

			require.NoError(t, b.Select(row, col))

			assert.NotEqual(t, Lost, b.Status(), "first click at %d:%d", row, col)
			assert.False(t, b.FirstMove())
			assert.Equal(t, params.MineCount, countMines(b))
			cell, _ := b.Cell(row, col)
			assert.False(t, cell.Mine)
			assert.True(t, cell.Exposed)
			if wasMine {
				assertNeighborCounts(t, b)
			}
		}
	}
}

func TestFirstClickRelocatesPastLeadingMines(t *testing.T) {
	b := layout(t,
		"**.",
		"..*",
	)
	b.firstMove = true

	require.NoError(t, b.Select(1, 2))

	assert.Equal(t, 3, countMines(b))
	for _, p := range [][2]int{{0, 0}, {0, 1}, {0, 2}} {
		cell, _ := b.Cell(p[0], p[1])
		assert.True(t, cell.Mine, "cell %v", p)
	}
	cell, _ := b.Cell(1, 2)
	assert.False(t, cell.Mine)
	assert.Equal(t, 2, cell.Neighbors)
	assert.Equal(t, Ongoing, b.Status())
}

func TestSecondClickOnMineLoses(t *testing.T) {
	b := layout(t,
		"*..",
		"...",
		"...",
	)
	b.firstMove = true

	require.NoError(t, b.Select(1, 1))
	require.Equal(t, Ongoing, b.Status())
	require.NoError(t, b.Select(0, 0))
	assert.Equal(t, Lost, b.Status())
}

func TestCascadeStopsAtFlags(t *testing.T) {
	b := layout(t,
		"....*",
		".....",
		"F....",
	)

	require.NoError(t, b.Select(2, 2))

	want := []bool{
		true, true, true, true, false,
		true, true, true, true, true,
		false, true, true, true, true,
	}
	assert.Equal(t, want, exposed(b))
	assert.Equal(t, Ongoing, b.Status())

	require.NoError(t, b.Select(2, 0))
	assert.Equal(t, Won, b.Status())
}

func TestCascadeStopsAtNumbers(t *testing.T) {
	b := layout(t,
		"..*..",
		"..*..",
		"..*..",
	)

	require.NoError(t, b.Select(1, 0))

	want := []bool{
		true, true, false, false, false,
		true, true, false, false, false,
		true, true, false, false, false,
	}
	assert.Equal(t, want, exposed(b))
	assert.Equal(t, Ongoing, b.Status())
}

func TestNumberedCellDoesNotCascade(t *testing.T) {
	b := layout(t,
		"*....",
		".....",
	)

	require.NoError(t, b.Select(1, 1))

	cell, _ := b.Cell(1, 1)
	assert.True(t, cell.Exposed)
	assert.Equal(t, 1, cell.Neighbors)
	n := 0
	for _, e := range exposed(b) {
		if e {
			n++
		}
	}
	assert.Equal(t, 1, n)
}

func TestCascadeNeverExposesMinesOrFlags(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(9, 10))
	for i := range 200 {
		b, err := New(12, 12, 15, r)
		require.NoError(t, err)

		row, col := r.IntN(12), r.IntN(12)
		flagged := make(map[int]bool)
		for range 10 {
			fr, fc := r.IntN(12), r.IntN(12)
			if fr == row && fc == col {
				continue
			}
			if !flagged[fr*12+fc] {
				require.NoError(t, b.Flag(fr, fc))
				flagged[fr*12+fc] = true
			}
		}

		require.NoError(t, b.Select(row, col))
		require.NotEqual(t, Lost, b.Status(), "game %d", i)

		for j, c := range b.cells {
			if c.Mine {
				assert.False(t, c.Exposed, "game %d: mine %d exposed", i, j)
			}
			if c.Flagged {
				assert.False(t, c.Exposed, "game %d: flag %d exposed", i, j)
			}
		}
	}
}

func TestSelectIsIdempotent(t *testing.T) {
	b := layout(t,
		"*....",
		".....",
		"F....",
	)

	require.NoError(t, b.Select(2, 4))
	require.Equal(t, Ongoing, b.Status())
	before := slices.Clone(b.cells)
	status := b.Status()

	require.NoError(t, b.Select(2, 4))
	require.NoError(t, b.Select(2, 2))

	assert.Equal(t, before, b.cells)
	assert.Equal(t, status, b.Status())
}

func TestFinishedGameIgnoresSelect(t *testing.T) {
	b := layout(t,
		"*..",
		"...",
	)
	require.NoError(t, b.Select(0, 0))
	require.Equal(t, Lost, b.Status())

	require.NoError(t, b.Select(1, 2))
	cell, _ := b.Cell(1, 2)
	assert.False(t, cell.Exposed)
	assert.Equal(t, Lost, b.Status())

	require.NoError(t, b.Flag(1, 2))
	assert.Equal(t, Lost, b.Status())
}

func TestSelectFlaggedCell(t *testing.T) {
	b := layout(t,
		"*..",
		"..F",
	)
	require.NoError(t, b.Select(1, 2))

	cell, _ := b.Cell(1, 2)
	assert.True(t, cell.Exposed)
	assert.True(t, cell.Flagged)
}

func TestWinIgnoresUnflaggedMines(t *testing.T) {
	b := layout(t,
		"*.",
		".*",
	)
	require.NoError(t, b.Select(0, 1))
	require.Equal(t, Ongoing, b.Status())
	require.NoError(t, b.Select(1, 0))
	assert.Equal(t, Won, b.Status())
	assert.Equal(t, 2, b.MinesLeft())
}

func TestChord(t *testing.T) {
	t.Run("matching flags open the rest", func(t *testing.T) {
		b := layout(t,
			"*..",
			"...",
			"...",
		)
		require.NoError(t, b.Select(1, 1))
		require.NoError(t, b.Flag(0, 0))

		require.NoError(t, b.Chord(1, 1))
		assert.Equal(t, Won, b.Status())
	})

	t.Run("wrong flag loses", func(t *testing.T) {
		b := layout(t,
			"*..",
			"...",
			"...",
		)
		require.NoError(t, b.Select(1, 1))
		require.NoError(t, b.Flag(0, 1))

		require.NoError(t, b.Chord(1, 1))
		assert.Equal(t, Lost, b.Status())
	})

	t.Run("too few flags does nothing", func(t *testing.T) {
		b := layout(t,
			"*.*",
			"...",
			"...",
		)
		require.NoError(t, b.Select(1, 1))
		require.NoError(t, b.Flag(0, 0))
		before := exposed(b)

		require.NoError(t, b.Chord(1, 1))
		assert.Equal(t, before, exposed(b))
		assert.Equal(t, Ongoing, b.Status())
	})

	t.Run("unexposed cell does nothing", func(t *testing.T) {
		b := layout(t,
			"*..",
			"...",
		)
		require.NoError(t, b.Chord(1, 1))
		assert.Equal(t, make([]bool, 6), exposed(b))
	})
}
