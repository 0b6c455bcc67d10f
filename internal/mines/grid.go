package mines

import (
	"fmt"
	"strconv"
	"strings"
)

// CellState is what a player may know about a cell.
type CellState int8

const (
	Unknown          CellState = -2
	Flagged          CellState = -1
	CorrectlyFlagged CellState = 64
	ExplodedMine     CellState = 65
	FalselyFlagged   CellState = 66
	UnflaggedMine    CellState = 67
	/*
	 * 0 to 8 mean the cell is exposed and carry its mine count.
	 *
	 * The values from 64 up only appear once the game is over:
	 * 64 is a flag placed on a mine, 65 is the mine the player
	 * stepped on, 66 is a flag placed on a safe cell and 67 is a
	 * mine nobody flagged.
	 */
)

func (s CellState) String() string {
	switch {
	case s == Unknown:
		return "."
	case s == Flagged:
		return "F"
	case s == 0:
		return " "
	case 0 < s && s <= 8:
		return strconv.Itoa(int(s))
	case s == CorrectlyFlagged:
		return "+"
	case s == ExplodedMine:
		return "X"
	case s == FalselyFlagged:
		return "x"
	case s == UnflaggedMine:
		return "*"
	default:
		return "?"
	}
}

type Grid []CellState

func (g Grid) ToString(cols int) string {
	if cols <= 0 {
		return ""
	}
	var b strings.Builder
	for r := range len(g) / cols {
		for c := range cols {
			fmt.Fprint(&b, g[r*cols+c].String())
			if c < cols-1 {
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// PlayerGrid projects the board onto what the player is allowed to see.
// While the game is ongoing mines stay hidden; once it is over every mine
// and every misplaced flag is shown.
func (b *Board) PlayerGrid() Grid {
	g := make(Grid, len(b.cells))
	over := b.status.Over()
	for i, cell := range b.cells {
		switch {
		case cell.Exposed && cell.Mine:
			g[i] = ExplodedMine
		case cell.Exposed:
			g[i] = CellState(cell.Neighbors)
		case over && cell.Flagged && cell.Mine:
			g[i] = CorrectlyFlagged
		case over && cell.Flagged:
			g[i] = FalselyFlagged
		case over && cell.Mine:
			g[i] = UnflaggedMine
		case cell.Flagged:
			g[i] = Flagged
		default:
			g[i] = Unknown
		}
	}
	return g
}

// String renders the player grid one row per line.
func (b *Board) String() string {
	return b.PlayerGrid().ToString(b.cols)
}
