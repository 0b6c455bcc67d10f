package mines

import (
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

// Board is a minesweeper rules engine. It is not safe for concurrent use;
// callers sharing a Board must serialize access themselves.
type Board struct {
	rows, cols int
	mineCount  int
	cells      []Cell
	status     Status
	firstMove  bool
	rnd        *rand.Rand
}

// New creates a board with mineCount mines scattered uniformly at random
// using rnd. A nil rnd is replaced with [NewRand].
func New(rows, cols, mineCount int, rnd *rand.Rand) (*Board, error) {
	p := Params{Rows: rows, Cols: cols, MineCount: mineCount}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if rnd == nil {
		rnd = NewRand()
	}
	b := &Board{
		rows:      rows,
		cols:      cols,
		mineCount: mineCount,
		cells:     make([]Cell, rows*cols),
		rnd:       rnd,
	}
	b.Reset()
	return b, nil
}

// NewFromParams is [New] for a [Params] value.
func NewFromParams(p Params, rnd *rand.Rand) (*Board, error) {
	return New(p.Rows, p.Cols, p.MineCount, rnd)
}

// Reset starts a new game on a fresh layout with the same dimensions and
// mine count.
func (b *Board) Reset() {
	clear(b.cells)
	b.layMines()
	b.setNeighbors()
	b.status = Ongoing
	b.firstMove = true

	Log.WithFields(logrus.Fields{
		"rows":  b.rows,
		"cols":  b.cols,
		"mines": b.mineCount,
	}).Debug("board reset")
}

func (b *Board) layMines() {
	for placed := 0; placed < b.mineCount; {
		r := b.rnd.IntN(b.rows)
		c := b.rnd.IntN(b.cols)
		cell := &b.cells[r*b.cols+c]
		if !cell.Mine {
			cell.Mine = true
			placed++
		}
	}
}

func (b *Board) setNeighbors() {
	for r := range b.rows {
		for c := range b.cols {
			cell := &b.cells[r*b.cols+c]
			if cell.Mine {
				continue
			}
			cell.setNeighbors(b.minesAround(r, c))
		}
	}
}

func (b *Board) minesAround(row, col int) int {
	n := 0
	for rr := row - 1; rr <= row+1; rr++ {
		for cc := col - 1; cc <= col+1; cc++ {
			if b.InBounds(rr, cc) && b.cells[rr*b.cols+cc].Mine {
				n++
			}
		}
	}
	return n
}

func (b *Board) Rows() int { return b.rows }

func (b *Board) Cols() int { return b.cols }

func (b *Board) MineCount() int { return b.mineCount }

func (b *Board) Params() Params {
	return Params{Rows: b.rows, Cols: b.cols, MineCount: b.mineCount}
}

func (b *Board) Status() Status { return b.status }

// FirstMove reports whether the next Select is the first reveal of the game.
func (b *Board) FirstMove() bool { return b.firstMove }

func (b *Board) InBounds(row, col int) bool {
	return 0 <= row && row < b.rows && 0 <= col && col < b.cols
}

func (b *Board) index(row, col int) (int, error) {
	if !b.InBounds(row, col) {
		return 0, &RangeError{Row: row, Col: col, Rows: b.rows, Cols: b.cols}
	}
	return row*b.cols + col, nil
}

func (b *Board) Cell(row, col int) (CellView, error) {
	i, err := b.index(row, col)
	if err != nil {
		return CellView{}, err
	}
	return b.cells[i].view(), nil
}

// Flags returns the number of flagged cells.
func (b *Board) Flags() int {
	n := 0
	for i := range b.cells {
		if b.cells[i].Flagged {
			n++
		}
	}
	return n
}

// MinesLeft is the mine count minus the number of flags. It goes negative
// when the player places more flags than there are mines.
func (b *Board) MinesLeft() int {
	return b.mineCount - b.Flags()
}

// Flag toggles the flag on a cell. Exposed cells may be flagged too; the
// flag has no effect on play there.
func (b *Board) Flag(row, col int) error {
	i, err := b.index(row, col)
	if err != nil {
		return err
	}
	b.cells[i].Flagged = !b.cells[i].Flagged
	return nil
}

// Forfeit ends an ongoing game as lost.
func (b *Board) Forfeit() {
	if b.status == Ongoing {
		b.status = Lost
	}
}
