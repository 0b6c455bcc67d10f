package mines

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"math/rand/v2"
)

type snapshot struct {
	Rows, Cols, MineCount int
	Cells                 []Cell
	Status                Status
	FirstMove             bool
}

// [Board] implements [encoding.BinaryMarshaler]
func (b *Board) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(snapshot{
		Rows:      b.rows,
		Cols:      b.cols,
		MineCount: b.mineCount,
		Cells:     b.cells,
		Status:    b.status,
		FirstMove: b.firstMove,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// [Board] implements [encoding.BinaryUnmarshaler]. The random source is
// kept if already set, otherwise a fresh one is created.
func (b *Board) UnmarshalBinary(data []byte) error {
	var s snapshot
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&s); err != nil {
		return err
	}
	p := Params{Rows: s.Rows, Cols: s.Cols, MineCount: s.MineCount}
	if err := p.Validate(); err != nil {
		return err
	}
	if len(s.Cells) != p.Size() {
		return fmt.Errorf("board has %d cells, want %d", len(s.Cells), p.Size())
	}
	mines := 0
	for _, c := range s.Cells {
		if c.Mine {
			mines++
		}
	}
	if mines != s.MineCount {
		return fmt.Errorf("board has %d mines, want %d", mines, s.MineCount)
	}
	if s.Status > Lost {
		return fmt.Errorf("unknown status %d", s.Status)
	}

	check := &Board{rows: s.Rows, cols: s.Cols, cells: s.Cells}
	for i, c := range s.Cells {
		if c.Mine {
			continue
		}
		n := check.minesAround(i/s.Cols, i%s.Cols)
		if c.Neighbors != n || c.MineNeighbor != (n > 0) {
			return fmt.Errorf("cell %d has %d neighbors, want %d", i, c.Neighbors, n)
		}
	}

	b.rows, b.cols, b.mineCount = s.Rows, s.Cols, s.MineCount
	b.cells = s.Cells
	b.status = s.Status
	b.firstMove = s.FirstMove
	if b.rnd == nil {
		b.rnd = NewRand()
	}
	return nil
}

func (b *Board) Bytes() ([]byte, error) {
	return b.MarshalBinary()
}

// Decode restores a board written by [Board.Bytes]. rnd feeds later calls
// to [Board.Reset]; nil means [NewRand].
func Decode(buf []byte, rnd *rand.Rand) (*Board, error) {
	b := &Board{rnd: rnd}
	if err := b.UnmarshalBinary(buf); err != nil {
		return nil, err
	}
	return b, nil
}
