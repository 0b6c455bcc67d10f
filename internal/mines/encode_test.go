package mines

import (
	"bytes"
	"encoding/gob"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRestoresGame(t *testing.T) {
	b, err := New(8, 9, 10, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	require.NoError(t, b.Select(4, 4))
	require.NoError(t, b.Flag(0, 0))

	buf, err := b.Bytes()
	require.NoError(t, err)

	d, err := Decode(buf, rand.New(rand.NewPCG(3, 4)))
	require.NoError(t, err)

	assert.Equal(t, b.Params(), d.Params())
	assert.Equal(t, b.Status(), d.Status())
	assert.Equal(t, b.FirstMove(), d.FirstMove())
	assert.Equal(t, b.cells, d.cells)
	assert.Equal(t, b.PlayerGrid(), d.PlayerGrid())

	d.Reset()
	assert.Equal(t, 10, countMines(d))
}

func TestDecodeRejectsCorruptState(t *testing.T) {
	encode := func(s snapshot) []byte {
		var buf bytes.Buffer
		require.NoError(t, gob.NewEncoder(&buf).Encode(s))
		return buf.Bytes()
	}
	valid := func() []Cell {
		cells := make([]Cell, 4)
		cells[0].Mine = true
		for i := 1; i < 4; i++ {
			cells[i].setNeighbors(1)
		}
		return cells
	}
	cells := valid()
	_, err := Decode(encode(snapshot{Rows: 2, Cols: 2, MineCount: 1, Cells: cells, FirstMove: true}), nil)
	require.NoError(t, err)

	outOfRange := valid()
	outOfRange[3].Neighbors = 64
	miscounted := valid()
	miscounted[2].setNeighbors(2)
	unmarked := valid()
	unmarked[1].MineNeighbor = false

	tests := []struct {
		name string
		buf  []byte
	}{
		{"neighbors out of range", encode(snapshot{Rows: 2, Cols: 2, MineCount: 1, Cells: outOfRange})},
		{"neighbors disagree with mines", encode(snapshot{Rows: 2, Cols: 2, MineCount: 1, Cells: miscounted})},
		{"mine neighbor flag without count", encode(snapshot{Rows: 2, Cols: 2, MineCount: 1, Cells: unmarked})},
		{"garbage", []byte("definitely not gob")},
		{"bad params", encode(snapshot{Rows: 0, Cols: 2, Cells: cells})},
		{"wrong cell count", encode(snapshot{Rows: 3, Cols: 3, MineCount: 1, Cells: cells})},
		{"wrong mine count", encode(snapshot{Rows: 2, Cols: 2, MineCount: 2, Cells: cells})},
		{"bad status", encode(snapshot{Rows: 2, Cols: 2, MineCount: 1, Cells: cells, Status: 9})},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Decode(test.buf, nil)
			assert.Error(t, err)
		})
	}
}

func TestStatusText(t *testing.T) {
	for _, s := range []Status{Ongoing, Won, Lost} {
		text, err := s.MarshalText()
		require.NoError(t, err)

		var got Status
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, s, got)
	}

	var s Status
	assert.Error(t, s.UnmarshalText([]byte("paused")))
	_, err := Status(7).MarshalText()
	assert.Error(t, err)
}
