package mines

// Cell is the full state of one board position. Neighbor fields are only
// meaningful for cells that are not mines.
type Cell struct {
	Mine         bool
	Exposed      bool
	Flagged      bool
	MineNeighbor bool
	Neighbors    int
}

// CellView is the read-only copy of a [Cell] handed out by [Board.Cell].
type CellView struct {
	Mine         bool `json:"mine"`
	Exposed      bool `json:"exposed"`
	Flagged      bool `json:"flagged"`
	MineNeighbor bool `json:"mine_neighbor"`
	Neighbors    int  `json:"neighbors"`
}

func (c Cell) view() CellView {
	return CellView(c)
}

func (c *Cell) setNeighbors(n int) {
	c.Neighbors = n
	c.MineNeighbor = n > 0
}
