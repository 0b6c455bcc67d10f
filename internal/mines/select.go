package mines

import "github.com/sirupsen/logrus"

// Select reveals a cell. The first reveal of a game never hits a mine: a
// mine under the first click is moved to the first free cell in row-major
// order. Selecting on a finished game or an already exposed cell does
// nothing.
func (b *Board) Select(row, col int) error {
	i, err := b.index(row, col)
	if err != nil {
		return err
	}
	if b.status.Over() || b.cells[i].Exposed {
		return nil
	}

	b.cells[i].Exposed = true

	if b.firstMove {
		b.firstMove = false
		if b.cells[i].Mine {
			b.relocateMine(i)
		}
	}

	if b.cells[i].Mine {
		b.status = Lost
		return nil
	}
	if b.cells[i].Neighbors == 0 {
		b.cascade(row, col)
	}
	b.checkWin()
	return nil
}

func (b *Board) relocateMine(from int) {
	for j := range b.cells {
		if !b.cells[j].Mine {
			b.cells[j].Mine = true
			Log.WithFields(logrus.Fields{
				"from": from,
				"to":   j,
			}).Debug("moved mine away from first click")
			break
		}
	}
	b.cells[from].Mine = false
	b.setNeighbors()
}

// cascade opens the zero region around (row, col) and its numbered border.
// Flagged cells are left untouched.
func (b *Board) cascade(row, col int) {
	todo := [][2]int{{row, col}}
	for len(todo) > 0 {
		p := todo[len(todo)-1]
		todo = todo[:len(todo)-1]
		for rr := p[0] - 1; rr <= p[0]+1; rr++ {
			for cc := p[1] - 1; cc <= p[1]+1; cc++ {
				if !b.InBounds(rr, cc) {
					continue
				}
				cell := &b.cells[rr*b.cols+cc]
				switch {
				case cell.Flagged:
				case cell.MineNeighbor:
					cell.Exposed = true
				case !cell.Exposed && cell.Neighbors == 0:
					cell.Exposed = true
					todo = append(todo, [2]int{rr, cc})
				}
			}
		}
	}
}

func (b *Board) checkWin() {
	for i := range b.cells {
		if !b.cells[i].Mine && !b.cells[i].Exposed {
			b.status = Ongoing
			return
		}
	}
	b.status = Won
}

// Chord selects every unflagged, unexposed neighbor of an exposed numbered
// cell once the player has flagged as many neighbors as the cell's count.
func (b *Board) Chord(row, col int) error {
	i, err := b.index(row, col)
	if err != nil {
		return err
	}
	cell := b.cells[i]
	if b.status.Over() || !cell.Exposed || cell.Mine || cell.Neighbors == 0 {
		return nil
	}

	flags := 0
	var targets [][2]int
	for rr := row - 1; rr <= row+1; rr++ {
		for cc := col - 1; cc <= col+1; cc++ {
			if !b.InBounds(rr, cc) || (rr == row && cc == col) {
				continue
			}
			n := b.cells[rr*b.cols+cc]
			if n.Flagged {
				flags++
			} else if !n.Exposed {
				targets = append(targets, [2]int{rr, cc})
			}
		}
	}
	if flags != cell.Neighbors {
		return nil
	}
	for _, t := range targets {
		if err := b.Select(t[0], t[1]); err != nil {
			return err
		}
		if b.status.Over() {
			return nil
		}
	}
	return nil
}
