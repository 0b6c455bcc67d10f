package main

import (
	"fmt"
	"time"

	"github.com/nsf/termbox-go"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/mines"
)

type ui struct {
	log      *logrus.Logger
	board    *mines.Board
	row, col int
	elapsed  time.Duration
	resumed  time.Time
	message  string
}

func newUI(log *logrus.Logger, b *mines.Board, elapsed time.Duration) *ui {
	return &ui{
		log:     log,
		board:   b,
		row:     b.Rows() / 2,
		col:     b.Cols() / 2,
		elapsed: elapsed,
		resumed: time.Now(),
	}
}

func (u *ui) playtime() time.Duration {
	if u.board.Status().Over() {
		return u.elapsed
	}
	return u.elapsed + time.Since(u.resumed)
}

func (u *ui) move(dr, dc int) {
	u.row = min(max(u.row+dr, 0), u.board.Rows()-1)
	u.col = min(max(u.col+dc, 0), u.board.Cols()-1)
}

func (u *ui) stopClock() {
	u.elapsed += time.Since(u.resumed)
}

// apply runs f on the board and stops the clock when it ends the game.
func (u *ui) apply(name string, f func(row, col int) error) {
	wasOver := u.board.Status().Over()
	if err := f(u.row, u.col); err != nil {
		u.message = err.Error()
		return
	}
	u.log.WithFields(logrus.Fields{
		"move": name, "row": u.row, "col": u.col, "status": u.board.Status(),
	}).Debug("applied move")
	if !wasOver && u.board.Status().Over() {
		u.stopClock()
	}
	switch u.board.Status() {
	case mines.Won:
		u.message = fmt.Sprintf("cleared in %s, n for a new game", u.elapsed.Round(time.Millisecond))
	case mines.Lost:
		u.message = "boom, n for a new game"
	default:
		u.message = ""
	}
}

func (u *ui) reset() {
	u.board.Reset()
	u.elapsed = 0
	u.resumed = time.Now()
	u.message = ""
}

// handle processes one key event and reports whether the player quit.
func (u *ui) handle(ev termbox.Event) bool {
	if ev.Type != termbox.EventKey {
		return false
	}
	switch ev.Key {
	case termbox.KeyEsc, termbox.KeyCtrlC:
		return true
	case termbox.KeyArrowUp:
		u.move(-1, 0)
	case termbox.KeyArrowDown:
		u.move(1, 0)
	case termbox.KeyArrowLeft:
		u.move(0, -1)
	case termbox.KeyArrowRight:
		u.move(0, 1)
	case termbox.KeySpace, termbox.KeyEnter:
		u.apply("select", u.board.Select)
	}
	switch ev.Ch {
	case 'q':
		return true
	case 'k':
		u.move(-1, 0)
	case 'j':
		u.move(1, 0)
	case 'h':
		u.move(0, -1)
	case 'l':
		u.move(0, 1)
	case 'f':
		u.apply("flag", u.board.Flag)
	case 'c':
		u.apply("chord", u.board.Chord)
	case 'n':
		u.reset()
	}
	return false
}

var numberColors = [...]termbox.Attribute{
	termbox.ColorDefault,
	termbox.ColorBlue,
	termbox.ColorGreen,
	termbox.ColorRed,
	termbox.ColorMagenta,
	termbox.ColorYellow,
	termbox.ColorCyan,
	termbox.ColorWhite,
	termbox.ColorWhite | termbox.AttrBold,
}

// glyph maps a player cell to its rune and foreground color.
func glyph(s mines.CellState) (rune, termbox.Attribute) {
	switch {
	case s >= 0 && int(s) < len(numberColors):
		if s == 0 {
			return ' ', termbox.ColorDefault
		}
		return rune('0' + s), numberColors[s]
	case s == mines.Flagged || s == mines.CorrectlyFlagged:
		return 'F', termbox.ColorRed | termbox.AttrBold
	case s == mines.ExplodedMine:
		return '*', termbox.ColorRed | termbox.AttrBold
	case s == mines.FalselyFlagged:
		return 'x', termbox.ColorMagenta
	case s == mines.UnflaggedMine:
		return '*', termbox.ColorDefault
	default:
		return '.', termbox.ColorDefault
	}
}

func drawText(x, y int, fg termbox.Attribute, text string) {
	for i, r := range text {
		termbox.SetCell(x+i, y, r, fg, termbox.ColorDefault)
	}
}

func (u *ui) draw() error {
	if err := termbox.Clear(termbox.ColorDefault, termbox.ColorDefault); err != nil {
		return err
	}

	drawText(0, 0, termbox.AttrBold, fmt.Sprintf(
		"%s  mines left: %d  time: %s",
		u.board.Status(), u.board.MinesLeft(), u.playtime().Truncate(time.Second),
	))

	grid := u.board.PlayerGrid()
	cols := u.board.Cols()
	for i, s := range grid {
		row, col := i/cols, i%cols
		ch, fg := glyph(s)
		bg := termbox.ColorDefault
		if row == u.row && col == u.col {
			bg = termbox.AttrReverse
		}
		termbox.SetCell(col*2, row+2, ch, fg, bg)
	}

	footer := u.board.Rows() + 3
	drawText(0, footer, termbox.ColorDefault, "arrows/hjkl move  space select  f flag  c chord  n new  q quit")
	if u.message != "" {
		drawText(0, footer+1, termbox.ColorYellow, u.message)
	}
	return termbox.Flush()
}
