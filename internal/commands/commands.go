// Package commands implements the line protocol spoken over the game
// websocket. Each line holds one command: a letter followed by its
// arguments, separated by spaces.
//
//	g          no-op, the caller just wants the current state
//	s ROW COL  select (reveal) a cell
//	f ROW COL  toggle a flag
//	c ROW COL  chord around an exposed number
//	n          reset the board
//	r          forfeit
package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vancomm/minesweeper/internal/mines"
)

type Op byte

const (
	Noop    Op = 'g'
	Select  Op = 's'
	Flag    Op = 'f'
	Chord   Op = 'c'
	Reset   Op = 'n'
	Forfeit Op = 'r'
)

// Maps known commands to number of arguments
var opNargs = map[Op]int{
	Noop:    0,
	Select:  2,
	Flag:    2,
	Chord:   2,
	Reset:   0,
	Forfeit: 0,
}

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrArgCount       = errors.New("invalid number of arguments")
	ErrBadArg         = errors.New("arguments must be integers")
)

type Command struct {
	Op       Op
	Row, Col int
}

func (c Command) String() string {
	if opNargs[c.Op] == 2 {
		return fmt.Sprintf("%c %d %d", c.Op, c.Row, c.Col)
	}
	return string(c.Op)
}

func parseRowCol(args []string) (row int, col int, err error) {
	if row, err = strconv.Atoi(args[0]); err != nil {
		return 0, 0, fmt.Errorf("%w: row %q", ErrBadArg, args[0])
	}
	if col, err = strconv.Atoi(args[1]); err != nil {
		return 0, 0, fmt.Errorf("%w: col %q", ErrBadArg, args[1])
	}
	return row, col, nil
}

func Parse(line string) (Command, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 || len(parts[0]) != 1 {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, line)
	}
	op := Op(parts[0][0])
	nargs, ok := opNargs[op]
	if !ok {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, parts[0])
	}
	if nargs != len(parts)-1 {
		return Command{}, fmt.Errorf(
			"%w: %c takes %d, got %d", ErrArgCount, op, nargs, len(parts)-1,
		)
	}
	cmd := Command{Op: op}
	if nargs == 2 {
		row, col, err := parseRowCol(parts[1:])
		if err != nil {
			return Command{}, err
		}
		cmd.Row, cmd.Col = row, col
	}
	return cmd, nil
}

// ParseBatch parses a newline separated list of commands. Blank lines are
// skipped.
func ParseBatch(text string) ([]Command, error) {
	var cmds []Command
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		cmd, err := Parse(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}

func (c Command) Apply(b *mines.Board) error {
	switch c.Op {
	case Noop:
		return nil
	case Select:
		return b.Select(c.Row, c.Col)
	case Flag:
		return b.Flag(c.Row, c.Col)
	case Chord:
		return b.Chord(c.Row, c.Col)
	case Reset:
		b.Reset()
		return nil
	case Forfeit:
		b.Forfeit()
		return nil
	}
	return ErrUnknownCommand
}

// ApplyAll runs cmds in order and stops at the first error. It returns the
// number of commands applied. Commands after the game ends still reach the
// board, so a trailing reset starts a new game.
func ApplyAll(b *mines.Board, cmds []Command) (int, error) {
	for i, c := range cmds {
		if err := c.Apply(b); err != nil {
			return i, err
		}
	}
	return len(cmds), nil
}
