package config

import "fmt"

const defaultMaxSide = 64

// Limits bounds the boards players may request from the server.
type Limits struct {
	MaxRows, MaxCols int
}

func NewLimits() (*Limits, error) {
	rows, err := lookupInt("BOARD_MAX_ROWS", defaultMaxSide)
	if err != nil {
		return nil, err
	}
	cols, err := lookupInt("BOARD_MAX_COLS", defaultMaxSide)
	if err != nil {
		return nil, err
	}
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("board limits must be positive, got %dx%d", rows, cols)
	}
	return &Limits{MaxRows: rows, MaxCols: cols}, nil
}

func (l Limits) Allow(rows, cols int) bool {
	return rows <= l.MaxRows && cols <= l.MaxCols
}
