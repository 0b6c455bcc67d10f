package mines

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfiguration = errors.New("invalid board configuration")
	ErrIndexOutOfRange      = errors.New("cell index out of range")
)

// ConfigError describes board parameters rejected by [New].
type ConfigError struct {
	Rows, Cols, MineCount int
}

func (e *ConfigError) Error() string {
	switch {
	case e.Rows <= 0:
		return fmt.Sprintf("%s: rows must be positive, got %d", ErrInvalidConfiguration, e.Rows)
	case e.Cols <= 0:
		return fmt.Sprintf("%s: cols must be positive, got %d", ErrInvalidConfiguration, e.Cols)
	default:
		return fmt.Sprintf(
			"%s: mine count must be in [0, %d), got %d",
			ErrInvalidConfiguration, e.Rows*e.Cols, e.MineCount,
		)
	}
}

// [ConfigError] matches [ErrInvalidConfiguration]
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}

// RangeError reports a coordinate outside of the board.
type RangeError struct {
	Row, Col   int
	Rows, Cols int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf(
		"%s: (%d, %d) on a %dx%d board",
		ErrIndexOutOfRange, e.Row, e.Col, e.Rows, e.Cols,
	)
}

// [RangeError] matches [ErrIndexOutOfRange]
func (e *RangeError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}
