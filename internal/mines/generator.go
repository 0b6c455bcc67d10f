package mines

import (
	"fmt"
	"hash/maphash"
	"math/rand/v2"
	"strings"
)

type Params struct {
	Rows, Cols, MineCount int
}

var (
	Beginner     = Params{Rows: 9, Cols: 9, MineCount: 10}
	Intermediate = Params{Rows: 16, Cols: 16, MineCount: 40}
	Expert       = Params{Rows: 16, Cols: 30, MineCount: 99}
)

// Presets maps preset names to their parameters.
var Presets = map[string]Params{
	"beginner":     Beginner,
	"intermediate": Intermediate,
	"expert":       Expert,
}

func (p Params) Unpack() (rows, cols, mineCount int) {
	return p.Rows, p.Cols, p.MineCount
}

func (p Params) Size() int {
	return p.Rows * p.Cols
}

func (p Params) Validate() error {
	if p.Rows <= 0 || p.Cols <= 0 || p.MineCount < 0 || p.MineCount >= p.Size() {
		return &ConfigError{Rows: p.Rows, Cols: p.Cols, MineCount: p.MineCount}
	}
	return nil
}

func (p Params) InBounds(row, col int) bool {
	return 0 <= row && row < p.Rows && 0 <= col && col < p.Cols
}

func (p Params) Seed() string {
	return fmt.Sprintf("%d:%d:%d", p.Rows, p.Cols, p.MineCount)
}

func ParseSeed(seed string) (*Params, error) {
	p := &Params{}
	sseed := strings.ReplaceAll(seed, ":", " ")
	n, err := fmt.Sscanf(sseed, "%d %d %d", &p.Rows, &p.Cols, &p.MineCount)
	if n != 3 || err != nil {
		return nil, fmt.Errorf(
			`invalid board params seed (sseed = "%s", n = %d, err = %w)`,
			sseed, n, err,
		)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// NewRand returns a PCG generator seeded from the runtime's hash seed.
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}
