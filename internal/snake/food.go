package snake

import (
	"math/rand"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// maxRejections bounds the random draws before falling back to a scan of
// the free cells.
const maxRejections = 64

// FoodPlacer picks food cells uniformly at random among the cells that are
// not occupied by the snake.
type FoodPlacer struct {
	rng  *rand.Rand
	rows int
	cols int
}

// NewFoodPlacer creates a placer for a rows×cols grid.
func NewFoodPlacer(rng *rand.Rand, rows, cols int) *FoodPlacer {
	return &FoodPlacer{rng: rng, rows: rows, cols: cols}
}

// Place returns a free cell for the next food. It reports false when the
// body covers the whole grid.
func (p *FoodPlacer) Place(body *Body) (core.Cell, bool) {
	total := p.rows * p.cols
	if body.Len() >= total {
		return core.Cell{}, false
	}

	for range maxRejections {
		c := core.Cell{Row: p.rng.Intn(p.rows), Col: p.rng.Intn(p.cols)}
		if !body.Contains(c) {
			return c, true
		}
	}

	// Crowded board: choose directly among the free cells.
	free := make([]core.Cell, 0, total-body.Len())
	for row := 0; row < p.rows; row++ {
		for col := 0; col < p.cols; col++ {
			c := core.Cell{Row: row, Col: col}
			if !body.Contains(c) {
				free = append(free, c)
			}
		}
	}
	if len(free) == 0 {
		return core.Cell{}, false
	}
	return free[p.rng.Intn(len(free))], true
}
