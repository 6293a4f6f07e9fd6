package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// Snapshot captures the complete game state for determinism testing and
// for streaming to spectators.
type Snapshot struct {
	Tick       uint64      `json:"tick"`
	Status     Status      `json:"status"`
	Reason     EndReason   `json:"reason,omitempty"`
	Score      int         `json:"score"`
	FoodEaten  int         `json:"food_eaten"`
	Length     int         `json:"length"`
	Head       core.Cell   `json:"head"`
	Food       *core.Cell  `json:"food,omitempty"`
	Dir        Direction   `json:"direction"`
	IntervalMs int64       `json:"interval_ms"`
	SpeedLevel int         `json:"speed_level"`
	Rows       int         `json:"rows"`
	Cols       int         `json:"cols"`
	Body       []core.Cell `json:"body"`
}

// Snapshot returns the current game snapshot.
func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:       e.ticks,
		Status:     e.status,
		Reason:     e.reason,
		Score:      e.stats.Score,
		FoodEaten:  e.stats.FoodEaten,
		Length:     e.body.Len(),
		Head:       e.body.Head(),
		Dir:        e.dir,
		IntervalMs: e.interval.Milliseconds(),
		SpeedLevel: e.SpeedLevel(),
		Rows:       e.cfg.Rows,
		Cols:       e.cfg.Cols,
		Body:       e.body.Cells(),
	}
	if e.hasFood {
		food := e.food
		snap.Food = &food
	}
	return snap
}
