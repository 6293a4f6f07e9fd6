// Package snake implements the Snake game-state engine and its terminal painter.
//
// The engine is a plain value owned by the host. The host drives it from two
// callbacks: a repeating timer that calls Tick once per Interval, and key input
// that calls SetDirection, TogglePause and Reset. Nothing in this package
// blocks, starts goroutines or touches the terminal.
package snake

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Status is the coarse game phase.
type Status int

const (
	StatusRunning Status = iota
	StatusPaused
	StatusEnded
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusPaused:
		return "paused"
	case StatusEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status name.
func (s *Status) UnmarshalText(text []byte) error {
	for _, v := range []Status{StatusRunning, StatusPaused, StatusEnded} {
		if v.String() == string(text) {
			*s = v
			return nil
		}
	}
	return fmt.Errorf("snake: unknown status %q", text)
}

// EndReason tells why a game ended.
type EndReason int

const (
	EndNone EndReason = iota
	EndWall
	EndSelf
	EndBoardFull
)

func (r EndReason) String() string {
	switch r {
	case EndWall:
		return "wall-collision"
	case EndSelf:
		return "self-collision"
	case EndBoardFull:
		return "board-full"
	default:
		return ""
	}
}

// MarshalText encodes the reason by name.
func (r EndReason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText decodes a reason name. The empty string is EndNone.
func (r *EndReason) UnmarshalText(text []byte) error {
	for _, v := range []EndReason{EndNone, EndWall, EndSelf, EndBoardFull} {
		if v.String() == string(text) {
			*r = v
			return nil
		}
	}
	return fmt.Errorf("snake: unknown end reason %q", text)
}

// Won reports whether the game ended because the snake filled the board.
func (r EndReason) Won() bool {
	return r == EndBoardFull
}

// Config holds the engine parameters.
type Config struct {
	Rows int
	Cols int

	InitialInterval   time.Duration // tick period at the start of a game
	IntervalDecrement time.Duration // subtracted from the period per food eaten
	MinInterval       time.Duration // the period never drops below this

	TurnCooldown time.Duration // minimum time between accepted direction changes

	Scoring Scoring
}

// DefaultConfig returns the classic 15×15 setup.
func DefaultConfig() Config {
	return Config{
		Rows:              15,
		Cols:              15,
		InitialInterval:   300 * time.Millisecond,
		IntervalDecrement: 5 * time.Millisecond,
		MinInterval:       50 * time.Millisecond,
		TurnCooldown:      450 * time.Millisecond,
		Scoring:           DefaultScoring(),
	}
}

// withDefaults fills zero-valued board and timing fields from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Rows <= 0 {
		c.Rows = def.Rows
	}
	if c.Cols <= 0 {
		c.Cols = def.Cols
	}
	if c.InitialInterval <= 0 {
		c.InitialInterval = def.InitialInterval
	}
	if c.MinInterval <= 0 {
		c.MinInterval = def.MinInterval
	}
	c.MinInterval = min(c.MinInterval, c.InitialInterval)
	if c.IntervalDecrement < 0 {
		c.IntervalDecrement = 0
	}
	return c
}

// StartCell returns where a new snake is placed: bottom row, just left of center.
func (c Config) StartCell() core.Cell {
	return core.Cell{Row: c.Rows - 1, Col: max(c.Cols/2-1, 0)}
}

// Stats holds per-game counters.
type Stats struct {
	Score     int
	FoodEaten int
}

// TickResult describes what a single Tick did.
type TickResult struct {
	Moved  bool
	Ate    bool
	Points int
	Ended  bool
	Reason EndReason
}

// Option customizes an Engine.
type Option func(*Engine)

// WithSeed seeds the food RNG.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

// WithClock sets the time source used by the turn cooldown.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// Engine owns the state of one Snake game.
type Engine struct {
	cfg     Config
	rng     *rand.Rand
	now     func() time.Time
	limiter *TurnLimiter
	placer  *FoodPlacer

	body      *Body
	dir       Direction
	food      core.Cell
	hasFood   bool
	status    Status
	reason    EndReason
	stats     Stats
	interval  time.Duration
	ticks     uint64
}

// New creates an engine and starts its first game.
func New(cfg Config, opts ...Option) *Engine {
	e := &Engine{
		cfg: cfg.withDefaults(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	e.limiter = NewTurnLimiter(e.cfg.TurnCooldown, e.now)
	e.placer = NewFoodPlacer(e.rng, e.cfg.Rows, e.cfg.Cols)
	e.Reset()
	return e
}

// Reset starts a new game: single-cell snake at the start cell heading up,
// zeroed stats, initial speed and fresh food.
func (e *Engine) Reset() {
	e.body = NewBody(e.cfg.StartCell())
	e.dir = DirUp
	e.status = StatusRunning
	e.reason = EndNone
	e.stats = Stats{}
	e.interval = e.cfg.InitialInterval
	e.ticks = 0
	e.limiter.Reset()

	e.food, e.hasFood = e.placer.Place(e.body)
	if !e.hasFood {
		e.end(EndBoardFull)
	}
}

// SetDirection asks the snake to turn. The request is dropped when the game
// is not running, when it repeats the current direction, when it would
// reverse the snake, or when it arrives inside the turn cooldown window.
// Returns whether the direction changed.
func (e *Engine) SetDirection(d Direction) bool {
	if e.status != StatusRunning || !d.Valid() {
		return false
	}
	if d == e.dir {
		return false
	}
	if d == e.dir.Opposite() {
		return false
	}
	if !e.limiter.Allow() {
		return false
	}
	e.dir = d
	return true
}

// Tick advances the game by one step. It does nothing unless the game is running.
func (e *Engine) Tick() TickResult {
	if e.status != StatusRunning {
		return TickResult{}
	}
	e.ticks++

	next := e.dir.Step(e.body.Head())
	if !next.In(e.cfg.Rows, e.cfg.Cols) {
		e.end(EndWall)
		return TickResult{Ended: true, Reason: EndWall}
	}
	if e.body.Contains(next) {
		e.end(EndSelf)
		return TickResult{Ended: true, Reason: EndSelf}
	}

	e.body.PushFront(next)
	res := TickResult{Moved: true}

	if !e.hasFood || next != e.food {
		e.body.PopBack()
		return res
	}

	// Points are judged on the cell just eaten, before new food is drawn.
	res.Ate = true
	res.Points = e.cfg.Scoring.PointsFor(next, e.cfg.Rows, e.cfg.Cols)
	e.stats.Score += res.Points
	e.stats.FoodEaten++
	e.interval = max(e.interval-e.cfg.IntervalDecrement, e.cfg.MinInterval)

	e.food, e.hasFood = e.placer.Place(e.body)
	if !e.hasFood {
		e.end(EndBoardFull)
		res.Ended = true
		res.Reason = EndBoardFull
	}
	return res
}

// TogglePause switches between running and paused. Ended games are unaffected.
func (e *Engine) TogglePause() {
	switch e.status {
	case StatusRunning:
		e.status = StatusPaused
	case StatusPaused:
		e.status = StatusRunning
	}
}

func (e *Engine) end(reason EndReason) {
	e.status = StatusEnded
	e.reason = reason
}

// Status returns the current game phase.
func (e *Engine) Status() Status { return e.status }

// EndReason returns why the game ended, or EndNone.
func (e *Engine) EndReason() EndReason { return e.reason }

// Direction returns the current heading.
func (e *Engine) Direction() Direction { return e.dir }

// Head returns the head cell.
func (e *Engine) Head() core.Cell { return e.body.Head() }

// Len returns the snake length.
func (e *Engine) Len() int { return e.body.Len() }

// Snake returns a copy of the body cells, head first.
func (e *Engine) Snake() []core.Cell { return e.body.Cells() }

// Food returns the food cell. The second value is false once the board is full.
func (e *Engine) Food() (core.Cell, bool) { return e.food, e.hasFood }

// Stats returns the score counters.
func (e *Engine) Stats() Stats { return e.stats }

// Interval returns the current tick period.
func (e *Engine) Interval() time.Duration { return e.interval }

// SpeedLevel returns a 1-based speed indicator that grows as the period shrinks.
func (e *Engine) SpeedLevel() int {
	if e.cfg.IntervalDecrement <= 0 {
		return 1
	}
	return int((e.cfg.InitialInterval-e.interval)/e.cfg.IntervalDecrement) + 1
}

// Ticks returns the number of ticks processed while running.
func (e *Engine) Ticks() uint64 { return e.ticks }

// Rows returns the board height.
func (e *Engine) Rows() int { return e.cfg.Rows }

// Cols returns the board width.
func (e *Engine) Cols() int { return e.cfg.Cols }

// Config returns the effective engine configuration.
func (e *Engine) Config() Config { return e.cfg }
