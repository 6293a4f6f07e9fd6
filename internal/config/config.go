// Package config provides YAML-based game configuration loading and
// difficulty presets for the snake game.
package config

import (
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-snake/internal/snake"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// SnakeConfig contains all configuration for the snake game.
type SnakeConfig struct {
	Board   BoardConfig   `yaml:"board"`
	Speed   SpeedConfig   `yaml:"speed"`
	Input   InputConfig   `yaml:"input"`
	Scoring ScoringConfig `yaml:"scoring"`
	Blink   BlinkConfig   `yaml:"blink"`
}

// BoardConfig defines the grid size.
type BoardConfig struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// SpeedConfig defines the tick period and how it shrinks as food is eaten.
type SpeedConfig struct {
	InitialIntervalMs int `yaml:"initial_interval_ms"`
	DecrementMs       int `yaml:"decrement_ms"`    // per food eaten
	MinIntervalMs     int `yaml:"min_interval_ms"` // floor
}

// InputConfig defines input throttling.
type InputConfig struct {
	TurnCooldownMs int `yaml:"turn_cooldown_ms"` // 0 disables the cooldown
}

// ScoringConfig defines points per food by board position.
type ScoringConfig struct {
	Corner   int `yaml:"corner"`
	Edge     int `yaml:"edge"`
	Interior int `yaml:"interior"`
}

// BlinkConfig defines the cosmetic food fade.
type BlinkConfig struct {
	IntervalMs int `yaml:"interval_ms"`
	Step       int `yaml:"step"` // alpha change per blink tick
}

// maxBoardSide keeps boards renderable in a terminal.
const maxBoardSide = 100

// Validate checks that the configuration describes a playable game.
func (c SnakeConfig) Validate() error {
	switch {
	case c.Board.Rows < 1 || c.Board.Rows > maxBoardSide:
		return fmt.Errorf("%w: board.rows must be in [1, %d], got %d", ErrInvalidConfig, maxBoardSide, c.Board.Rows)
	case c.Board.Cols < 1 || c.Board.Cols > maxBoardSide:
		return fmt.Errorf("%w: board.cols must be in [1, %d], got %d", ErrInvalidConfig, maxBoardSide, c.Board.Cols)
	case c.Speed.InitialIntervalMs <= 0:
		return fmt.Errorf("%w: speed.initial_interval_ms must be positive, got %d", ErrInvalidConfig, c.Speed.InitialIntervalMs)
	case c.Speed.DecrementMs < 0:
		return fmt.Errorf("%w: speed.decrement_ms must not be negative, got %d", ErrInvalidConfig, c.Speed.DecrementMs)
	case c.Speed.MinIntervalMs <= 0:
		return fmt.Errorf("%w: speed.min_interval_ms must be positive, got %d", ErrInvalidConfig, c.Speed.MinIntervalMs)
	case c.Speed.MinIntervalMs > c.Speed.InitialIntervalMs:
		return fmt.Errorf("%w: speed.min_interval_ms (%d) exceeds initial_interval_ms (%d)",
			ErrInvalidConfig, c.Speed.MinIntervalMs, c.Speed.InitialIntervalMs)
	case c.Input.TurnCooldownMs < 0:
		return fmt.Errorf("%w: input.turn_cooldown_ms must not be negative, got %d", ErrInvalidConfig, c.Input.TurnCooldownMs)
	case c.Scoring.Corner < 0 || c.Scoring.Edge < 0 || c.Scoring.Interior < 0:
		return fmt.Errorf("%w: scoring values must not be negative", ErrInvalidConfig)
	case c.Blink.IntervalMs <= 0:
		return fmt.Errorf("%w: blink.interval_ms must be positive, got %d", ErrInvalidConfig, c.Blink.IntervalMs)
	case c.Blink.Step < 1 || c.Blink.Step > 255:
		return fmt.Errorf("%w: blink.step must be in [1, 255], got %d", ErrInvalidConfig, c.Blink.Step)
	}
	return nil
}

// EngineConfig converts the file format into engine parameters.
func (c SnakeConfig) EngineConfig() snake.Config {
	return snake.Config{
		Rows:              c.Board.Rows,
		Cols:              c.Board.Cols,
		InitialInterval:   ms(c.Speed.InitialIntervalMs),
		IntervalDecrement: ms(c.Speed.DecrementMs),
		MinInterval:       ms(c.Speed.MinIntervalMs),
		TurnCooldown:      ms(c.Input.TurnCooldownMs),
		Scoring: snake.Scoring{
			Corner:   c.Scoring.Corner,
			Edge:     c.Scoring.Edge,
			Interior: c.Scoring.Interior,
		},
	}
}

// BlinkInterval returns the food fade timer period.
func (c SnakeConfig) BlinkInterval() time.Duration {
	return ms(c.Blink.IntervalMs)
}

// YAML renders the configuration in the same format the loader reads.
func (c SnakeConfig) YAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	return data, nil
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}
