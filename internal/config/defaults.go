package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the default snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Board: BoardConfig{
			Rows: 15,
			Cols: 15,
		},
		Speed: SpeedConfig{
			InitialIntervalMs: 300,
			DecrementMs:       5,
			MinIntervalMs:     50,
		},
		Input: InputConfig{
			TurnCooldownMs: 450,
		},
		Scoring: ScoringConfig{
			Corner:   1000,
			Edge:     500,
			Interior: 250,
		},
		Blink: BlinkConfig{
			IntervalMs: 100,
			Step:       25,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultSnakeYAML
}
