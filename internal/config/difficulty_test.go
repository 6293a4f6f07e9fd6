package config

import (
	"errors"
	"testing"
)

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in       string
		expected DifficultyPreset
	}{
		{"", DifficultyNormal},
		{"easy", DifficultyEasy},
		{"HARD", DifficultyHard},
		{" fixed ", DifficultyFixed},
	}
	for _, tc := range tests {
		got, err := ParsePreset(tc.in)
		if err != nil || got != tc.expected {
			t.Errorf("ParsePreset(%q) = %q, %v; expected %q", tc.in, got, err, tc.expected)
		}
	}

	if _, err := ParsePreset("insane"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("ParsePreset(\"insane\") error = %v, expected ErrInvalidConfig", err)
	}
}

func TestApplySnakePreset(t *testing.T) {
	tests := []struct {
		preset    DifficultyPreset
		initial   int
		decrement int
		floor     int
	}{
		{DifficultyEasy, 400, 5, 50},
		{DifficultyNormal, 300, 5, 50},
		{DifficultyHard, 180, 5, 40},
		{DifficultyFixed, 300, 0, 50},
	}

	for _, tc := range tests {
		cfg := DefaultSnakeConfig()
		ApplySnakePreset(&cfg, tc.preset)

		if cfg.Speed.InitialIntervalMs != tc.initial {
			t.Errorf("%s: InitialIntervalMs = %d, expected %d", tc.preset, cfg.Speed.InitialIntervalMs, tc.initial)
		}
		if cfg.Speed.DecrementMs != tc.decrement {
			t.Errorf("%s: DecrementMs = %d, expected %d", tc.preset, cfg.Speed.DecrementMs, tc.decrement)
		}
		if cfg.Speed.MinIntervalMs != tc.floor {
			t.Errorf("%s: MinIntervalMs = %d, expected %d", tc.preset, cfg.Speed.MinIntervalMs, tc.floor)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("%s: Validate() = %v", tc.preset, err)
		}
	}

	if !IsFixedPreset(DifficultyFixed) || IsFixedPreset(DifficultyHard) {
		t.Error("IsFixedPreset() misreports")
	}
}
