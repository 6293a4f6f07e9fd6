package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// withFlags sets the global flags for one test and restores them afterwards.
func withFlags(t *testing.T, cfgPath, difficulty, db string) {
	t.Helper()
	oldCfg, oldDiff, oldDB := flagConfig, flagDifficulty, flagDBPath
	oldLimit, oldPlayer, oldClear := flagLimit, flagPlayer, flagClear
	t.Cleanup(func() {
		flagConfig, flagDifficulty, flagDBPath = oldCfg, oldDiff, oldDB
		flagLimit, flagPlayer, flagClear = oldLimit, oldPlayer, oldClear
	})
	flagConfig, flagDifficulty, flagDBPath = cfgPath, difficulty, db
	flagLimit, flagPlayer, flagClear = 10, "", false
}

func TestLoadGameConfigPreset(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	withFlags(t, "", "hard", "")

	cfg, preset, err := loadGameConfig()
	if err != nil {
		t.Fatalf("loadGameConfig() failed: %v", err)
	}
	if preset != config.DifficultyHard {
		t.Errorf("preset = %q, expected hard", preset)
	}
	if cfg.Speed.InitialIntervalMs != 180 {
		t.Errorf("initial interval = %d, expected 180", cfg.Speed.InitialIntervalMs)
	}
}

func TestDescribeDifficulty(t *testing.T) {
	tests := map[config.DifficultyPreset]string{
		config.DifficultyFixed:  "difficulty: fixed, speed: fixed",
		config.DifficultyNormal: "difficulty: normal, speed: increases with food",
		config.DifficultyEasy:   "difficulty: easy, speed: increases with food",
	}
	for preset, want := range tests {
		if got := describeDifficulty(preset); got != want {
			t.Errorf("describeDifficulty(%q) = %q, expected %q", preset, got, want)
		}
	}
}

func TestLoadGameConfigBadPreset(t *testing.T) {
	withFlags(t, "", "insane", "")

	_, _, err := loadGameConfig()
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("loadGameConfig() error = %v, expected ErrInvalidConfig", err)
	}
}

func TestConfigCommandPrintsYAML(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	withFlags(t, "", "", "")

	var out bytes.Buffer
	configCmd.SetOut(&out)
	t.Cleanup(func() { configCmd.SetOut(nil) })

	if err := runConfig(configCmd, nil); err != nil {
		t.Fatalf("runConfig() failed: %v", err)
	}
	if !strings.Contains(out.String(), "initial_interval_ms: 300") {
		t.Errorf("output missing the default interval:\n%s", out.String())
	}
	if !strings.HasPrefix(out.String(), "# difficulty: normal, speed: increases with food\n") {
		t.Errorf("output missing the difficulty header:\n%s", out.String())
	}
}

func TestConfigCommandFixedSpeed(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	withFlags(t, "", "fixed", "")

	var out bytes.Buffer
	configCmd.SetOut(&out)
	t.Cleanup(func() { configCmd.SetOut(nil) })

	if err := runConfig(configCmd, nil); err != nil {
		t.Fatalf("runConfig() failed: %v", err)
	}
	if !strings.HasPrefix(out.String(), "# difficulty: fixed, speed: fixed\n") {
		t.Errorf("output missing the fixed speed header:\n%s", out.String())
	}
}

func TestScoresCommand(t *testing.T) {
	db := filepath.Join(t.TempDir(), "scores.db")
	withFlags(t, "", "", db)

	store, err := storage.Open(db)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	store.SaveGame(storage.GameRecord{Player: "alice", Score: 1750, FoodEaten: 4, Length: 5, EndReason: "wall-collision", Duration: time.Minute})
	store.SaveGame(storage.GameRecord{Player: "bob", Score: 250, FoodEaten: 1, Length: 2, EndReason: "self-collision", Duration: time.Second})
	store.Close()

	var out bytes.Buffer
	scoresCmd.SetOut(&out)
	t.Cleanup(func() { scoresCmd.SetOut(nil) })

	if err := runScores(scoresCmd, nil); err != nil {
		t.Fatalf("runScores() failed: %v", err)
	}
	text := out.String()
	if strings.Index(text, "alice") > strings.Index(text, "bob") {
		t.Errorf("scores not ordered best first:\n%s", text)
	}
	if !strings.Contains(text, "Best: 1750") {
		t.Errorf("summary missing:\n%s", text)
	}

	out.Reset()
	flagPlayer = "bob"
	if err := runScores(scoresCmd, nil); err != nil {
		t.Fatalf("runScores() failed: %v", err)
	}
	if strings.Contains(out.String(), "alice") {
		t.Errorf("--player output contains another player:\n%s", out.String())
	}
}

func TestScoresCommandClear(t *testing.T) {
	db := filepath.Join(t.TempDir(), "scores.db")
	withFlags(t, "", "", db)

	store, err := storage.Open(db)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	store.SaveGame(storage.GameRecord{Player: "alice", Score: 500, FoodEaten: 2, Length: 3, EndReason: "wall-collision", Duration: time.Second})
	store.Close()

	var out bytes.Buffer
	scoresCmd.SetOut(&out)
	t.Cleanup(func() { scoresCmd.SetOut(nil) })

	flagClear = true
	if err := runScores(scoresCmd, nil); err != nil {
		t.Fatalf("runScores() failed: %v", err)
	}
	if !strings.Contains(out.String(), "All scores cleared.") {
		t.Errorf("unexpected output:\n%s", out.String())
	}

	out.Reset()
	flagClear = false
	if err := runScores(scoresCmd, nil); err != nil {
		t.Fatalf("runScores() failed: %v", err)
	}
	if !strings.Contains(out.String(), "No scores recorded yet.") {
		t.Errorf("scores survived --clear:\n%s", out.String())
	}
}

func TestScoresCommandEmpty(t *testing.T) {
	withFlags(t, "", "", filepath.Join(t.TempDir(), "scores.db"))

	var out bytes.Buffer
	scoresCmd.SetOut(&out)
	t.Cleanup(func() { scoresCmd.SetOut(nil) })

	if err := runScores(scoresCmd, nil); err != nil {
		t.Fatalf("runScores() failed: %v", err)
	}
	if !strings.Contains(out.String(), "No scores recorded yet.") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestPortOf(t *testing.T) {
	tests := map[string]string{
		":23234":         "23234",
		"0.0.0.0:2222":   "2222",
		"[::1]:22":       "22",
		"no-port-at-all": "no-port-at-all",
	}
	for addr, want := range tests {
		if got := portOf(addr); got != want {
			t.Errorf("portOf(%q) = %q, expected %q", addr, got, want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 12); got != "short" {
		t.Errorf("truncate() = %q", got)
	}
	if got := truncate("averyveryverylongname", 8); got != "averyve…" {
		t.Errorf("truncate() = %q", got)
	}
}
