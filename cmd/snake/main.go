// snake is the classic Snake game for the terminal.
//
// Usage:
//
//	snake                    - Play a game (same as "snake play")
//	snake play               - Play a game
//	snake menu               - Start the menu (play, high scores, quit)
//	snake scores             - Show high scores
//	snake serve              - Start the SSH server and spectator API
//	snake config             - Print the effective configuration
//
// Global flags:
//
//	--config <path>       - Custom YAML config
//	--difficulty <preset> - easy, normal, hard or fixed
//	--seed <value>        - RNG seed for reproducible food placement
//	--db <path>           - Scores database (default: ~/.snake/scores.db)
//	--name <player>       - Name recorded with scores
//	--log-file <path>     - Write debug logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	// Global flags
	flagConfig     string
	flagDifficulty string
	flagSeed       int64
	flagDBPath     string
	flagName       string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - the classic game in your terminal",
	Long: `Snake is the classic game on a 15x15 board. Steer with the arrow keys
or WASD, eat food to grow and speed up, and avoid the walls and your own tail.

Available commands:
  play     - Play a game (default)
  menu     - Menu with play and high scores
  scores   - View high scores
  serve    - Start SSH server for remote play
  config   - Print the effective configuration

Examples:
  snake
  snake play --difficulty hard
  snake scores --limit 20
  snake serve --ssh :2222 --http :8080`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runPlay,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagName, "name", defaultPlayerName(), "Player name recorded with scores")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write debug logs to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

func defaultPlayerName() string {
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "player"
}

// loadGameConfig resolves --config and --difficulty into a validated config.
func loadGameConfig() (config.SnakeConfig, config.DifficultyPreset, error) {
	cfg, err := config.LoadSnake(flagConfig)
	if err != nil {
		return config.SnakeConfig{}, "", err
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.SnakeConfig{}, "", err
	}
	config.ApplySnakePreset(&cfg, preset)

	if err := cfg.Validate(); err != nil {
		return config.SnakeConfig{}, "", err
	}
	return cfg, preset, nil
}

// describeDifficulty names the preset and whether the speed progresses.
func describeDifficulty(preset config.DifficultyPreset) string {
	if config.IsFixedPreset(preset) {
		return fmt.Sprintf("difficulty: %s, speed: fixed", preset)
	}
	return fmt.Sprintf("difficulty: %s, speed: increases with food", preset)
}

// openStore opens the scores database. Play works without it, so failures
// are reported as a warning and a nil store is returned.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

// newFileLogger returns a debug logger writing to --log-file, or nil when the
// flag is unset. The returned close func is never nil.
func newFileLogger() (*log.Logger, func(), error) {
	if flagLogFile == "" {
		return nil, func() {}, nil
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, func() {}, fmt.Errorf("cannot open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           log.DebugLevel,
		Prefix:          "snake",
	})
	return logger, func() { f.Close() }, nil
}
