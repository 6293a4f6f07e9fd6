package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game of Snake.

Controls:
  Arrows/WASD  - Steer
  Space        - Pause/resume, or start a new game after game over
  Esc          - Quit
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Slower start (400ms per step)
  normal - Classic speed (300ms per step)
  hard   - Fast start (180ms per step), lower speed floor
  fixed  - Speed never increases

Examples:
  snake play
  snake play --difficulty easy
  snake play --seed 42
  snake play --config ./my-snake.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

// runtimeConfig builds the runtime config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.Seed = flagSeed
	cfg.Player = flagName
	return cfg
}

func runPlay(_ *cobra.Command, _ []string) error {
	gameCfg, preset, err := loadGameConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newFileLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	var opts []tui.ModelOption
	if logger != nil {
		logger.Info("starting snake",
			"settings", describeDifficulty(preset),
			"interval", gameCfg.EngineConfig().InitialInterval,
			"board", fmt.Sprintf("%dx%d", gameCfg.Board.Rows, gameCfg.Board.Cols),
		)
		opts = append(opts, tui.WithLogger(logger))
	}

	// Open score storage; the game still works without it
	var saver tui.ScoreSaver
	if store := openStore(); store != nil {
		defer store.Close()
		saver = store
	}

	return tui.Run(gameCfg, runtimeConfig(), saver, opts...)
}
