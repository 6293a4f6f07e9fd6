package main

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the interactive menu",
	Long: `Start a menu to play games and browse high scores without leaving
the program. Escape in a game returns to the menu.

Navigation:
  Up/Down or W/S - Move selection
  Enter/Space    - Select
  Q/Ctrl+C       - Quit`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	gameCfg, _, err := loadGameConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newFileLogger()
	if err != nil {
		return err
	}
	defer closeLog()
	if logger == nil {
		logger = log.New(io.Discard)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	model := tui.NewSessionModel(gameCfg, runtimeConfig(), store, nil, logger)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
