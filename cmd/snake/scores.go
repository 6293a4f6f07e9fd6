package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagLimit       int
	flagPlayer      string
	flagInteractive bool
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the best games recorded in the scores database.

Examples:
  snake scores
  snake scores --limit 20
  snake scores --player alice
  snake scores --interactive
  snake scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of games to show")
	scoresCmd.Flags().StringVar(&flagPlayer, "player", "", "Only show games by this player")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse scores in a table")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded game")
}

func runScores(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(); err != nil {
			return fmt.Errorf("clearing scores: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "All scores cleared.")
		return nil
	}

	if flagInteractive {
		rt := runtimeConfig()
		player := flagPlayer
		if player == "" {
			player = flagName
		}
		return tui.RunScoreboard(store, player, rt.ScreenW, rt.ScreenH)
	}

	var games []storage.GameRecord
	title := "High Scores"
	if flagPlayer != "" {
		games, err = store.PlayerHistory(flagPlayer, flagLimit)
		title = "Games - " + flagPlayer
	} else {
		games, err = store.TopScores(flagLimit)
	}
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, title)
	fmt.Fprintln(out)

	if len(games) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Play 'snake play' to set the first high score!")
		return nil
	}

	// Print header
	fmt.Fprintf(out, "  %-4s  %-12s  %-8s  %-4s  %-4s  %-14s  %s\n", "Rank", "Player", "Score", "Food", "Len", "End", "Date")
	fmt.Fprintf(out, "  %-4s  %-12s  %-8s  %-4s  %-4s  %-14s  %s\n", "----", "------", "-----", "----", "---", "---", "----")

	for i, g := range games {
		fmt.Fprintf(out, "  %-4d  %-12s  %-8d  %-4d  %-4d  %-14s  %s\n",
			i+1, truncate(g.Player, 12), g.Score, g.FoodEaten, g.Length, g.EndReason,
			g.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	stats, err := store.GetStats(flagPlayer)
	if err == nil && stats.GamesCount > 0 {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Best: %d  Games: %d  Average: %.0f  Longest snake: %d\n",
			stats.HighScore, stats.GamesCount, stats.AvgScore, stats.LongestSnake)
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
