package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/spectate"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagHTTPAddr    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the snake SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with a menu. Scores are stored
per-server (all users share the same leaderboard) under their SSH user name.

With --http, a spectator API is served as well:
  GET /api/games        - live games
  GET /api/games/{id}   - latest snapshot of a game
  GET /api/scores       - leaderboard (?limit=N)
  GET /ws/games/{id}    - WebSocket stream of snapshots

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.snake/host_key

Examples:
  snake serve                           # Listen on :23234 with auto-generated key
  snake serve --ssh :2222               # Listen on port 2222
  snake serve --http :8080              # Also serve the spectator API
  snake serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "Spectator HTTP address (disabled if empty)")
}

func runServe(_ *cobra.Command, _ []string) error {
	gameCfg, _, err := loadGameConfig()
	if err != nil {
		return err
	}

	logger := tui.NewSSHLogger()

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.Game = gameCfg

	var hub *spectate.Hub
	var publisher tui.Publisher
	if flagHTTPAddr != "" {
		hub = spectate.NewHub(spectate.WithHubLogger(logger.WithPrefix("snake-spectate")))
		publisher = hub
	}

	server, err := tui.NewSSHServer(cfg, store, publisher, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Starting snake SSH server on %s\n", cfg.Address)
	fmt.Println("Connect with: ssh localhost -p " + portOf(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Either server failing stops the other.
	errCh := make(chan error, 2)
	running := 1
	go func() {
		errCh <- server.ListenAndServe(ctx)
	}()
	if hub != nil {
		var scores spectate.ScoreSource
		if store != nil {
			scores = store
		}
		api := spectate.NewServer(hub, scores, logger.WithPrefix("snake-http"))
		running++
		go func() {
			errCh <- api.ListenAndServe(ctx, flagHTTPAddr)
		}()
	}

	var firstErr error
	for range running {
		if err := <-errCh; err != nil && firstErr == nil {
			firstErr = err
		}
		cancel()
	}
	return firstErr
}

// portOf returns the port part of a listen address.
func portOf(addr string) string {
	if i := strings.LastIndex(addr, ":"); i >= 0 {
		return addr[i+1:]
	}
	return addr
}
