// Package spectate lets other people watch games in progress. Game models
// publish a snapshot after every tick to a Hub; the HTTP server lists live
// games and streams snapshots over WebSocket.
package spectate

import (
	"errors"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/snake"
)

// ErrUnknownGame is returned for a game ID the hub is not tracking.
var ErrUnknownGame = errors.New("spectate: unknown game")

// DefaultBufferSize is the number of snapshots queued per subscriber.
const DefaultBufferSize = 16

// GameInfo summarizes a live game for listings.
type GameInfo struct {
	ID        string       `json:"id"`
	Player    string       `json:"player"`
	Score     int          `json:"score"`
	Length    int          `json:"length"`
	Status    snake.Status `json:"status"`
	UpdatedAt time.Time    `json:"updated_at"`
}

type subscriber struct {
	ch      chan snake.Snapshot
	dropped int
}

type liveGame struct {
	id      string
	player  string
	snap    snake.Snapshot
	updated time.Time
	subs    map[*subscriber]struct{}
}

func (g *liveGame) info() GameInfo {
	return GameInfo{
		ID:        g.id,
		Player:    g.player,
		Score:     g.snap.Score,
		Length:    g.snap.Length,
		Status:    g.snap.Status,
		UpdatedAt: g.updated,
	}
}

// Hub tracks live games and fans their snapshots out to subscribers.
// It is safe for concurrent use; Publish never blocks on a slow subscriber.
type Hub struct {
	mu      sync.RWMutex
	games   map[string]*liveGame
	bufSize int
	logger  *log.Logger
	now     func() time.Time
}

// HubOption customizes a Hub.
type HubOption func(*Hub)

// WithBufferSize sets the per-subscriber queue length.
func WithBufferSize(n int) HubOption {
	return func(h *Hub) {
		if n > 0 {
			h.bufSize = n
		}
	}
}

// WithHubLogger sets the hub logger.
func WithHubLogger(logger *log.Logger) HubOption {
	return func(h *Hub) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// NewHub creates an empty hub.
func NewHub(opts ...HubOption) *Hub {
	h := &Hub{
		games:   make(map[string]*liveGame),
		bufSize: DefaultBufferSize,
		logger:  log.New(io.Discard),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Publish records the latest snapshot of a game, registering the game on
// first sight, and forwards it to every subscriber.
func (h *Hub) Publish(gameID, player string, snap snake.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	g, ok := h.games[gameID]
	if !ok {
		g = &liveGame{
			id:     gameID,
			player: player,
			subs:   make(map[*subscriber]struct{}),
		}
		h.games[gameID] = g
		h.logger.Debug("game registered", "game", gameID, "player", player)
	}
	g.snap = snap
	g.updated = h.now()

	for sub := range g.subs {
		deliver(sub, snap)
	}
}

// deliver queues snap for sub. When the queue is full the oldest queued
// snapshot is discarded so the subscriber always ends on the latest state.
func deliver(sub *subscriber, snap snake.Snapshot) {
	select {
	case sub.ch <- snap:
		return
	default:
	}
	select {
	case <-sub.ch:
		sub.dropped++
	default:
	}
	select {
	case sub.ch <- snap:
	default:
		sub.dropped++
	}
}

// Finish removes a game and closes its subscriber streams. Unknown IDs are ignored.
func (h *Hub) Finish(gameID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.finishLocked(gameID)
}

func (h *Hub) finishLocked(gameID string) {
	g, ok := h.games[gameID]
	if !ok {
		return
	}
	delete(h.games, gameID)
	for sub := range g.subs {
		close(sub.ch)
		if sub.dropped > 0 {
			h.logger.Debug("subscriber dropped frames", "game", gameID, "dropped", sub.dropped)
		}
	}
	h.logger.Debug("game finished", "game", gameID, "score", g.snap.Score, "subscribers", len(g.subs))
}

// Games lists live games, highest score first.
func (h *Hub) Games() []GameInfo {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]GameInfo, 0, len(h.games))
	for _, g := range h.games {
		out = append(out, g.info())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Snapshot returns the latest snapshot of a live game.
func (h *Hub) Snapshot(gameID string) (snake.Snapshot, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	g, ok := h.games[gameID]
	if !ok {
		return snake.Snapshot{}, ErrUnknownGame
	}
	return g.snap, nil
}

// Subscribe opens a snapshot stream for a live game. The stream starts with
// the current snapshot and is closed when the game finishes or cancel is
// called. cancel is safe to call more than once.
func (h *Hub) Subscribe(gameID string) (<-chan snake.Snapshot, func(), error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	g, ok := h.games[gameID]
	if !ok {
		return nil, nil, ErrUnknownGame
	}

	sub := &subscriber{ch: make(chan snake.Snapshot, h.bufSize)}
	sub.ch <- g.snap
	g.subs[sub] = struct{}{}

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, live := g.subs[sub]; !live {
			return
		}
		delete(g.subs, sub)
		if h.games[gameID] == g {
			close(sub.ch)
		}
	}
	return sub.ch, cancel, nil
}

// Prune finishes running games that have not published for longer than
// maxIdle. Paused games and games waiting on the game-over dialog publish
// nothing while they wait and are kept. Returns the number removed.
func (h *Hub) Prune(maxIdle time.Duration) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	cutoff := h.now().Add(-maxIdle)
	removed := 0
	for id, g := range h.games {
		if g.snap.Status == snake.StatusRunning && g.updated.Before(cutoff) {
			h.finishLocked(id)
			removed++
		}
	}
	return removed
}

// Subscribers returns the number of open streams for a game.
func (h *Hub) Subscribers(gameID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if g, ok := h.games[gameID]; ok {
		return len(g.subs)
	}
	return 0
}
