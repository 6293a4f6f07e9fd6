package spectate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-snake/internal/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

const (
	writeWait       = 5 * time.Second
	pongWait        = 60 * time.Second
	pingPeriod      = pongWait * 9 / 10
	defaultScoreLim = 10
	maxScoreLim     = 100

	pruneEvery = time.Minute
	maxIdle    = 10 * time.Minute
)

// ScoreSource supplies the leaderboard and finished games.
type ScoreSource interface {
	TopScores(limit int) ([]storage.GameRecord, error)
	GameByID(id string) (*storage.GameRecord, error)
}

// ScoreEntry is one recorded game as served by the API.
type ScoreEntry struct {
	Rank       int       `json:"rank,omitempty"`
	ID         string    `json:"id"`
	Player     string    `json:"player"`
	Score      int       `json:"score"`
	FoodEaten  int       `json:"food_eaten"`
	Length     int       `json:"length"`
	SpeedLevel int       `json:"speed_level"`
	EndReason  string    `json:"end_reason"`
	DurationMs int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// FinishedGame is returned for a game that is no longer live but was saved.
type FinishedGame struct {
	ID     string       `json:"id"`
	Status snake.Status `json:"status"`
	Result ScoreEntry   `json:"result"`
}

func newScoreEntry(rec storage.GameRecord) ScoreEntry {
	return ScoreEntry{
		ID:         rec.ID,
		Player:     rec.Player,
		Score:      rec.Score,
		FoodEaten:  rec.FoodEaten,
		Length:     rec.Length,
		SpeedLevel: rec.SpeedLevel,
		EndReason:  rec.EndReason,
		DurationMs: rec.Duration.Milliseconds(),
		CreatedAt:  rec.CreatedAt,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// Server exposes the hub over HTTP.
type Server struct {
	hub      *Hub
	scores   ScoreSource
	logger   *log.Logger
	upgrader websocket.Upgrader
	router   *mux.Router
}

// NewServer builds the spectator router. scores may be nil, in which case
// the leaderboard endpoint reports 503.
func NewServer(hub *Hub, scores ScoreSource, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		hub:    hub,
		scores: scores,
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/games", s.handleGames).Methods(http.MethodGet)
	r.HandleFunc("/api/games/{id}", s.handleGame).Methods(http.MethodGet)
	r.HandleFunc("/api/scores", s.handleScores).Methods(http.MethodGet)
	r.HandleFunc("/ws/games/{id}", s.handleStream).Methods(http.MethodGet)
	s.router = r

	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting spectator server", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	prune := time.NewTicker(pruneEvery)
	defer prune.Stop()

	for done := false; !done; {
		select {
		case err, ok := <-errCh:
			if ok {
				return fmt.Errorf("spectate: http server: %w", err)
			}
			return nil
		case <-prune.C:
			if n := s.hub.Prune(maxIdle); n > 0 {
				s.logger.Info("pruned idle games", "count", n)
			}
		case <-ctx.Done():
			done = true
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("spectate: shutdown: %w", err)
	}
	return nil
}

func (s *Server) handleGames(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.hub.Games())
}

func (s *Server) handleGame(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if snap, err := s.hub.Snapshot(id); err == nil {
		s.writeJSON(w, http.StatusOK, snap)
		return
	}

	// Not live any more: look for the saved result.
	if s.scores == nil {
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "game not found"})
		return
	}
	rec, err := s.scores.GameByID(id)
	if err != nil {
		s.logger.Error("loading game", "game", id, "error", err)
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "cannot load game"})
		return
	}
	if rec == nil {
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "game not found"})
		return
	}
	s.writeJSON(w, http.StatusOK, FinishedGame{ID: rec.ID, Status: snake.StatusEnded, Result: newScoreEntry(*rec)})
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	if s.scores == nil {
		s.writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "scores unavailable"})
		return
	}

	limit := defaultScoreLim
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "limit must be a positive integer"})
			return
		}
		limit = min(n, maxScoreLim)
	}

	records, err := s.scores.TopScores(limit)
	if err != nil {
		s.logger.Error("loading scores", "error", err)
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "cannot load scores"})
		return
	}

	entries := make([]ScoreEntry, len(records))
	for i, rec := range records {
		entries[i] = newScoreEntry(rec)
		entries[i].Rank = i + 1
	}
	s.writeJSON(w, http.StatusOK, entries)
}

// handleStream upgrades to a WebSocket and writes one JSON snapshot per
// message until the game finishes or the client goes away.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	stream, cancel, err := s.hub.Subscribe(id)
	if err != nil {
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "game not found"})
		return
	}
	defer cancel()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "game", id, "error", err)
		return
	}
	defer conn.Close()

	logger := s.logger.With("game", id, "remote", r.RemoteAddr)
	logger.Info("spectator joined")
	defer logger.Info("spectator left")

	// The reader only services control frames; any error means the client left.
	gone := make(chan struct{})
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logger.Debug("setting read deadline", "error", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case snap, ok := <-stream:
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Debug("setting write deadline", "error", err)
				return
			}
			if !ok {
				msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game finished")
				if err := conn.WriteMessage(websocket.CloseMessage, msg); err != nil {
					logger.Debug("writing close frame", "error", err)
				}
				return
			}
			if err := conn.WriteJSON(snap); err != nil {
				logger.Debug("write failed", "error", err)
				return
			}
		case <-ping.C:
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Debug("setting write deadline", "error", err)
				return
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Debug("ping failed", "error", err)
				return
			}
		case <-gone:
			return
		}
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Debug("writing response", "status", status, "error", err)
	}
}
