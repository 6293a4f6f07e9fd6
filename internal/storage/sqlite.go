// Package storage provides SQLite-based persistence for finished snake games.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultPath is where scores are kept when no --db flag is given.
const DefaultPath = "~/.snake/scores.db"

const sqliteTimeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db *sql.DB
}

// GameRecord is one finished game.
type GameRecord struct {
	ID         string
	Player     string
	Score      int
	FoodEaten  int
	Length     int
	SpeedLevel int
	EndReason  string // "wall-collision", "self-collision" or "board-full"
	Duration   time.Duration
	Rows       int
	Cols       int
	CreatedAt  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(dbPath, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS games (
			id TEXT PRIMARY KEY,
			player TEXT NOT NULL,
			score INTEGER NOT NULL,
			food_eaten INTEGER NOT NULL DEFAULT 0,
			length INTEGER NOT NULL DEFAULT 1,
			speed_level INTEGER NOT NULL DEFAULT 1,
			end_reason TEXT NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			rows INTEGER NOT NULL,
			cols INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_games_top ON games(score DESC);
		CREATE INDEX IF NOT EXISTS idx_games_player ON games(player, created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveGame records a finished game. An empty ID is filled with a new UUID.
// Returns the ID of the stored record.
func (s *Store) SaveGame(rec GameRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Player == "" {
		rec.Player = "player"
	}

	var createdAt any
	if !rec.CreatedAt.IsZero() {
		createdAt = rec.CreatedAt.UTC().Format(sqliteTimeLayout)
	}

	_, err := s.db.Exec(
		`INSERT INTO games
		 (id, player, score, food_eaten, length, speed_level, end_reason, duration_ms, rows, cols, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, COALESCE(?, CURRENT_TIMESTAMP))`,
		rec.ID,
		rec.Player,
		rec.Score,
		rec.FoodEaten,
		rec.Length,
		rec.SpeedLevel,
		rec.EndReason,
		rec.Duration.Milliseconds(),
		rec.Rows,
		rec.Cols,
		createdAt,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save game: %w", err)
	}

	return rec.ID, nil
}

const gameColumns = `id, player, score, food_eaten, length, speed_level, end_reason, duration_ms, rows, cols, created_at`

// TopScores retrieves the top N games ordered by score descending.
// Ties go to the earlier game.
func (s *Store) TopScores(limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+gameColumns+`
		 FROM games
		 ORDER BY score DESC, created_at ASC, rowid ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	return scanGames(rows)
}

// PlayerHistory retrieves the most recent games of one player.
func (s *Store) PlayerHistory(player string, limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+gameColumns+`
		 FROM games
		 WHERE player = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		player, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query player games: %w", err)
	}
	return scanGames(rows)
}

// GameByID retrieves a single game. Returns nil if no such game exists.
func (s *Store) GameByID(id string) (*GameRecord, error) {
	rows, err := s.db.Query(`SELECT `+gameColumns+` FROM games WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query game: %w", err)
	}
	games, err := scanGames(rows)
	if err != nil {
		return nil, err
	}
	if len(games) == 0 {
		return nil, nil
	}
	return &games[0], nil
}

func scanGames(rows *sql.Rows) ([]GameRecord, error) {
	defer rows.Close()

	var games []GameRecord
	for rows.Next() {
		var g GameRecord
		var durationMs int64
		var createdAt any
		if err := rows.Scan(
			&g.ID,
			&g.Player,
			&g.Score,
			&g.FoodEaten,
			&g.Length,
			&g.SpeedLevel,
			&g.EndReason,
			&durationMs,
			&g.Rows,
			&g.Cols,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		g.Duration = time.Duration(durationMs) * time.Millisecond
		g.CreatedAt = parseTime(createdAt)
		games = append(games, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return games, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTimeLayout, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// HighScore returns the highest score ever recorded.
// Returns 0 if no games exist.
func (s *Store) HighScore() (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(score) FROM games").Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearScores deletes every recorded game.
func (s *Store) ClearScores() error {
	_, err := s.db.Exec("DELETE FROM games")
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// Stats contains aggregated statistics over all games.
type Stats struct {
	GamesCount   int
	HighScore    int
	AvgScore     float64
	TotalFood    int64
	LongestSnake int
	Wins         int // games that ended with a full board
	LastPlayed   time.Time
}

// GetStats retrieves aggregated statistics. When player is non-empty the
// statistics cover only that player's games.
func (s *Store) GetStats(player string) (*Stats, error) {
	stats := &Stats{}

	where, args := "", []any{}
	if player != "" {
		where, args = "WHERE player = ?", append(args, player)
	}

	// Get count, high, avg, totals
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(food_eaten), 0), COALESCE(MAX(length), 0),
		        COALESCE(SUM(CASE WHEN end_reason = 'board-full' THEN 1 ELSE 0 END), 0)
		 FROM games `+where,
		args...,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &stats.TotalFood, &stats.LongestSnake, &stats.Wins)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	// Get last played
	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM games `+where+` ORDER BY created_at DESC LIMIT 1`,
		args...,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}
