// Package storage provides SQLite-based persistence for run history and
// achievement progress. Uses the pure-Go modernc.org/sqlite driver to avoid
// CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Run is a single finished game.
type Run struct {
	ID         int64
	Player     string
	Score      int
	Duration   time.Duration
	DeathCause string
	PowerUps   int
	Seed       int64
	CreatedAt  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// SSH sessions write concurrently; one connection serializes them
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL,
			score INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			death_cause TEXT NOT NULL DEFAULT '',
			powerups INTEGER NOT NULL DEFAULT 0,
			seed INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_player ON runs(player);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(player, score DESC);

		CREATE TABLE IF NOT EXISTS blobs (
			name TEXT PRIMARY KEY,
			data BLOB NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
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

// SaveRun records a finished run and returns the ID of the inserted record.
func (s *Store) SaveRun(r Run) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs (player, score, duration_ms, death_cause, powerups, seed)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.Player, r.Score, r.Duration.Milliseconds(), r.DeathCause, r.PowerUps, r.Seed,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopRuns retrieves the top N runs, best score first. An empty player
// matches every player.
func (s *Store) TopRuns(player string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, player, score, duration_ms, death_cause, powerups, seed, created_at
		 FROM runs
		 WHERE ? = '' OR player = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		player, player, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// RecentRuns retrieves the latest N runs for a player, newest first.
func (s *Store) RecentRuns(player string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, player, score, duration_ms, death_cause, powerups, seed, created_at
		 FROM runs
		 WHERE ? = '' OR player = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		player, player, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	var runs []Run
	for rows.Next() {
		var r Run
		var durationMs int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Player, &r.Score, &durationMs, &r.DeathCause, &r.PowerUps, &r.Seed, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(durationMs) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// parseTime handles both time.Time and string datetimes.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// HighScore returns the highest score for the player, or 0 without runs.
func (s *Store) HighScore(player string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM runs WHERE ? = '' OR player = ?",
		player, player,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearRuns deletes all runs for the player.
func (s *Store) ClearRuns(player string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE player = ?", player)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// Stats contains aggregated statistics for a player.
type Stats struct {
	Player     string
	Runs       int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	PlayTime   time.Duration
	LastPlayed time.Time
}

// PlayerStats retrieves aggregated statistics for one player.
func (s *Store) PlayerStats(player string) (*Stats, error) {
	stats := &Stats{Player: player}

	var playMs int64
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(score), 0), COALESCE(SUM(duration_ms), 0)
		 FROM runs WHERE player = ?`,
		player,
	).Scan(&stats.Runs, &stats.HighScore, &stats.AvgScore, &stats.TotalScore, &playMs)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get player stats: %w", err)
	}
	stats.PlayTime = time.Duration(playMs) * time.Millisecond

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs WHERE player = ? ORDER BY id DESC LIMIT 1`,
		player,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// LoadBlob returns the bytes stored under key, or nil if there are none.
func (s *Store) LoadBlob(key string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRow("SELECT data FROM blobs WHERE name = ?", key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load blob %q: %w", key, err)
	}
	return data, nil
}

// SaveBlob stores data under key, replacing any previous value.
func (s *Store) SaveBlob(key string, data []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO blobs (name, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		key, data,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save blob %q: %w", key, err)
	}
	return nil
}

// DeleteBlob removes the value stored under key.
func (s *Store) DeleteBlob(key string) error {
	if _, err := s.db.Exec("DELETE FROM blobs WHERE name = ?", key); err != nil {
		return fmt.Errorf("storage: cannot delete blob %q: %w", key, err)
	}
	return nil
}
