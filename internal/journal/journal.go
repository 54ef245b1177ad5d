// Package journal records board events in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// The journal is an audit trail for `tetris history`. It is never read back
// into a board: a restarted board always starts empty.
package journal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Kind names a board event.
type Kind string

const (
	KindReset    Kind = "reset"
	KindLock     Kind = "lock"
	KindGameOver Kind = "game_over"
)

// Event is one journal row.
type Event struct {
	ID        int64
	Game      string // Identifies the run between two resets
	Kind      Kind
	Piece     string // Shape type, empty for resets
	X, Y      int
	Lines     int
	RequestID string
	CreatedAt time.Time
}

// GameSummary aggregates the events of one game.
type GameSummary struct {
	Game      string
	Locks     int
	Lines     int
	Over      bool
	StartedAt time.Time
	LastEvent time.Time
}

// Journal manages the SQLite connection.
type Journal struct {
	db *sql.DB
}

// Open creates or opens a journal at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Journal, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("journal: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("journal: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("journal: cannot open database: %w", err)
	}

	// Single connection serialises writers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("journal: cannot connect to database: %w", err)
	}

	j := &Journal{db: db}
	if err := j.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("journal: migration failed: %w", err)
	}

	return j, nil
}

func (j *Journal) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS board_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game TEXT NOT NULL,
			kind TEXT NOT NULL,
			piece TEXT NOT NULL DEFAULT '',
			x INTEGER NOT NULL DEFAULT 0,
			y INTEGER NOT NULL DEFAULT 0,
			lines INTEGER NOT NULL DEFAULT 0,
			request_id TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_board_events_game ON board_events(game);
		CREATE INDEX IF NOT EXISTS idx_board_events_kind ON board_events(kind);
	`

	_, err := j.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (j *Journal) Close() error {
	if j.db != nil {
		return j.db.Close()
	}
	return nil
}

// Record appends an event and returns its ID.
func (j *Journal) Record(e Event) (int64, error) {
	result, err := j.db.Exec(
		`INSERT INTO board_events (game, kind, piece, x, y, lines, request_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.Game, string(e.Kind), e.Piece, e.X, e.Y, e.Lines, e.RequestID,
	)
	if err != nil {
		return 0, fmt.Errorf("journal: cannot record event: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("journal: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// Recent returns the latest events, newest first.
func (j *Journal) Recent(limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := j.db.Query(
		`SELECT id, game, kind, piece, x, y, lines, request_id, created_at
		 FROM board_events
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("journal: cannot query events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var kind string
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Game, &kind, &e.Piece, &e.X, &e.Y, &e.Lines, &e.RequestID, &createdAt); err != nil {
			return nil, fmt.Errorf("journal: cannot scan row: %w", err)
		}
		e.Kind = Kind(kind)
		e.CreatedAt = parseTime(createdAt)
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("journal: row iteration error: %w", err)
	}
	return events, nil
}

// Games summarises the latest games, most recent first.
func (j *Journal) Games(limit int) ([]GameSummary, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := j.db.Query(
		`SELECT game,
		        SUM(CASE WHEN kind = 'lock' THEN 1 ELSE 0 END),
		        COALESCE(SUM(lines), 0),
		        MAX(CASE WHEN kind = 'game_over' THEN 1 ELSE 0 END),
		        MIN(created_at),
		        MAX(created_at),
		        MAX(id) AS last_id
		 FROM board_events
		 GROUP BY game
		 ORDER BY last_id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("journal: cannot query games: %w", err)
	}
	defer rows.Close()

	var games []GameSummary
	for rows.Next() {
		var g GameSummary
		var over int
		var started, last any
		var lastID int64
		if err := rows.Scan(&g.Game, &g.Locks, &g.Lines, &over, &started, &last, &lastID); err != nil {
			return nil, fmt.Errorf("journal: cannot scan game row: %w", err)
		}
		g.Over = over == 1
		g.StartedAt = parseTime(started)
		g.LastEvent = parseTime(last)
		games = append(games, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("journal: row iteration error: %w", err)
	}
	return games, nil
}

// Clear deletes every event.
func (j *Journal) Clear() error {
	if _, err := j.db.Exec("DELETE FROM board_events"); err != nil {
		return fmt.Errorf("journal: cannot clear events: %w", err)
	}
	return nil
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
