package state

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS history (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    host       TEXT NOT NULL,
    command    TEXT NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS history_host ON history (host, id);
`

// Store wraps a SQLite database holding the cross-run command history. The
// in-memory session history stays authoritative for a live session; the
// store only keeps the commands that were actually issued.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the state database location,
// $XDG_STATE_HOME/sshwomper/state.db.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		stateHome = filepath.Join(home, ".local", "state")
	}
	dir := filepath.Join(stateHome, "sshwomper")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "state.db"), nil
}

// Open creates or opens the history database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// WAL mode for safe concurrent access
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record appends one executed command for host.
func (s *Store) Record(host, command string) error {
	_, err := s.db.Exec(`INSERT INTO history (host, command) VALUES (?, ?)`, host, command)
	return err
}

// Entry is one recorded command.
type Entry struct {
	Host      string
	Command   string
	CreatedAt time.Time
}

// Recent returns the latest commands for host, newest first.
func (s *Store) Recent(host string, limit int) ([]Entry, error) {
	rows, err := s.db.Query(`
		SELECT host, command, created_at
		FROM history
		WHERE host = ?
		ORDER BY id DESC
		LIMIT ?
	`, host, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Entry
	for rows.Next() {
		var e Entry
		var createdAt string
		if err := rows.Scan(&e.Host, &e.Command, &createdAt); err != nil {
			return nil, err
		}
		e.CreatedAt, _ = time.Parse("2006-01-02 15:04:05", createdAt)
		result = append(result, e)
	}
	return result, rows.Err()
}
