package export

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// StateDB tracks which sessions have already been exported so repeated runs
// only write new files.
type StateDB struct {
	db *sql.DB
}

// OpenStateDB opens (or creates) the SQLite state database at dir/state.db.
func OpenStateDB(dir string) (*StateDB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating state dir %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "state.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening state db: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS exported_sessions (
		session_id  TEXT PRIMARY KEY,
		path        TEXT NOT NULL,
		exported_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating state table: %w", err)
	}

	return &StateDB{db: db}, nil
}

// IsExported checks if a session has already been written out.
func (s *StateDB) IsExported(sessionID string) (bool, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM exported_sessions WHERE session_id = ?`,
		sessionID,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// MarkExported records that a session was written to the given path.
func (s *StateDB) MarkExported(sessionID, path string) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO exported_sessions (session_id, path) VALUES (?, ?)`,
		sessionID, path,
	)
	return err
}

// Close closes the state database.
func (s *StateDB) Close() error {
	return s.db.Close()
}
