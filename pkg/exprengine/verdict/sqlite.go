package verdict

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore persists verdicts to SQLite.
// It is suitable for single-process use.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewSQLiteStore opens or creates a verdict database.
// The path should be a file path (e.g., "./verdicts.db") or ":memory:" for testing.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if path == ":memory:" {
		// Each pooled connection would otherwise get its own database.
		db.SetMaxOpenConns(1)
	}

	// Enable WAL mode for better concurrent read performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS verdicts (
			id TEXT PRIMARY KEY,
			sequence INTEGER NOT NULL,
			left_expr TEXT NOT NULL,
			right_expr TEXT NOT NULL,
			equivalent INTEGER NOT NULL,
			timestamp TEXT NOT NULL,
			data BLOB NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	if _, err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_verdicts_sequence
		ON verdicts(sequence)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create index: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Save implements Store.
func (s *SQLiteStore) Save(v *Verdict) error {
	if v == nil || v.ID == "" {
		return ErrInvalidVerdict
	}
	data, err := v.Marshal()
	if err != nil {
		return fmt.Errorf("encode verdict: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	_, err = s.db.Exec(`
		INSERT INTO verdicts (id, sequence, left_expr, right_expr, equivalent, timestamp, data)
		VALUES (
			?,
			COALESCE((SELECT MAX(sequence) FROM verdicts), 0) + 1,
			?, ?, ?, ?, ?
		)
		ON CONFLICT(id) DO UPDATE SET
			sequence = (SELECT MAX(sequence) FROM verdicts) + 1,
			left_expr = excluded.left_expr,
			right_expr = excluded.right_expr,
			equivalent = excluded.equivalent,
			timestamp = excluded.timestamp,
			data = excluded.data
	`, v.ID, v.Left, v.Right, v.Equivalent, v.Timestamp.UTC().Format(time.RFC3339Nano), data)
	if err != nil {
		return fmt.Errorf("save verdict: %w", err)
	}
	return nil
}

// Load implements Store.
func (s *SQLiteStore) Load(id string) (*Verdict, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	var data []byte
	err := s.db.QueryRow(`SELECT data FROM verdicts WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load verdict: %w", err)
	}

	v, err := Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("decode verdict: %w", err)
	}
	return v, nil
}

// List implements Store.
func (s *SQLiteStore) List(limit int) ([]Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.db.Query(`
		SELECT id, left_expr, right_expr, equivalent, timestamp
		FROM verdicts
		ORDER BY sequence DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list verdicts: %w", err)
	}
	defer rows.Close()

	var infos []Info
	for rows.Next() {
		var info Info
		var timestamp string
		if err := rows.Scan(&info.ID, &info.Left, &info.Right, &info.Equivalent, &timestamp); err != nil {
			return nil, fmt.Errorf("scan verdict info: %w", err)
		}
		ts, err := time.Parse(time.RFC3339Nano, timestamp)
		if err != nil {
			return nil, fmt.Errorf("parse timestamp: %w", err)
		}
		info.Timestamp = ts
		infos = append(infos, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate verdicts: %w", err)
	}
	return infos, nil
}

// Delete implements Store.
func (s *SQLiteStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	if _, err := s.db.Exec(`DELETE FROM verdicts WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete verdict: %w", err)
	}
	return nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	return s.db.Close()
}
