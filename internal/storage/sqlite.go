package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const kvSchema = `
CREATE TABLE IF NOT EXISTS kv (
    key        TEXT PRIMARY KEY,
    value      TEXT NOT NULL,
    updated_at INTEGER NOT NULL
);
`

// SQLiteStore is the on-disk Store backend. A single kv table holds every
// envelope; WAL mode keeps interleaved autosave and manual save writes from
// blocking reads.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time

	mu        sync.Mutex
	available bool
}

// NewSQLiteStore opens (creating if needed) the database at path. The
// special path ":memory:" creates an in-memory database, useful for tests.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=ON")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(kvSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{db: db, now: time.Now, available: true}, nil
}

// Put implements Store.
func (s *SQLiteStore) Put(ctx context.Context, key string, value any) error {
	if !s.Available() {
		return ErrUnavailable
	}

	raw, err := wrap(value, s.now())
	if err != nil {
		return fmt.Errorf("failed to encode value for %q: %w", key, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, string(raw), s.now().UnixMilli())
	if err != nil {
		s.markUnavailable()
		return fmt.Errorf("failed to store %q: %w", key, err)
	}
	return nil
}

// Get implements Store.
func (s *SQLiteStore) Get(ctx context.Context, key string, out any) (bool, error) {
	_, found, err := s.getRaw(ctx, key, out)
	return found, err
}

// GetEnvelope implements Store.
func (s *SQLiteStore) GetEnvelope(ctx context.Context, key string) (*Envelope, bool, error) {
	env, found, err := s.getRaw(ctx, key, nil)
	return env, found, err
}

func (s *SQLiteStore) getRaw(ctx context.Context, key string, out any) (*Envelope, bool, error) {
	if !s.Available() {
		return nil, false, ErrUnavailable
	}

	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		s.markUnavailable()
		return nil, false, fmt.Errorf("failed to read %q: %w", key, err)
	}

	env, err := unwrap([]byte(raw), out)
	if err != nil {
		return nil, false, fmt.Errorf("failed to decode %q: %w", key, err)
	}
	return env, true, nil
}

// Delete implements Store.
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if !s.Available() {
		return ErrUnavailable
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}

// Available implements Store. The probe re-pings the database after a
// failure so a transient fault does not permanently disable storage.
func (s *SQLiteStore) Available() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.available {
		return true
	}
	if err := s.db.Ping(); err != nil {
		return false
	}
	s.available = true
	return true
}

func (s *SQLiteStore) markUnavailable() {
	s.mu.Lock()
	s.available = false
	s.mu.Unlock()
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
