// Package store provides key-value persistence for daybook.
//
// Every top-level collection is written as one JSON document under its
// own key. Two backends implement the same Backend contract: Store keeps
// the documents in a SQLite file, File keeps one file per key on an afero
// filesystem.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fentz26/daybook/internal/models"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrKeyNotFound is returned by Get when nothing is stored under the key.
var ErrKeyNotFound = errors.New("key not found")

// Backend is a synchronous key-value blob store.
type Backend interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Delete(key string) error
	Keys() ([]string, error)
	Close() error
}

// ActivityLog stores recorded operations, newest first on read.
type ActivityLog interface {
	WriteActivity(a models.Activity) error
	ListActivity(limit int) ([]models.Activity, error)
}

// Store is the SQLite-backed Backend.
type Store struct {
	db *sql.DB
}

var (
	_ Backend     = (*Store)(nil)
	_ ActivityLog = (*Store)(nil)
)

// New creates a new Store and runs migrations.
func New(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the database connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// migrate runs idempotent schema migrations.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS activity (
		id TEXT PRIMARY KEY,
		action TEXT NOT NULL,
		inputs_hash TEXT NOT NULL,
		outcome TEXT NOT NULL,
		entity_id TEXT,
		details TEXT,
		timestamp DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_activity_timestamp ON activity(timestamp);
	`

	_, err := s.db.Exec(schema)
	return err
}

// --- Key-Value Operations ---

// Get returns the document stored under key.
func (s *Store) Get(key string) ([]byte, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query key %s: %w", key, err)
	}
	return []byte(value), nil
}

// Put replaces the document stored under key.
func (s *Store) Put(key string, value []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(value), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("upsert key %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete key %s: %w", key, err)
	}
	return nil
}

// Keys lists every stored key in lexical order.
func (s *Store) Keys() ([]string, error) {
	rows, err := s.db.Query(`SELECT key FROM kv ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("query keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// --- Activity Operations ---

// WriteActivity inserts an activity record, assigning id and timestamp
// when they are empty.
func (s *Store) WriteActivity(a models.Activity) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.Timestamp.IsZero() {
		a.Timestamp = time.Now().UTC()
	}

	_, err := s.db.Exec(
		`INSERT INTO activity (id, action, inputs_hash, outcome, entity_id, details, timestamp) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Action, a.InputsHash, a.Outcome, a.EntityID, a.Details, a.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// ListActivity returns up to limit records, newest first.
func (s *Store) ListActivity(limit int) ([]models.Activity, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(
		`SELECT id, action, inputs_hash, outcome, entity_id, details, timestamp FROM activity ORDER BY timestamp DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query activity: %w", err)
	}
	defer rows.Close()

	var out []models.Activity
	for rows.Next() {
		var a models.Activity
		var entityID, details sql.NullString
		if err := rows.Scan(&a.ID, &a.Action, &a.InputsHash, &a.Outcome, &entityID, &details, &a.Timestamp); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		if entityID.Valid {
			a.EntityID = entityID.String
		}
		if details.Valid {
			a.Details = details.String
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
