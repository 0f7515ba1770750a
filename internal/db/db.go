// Package db stores category documents in a SQLite database.
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3" // registers the sqlite3 driver with database/sql
)

// SchemaVersion is the value stored under the schema_version meta key.
const SchemaVersion = 1

// DB wraps a *sql.DB with the path it was opened from.
type DB struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the SQLite database at path and initialises the schema.
func Open(path string) (*DB, error) {
	sqldb, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("db.Open: %w", err)
	}
	d := &DB{db: sqldb, path: path}
	if err := d.createSchema(); err != nil {
		_ = sqldb.Close()
		return nil, fmt.Errorf("db.Open createSchema: %w", err)
	}
	return d, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// Path returns the database file path.
func (d *DB) Path() string { return d.path }

// ---------------------------------------------------------------------------
// Schema
// ---------------------------------------------------------------------------

func (d *DB) createSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			key        TEXT PRIMARY KEY,
			body       BLOB NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}

	for _, s := range stmts {
		if _, err := d.db.Exec(s); err != nil {
			return fmt.Errorf("createSchema exec: %w\nSQL: %s", err, s)
		}
	}

	if _, ok, err := d.GetMeta("schema_version"); err != nil {
		return err
	} else if !ok {
		return d.SetMeta("schema_version", strconv.Itoa(SchemaVersion))
	}
	return nil
}

// ---------------------------------------------------------------------------
// Documents
// ---------------------------------------------------------------------------

// ReadDocument returns the body stored under key.
// A missing key yields an error wrapping fs.ErrNotExist.
func (d *DB) ReadDocument(key string) ([]byte, error) {
	var body []byte
	err := d.db.QueryRow(`SELECT body FROM documents WHERE key = ?`, key).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("ReadDocument %s: %w", key, fs.ErrNotExist)
	}
	if err != nil {
		return nil, fmt.Errorf("ReadDocument %s: %w", key, err)
	}
	return body, nil
}

// WriteDocument replaces the body stored under key.
func (d *DB) WriteDocument(key string, data []byte) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := d.db.Exec(
		`INSERT INTO documents (key, body, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		key, data, now,
	)
	if err != nil {
		return fmt.Errorf("WriteDocument %s: %w", key, err)
	}
	return nil
}

// ListKeys returns every stored document key in key order.
func (d *DB) ListKeys() ([]string, error) {
	rows, err := d.db.Query(`SELECT key FROM documents ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("ListKeys: %w", err)
	}
	defer rows.Close()

	keys := make([]string, 0)
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("ListKeys scan: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// ---------------------------------------------------------------------------
// Meta
// ---------------------------------------------------------------------------

// GetMeta returns the value stored for key. ok is false when the key is absent.
func (d *DB) GetMeta(key string) (string, bool, error) {
	var val string
	err := d.db.QueryRow(`SELECT value FROM meta WHERE key = ?`, key).Scan(&val)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// SetMeta upserts a meta key.
func (d *DB) SetMeta(key, value string) error {
	_, err := d.db.Exec(
		`INSERT INTO meta (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}
