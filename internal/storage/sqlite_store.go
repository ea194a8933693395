package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteFileName is the database file created in the data directory.
const SQLiteFileName = "innervation.db"

// SQLiteStore keeps blobs in a key/value table.
type SQLiteStore struct {
	db  *sql.DB
	key string
}

// NewSQLiteStore opens (or creates) the database at path and binds it to key.
func NewSQLiteStore(path, key string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	schema := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create kv table: %w", err)
	}

	return &SQLiteStore{db: db, key: key}, nil
}

// Load returns nil data if the key has never been saved.
func (store *SQLiteStore) Load() ([]byte, error) {
	var value []byte
	err := store.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, store.key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", store.key, err)
	}
	return value, nil
}

// Save upserts the blob.
func (store *SQLiteStore) Save(data []byte) error {
	_, err := store.db.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		store.key, data)
	if err != nil {
		return fmt.Errorf("save %s: %w", store.key, err)
	}
	return nil
}

// Close closes the database.
func (store *SQLiteStore) Close() error {
	return store.db.Close()
}
