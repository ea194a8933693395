package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps one blob in <dir>/<key>.json and rewrites it whole on save.
type FileStore struct {
	mu   sync.RWMutex
	path string
}

// NewFileStore creates the directory if needed.
func NewFileStore(dir, key string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &FileStore{path: filepath.Join(dir, key+".json")}, nil
}

// Path returns the file backing the store.
func (store *FileStore) Path() string {
	return store.path
}

// Load returns nil data if the file does not exist yet.
func (store *FileStore) Load() ([]byte, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	data, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", filepath.Base(store.path), err)
	}
	return data, nil
}

// Save writes to a temp file and renames it over the old one.
func (store *FileStore) Save(data []byte) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	tmp, err := os.CreateTemp(filepath.Dir(store.path), filepath.Base(store.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, store.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace %s: %w", filepath.Base(store.path), err)
	}
	return nil
}

// Close is a no-op.
func (store *FileStore) Close() error {
	return nil
}
