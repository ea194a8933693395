package storage

import (
	"fmt"
	"path/filepath"

	"innervation/internal/ui/preferences"
)

// BlobStore is a single-key blob store that owns resources.
type BlobStore interface {
	Load() ([]byte, error)
	Save(data []byte) error
	Close() error
}

// OpenBlobStore opens the backend selected in settings. Blobs live in
// settings.DataDir, or configDir when it is empty.
func OpenBlobStore(settings preferences.Settings, configDir, key string) (BlobStore, error) {
	dataDir := settings.DataDir
	if dataDir == "" {
		dataDir = configDir
	}

	switch settings.StorageBackend {
	case preferences.BackendSQLite:
		return NewSQLiteStore(filepath.Join(dataDir, SQLiteFileName), key)
	case preferences.BackendFile, "":
		return NewFileStore(dataDir, key)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", settings.StorageBackend)
	}
}
