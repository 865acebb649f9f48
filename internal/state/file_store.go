package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrNotFound is returned by Load when no state exists for a key
var ErrNotFound = fmt.Errorf("state: key not found")

// FileStore is the file-backed reference implementation of Store. Writes go
// to a temporary file first and are committed with an atomic rename; the
// previous version is kept as a backup.
type FileStore struct {
	mu  sync.Mutex
	dir string
}

// NewFileStore creates a file store rooted at dir
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		dir = "state"
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (f *FileStore) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

// Load reads the value stored under key into v
func (f *FileStore) Load(key string, v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := f.path(key)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return ErrNotFound
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read state file: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse state file: %w", err)
	}
	return nil
}

// Save persists v under key
func (f *FileStore) Save(key string, v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	path := f.path(key)

	// Keep the previous version around in case the new write is bad
	if prev, err := os.ReadFile(path); err == nil {
		backup := filepath.Join(f.dir, key+"_backup.json")
		_ = os.WriteFile(backup, prev, 0644)
	}

	tempFile := path + ".tmp"
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp state file: %w", err)
	}
	if err := os.Rename(tempFile, path); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to commit state file: %w", err)
	}
	return nil
}
