package keystore

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore keeps one 0600 file per key under a private directory. Writes
// go through a temp file and rename so a crash never leaves a torn blob.
type FileStore struct {
	dir string
}

// NewFileStore creates the backing directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create keystore directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// path hex-encodes the key so arbitrary key strings cannot escape the
// keystore directory.
func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, hex.EncodeToString([]byte(key)))
}

// Get returns the blob for key, or ErrNotFound.
func (s *FileStore) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return data, nil
}

// Set stores the blob for key.
func (s *FileStore) Set(key string, value []byte) error {
	target := s.path(key)
	tmp := target + ".tmp"

	if err := os.WriteFile(tmp, value, 0o600); err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("failed to commit key %q: %w", key, err)
	}
	return nil
}

// Delete removes the blob for key. Deleting an absent key is not an error.
func (s *FileStore) Delete(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}
