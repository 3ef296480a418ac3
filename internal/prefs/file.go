package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/renameio/v2"
	"github.com/mmcdole/reel/internal/domain"
)

// FileStore implements domain.PreferenceStore as one JSON file per slot.
// Files are replaced atomically so a crash mid-write leaves the previous value.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore creates the directory if needed and returns a store rooted at it
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("file store requires a directory")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create preference directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(slot domain.Slot) string {
	return filepath.Join(s.dir, string(slot)+".json")
}

func (s *FileStore) Get(slot domain.Slot, dest any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(slot))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", slot, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", slot, err)
	}
	return true, nil
}

func (s *FileStore) Set(slot domain.Slot, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", slot, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// renameio handles: temp file creation, fsync, atomic rename, cleanup on error
	pendingFile, err := renameio.NewPendingFile(s.path(slot), renameio.WithPermissions(0600))
	if err != nil {
		return fmt.Errorf("failed to create pending file: %w", err)
	}
	defer pendingFile.Cleanup()

	if _, err := pendingFile.Write(data); err != nil {
		return fmt.Errorf("failed to write %s: %w", slot, err)
	}
	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("failed to replace %s: %w", slot, err)
	}
	return nil
}

func (s *FileStore) Delete(slot domain.Slot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(slot))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete %s: %w", slot, err)
	}
	return nil
}

func (s *FileStore) Close() error {
	return nil
}
