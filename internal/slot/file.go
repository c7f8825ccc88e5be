package slot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileSlot stores the payload as a single JSON file under a data directory.
type FileSlot struct {
	path string
}

// NewFileSlot creates the data directory if needed and returns a slot backed
// by <dir>/<key>.json.
func NewFileSlot(dir, key string) (*FileSlot, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &FileSlot{path: filepath.Join(dir, key+".json")}, nil
}

// Path returns the backing file path.
func (s *FileSlot) Path() string {
	return s.path
}

func (s *FileSlot) Read(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read slot file: %w", err)
	}
	return data, nil
}

// Write replaces the file through a temp-file rename so a crash mid-write
// never leaves a truncated payload behind.
func (s *FileSlot) Write(_ context.Context, payload []byte) error {
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0644); err != nil {
		return fmt.Errorf("write slot file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace slot file: %w", err)
	}
	return nil
}
