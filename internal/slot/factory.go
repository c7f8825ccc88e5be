package slot

import (
	"fmt"
	"log/slog"
)

// Backend selects the slot implementation.
type Backend string

const (
	FileBackend   Backend = "file"
	SQLiteBackend Backend = "sqlite"
	MemoryBackend Backend = "memory"
)

// String implements fmt.Stringer.
func (b Backend) String() string {
	return string(b)
}

// IsValid returns true if the backend type is valid.
func (b Backend) IsValid() bool {
	switch b {
	case FileBackend, SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// Config holds configuration for slot creation.
type Config struct {
	Type Backend

	// File backend
	DataDir string

	// SQLite backend
	SQLiteDBPath string
}

// CleanupFunc releases resources held by a slot backend.
type CleanupFunc func() error

// Result contains the slot instance and an optional cleanup function.
type Result struct {
	Slot    Slot
	Cleanup CleanupFunc
}

// Open creates a slot based on the provided config.
func Open(config Config, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if !config.Type.IsValid() {
		return nil, fmt.Errorf("invalid slot backend: %s", config.Type)
	}

	switch config.Type {
	case FileBackend:
		s, err := NewFileSlot(config.DataDir, Key)
		if err != nil {
			return nil, fmt.Errorf("initialize file slot: %w", err)
		}
		logger.Info("Initialized file slot", "path", s.Path())
		return &Result{Slot: s}, nil

	case SQLiteBackend:
		s, err := NewSQLiteSlot(config.SQLiteDBPath, Key)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite slot: %w", err)
		}
		logger.Info("Initialized SQLite slot", "db_path", config.SQLiteDBPath, "key", Key)
		return &Result{Slot: s, Cleanup: s.Close}, nil

	default:
		logger.Info("Initialized memory slot")
		return &Result{Slot: NewMemorySlot()}, nil
	}
}
