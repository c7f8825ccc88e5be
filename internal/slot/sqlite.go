package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteSlot stores the payload in a key-value table so users who already
// keep the tracker's data in SQLite get durable writes and easy backup.
type SQLiteSlot struct {
	db  *sql.DB
	key string
}

func NewSQLiteSlot(dbPath, key string) (*SQLiteSlot, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteSlot{db: db, key: key}, nil
}

func (s *SQLiteSlot) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteSlot) Read(ctx context.Context) ([]byte, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM slots WHERE name = ?`, s.key,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read slot %q: %w", s.key, err)
	}
	return payload, nil
}

func (s *SQLiteSlot) Write(ctx context.Context, payload []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO slots (name, payload, updated_at)
		 VALUES (?, ?, datetime('now'))
		 ON CONFLICT(name) DO UPDATE SET
		     payload = excluded.payload,
		     updated_at = excluded.updated_at`,
		s.key, payload,
	)
	if err != nil {
		return fmt.Errorf("write slot %q: %w", s.key, err)
	}
	return nil
}
