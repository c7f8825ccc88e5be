package slot

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func TestFileSlotRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileSlot(dir, Key)
	if err != nil {
		t.Fatalf("new file slot: %v", err)
	}

	if _, err := s.Read(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound before first write, got %v", err)
	}

	payload := []byte(`[{"id":"1","amount":100}]`)
	if err := s.Write(context.Background(), payload); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := s.Read(context.Background())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != string(payload) {
		t.Fatalf("round trip mismatch: %q", got)
	}

	// Overwrite replaces the payload in full.
	if err := s.Write(context.Background(), []byte(`[]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, _ = s.Read(context.Background())
	if string(got) != `[]` {
		t.Fatalf("overwrite mismatch: %q", got)
	}
}

func TestMemorySlotRoundTrip(t *testing.T) {
	s := NewMemorySlot()

	if _, err := s.Read(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	payload := []byte("data")
	if err := s.Write(context.Background(), payload); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := s.Read(context.Background())
	if err != nil || string(got) != "data" {
		t.Fatalf("read: %q err=%v", got, err)
	}

	// Read must return a copy, not the backing slice.
	got[0] = 'X'
	again, _ := s.Read(context.Background())
	if string(again) != "data" {
		t.Fatalf("read payload was aliased: %q", again)
	}
}

func TestSQLiteSlotRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "viaggio.db")
	s, err := NewSQLiteSlot(dbPath, Key)
	if err != nil {
		t.Fatalf("new sqlite slot: %v", err)
	}
	defer s.Close()

	if _, err := s.Read(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := s.Write(context.Background(), []byte(`[1,2]`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := s.Write(context.Background(), []byte(`[3]`)); err != nil {
		t.Fatalf("second write: %v", err)
	}

	got, err := s.Read(context.Background())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != `[3]` {
		t.Fatalf("expected last write to win, got %q", got)
	}
}

func TestBackendIsValid(t *testing.T) {
	for _, b := range []Backend{FileBackend, SQLiteBackend, MemoryBackend} {
		if !b.IsValid() {
			t.Fatalf("%s should be valid", b)
		}
	}
	if Backend("redis").IsValid() {
		t.Fatal("unknown backend should be invalid")
	}
}

func TestOpenFileBackend(t *testing.T) {
	res, err := Open(Config{Type: FileBackend, DataDir: t.TempDir()}, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if res.Slot == nil {
		t.Fatal("expected a slot")
	}
	if _, ok := res.Slot.(*FileSlot); !ok {
		t.Fatalf("expected *FileSlot, got %T", res.Slot)
	}
}

func TestOpenInvalidBackend(t *testing.T) {
	if _, err := Open(Config{Type: "redis"}, nil); err == nil {
		t.Fatal("expected error for invalid backend")
	}
}
