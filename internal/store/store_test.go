package store

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"viaggio/internal/core"
	"viaggio/internal/slot"
)

// failingSlot reads fine but refuses writes, to exercise rollback.
type failingSlot struct {
	inner *slot.MemorySlot
	fail  bool
}

func (f *failingSlot) Read(ctx context.Context) ([]byte, error) {
	return f.inner.Read(ctx)
}

func (f *failingSlot) Write(ctx context.Context, payload []byte) error {
	if f.fail {
		return errors.New("disk full")
	}
	return f.inner.Write(ctx, payload)
}

func newExpense(id, date string, amount float64, category string, ts int64) core.Expense {
	return core.Expense{
		ID:          id,
		Amount:      amount,
		Currency:    "TWD",
		Category:    category,
		Date:        date,
		Description: "test " + id,
		Timestamp:   ts,
	}
}

func TestLoadSeedsWhenSlotAbsent(t *testing.T) {
	s := New(slot.NewMemorySlot())
	count, seeded := s.Load(context.Background())
	if !seeded {
		t.Fatal("expected seed substitution for an absent slot")
	}
	if count != len(SeedExpenses()) || s.Count() != count {
		t.Fatalf("count = %d, want %d", count, len(SeedExpenses()))
	}
}

func TestLoadSeedsWhenPayloadCorrupt(t *testing.T) {
	m := slot.NewMemorySlot()
	if err := m.Write(context.Background(), []byte(`{"not":"a list"}`)); err != nil {
		t.Fatal(err)
	}

	s := New(m)
	if _, seeded := s.Load(context.Background()); !seeded {
		t.Fatal("expected seed substitution for a corrupt payload")
	}

	// The slot itself is left untouched until the next mutation.
	raw, err := m.Read(context.Background())
	if err != nil || string(raw) != `{"not":"a list"}` {
		t.Fatalf("slot was rewritten during load: %q err=%v", raw, err)
	}
}

func TestLoadKeepsStoredEmptyList(t *testing.T) {
	m := slot.NewMemorySlot()
	if err := m.Write(context.Background(), []byte(`[]`)); err != nil {
		t.Fatal(err)
	}

	s := New(m)
	count, seeded := s.Load(context.Background())
	if seeded || count != 0 {
		t.Fatalf("stored empty list must stay empty: count=%d seeded=%v", count, seeded)
	}
}

func TestAddWritesThroughAndRoundTrips(t *testing.T) {
	m := slot.NewMemorySlot()
	s := New(m)
	s.Load(context.Background())

	e := newExpense("a1", "2023-10-03", 75, "food", 1696300000000)
	if err := s.Add(context.Background(), e); err != nil {
		t.Fatalf("add: %v", err)
	}

	// Reloading from the same slot yields an equal list, order preserved.
	reloaded := New(m)
	if _, seeded := reloaded.Load(context.Background()); seeded {
		t.Fatal("reload should find the written payload")
	}
	if !reflect.DeepEqual(s.Snapshot(), reloaded.Snapshot()) {
		t.Fatalf("round trip mismatch:\n%+v\n%+v", s.Snapshot(), reloaded.Snapshot())
	}
}

func TestAddRejectsInvalidExpense(t *testing.T) {
	s := New(slot.NewMemorySlot())
	err := s.Add(context.Background(), core.Expense{ID: "x", Date: "2023-10-01"})
	if !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if s.Count() != 0 {
		t.Fatal("invalid expense must not enter the store")
	}
}

func TestAddRollsBackOnWriteFailure(t *testing.T) {
	f := &failingSlot{inner: slot.NewMemorySlot(), fail: true}
	s := New(f)

	err := s.Add(context.Background(), newExpense("a1", "2023-10-03", 75, "food", 1))
	if err == nil {
		t.Fatal("expected persist error to propagate")
	}
	if s.Count() != 0 {
		t.Fatal("failed add must be rolled back")
	}
}

func TestDeleteMissingIDIsNoOp(t *testing.T) {
	f := &failingSlot{inner: slot.NewMemorySlot()}
	s := New(f)
	s.Add(context.Background(), newExpense("a1", "2023-10-03", 75, "food", 1))

	before := s.Snapshot()
	f.fail = true // a no-op delete must not attempt a write either
	if err := s.Delete(context.Background(), "nope"); err != nil {
		t.Fatalf("missing id must be a no-op, got %v", err)
	}
	if !reflect.DeepEqual(before, s.Snapshot()) {
		t.Fatal("no-op delete changed the list")
	}
}

func TestAddThenDeleteRestoresPriorState(t *testing.T) {
	s := New(slot.NewMemorySlot())
	s.Load(context.Background())
	before := s.Snapshot()

	e := newExpense("tmp", "2023-10-05", 99, "tickets", 1696400000000)
	if err := s.Add(context.Background(), e); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.Delete(context.Background(), e.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if !reflect.DeepEqual(before, s.Snapshot()) {
		t.Fatalf("add+delete must restore prior content:\n%+v\n%+v", before, s.Snapshot())
	}
}

func TestDeleteRollsBackOnWriteFailure(t *testing.T) {
	f := &failingSlot{inner: slot.NewMemorySlot()}
	s := New(f)
	s.Add(context.Background(), newExpense("a1", "2023-10-03", 10, "food", 1))
	s.Add(context.Background(), newExpense("a2", "2023-10-03", 20, "food", 2))
	before := s.Snapshot()

	f.fail = true
	if err := s.Delete(context.Background(), "a1"); err == nil {
		t.Fatal("expected persist error to propagate")
	}
	if !reflect.DeepEqual(before, s.Snapshot()) {
		t.Fatalf("failed delete must be rolled back in place:\n%+v\n%+v", before, s.Snapshot())
	}
}

func TestListIsTimestampDescending(t *testing.T) {
	s := New(slot.NewMemorySlot())
	s.Add(context.Background(), newExpense("old", "2023-10-01", 10, "food", 100))
	s.Add(context.Background(), newExpense("new", "2023-09-01", 20, "food", 300))
	s.Add(context.Background(), newExpense("mid", "2023-10-02", 30, "food", 200))

	got := s.List()
	if got[0].ID != "new" || got[1].ID != "mid" || got[2].ID != "old" {
		t.Fatalf("display order must be timestamp descending: %+v", got)
	}

	// Snapshot keeps insertion order regardless.
	snap := s.Snapshot()
	if snap[0].ID != "old" || snap[2].ID != "mid" {
		t.Fatalf("snapshot must keep insertion order: %+v", snap)
	}
}

func TestNewExpenseGeneratesIdentity(t *testing.T) {
	a := NewExpense(10, "TWD", "food", "2023-10-01", "a")
	b := NewExpense(10, "TWD", "food", "2023-10-01", "b")
	if a.ID == "" || a.ID == b.ID {
		t.Fatalf("ids must be unique and non-empty: %q %q", a.ID, b.ID)
	}
	if a.Timestamp == 0 {
		t.Fatal("timestamp must be set")
	}
	if err := a.Validate(); err != nil {
		t.Fatalf("generated expense must validate: %v", err)
	}
}
