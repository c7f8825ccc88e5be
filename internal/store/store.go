// Package store keeps the in-memory expense list and writes it through to
// the persistence slot after every mutation.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"viaggio/internal/core"
	"viaggio/internal/slot"
)

// Store is the single writer over the expense list. Mutations are serialized
// by the mutex and each successful mutation is followed by a full write of
// the serialized list to the slot. When the write fails, the in-memory change
// is rolled back so memory and slot never diverge.
type Store struct {
	mu    sync.Mutex
	slot  slot.Slot
	items []core.Expense
}

func New(s slot.Slot) *Store {
	return &Store{slot: s}
}

// NewExpense builds an expense with a generated id and creation timestamp.
func NewExpense(amount float64, currency, category, date, description string) core.Expense {
	return core.Expense{
		ID:          uuid.NewString(),
		Amount:      amount,
		Currency:    currency,
		Category:    category,
		Date:        date,
		Description: description,
		Timestamp:   time.Now().UnixMilli(),
	}
}

// Load reads the expense list from the slot. An absent key, an unreadable
// slot or a payload that does not decode to the expense-list shape all fall
// back to the seed dataset; Load never fails. It returns the number of
// expenses loaded and whether the seed dataset was substituted.
func (s *Store) Load(ctx context.Context) (count int, seeded bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := s.slot.Read(ctx)
	if err != nil {
		if !errors.Is(err, slot.ErrNotFound) {
			slog.WarnContext(ctx, "Slot read failed, substituting seed data",
				"error", err, "key", slot.Key)
		}
		s.items = SeedExpenses()
		return len(s.items), true
	}

	var items []core.Expense
	if err := json.Unmarshal(payload, &items); err != nil {
		slog.WarnContext(ctx, "Stored payload is corrupt, substituting seed data",
			"error", err, "key", slot.Key, "payload_bytes", len(payload))
		s.items = SeedExpenses()
		return len(s.items), true
	}

	// An explicitly stored empty list stays empty; only an absent or corrupt
	// slot gets seeded.
	s.items = items
	return len(s.items), false
}

// Add validates and appends one expense, then writes the list through.
// Id uniqueness is the caller's concern (ids come from NewExpense).
func (s *Store) Add(ctx context.Context, e core.Expense) error {
	if err := e.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = append(s.items, e)
	if err := s.persistLocked(ctx); err != nil {
		s.items = s.items[:len(s.items)-1]
		return fmt.Errorf("persist expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense added",
		"id", e.ID,
		"description", e.Description,
		"amount", e.Amount,
		"currency", e.Currency,
		"category", e.Category,
		"date", e.Date)
	return nil
}

// Delete removes the first expense whose id matches. A missing id is a
// no-op, not an error, and does not touch the slot.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, e := range s.items {
		if e.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	removed := s.items[idx]
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	if err := s.persistLocked(ctx); err != nil {
		s.items = append(s.items[:idx], append([]core.Expense{removed}, s.items[idx:]...)...)
		return fmt.Errorf("persist deletion: %w", err)
	}

	slog.InfoContext(ctx, "Expense deleted", "id", id)
	return nil
}

// List returns a copy in display order: most recently created first.
func (s *Store) List() []core.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]core.Expense, len(s.items))
	copy(out, s.items)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp > out[j].Timestamp })
	return out
}

// Snapshot returns a copy in insertion order, the shape aggregation and
// analysis run over. Later mutations do not affect a taken snapshot.
func (s *Store) Snapshot() []core.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]core.Expense, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Store) persistLocked(ctx context.Context) error {
	items := s.items
	if items == nil {
		items = []core.Expense{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("serialize expenses: %w", err)
	}
	if err := s.slot.Write(ctx, payload); err != nil {
		return fmt.Errorf("write slot: %w", err)
	}
	return nil
}
