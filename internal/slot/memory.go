package slot

import (
	"context"
	"sync"
)

// MemorySlot keeps the payload in process memory. It backs ephemeral runs
// and tests; contents are lost on shutdown.
type MemorySlot struct {
	mu      sync.Mutex
	payload []byte
	written bool
}

func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

func (s *MemorySlot) Read(_ context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.written {
		return nil, ErrNotFound
	}
	out := make([]byte, len(s.payload))
	copy(out, s.payload)
	return out, nil
}

func (s *MemorySlot) Write(_ context.Context, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payload = make([]byte, len(payload))
	copy(s.payload, payload)
	s.written = true
	return nil
}
