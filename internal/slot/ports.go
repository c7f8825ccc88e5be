// Package slot persists the serialized expense list under a single named key.
//
// A slot holds one opaque payload and is always overwritten whole; there is no
// partial update, no transaction log and no schema version. The store layer
// decides what the payload means and how to recover when it is absent or
// unreadable.
package slot

import (
	"context"
	"errors"
)

// Key is the name of the slot holding the expense list. It matches the key
// the original client stored under, so an exported payload stays portable.
const Key = "travel_expenses"

// ErrNotFound is returned by Read when the slot has never been written.
var ErrNotFound = errors.New("slot not found")

// Slot is the outbound port for the persistence slot.
type Slot interface {
	// Read returns the current payload, or ErrNotFound.
	Read(ctx context.Context) ([]byte, error)
	// Write replaces the payload in full.
	Write(ctx context.Context, payload []byte) error
}
