// Package registry provides process-wide lookup tables from native handle
// identity to the Go wrapper that manages the handle.
//
// Native callbacks arrive carrying only an opaque handle value, never a Go
// reference. A Table is the arena-style lookup that resolves that token back to
// the owning wrapper. Each resource kind gets its own Table so contention on
// one kind never blocks another.
//
// A Table holds a non-owning association: the entry is inserted when the
// wrapper is constructed and removed exactly once during dispose, before the
// native destroy call. A lookup that races with dispose simply misses.
package registry

import (
	"sync"
)

// Table maps native handles to their managing wrapper.
//
// Thread-safe. All operations are short critical sections under a single
// mutex; callers must not invoke arbitrary user code while relying on a
// Table's lock for ordering.
type Table[T any] struct {
	mu      sync.Mutex
	entries map[uintptr]T
}

// New creates an empty table.
func New[T any]() *Table[T] {
	return &Table[T]{entries: make(map[uintptr]T)}
}

// Store associates handle with v, replacing any existing entry.
func (t *Table[T]) Store(handle uintptr, v T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[handle] = v
}

// StoreIfAbsent associates handle with v only if the handle has no entry.
// Returns false if an entry already exists. Used for adoption, where the
// caller cannot rule out another wrapper already managing the handle.
func (t *Table[T]) StoreIfAbsent(handle uintptr, v T) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.entries[handle]; ok {
		return false
	}
	t.entries[handle] = v
	return true
}

// Load returns the wrapper for handle. The second return is false when the
// handle has no entry, the expected outcome when a native callback races with
// dispose.
func (t *Table[T]) Load(handle uintptr) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	v, ok := t.entries[handle]
	return v, ok
}

// Delete removes the entry for handle, reporting whether one existed.
func (t *Table[T]) Delete(handle uintptr) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.entries[handle]; !ok {
		return false
	}
	delete(t.entries, handle)
	return true
}

// Len returns the number of live entries.
func (t *Table[T]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}
