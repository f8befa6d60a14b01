// Package emitter provides per-object listener bookkeeping for event-producing
// native resources.
//
// An Emitter tracks typed callbacks per event kind, allocates listener ids, and
// delivers events synchronously to a snapshot of the registered listeners. It
// also fires start/stop hooks on the 0<->1 total-listener-count transitions so
// the owner can lazily register and release its native callback wiring.
package emitter

import (
	"sync"
)

// ListenerID identifies one registered listener within a single Emitter.
// IDs are allocated monotonically starting at 1 and are never reused for the
// life of the emitter. 0 is never a valid id.
type ListenerID int64

type entry[E any] struct {
	id ListenerID
	fn func(E)
}

// Emitter is generic over an event-kind tag K and a payload type E.
//
// All methods are safe for concurrent use. Listener callbacks are always
// invoked with the emitter's lock released, so a callback may freely call back
// into AddListener/RemoveListener. The start/stop hooks, by contrast, run while
// the lock is held and must not call back into the emitter; they exist to
// perform native listener registration and deregistration.
type Emitter[K comparable, E any] struct {
	mu        sync.Mutex
	listeners map[K][]entry[E]
	nextID    ListenerID
	total     int
	active    bool
	onStart   func()
	onStop    func()
}

// New creates an emitter with no lifecycle hooks.
func New[K comparable, E any]() *Emitter[K, E] {
	return NewWithHooks[K, E](nil, nil)
}

// NewWithHooks creates an emitter that invokes onStart when the total listener
// count transitions from 0 to 1 and onStop when it returns to 0. Either hook
// may be nil.
func NewWithHooks[K comparable, E any](onStart, onStop func()) *Emitter[K, E] {
	return &Emitter[K, E]{
		listeners: make(map[K][]entry[E]),
		onStart:   onStart,
		onStop:    onStop,
	}
}

// AddListener registers fn for the given event kind and returns its id.
// Returns 0 without registering anything if fn is nil.
func (e *Emitter[K, E]) AddListener(kind K, fn func(E)) ListenerID {
	if fn == nil {
		return 0
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextID++
	id := e.nextID
	e.listeners[kind] = append(e.listeners[kind], entry[E]{id: id, fn: fn})
	e.total++

	if e.total == 1 && !e.active {
		e.active = true
		if e.onStart != nil {
			e.onStart()
		}
	}
	return id
}

// RemoveListener removes the listener with the given id.
// Returns false if the id is not registered; that is a signal, not an error.
// An emission already in progress still delivers to a listener removed here,
// because delivery works from a snapshot taken at emit time.
func (e *Emitter[K, E]) RemoveListener(id ListenerID) bool {
	if id == 0 {
		return false
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for kind, entries := range e.listeners {
		for i, ent := range entries {
			if ent.id != id {
				continue
			}
			e.listeners[kind] = append(entries[:i:i], entries[i+1:]...)
			if len(e.listeners[kind]) == 0 {
				delete(e.listeners, kind)
			}
			e.dropped(1)
			return true
		}
	}
	return false
}

// RemoveAllListeners removes every listener for the given kinds, or every
// listener of any kind when called with no arguments.
func (e *Emitter[K, E]) RemoveAllListeners(kinds ...K) {
	e.mu.Lock()
	defer e.mu.Unlock()

	removed := 0
	if len(kinds) == 0 {
		for kind, entries := range e.listeners {
			removed += len(entries)
			delete(e.listeners, kind)
		}
	} else {
		for _, kind := range kinds {
			removed += len(e.listeners[kind])
			delete(e.listeners, kind)
		}
	}
	e.dropped(removed)
}

// dropped updates the total count and fires the stop hook on the 1->0 edge.
// Caller must hold e.mu.
func (e *Emitter[K, E]) dropped(n int) {
	if n == 0 {
		return
	}
	e.total -= n
	if e.total == 0 && e.active {
		e.active = false
		if e.onStop != nil {
			e.onStop()
		}
	}
}

// Emit synchronously delivers ev to every listener currently registered for
// kind, in registration order. The listener set is snapshotted under the lock;
// listeners added or removed during delivery affect only future emissions.
func (e *Emitter[K, E]) Emit(kind K, ev E) {
	e.mu.Lock()
	entries := e.listeners[kind]
	snapshot := make([]func(E), len(entries))
	for i, ent := range entries {
		snapshot[i] = ent.fn
	}
	e.mu.Unlock()

	for _, fn := range snapshot {
		fn(ev)
	}
}

// ListenerCount returns the total number of registered listeners across all
// event kinds.
func (e *Emitter[K, E]) ListenerCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.total
}

// KindListenerCount returns the number of listeners registered for one kind.
func (e *Emitter[K, E]) KindListenerCount(kind K) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.listeners[kind])
}
