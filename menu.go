//go:build !ios && !android && (amd64 || arm64)

package nshgo

import (
	"sync"

	"github.com/obinnaokechukwu/nshgo/internal/emitter"
)

// Menu wraps a native menu.
//
// Items appended with AppendItem are owned by the menu: disposing the menu
// disposes them. RemoveItem detaches an item and returns ownership to the
// caller.
type Menu struct {
	mu       sync.Mutex
	handle   uintptr
	disposed bool
	events   *emitter.Emitter[eventKind, any]

	// Native listener ids recorded by the emitter start hook. The hooks run
	// under the emitter's lock, which also guards this map.
	nativeIDs map[eventKind]int64

	items []*MenuItem
}

// NewMenu creates a native menu and returns its wrapper.
func NewMenu() (*Menu, error) {
	if nshMenuCreate == nil {
		return nil, ErrNotLoaded
	}
	h := nshMenuCreate()
	if h == 0 {
		return nil, ErrCreateFailed
	}
	m := newMenu(h)
	menuRegistry.Store(h, m)
	return m, nil
}

// AdoptMenu wraps a menu handle created by a different owner.
// Returns ErrHandleInUse if another wrapper already manages the handle.
func AdoptMenu(h Handle) (*Menu, error) {
	if h == 0 {
		return nil, ErrInvalidHandle
	}
	m := newMenu(h)
	if !menuRegistry.StoreIfAbsent(h, m) {
		return nil, ErrHandleInUse
	}
	return m, nil
}

func newMenu(h uintptr) *Menu {
	m := &Menu{
		handle:    h,
		nativeIDs: make(map[eventKind]int64),
	}
	m.events = emitter.NewWithHooks[eventKind, any](m.startEventListening, m.stopEventListening)
	return m
}

// Handle returns the native menu handle.
func (m *Menu) Handle() Handle {
	return m.handle
}

func (m *Menu) startEventListening() {
	if nshMenuAddListener == nil {
		return
	}
	for kind, cb := range menuCallbacks() {
		if _, ok := m.nativeIDs[kind]; ok {
			continue
		}
		id := nshMenuAddListener(m.handle, int32(kind), cb, m.handle)
		if id >= 0 {
			m.nativeIDs[kind] = id
		}
	}
}

func (m *Menu) stopEventListening() {
	for kind, id := range m.nativeIDs {
		if nshMenuRemoveListener != nil {
			nshMenuRemoveListener(m.handle, id)
		}
		delete(m.nativeIDs, kind)
	}
}

func (m *Menu) addListener(kind eventKind, fn func(any)) ListenerID {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.disposed {
		return 0
	}
	return m.events.AddListener(kind, fn)
}

// OnOpened registers fn for menu open events.
// Returns 0 if fn is nil or the menu is disposed.
func (m *Menu) OnOpened(fn func(MenuEvent)) ListenerID {
	if fn == nil {
		return 0
	}
	return m.addListener(menuEventOpened, func(ev any) {
		if e, ok := ev.(MenuEvent); ok {
			fn(e)
		}
	})
}

// OnClosed registers fn for menu close events.
func (m *Menu) OnClosed(fn func(MenuEvent)) ListenerID {
	if fn == nil {
		return 0
	}
	return m.addListener(menuEventClosed, func(ev any) {
		if e, ok := ev.(MenuEvent); ok {
			fn(e)
		}
	})
}

// RemoveListener removes a listener by id. Returns false if the id is not
// registered; that is a signal, not an error.
func (m *Menu) RemoveListener(id ListenerID) bool {
	return m.events.RemoveListener(id)
}

// RemoveAllListeners removes every registered listener.
func (m *Menu) RemoveAllListeners() {
	m.events.RemoveAllListeners()
}

// AppendItem appends item to the menu and takes ownership of it.
func (m *Menu) AppendItem(item *MenuItem) error {
	if item == nil {
		return ErrInvalidHandle
	}
	if item.isDisposed() {
		return ErrDisposed
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.disposed {
		return ErrDisposed
	}
	if nshMenuAppendItem == nil {
		return ErrNotLoaded
	}
	if ret := nshMenuAppendItem(m.handle, item.handle); ret < 0 {
		return NewError(ret, "nsh_menu_append_item")
	}
	m.items = append(m.items, item)
	return nil
}

// RemoveItem detaches item from the menu. The item is not disposed;
// ownership returns to the caller.
func (m *Menu) RemoveItem(item *MenuItem) error {
	if item == nil {
		return ErrInvalidHandle
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.disposed {
		return ErrDisposed
	}
	if nshMenuRemoveItem == nil {
		return ErrNotLoaded
	}
	if ret := nshMenuRemoveItem(m.handle, item.handle); ret < 0 {
		return NewError(ret, "nsh_menu_remove_item")
	}
	for i, it := range m.items {
		if it == item {
			m.items = append(m.items[:i], m.items[i+1:]...)
			break
		}
	}
	return nil
}

// Items returns the items currently owned by the menu.
func (m *Menu) Items() []*MenuItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*MenuItem, len(m.items))
	copy(out, m.items)
	return out
}

// Dispose releases the menu and every item it owns.
// Safe to call more than once.
func (m *Menu) Dispose() {
	m.mu.Lock()
	if m.disposed {
		m.mu.Unlock()
		return
	}
	m.disposed = true
	items := m.items
	m.items = nil
	m.mu.Unlock()

	menuRegistry.Delete(m.handle)
	m.events.RemoveAllListeners()
	for _, item := range items {
		item.Dispose()
	}
	if nshMenuDestroy != nil {
		nshMenuDestroy(m.handle)
	}
}

func (m *Menu) isDisposed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.disposed
}
