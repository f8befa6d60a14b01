//go:build !ios && !android && (amd64 || arm64)

package nshgo

import (
	"sync"
	"unsafe"

	"github.com/obinnaokechukwu/nshgo/internal/emitter"
)

// MenuItem wraps a native menu item.
//
// A submenu attached with SetSubmenu is owned by the item: disposing the item
// disposes the submenu.
type MenuItem struct {
	mu       sync.Mutex
	handle   uintptr
	disposed bool
	events   *emitter.Emitter[eventKind, any]

	// Native listener ids recorded by the emitter start hook. The hooks run
	// under the emitter's lock, which also guards this map.
	nativeIDs map[eventKind]int64

	submenu *Menu
}

// NewMenuItem creates a native menu item with the given label.
func NewMenuItem(label string) (*MenuItem, error) {
	if nshMenuItemCreate == nil {
		return nil, ErrNotLoaded
	}
	h := nshMenuItemCreate(label)
	if h == 0 {
		return nil, ErrCreateFailed
	}
	it := newMenuItem(h)
	menuItemRegistry.Store(h, it)
	return it, nil
}

// AdoptMenuItem wraps a menu item handle created by a different owner.
// Returns ErrHandleInUse if another wrapper already manages the handle.
func AdoptMenuItem(h Handle) (*MenuItem, error) {
	if h == 0 {
		return nil, ErrInvalidHandle
	}
	it := newMenuItem(h)
	if !menuItemRegistry.StoreIfAbsent(h, it) {
		return nil, ErrHandleInUse
	}
	return it, nil
}

func newMenuItem(h uintptr) *MenuItem {
	it := &MenuItem{
		handle:    h,
		nativeIDs: make(map[eventKind]int64),
	}
	it.events = emitter.NewWithHooks[eventKind, any](it.startEventListening, it.stopEventListening)
	return it
}

// Handle returns the native menu item handle.
func (it *MenuItem) Handle() Handle {
	return it.handle
}

func (it *MenuItem) startEventListening() {
	if nshMenuItemAddListener == nil {
		return
	}
	for kind, cb := range menuItemCallbacks() {
		if _, ok := it.nativeIDs[kind]; ok {
			continue
		}
		id := nshMenuItemAddListener(it.handle, int32(kind), cb, it.handle)
		if id >= 0 {
			it.nativeIDs[kind] = id
		}
	}
}

func (it *MenuItem) stopEventListening() {
	for kind, id := range it.nativeIDs {
		if nshMenuItemRemoveListener != nil {
			nshMenuItemRemoveListener(it.handle, id)
		}
		delete(it.nativeIDs, kind)
	}
}

// OnClicked registers fn for activation events.
// Returns 0 if fn is nil or the item is disposed.
func (it *MenuItem) OnClicked(fn func(ClickEvent)) ListenerID {
	if fn == nil {
		return 0
	}
	it.mu.Lock()
	defer it.mu.Unlock()
	if it.disposed {
		return 0
	}
	return it.events.AddListener(menuItemEventClicked, func(ev any) {
		if e, ok := ev.(ClickEvent); ok {
			fn(e)
		}
	})
}

// RemoveListener removes a listener by id. Returns false if the id is not
// registered; that is a signal, not an error.
func (it *MenuItem) RemoveListener(id ListenerID) bool {
	return it.events.RemoveListener(id)
}

// RemoveAllListeners removes every registered listener.
func (it *MenuItem) RemoveAllListeners() {
	it.events.RemoveAllListeners()
}

// SetLabel sets the item's label text.
func (it *MenuItem) SetLabel(label string) error {
	it.mu.Lock()
	defer it.mu.Unlock()
	if it.disposed {
		return ErrDisposed
	}
	if nshMenuItemSetLabel == nil {
		return ErrNotLoaded
	}
	nshMenuItemSetLabel(it.handle, label)
	return nil
}

// Label returns the item's label text.
func (it *MenuItem) Label() (string, error) {
	it.mu.Lock()
	defer it.mu.Unlock()
	if it.disposed {
		return "", ErrDisposed
	}
	if nshMenuItemGetLabel == nil {
		return "", ErrNotLoaded
	}
	buf := make([]byte, 512)
	n := nshMenuItemGetLabel(it.handle, unsafe.Pointer(&buf[0]), uintptr(len(buf)))
	if n < 0 {
		return "", NewError(n, "nsh_menu_item_get_label")
	}
	if int(n) > len(buf) {
		n = int32(len(buf))
	}
	return string(buf[:n]), nil
}

// SetEnabled enables or disables the item.
func (it *MenuItem) SetEnabled(enabled bool) error {
	it.mu.Lock()
	defer it.mu.Unlock()
	if it.disposed {
		return ErrDisposed
	}
	if nshMenuItemSetEnabled == nil {
		return ErrNotLoaded
	}
	nshMenuItemSetEnabled(it.handle, enabled)
	return nil
}

// Enabled reports whether the item is enabled.
func (it *MenuItem) Enabled() (bool, error) {
	it.mu.Lock()
	defer it.mu.Unlock()
	if it.disposed {
		return false, ErrDisposed
	}
	if nshMenuItemIsEnabled == nil {
		return false, ErrNotLoaded
	}
	return nshMenuItemIsEnabled(it.handle), nil
}

// SetChecked sets the item's check mark.
func (it *MenuItem) SetChecked(checked bool) error {
	it.mu.Lock()
	defer it.mu.Unlock()
	if it.disposed {
		return ErrDisposed
	}
	if nshMenuItemSetChecked == nil {
		return ErrNotLoaded
	}
	nshMenuItemSetChecked(it.handle, checked)
	return nil
}

// Checked reports whether the item's check mark is set.
func (it *MenuItem) Checked() (bool, error) {
	it.mu.Lock()
	defer it.mu.Unlock()
	if it.disposed {
		return false, ErrDisposed
	}
	if nshMenuItemIsChecked == nil {
		return false, ErrNotLoaded
	}
	return nshMenuItemIsChecked(it.handle), nil
}

// SetSubmenu attaches menu as this item's submenu and takes ownership of it.
// Passing nil detaches the current submenu and returns its ownership to the
// caller.
func (it *MenuItem) SetSubmenu(menu *Menu) error {
	if menu != nil && menu.isDisposed() {
		return ErrDisposed
	}

	it.mu.Lock()
	defer it.mu.Unlock()
	if it.disposed {
		return ErrDisposed
	}
	if nshMenuItemSetSubmenu == nil {
		return ErrNotLoaded
	}
	var mh uintptr
	if menu != nil {
		mh = menu.handle
	}
	if ret := nshMenuItemSetSubmenu(it.handle, mh); ret < 0 {
		return NewError(ret, "nsh_menu_item_set_submenu")
	}
	it.submenu = menu
	return nil
}

// Submenu returns the attached submenu, or nil.
func (it *MenuItem) Submenu() *Menu {
	it.mu.Lock()
	defer it.mu.Unlock()
	return it.submenu
}

// Dispose releases the item and its submenu, if any.
// Safe to call more than once.
func (it *MenuItem) Dispose() {
	it.mu.Lock()
	if it.disposed {
		it.mu.Unlock()
		return
	}
	it.disposed = true
	submenu := it.submenu
	it.submenu = nil
	it.mu.Unlock()

	menuItemRegistry.Delete(it.handle)
	it.events.RemoveAllListeners()
	if submenu != nil {
		submenu.Dispose()
	}
	if nshMenuItemDestroy != nil {
		nshMenuItemDestroy(it.handle)
	}
}

func (it *MenuItem) isDisposed() bool {
	it.mu.Lock()
	defer it.mu.Unlock()
	return it.disposed
}
