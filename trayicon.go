//go:build !ios && !android && (amd64 || arm64)

package nshgo

import (
	"errors"
	"sync"
	"unsafe"

	"github.com/obinnaokechukwu/nshgo/internal/emitter"
)

// TrayIcon wraps a native system tray (status bar) icon.
//
// A context menu attached with SetContextMenu is owned by the icon: disposing
// the icon disposes the menu.
type TrayIcon struct {
	mu       sync.Mutex
	handle   uintptr
	disposed bool
	events   *emitter.Emitter[eventKind, any]

	// Native listener ids recorded by the emitter start hook. The hooks run
	// under the emitter's lock, which also guards this map.
	nativeIDs map[eventKind]int64

	menu *Menu

	// Pins the last icon pixel buffer so the native side can keep reading it.
	iconPixels []byte
}

// NewTrayIcon creates a native tray icon and returns its wrapper.
func NewTrayIcon() (*TrayIcon, error) {
	if nshTrayCreate == nil {
		return nil, ErrNotLoaded
	}
	h := nshTrayCreate()
	if h == 0 {
		return nil, ErrCreateFailed
	}
	ti := newTrayIcon(h)
	trayRegistry.Store(h, ti)
	return ti, nil
}

// AdoptTrayIcon wraps a tray icon handle created by a different owner.
// Returns ErrHandleInUse if another wrapper already manages the handle.
func AdoptTrayIcon(h Handle) (*TrayIcon, error) {
	if h == 0 {
		return nil, ErrInvalidHandle
	}
	ti := newTrayIcon(h)
	if !trayRegistry.StoreIfAbsent(h, ti) {
		return nil, ErrHandleInUse
	}
	return ti, nil
}

func newTrayIcon(h uintptr) *TrayIcon {
	ti := &TrayIcon{
		handle:    h,
		nativeIDs: make(map[eventKind]int64),
	}
	ti.events = emitter.NewWithHooks[eventKind, any](ti.startEventListening, ti.stopEventListening)
	return ti
}

// Handle returns the native tray icon handle.
func (ti *TrayIcon) Handle() Handle {
	return ti.handle
}

func (ti *TrayIcon) startEventListening() {
	if nshTrayAddListener == nil {
		return
	}
	for kind, cb := range trayCallbacks() {
		if _, ok := ti.nativeIDs[kind]; ok {
			continue
		}
		id := nshTrayAddListener(ti.handle, int32(kind), cb, ti.handle)
		if id >= 0 {
			ti.nativeIDs[kind] = id
		}
	}
}

func (ti *TrayIcon) stopEventListening() {
	for kind, id := range ti.nativeIDs {
		if nshTrayRemoveListener != nil {
			nshTrayRemoveListener(ti.handle, id)
		}
		delete(ti.nativeIDs, kind)
	}
}

func (ti *TrayIcon) addListener(kind eventKind, fn func(any)) ListenerID {
	ti.mu.Lock()
	defer ti.mu.Unlock()
	if ti.disposed {
		return 0
	}
	return ti.events.AddListener(kind, fn)
}

// OnClicked registers fn for primary-button clicks.
// Returns 0 if fn is nil or the icon is disposed.
func (ti *TrayIcon) OnClicked(fn func(TrayClickEvent)) ListenerID {
	if fn == nil {
		return 0
	}
	return ti.addListener(trayEventClicked, func(ev any) {
		if e, ok := ev.(TrayClickEvent); ok {
			fn(e)
		}
	})
}

// OnRightClicked registers fn for secondary-button clicks.
func (ti *TrayIcon) OnRightClicked(fn func(TrayClickEvent)) ListenerID {
	if fn == nil {
		return 0
	}
	return ti.addListener(trayEventRightClicked, func(ev any) {
		if e, ok := ev.(TrayClickEvent); ok {
			fn(e)
		}
	})
}

// OnDoubleClicked registers fn for double clicks.
func (ti *TrayIcon) OnDoubleClicked(fn func(TrayClickEvent)) ListenerID {
	if fn == nil {
		return 0
	}
	return ti.addListener(trayEventDoubleClicked, func(ev any) {
		if e, ok := ev.(TrayClickEvent); ok {
			fn(e)
		}
	})
}

// RemoveListener removes a listener by id. Returns false if the id is not
// registered; that is a signal, not an error.
func (ti *TrayIcon) RemoveListener(id ListenerID) bool {
	return ti.events.RemoveListener(id)
}

// RemoveAllListeners removes every registered listener.
func (ti *TrayIcon) RemoveAllListeners() {
	ti.events.RemoveAllListeners()
}

// SetTooltip sets the hover tooltip text.
func (ti *TrayIcon) SetTooltip(tooltip string) error {
	ti.mu.Lock()
	defer ti.mu.Unlock()
	if ti.disposed {
		return ErrDisposed
	}
	if nshTraySetTooltip == nil {
		return ErrNotLoaded
	}
	nshTraySetTooltip(ti.handle, tooltip)
	return nil
}

// SetIcon sets the tray image from raw RGBA pixels (width*height*4 bytes).
func (ti *TrayIcon) SetIcon(rgba []byte, width, height int) error {
	if width <= 0 || height <= 0 {
		return errors.New("nshgo: invalid icon dimensions")
	}
	need := width * height * 4
	if len(rgba) < need {
		return errors.New("nshgo: icon buffer too small for dimensions")
	}

	ti.mu.Lock()
	defer ti.mu.Unlock()
	if ti.disposed {
		return ErrDisposed
	}
	if nshTraySetIcon == nil {
		return ErrNotLoaded
	}
	if ret := nshTraySetIcon(ti.handle, unsafe.Pointer(&rgba[0]), uintptr(need), int32(width), int32(height)); ret < 0 {
		return NewError(ret, "nsh_tray_set_icon")
	}
	ti.iconPixels = rgba[:need]
	return nil
}

// SetContextMenu attaches menu as the icon's context menu and takes ownership
// of it. Passing nil detaches the current menu and returns its ownership to
// the caller.
func (ti *TrayIcon) SetContextMenu(menu *Menu) error {
	if menu != nil && menu.isDisposed() {
		return ErrDisposed
	}

	ti.mu.Lock()
	defer ti.mu.Unlock()
	if ti.disposed {
		return ErrDisposed
	}
	if nshTraySetContextMenu == nil {
		return ErrNotLoaded
	}
	var mh uintptr
	if menu != nil {
		mh = menu.handle
	}
	if ret := nshTraySetContextMenu(ti.handle, mh); ret < 0 {
		return NewError(ret, "nsh_tray_set_context_menu")
	}
	ti.menu = menu
	return nil
}

// ContextMenu returns the attached context menu, or nil.
func (ti *TrayIcon) ContextMenu() *Menu {
	ti.mu.Lock()
	defer ti.mu.Unlock()
	return ti.menu
}

// Dispose releases the icon and its context menu, if any.
// Safe to call more than once.
func (ti *TrayIcon) Dispose() {
	ti.mu.Lock()
	if ti.disposed {
		ti.mu.Unlock()
		return
	}
	ti.disposed = true
	menu := ti.menu
	ti.menu = nil
	ti.iconPixels = nil
	ti.mu.Unlock()

	trayRegistry.Delete(ti.handle)
	ti.events.RemoveAllListeners()
	if menu != nil {
		menu.Dispose()
	}
	if nshTrayDestroy != nil {
		nshTrayDestroy(ti.handle)
	}
}

func (ti *TrayIcon) isDisposed() bool {
	ti.mu.Lock()
	defer ti.mu.Unlock()
	return ti.disposed
}
