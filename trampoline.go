//go:build !ios && !android && (amd64 || arm64)

package nshgo

import (
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/obinnaokechukwu/nshgo/internal/registry"
)

// Per-resource-kind instance tables. Native callbacks carry only a handle
// value as their user-data token; these tables resolve it back to the owning
// wrapper. Entries are inserted at construction and removed during dispose,
// before the native destroy call, so a trampoline that fires during teardown
// misses cleanly.
var (
	windowRegistry   = registry.New[*Window]()
	menuRegistry     = registry.New[*Menu]()
	menuItemRegistry = registry.New[*MenuItem]()
	trayRegistry     = registry.New[*TrayIcon]()
)

// One process-wide, address-stable trampoline exists per (resource kind,
// event kind) pair. They are created lazily on the first native wiring and
// live for the rest of the process; purego callbacks cannot be released.
//
// Native callback signature: void (*)(const void *event, void *user_data).
// user_data is the handle value itself, never a Go pointer.
var (
	windowCallbackOnce sync.Once
	windowCallbackPtrs map[eventKind]uintptr

	menuCallbackOnce sync.Once
	menuCallbackPtrs map[eventKind]uintptr

	menuItemCallbackOnce sync.Once
	menuItemCallbackPtrs map[eventKind]uintptr

	trayCallbackOnce sync.Once
	trayCallbackPtrs map[eventKind]uintptr
)

func windowCallbacks() map[eventKind]uintptr {
	windowCallbackOnce.Do(func() {
		windowCallbackPtrs = map[eventKind]uintptr{
			windowEventMoved: purego.NewCallback(func(_ purego.CDecl, ev, userData unsafe.Pointer) {
				dispatchWindowEvent(uintptr(userData), windowEventMoved, decodeMoveEvent(ev))
			}),
			windowEventResized: purego.NewCallback(func(_ purego.CDecl, ev, userData unsafe.Pointer) {
				dispatchWindowEvent(uintptr(userData), windowEventResized, decodeResizeEvent(ev))
			}),
			windowEventCloseRequested: purego.NewCallback(func(_ purego.CDecl, _, userData unsafe.Pointer) {
				dispatchWindowEvent(uintptr(userData), windowEventCloseRequested, CloseRequestedEvent{})
			}),
			windowEventFocused: purego.NewCallback(func(_ purego.CDecl, _, userData unsafe.Pointer) {
				dispatchWindowEvent(uintptr(userData), windowEventFocused, FocusEvent{Focused: true})
			}),
			windowEventBlurred: purego.NewCallback(func(_ purego.CDecl, _, userData unsafe.Pointer) {
				dispatchWindowEvent(uintptr(userData), windowEventBlurred, FocusEvent{Focused: false})
			}),
		}
	})
	return windowCallbackPtrs
}

func menuCallbacks() map[eventKind]uintptr {
	menuCallbackOnce.Do(func() {
		menuCallbackPtrs = map[eventKind]uintptr{
			menuEventOpened: purego.NewCallback(func(_ purego.CDecl, _, userData unsafe.Pointer) {
				dispatchMenuEvent(uintptr(userData), menuEventOpened, MenuEvent{})
			}),
			menuEventClosed: purego.NewCallback(func(_ purego.CDecl, _, userData unsafe.Pointer) {
				dispatchMenuEvent(uintptr(userData), menuEventClosed, MenuEvent{})
			}),
		}
	})
	return menuCallbackPtrs
}

func menuItemCallbacks() map[eventKind]uintptr {
	menuItemCallbackOnce.Do(func() {
		menuItemCallbackPtrs = map[eventKind]uintptr{
			menuItemEventClicked: purego.NewCallback(func(_ purego.CDecl, _, userData unsafe.Pointer) {
				dispatchMenuItemEvent(uintptr(userData), menuItemEventClicked, ClickEvent{})
			}),
		}
	})
	return menuItemCallbackPtrs
}

func trayCallbacks() map[eventKind]uintptr {
	trayCallbackOnce.Do(func() {
		trayCallbackPtrs = map[eventKind]uintptr{
			trayEventClicked: purego.NewCallback(func(_ purego.CDecl, ev, userData unsafe.Pointer) {
				dispatchTrayEvent(uintptr(userData), trayEventClicked, decodeTrayClickEvent(ev))
			}),
			trayEventRightClicked: purego.NewCallback(func(_ purego.CDecl, ev, userData unsafe.Pointer) {
				dispatchTrayEvent(uintptr(userData), trayEventRightClicked, decodeTrayClickEvent(ev))
			}),
			trayEventDoubleClicked: purego.NewCallback(func(_ purego.CDecl, ev, userData unsafe.Pointer) {
				dispatchTrayEvent(uintptr(userData), trayEventDoubleClicked, decodeTrayClickEvent(ev))
			}),
		}
	})
	return trayCallbackPtrs
}

// The dispatch functions resolve the handle under the registry lock, then emit
// with every lock released. A lookup miss means the event raced with Dispose
// and is silently dropped.

func dispatchWindowEvent(h uintptr, kind eventKind, ev any) {
	w, ok := windowRegistry.Load(h)
	if !ok {
		return
	}
	w.events.Emit(kind, ev)
}

func dispatchMenuEvent(h uintptr, kind eventKind, ev any) {
	m, ok := menuRegistry.Load(h)
	if !ok {
		return
	}
	m.events.Emit(kind, ev)
}

func dispatchMenuItemEvent(h uintptr, kind eventKind, ev any) {
	it, ok := menuItemRegistry.Load(h)
	if !ok {
		return
	}
	it.events.Emit(kind, ev)
}

func dispatchTrayEvent(h uintptr, kind eventKind, ev any) {
	ti, ok := trayRegistry.Load(h)
	if !ok {
		return
	}
	ti.events.Emit(kind, ev)
}
