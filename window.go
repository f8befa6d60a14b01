//go:build !ios && !android && (amd64 || arm64)

package nshgo

import (
	"sync"
	"unsafe"

	"github.com/obinnaokechukwu/nshgo/internal/emitter"
)

// Window wraps a native top-level window.
//
// A Window must be released with Dispose. After Dispose, property accessors
// return ErrDisposed and event registration returns ListenerID 0; calling
// Dispose again is a no-op.
type Window struct {
	mu       sync.Mutex
	handle   uintptr
	disposed bool
	events   *emitter.Emitter[eventKind, any]

	// Native listener ids recorded by the emitter start hook. The hooks run
	// under the emitter's lock, which also guards this map.
	nativeIDs map[eventKind]int64
}

// WindowOption configures a newly created window.
type WindowOption func(*Window)

// WithTitle sets the initial window title.
func WithTitle(title string) WindowOption {
	return func(w *Window) { _ = w.SetTitle(title) }
}

// WithSize sets the initial content size.
func WithSize(width, height int) WindowOption {
	return func(w *Window) { _ = w.SetSize(width, height) }
}

// NewWindow creates a native window and returns its wrapper.
// Returns ErrNotLoaded before a successful Init, or ErrCreateFailed if the
// native core declined to create the window.
func NewWindow(opts ...WindowOption) (*Window, error) {
	if nshWindowCreate == nil {
		return nil, ErrNotLoaded
	}
	h := nshWindowCreate()
	if h == 0 {
		return nil, ErrCreateFailed
	}
	w := newWindow(h)
	windowRegistry.Store(h, w)
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// AdoptWindow wraps a window handle created by a different owner, for example
// a manager enumerating existing windows. The native create call is not made
// again, but the wrapper takes over event wiring and disposal of the handle.
// Returns ErrHandleInUse if another wrapper already manages the handle.
func AdoptWindow(h Handle) (*Window, error) {
	if h == 0 {
		return nil, ErrInvalidHandle
	}
	w := newWindow(h)
	if !windowRegistry.StoreIfAbsent(h, w) {
		return nil, ErrHandleInUse
	}
	return w, nil
}

func newWindow(h uintptr) *Window {
	w := &Window{
		handle:    h,
		nativeIDs: make(map[eventKind]int64),
	}
	w.events = emitter.NewWithHooks[eventKind, any](w.startEventListening, w.stopEventListening)
	return w
}

// Handle returns the native window handle.
func (w *Window) Handle() Handle {
	return w.handle
}

// startEventListening registers this window's native callbacks, keyed by the
// handle value as the user-data token. It runs under the emitter lock on the
// 0->1 listener transition. Kinds that already registered are skipped, so a
// retry after a failed registration attempt is safe. A negative native id is
// simply not recorded; those events never fire, which is tolerated.
func (w *Window) startEventListening() {
	if nshWindowAddListener == nil {
		return
	}
	for kind, cb := range windowCallbacks() {
		if _, ok := w.nativeIDs[kind]; ok {
			continue
		}
		id := nshWindowAddListener(w.handle, int32(kind), cb, w.handle)
		if id >= 0 {
			w.nativeIDs[kind] = id
		}
	}
}

// stopEventListening releases the native callback registrations. It runs
// under the emitter lock on the 1->0 listener transition.
func (w *Window) stopEventListening() {
	for kind, id := range w.nativeIDs {
		if nshWindowRemoveListener != nil {
			nshWindowRemoveListener(w.handle, id)
		}
		delete(w.nativeIDs, kind)
	}
}

func (w *Window) addListener(kind eventKind, fn func(any)) ListenerID {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.disposed {
		return 0
	}
	return w.events.AddListener(kind, fn)
}

// OnMoved registers fn for window move events.
// Returns 0 if fn is nil or the window is disposed.
func (w *Window) OnMoved(fn func(MoveEvent)) ListenerID {
	if fn == nil {
		return 0
	}
	return w.addListener(windowEventMoved, func(ev any) {
		if e, ok := ev.(MoveEvent); ok {
			fn(e)
		}
	})
}

// OnResized registers fn for window resize events.
func (w *Window) OnResized(fn func(ResizeEvent)) ListenerID {
	if fn == nil {
		return 0
	}
	return w.addListener(windowEventResized, func(ev any) {
		if e, ok := ev.(ResizeEvent); ok {
			fn(e)
		}
	})
}

// OnCloseRequested registers fn for user close requests.
func (w *Window) OnCloseRequested(fn func(CloseRequestedEvent)) ListenerID {
	if fn == nil {
		return 0
	}
	return w.addListener(windowEventCloseRequested, func(ev any) {
		if e, ok := ev.(CloseRequestedEvent); ok {
			fn(e)
		}
	})
}

// OnFocused registers fn for focus-gained events.
func (w *Window) OnFocused(fn func(FocusEvent)) ListenerID {
	if fn == nil {
		return 0
	}
	return w.addListener(windowEventFocused, func(ev any) {
		if e, ok := ev.(FocusEvent); ok {
			fn(e)
		}
	})
}

// OnBlurred registers fn for focus-lost events.
func (w *Window) OnBlurred(fn func(FocusEvent)) ListenerID {
	if fn == nil {
		return 0
	}
	return w.addListener(windowEventBlurred, func(ev any) {
		if e, ok := ev.(FocusEvent); ok {
			fn(e)
		}
	})
}

// RemoveListener removes a listener by id. Returns false if the id is not
// registered; that is a signal, not an error.
func (w *Window) RemoveListener(id ListenerID) bool {
	return w.events.RemoveListener(id)
}

// RemoveAllListeners removes every registered listener.
func (w *Window) RemoveAllListeners() {
	w.events.RemoveAllListeners()
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.disposed {
		return ErrDisposed
	}
	if nshWindowSetTitle == nil {
		return ErrNotLoaded
	}
	nshWindowSetTitle(w.handle, title)
	return nil
}

// Title returns the window title.
func (w *Window) Title() (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.disposed {
		return "", ErrDisposed
	}
	if nshWindowGetTitle == nil {
		return "", ErrNotLoaded
	}
	buf := make([]byte, 512)
	n := nshWindowGetTitle(w.handle, unsafe.Pointer(&buf[0]), uintptr(len(buf)))
	if n < 0 {
		return "", NewError(n, "nsh_window_get_title")
	}
	if int(n) > len(buf) {
		n = int32(len(buf))
	}
	return string(buf[:n]), nil
}

// SetSize sets the window content size.
func (w *Window) SetSize(width, height int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.disposed {
		return ErrDisposed
	}
	if nshWindowSetSize == nil {
		return ErrNotLoaded
	}
	nshWindowSetSize(w.handle, int32(width), int32(height))
	return nil
}

// Size returns the window content size.
func (w *Window) Size() (width, height int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.disposed {
		return 0, 0, ErrDisposed
	}
	if nshWindowGetSize == nil {
		return 0, 0, ErrNotLoaded
	}
	var cw, ch int32
	nshWindowGetSize(w.handle, &cw, &ch)
	return int(cw), int(ch), nil
}

// SetPosition moves the window to the given screen coordinates.
func (w *Window) SetPosition(x, y int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.disposed {
		return ErrDisposed
	}
	if nshWindowSetPosition == nil {
		return ErrNotLoaded
	}
	nshWindowSetPosition(w.handle, int32(x), int32(y))
	return nil
}

// Position returns the window's screen coordinates.
func (w *Window) Position() (x, y int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.disposed {
		return 0, 0, ErrDisposed
	}
	if nshWindowGetPosition == nil {
		return 0, 0, ErrNotLoaded
	}
	var cx, cy int32
	nshWindowGetPosition(w.handle, &cx, &cy)
	return int(cx), int(cy), nil
}

// Show makes the window visible.
func (w *Window) Show() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.disposed {
		return ErrDisposed
	}
	if nshWindowShow == nil {
		return ErrNotLoaded
	}
	nshWindowShow(w.handle)
	return nil
}

// Hide makes the window invisible without destroying it.
func (w *Window) Hide() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.disposed {
		return ErrDisposed
	}
	if nshWindowHide == nil {
		return ErrNotLoaded
	}
	nshWindowHide(w.handle)
	return nil
}

// IsVisible reports whether the window is currently visible.
func (w *Window) IsVisible() (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.disposed {
		return false, ErrDisposed
	}
	if nshWindowIsVisible == nil {
		return false, ErrNotLoaded
	}
	return nshWindowIsVisible(w.handle), nil
}

// Dispose releases the window. The registry entry is removed first so a
// native event racing with disposal resolves to nothing, then native
// listeners are released, then the native window is destroyed.
// Safe to call more than once.
func (w *Window) Dispose() {
	w.mu.Lock()
	if w.disposed {
		w.mu.Unlock()
		return
	}
	w.disposed = true
	w.mu.Unlock()

	windowRegistry.Delete(w.handle)
	w.events.RemoveAllListeners()
	if nshWindowDestroy != nil {
		nshWindowDestroy(w.handle)
	}
}

func (w *Window) isDisposed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.disposed
}
