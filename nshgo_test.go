//go:build !ios && !android && (amd64 || arm64)

package nshgo

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"unsafe"
)

// handleSeq hands out process-unique fake handles so stale registry entries
// left by a misbehaving test can never alias a later test's resources.
var handleSeq atomic.Uintptr

type nativeListener struct {
	event    int32
	cb       uintptr
	userData uintptr
}

// fakeNative stands in for the nativeshell library. Its methods are installed
// directly into the package's binding function variables, the same seam
// registerBindings fills from the real library.
type fakeNative struct {
	mu sync.Mutex

	nextListenerID int64
	failCreate     bool
	failListeners  bool

	destroyed map[uintptr]int
	listeners map[uintptr]map[int64]nativeListener

	titles       map[uintptr]string
	labels       map[uintptr]string
	tooltips     map[uintptr]string
	sizes        map[uintptr][2]int32
	positions    map[uintptr][2]int32
	visible      map[uintptr]bool
	enabled      map[uintptr]bool
	checked      map[uintptr]bool
	submenus     map[uintptr]uintptr
	contextMenus map[uintptr]uintptr
	menuItems    map[uintptr][]uintptr

	logLevel int32
	logCB    uintptr
}

func newFakeNative() *fakeNative {
	return &fakeNative{
		destroyed:    make(map[uintptr]int),
		listeners:    make(map[uintptr]map[int64]nativeListener),
		titles:       make(map[uintptr]string),
		labels:       make(map[uintptr]string),
		tooltips:     make(map[uintptr]string),
		sizes:        make(map[uintptr][2]int32),
		positions:    make(map[uintptr][2]int32),
		visible:      make(map[uintptr]bool),
		enabled:      make(map[uintptr]bool),
		checked:      make(map[uintptr]bool),
		submenus:     make(map[uintptr]uintptr),
		contextMenus: make(map[uintptr]uintptr),
		menuItems:    make(map[uintptr][]uintptr),
	}
}

func (f *fakeNative) create() uintptr {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate {
		return 0
	}
	return handleSeq.Add(1)
}

func (f *fakeNative) destroy(h uintptr) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.destroyed[h]++
}

func (f *fakeNative) addListener(h uintptr, event int32, cb uintptr, userData uintptr) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failListeners {
		return -1
	}
	f.nextListenerID++
	id := f.nextListenerID
	if f.listeners[h] == nil {
		f.listeners[h] = make(map[int64]nativeListener)
	}
	f.listeners[h][id] = nativeListener{event: event, cb: cb, userData: userData}
	return id
}

func (f *fakeNative) removeListener(h uintptr, id int64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.listeners[h][id]; !ok {
		return false
	}
	delete(f.listeners[h], id)
	return true
}

func (f *fakeNative) listenerCount(h uintptr) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.listeners[h])
}

func (f *fakeNative) destroyCount(h uintptr) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.destroyed[h]
}

func (f *fakeNative) setString(m map[uintptr]string, h uintptr, s string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m[h] = s
}

func (f *fakeNative) getString(m map[uintptr]string, h uintptr, buf unsafe.Pointer, bufSize uintptr) int32 {
	f.mu.Lock()
	s := m[h]
	f.mu.Unlock()
	b := unsafe.Slice((*byte)(buf), int(bufSize))
	return int32(copy(b, s))
}

// installFakeNative wires a fresh fake into every binding variable and
// restores the not-loaded state when the test finishes.
func installFakeNative(t *testing.T) *fakeNative {
	t.Helper()
	f := newFakeNative()

	nshWindowCreate = f.create
	nshWindowDestroy = f.destroy
	nshWindowAddListener = f.addListener
	nshWindowRemoveListener = f.removeListener
	nshWindowSetTitle = func(h uintptr, s string) { f.setString(f.titles, h, s) }
	nshWindowGetTitle = func(h uintptr, buf unsafe.Pointer, n uintptr) int32 { return f.getString(f.titles, h, buf, n) }
	nshWindowSetSize = func(h uintptr, w, ht int32) {
		f.mu.Lock()
		f.sizes[h] = [2]int32{w, ht}
		f.mu.Unlock()
	}
	nshWindowGetSize = func(h uintptr, w, ht *int32) {
		f.mu.Lock()
		v := f.sizes[h]
		f.mu.Unlock()
		*w, *ht = v[0], v[1]
	}
	nshWindowSetPosition = func(h uintptr, x, y int32) {
		f.mu.Lock()
		f.positions[h] = [2]int32{x, y}
		f.mu.Unlock()
	}
	nshWindowGetPosition = func(h uintptr, x, y *int32) {
		f.mu.Lock()
		v := f.positions[h]
		f.mu.Unlock()
		*x, *y = v[0], v[1]
	}
	nshWindowShow = func(h uintptr) {
		f.mu.Lock()
		f.visible[h] = true
		f.mu.Unlock()
	}
	nshWindowHide = func(h uintptr) {
		f.mu.Lock()
		f.visible[h] = false
		f.mu.Unlock()
	}
	nshWindowIsVisible = func(h uintptr) bool {
		f.mu.Lock()
		defer f.mu.Unlock()
		return f.visible[h]
	}

	nshMenuCreate = f.create
	nshMenuDestroy = f.destroy
	nshMenuAddListener = f.addListener
	nshMenuRemoveListener = f.removeListener
	nshMenuAppendItem = func(h, item uintptr) int32 {
		f.mu.Lock()
		f.menuItems[h] = append(f.menuItems[h], item)
		f.mu.Unlock()
		return 0
	}
	nshMenuRemoveItem = func(h, item uintptr) int32 {
		f.mu.Lock()
		defer f.mu.Unlock()
		items := f.menuItems[h]
		for i, it := range items {
			if it == item {
				f.menuItems[h] = append(items[:i], items[i+1:]...)
				return 0
			}
		}
		return -1
	}

	nshMenuItemCreate = func(label string) uintptr {
		h := f.create()
		if h != 0 {
			f.setString(f.labels, h, label)
		}
		return h
	}
	nshMenuItemDestroy = f.destroy
	nshMenuItemAddListener = f.addListener
	nshMenuItemRemoveListener = f.removeListener
	nshMenuItemSetLabel = func(h uintptr, s string) { f.setString(f.labels, h, s) }
	nshMenuItemGetLabel = func(h uintptr, buf unsafe.Pointer, n uintptr) int32 { return f.getString(f.labels, h, buf, n) }
	nshMenuItemSetEnabled = func(h uintptr, v bool) {
		f.mu.Lock()
		f.enabled[h] = v
		f.mu.Unlock()
	}
	nshMenuItemIsEnabled = func(h uintptr) bool {
		f.mu.Lock()
		defer f.mu.Unlock()
		return f.enabled[h]
	}
	nshMenuItemSetChecked = func(h uintptr, v bool) {
		f.mu.Lock()
		f.checked[h] = v
		f.mu.Unlock()
	}
	nshMenuItemIsChecked = func(h uintptr) bool {
		f.mu.Lock()
		defer f.mu.Unlock()
		return f.checked[h]
	}
	nshMenuItemSetSubmenu = func(h, menu uintptr) int32 {
		f.mu.Lock()
		f.submenus[h] = menu
		f.mu.Unlock()
		return 0
	}

	nshTrayCreate = f.create
	nshTrayDestroy = f.destroy
	nshTrayAddListener = f.addListener
	nshTrayRemoveListener = f.removeListener
	nshTraySetTooltip = func(h uintptr, s string) { f.setString(f.tooltips, h, s) }
	nshTraySetIcon = func(h uintptr, rgba unsafe.Pointer, size uintptr, w, ht int32) int32 { return 0 }
	nshTraySetContextMenu = func(h, menu uintptr) int32 {
		f.mu.Lock()
		f.contextMenus[h] = menu
		f.mu.Unlock()
		return 0
	}

	nshSetLogLevel = func(l int32) {
		f.mu.Lock()
		f.logLevel = l
		f.mu.Unlock()
	}
	nshSetLogCallback = func(cb uintptr) {
		f.mu.Lock()
		f.logCB = cb
		f.mu.Unlock()
	}

	t.Cleanup(resetBindings)
	return f
}

// resetBindings restores the pre-Init state.
func resetBindings() {
	nshWindowCreate = nil
	nshWindowDestroy = nil
	nshWindowAddListener = nil
	nshWindowRemoveListener = nil
	nshWindowSetTitle = nil
	nshWindowGetTitle = nil
	nshWindowSetSize = nil
	nshWindowGetSize = nil
	nshWindowSetPosition = nil
	nshWindowGetPosition = nil
	nshWindowShow = nil
	nshWindowHide = nil
	nshWindowIsVisible = nil

	nshMenuCreate = nil
	nshMenuDestroy = nil
	nshMenuAddListener = nil
	nshMenuRemoveListener = nil
	nshMenuAppendItem = nil
	nshMenuRemoveItem = nil

	nshMenuItemCreate = nil
	nshMenuItemDestroy = nil
	nshMenuItemAddListener = nil
	nshMenuItemRemoveListener = nil
	nshMenuItemSetLabel = nil
	nshMenuItemGetLabel = nil
	nshMenuItemSetEnabled = nil
	nshMenuItemIsEnabled = nil
	nshMenuItemSetChecked = nil
	nshMenuItemIsChecked = nil
	nshMenuItemSetSubmenu = nil

	nshTrayCreate = nil
	nshTrayDestroy = nil
	nshTrayAddListener = nil
	nshTrayRemoveListener = nil
	nshTraySetTooltip = nil
	nshTraySetIcon = nil
	nshTraySetContextMenu = nil

	nshSetLogLevel = nil
	nshSetLogCallback = nil

	bindingsRegistered = false
}

func TestInitWithoutLibrary(t *testing.T) {
	// nativeshell is generally not installed on CI machines. Whatever Init
	// reports, IsLoaded must agree with it.
	err := Init()
	if err != nil && IsLoaded() {
		t.Error("IsLoaded true after failed Init")
	}
	if err == nil && !IsLoaded() {
		t.Error("IsLoaded false after successful Init")
	}
	if !IsLoaded() && Version() != 0 {
		t.Error("Version should be 0 when not loaded")
	}
}

func TestNewError(t *testing.T) {
	if NewError(0, "op") != nil {
		t.Error("non-negative codes should produce nil")
	}
	if NewError(5, "op") != nil {
		t.Error("non-negative codes should produce nil")
	}

	err := NewError(-3, "nsh_tray_set_icon")
	if err == nil {
		t.Fatal("negative code should produce an error")
	}
	if ErrorCode(err) != -3 {
		t.Errorf("ErrorCode = %d, want -3", ErrorCode(err))
	}

	var e *Error
	if !errors.As(err, &e) {
		t.Fatal("error should be *Error")
	}
	if e.Op != "nsh_tray_set_icon" {
		t.Errorf("Op = %q", e.Op)
	}
}

func TestErrorCodeForeignError(t *testing.T) {
	if ErrorCode(errors.New("plain")) != 0 {
		t.Error("foreign errors should report code 0")
	}
}
