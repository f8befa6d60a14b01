//go:build !ios && !android && (amd64 || arm64)

package nshgo

import (
	"errors"
	"testing"
)

func TestNewWindowNotLoaded(t *testing.T) {
	resetBindings()
	if _, err := NewWindow(); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("err = %v, want ErrNotLoaded", err)
	}
}

func TestNewWindowCreateFailed(t *testing.T) {
	f := installFakeNative(t)
	f.failCreate = true
	if _, err := NewWindow(); !errors.Is(err, ErrCreateFailed) {
		t.Errorf("err = %v, want ErrCreateFailed", err)
	}
}

func TestNewWindowOptions(t *testing.T) {
	f := installFakeNative(t)
	w, err := NewWindow(WithTitle("main"), WithSize(800, 600))
	if err != nil {
		t.Fatal(err)
	}
	defer w.Dispose()

	if f.titles[w.handle] != "main" {
		t.Errorf("title = %q", f.titles[w.handle])
	}
	if f.sizes[w.handle] != [2]int32{800, 600} {
		t.Errorf("size = %v", f.sizes[w.handle])
	}
}

func TestAdoptWindow(t *testing.T) {
	f := installFakeNative(t)

	if _, err := AdoptWindow(0); !errors.Is(err, ErrInvalidHandle) {
		t.Errorf("adopt 0: err = %v, want ErrInvalidHandle", err)
	}

	h := f.create()
	w, err := AdoptWindow(h)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Dispose()
	if w.Handle() != h {
		t.Errorf("Handle() = %v, want %v", w.Handle(), h)
	}

	if _, err := AdoptWindow(h); !errors.Is(err, ErrHandleInUse) {
		t.Errorf("second adopt: err = %v, want ErrHandleInUse", err)
	}
}

func TestAdoptWindowConflictsWithNew(t *testing.T) {
	installFakeNative(t)
	w, err := NewWindow()
	if err != nil {
		t.Fatal(err)
	}
	defer w.Dispose()

	if _, err := AdoptWindow(w.Handle()); !errors.Is(err, ErrHandleInUse) {
		t.Errorf("err = %v, want ErrHandleInUse", err)
	}
}

func TestWindowProperties(t *testing.T) {
	installFakeNative(t)
	w, err := NewWindow()
	if err != nil {
		t.Fatal(err)
	}
	defer w.Dispose()

	if err := w.SetTitle("hello"); err != nil {
		t.Fatal(err)
	}
	title, err := w.Title()
	if err != nil {
		t.Fatal(err)
	}
	if title != "hello" {
		t.Errorf("Title = %q", title)
	}

	if err := w.SetSize(640, 480); err != nil {
		t.Fatal(err)
	}
	width, height, err := w.Size()
	if err != nil {
		t.Fatal(err)
	}
	if width != 640 || height != 480 {
		t.Errorf("Size = %dx%d", width, height)
	}

	if err := w.SetPosition(30, 40); err != nil {
		t.Fatal(err)
	}
	x, y, err := w.Position()
	if err != nil {
		t.Fatal(err)
	}
	if x != 30 || y != 40 {
		t.Errorf("Position = %d,%d", x, y)
	}

	if err := w.Show(); err != nil {
		t.Fatal(err)
	}
	visible, err := w.IsVisible()
	if err != nil {
		t.Fatal(err)
	}
	if !visible {
		t.Error("window should be visible after Show")
	}
	if err := w.Hide(); err != nil {
		t.Fatal(err)
	}
	visible, err = w.IsVisible()
	if err != nil {
		t.Fatal(err)
	}
	if visible {
		t.Error("window should be hidden after Hide")
	}
}

func TestWindowDisposedErrors(t *testing.T) {
	installFakeNative(t)
	w, err := NewWindow()
	if err != nil {
		t.Fatal(err)
	}
	w.Dispose()

	if err := w.SetTitle("x"); !errors.Is(err, ErrDisposed) {
		t.Errorf("SetTitle: err = %v, want ErrDisposed", err)
	}
	if _, err := w.Title(); !errors.Is(err, ErrDisposed) {
		t.Errorf("Title: err = %v, want ErrDisposed", err)
	}
	if _, _, err := w.Size(); !errors.Is(err, ErrDisposed) {
		t.Errorf("Size: err = %v, want ErrDisposed", err)
	}
	if err := w.Show(); !errors.Is(err, ErrDisposed) {
		t.Errorf("Show: err = %v, want ErrDisposed", err)
	}
	if id := w.OnMoved(func(MoveEvent) {}); id != 0 {
		t.Errorf("OnMoved after Dispose = %d, want 0", id)
	}
}

func TestWindowNativeWiring(t *testing.T) {
	f := installFakeNative(t)
	w, err := NewWindow()
	if err != nil {
		t.Fatal(err)
	}
	defer w.Dispose()

	if n := f.listenerCount(w.handle); n != 0 {
		t.Fatalf("native listeners before first On* = %d", n)
	}

	id1 := w.OnMoved(func(MoveEvent) {})
	if id1 == 0 {
		t.Fatal("OnMoved returned 0")
	}
	// One native registration per window event kind on the first listener.
	wired := f.listenerCount(w.handle)
	if wired == 0 {
		t.Fatal("no native listeners registered after first On*")
	}

	id2 := w.OnResized(func(ResizeEvent) {})
	if n := f.listenerCount(w.handle); n != wired {
		t.Errorf("second listener changed native count: %d -> %d", wired, n)
	}

	w.RemoveListener(id1)
	if n := f.listenerCount(w.handle); n != wired {
		t.Errorf("native listeners dropped while one Go listener remains: %d", n)
	}

	w.RemoveListener(id2)
	if n := f.listenerCount(w.handle); n != 0 {
		t.Errorf("native listeners after last removal = %d, want 0", n)
	}

	// The wiring re-arms on the next registration.
	w.OnCloseRequested(func(CloseRequestedEvent) {})
	if n := f.listenerCount(w.handle); n != wired {
		t.Errorf("native listeners after re-arm = %d, want %d", n, wired)
	}
}

func TestWindowNativeWiringFailureTolerated(t *testing.T) {
	f := installFakeNative(t)
	w, err := NewWindow()
	if err != nil {
		t.Fatal(err)
	}
	defer w.Dispose()

	f.failListeners = true
	id := w.OnMoved(func(MoveEvent) {})
	if id == 0 {
		t.Fatal("Go-side registration should succeed even when native wiring fails")
	}
	if n := f.listenerCount(w.handle); n != 0 {
		t.Fatalf("native listeners = %d, want 0", n)
	}

	// After the failed attempt, a fresh activation retries the wiring.
	w.RemoveListener(id)
	f.failListeners = false
	w.OnMoved(func(MoveEvent) {})
	if n := f.listenerCount(w.handle); n == 0 {
		t.Error("native wiring not retried after earlier failure")
	}
}

func TestWindowEventDelivery(t *testing.T) {
	installFakeNative(t)
	w, err := NewWindow()
	if err != nil {
		t.Fatal(err)
	}
	defer w.Dispose()

	var got MoveEvent
	var calls int
	w.OnMoved(func(ev MoveEvent) {
		got = ev
		calls++
	})

	dispatchWindowEvent(w.handle, windowEventMoved, MoveEvent{X: 10, Y: 20})
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
	if got.X != 10 || got.Y != 20 {
		t.Errorf("event = %+v", got)
	}

	// Other kinds do not leak into this listener.
	dispatchWindowEvent(w.handle, windowEventResized, ResizeEvent{Width: 1, Height: 2})
	if calls != 1 {
		t.Errorf("calls = %d after unrelated event, want 1", calls)
	}
}

func TestWindowFocusEvents(t *testing.T) {
	installFakeNative(t)
	w, err := NewWindow()
	if err != nil {
		t.Fatal(err)
	}
	defer w.Dispose()

	var log []bool
	w.OnFocused(func(ev FocusEvent) { log = append(log, ev.Focused) })
	w.OnBlurred(func(ev FocusEvent) { log = append(log, ev.Focused) })

	dispatchWindowEvent(w.handle, windowEventFocused, FocusEvent{Focused: true})
	dispatchWindowEvent(w.handle, windowEventBlurred, FocusEvent{Focused: false})

	if len(log) != 2 || !log[0] || log[1] {
		t.Errorf("focus log = %v, want [true false]", log)
	}
}

func TestWindowDispose(t *testing.T) {
	f := installFakeNative(t)
	w, err := NewWindow()
	if err != nil {
		t.Fatal(err)
	}

	var calls int
	w.OnMoved(func(MoveEvent) { calls++ })
	if f.listenerCount(w.handle) == 0 {
		t.Fatal("native wiring missing before dispose")
	}

	w.Dispose()

	if n := f.destroyCount(w.handle); n != 1 {
		t.Errorf("destroy count = %d, want 1", n)
	}
	if n := f.listenerCount(w.handle); n != 0 {
		t.Errorf("native listeners after dispose = %d, want 0", n)
	}

	// Events arriving after dispose are dropped without reaching listeners.
	dispatchWindowEvent(w.handle, windowEventMoved, MoveEvent{X: 1, Y: 1})
	if calls != 0 {
		t.Errorf("listener called %d times after dispose", calls)
	}

	// Disposing again is a no-op.
	w.Dispose()
	if n := f.destroyCount(w.handle); n != 1 {
		t.Errorf("destroy count after double dispose = %d, want 1", n)
	}
}
