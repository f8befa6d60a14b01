//go:build !ios && !android && (amd64 || arm64)

// Package nshgo provides Go bindings to the nativeshell UI core for managing
// native windows, menus, menu items, and tray icons without CGO, using purego.
//
// The nativeshell library owns all platform windowing behavior; nshgo wraps
// its opaque handles in Go objects, forwards property access to native
// getters/setters, and bridges native event callbacks back into typed Go
// listeners. Every wrapper must be released with Dispose when no longer
// needed; Dispose is safe to call more than once.
//
// Events can arrive on nativeshell's own threads. Listener registration,
// removal, and disposal are safe to call from any goroutine, including from
// inside a listener callback.
package nshgo

import (
	"github.com/obinnaokechukwu/nshgo/internal/bindings"
	"github.com/obinnaokechukwu/nshgo/internal/emitter"
)

// Handle is an opaque nativeshell resource handle.
// It identifies one native-owned resource for the resource's lifetime and
// becomes invalid as soon as the native destroy call runs.
type Handle = uintptr

// ListenerID identifies one registered event listener on a wrapper.
// 0 is never a valid id.
type ListenerID = emitter.ListenerID

// Init loads the nativeshell library and registers all function bindings.
// Programs must call it before creating any resources.
// Safe to call multiple times.
func Init() error {
	return registerBindings()
}

// IsLoaded returns true if the nativeshell library has been successfully loaded.
func IsLoaded() bool {
	return bindings.IsLoaded()
}

// Version returns the nativeshell library version, or 0 if not loaded.
func Version() uint32 {
	return bindings.Version()
}
