//go:build !ios && !android && (amd64 || arm64)

package nshgo

import (
	"errors"
	"fmt"

	"github.com/obinnaokechukwu/nshgo/internal/bindings"
)

// Common errors
var (
	// ErrNotLoaded indicates the nativeshell library is not loaded.
	ErrNotLoaded = bindings.ErrNotLoaded

	// ErrCreateFailed indicates the native create call returned a null handle.
	ErrCreateFailed = errors.New("nshgo: native resource creation failed")

	// ErrDisposed indicates the wrapper has been disposed.
	ErrDisposed = errors.New("nshgo: resource is disposed")

	// ErrInvalidHandle indicates a zero or otherwise unusable native handle.
	ErrInvalidHandle = errors.New("nshgo: invalid native handle")

	// ErrHandleInUse indicates the handle is already managed by another wrapper.
	ErrHandleInUse = errors.New("nshgo: handle already managed by another wrapper")
)

// Error is an error from a nativeshell operation.
// It contains the raw native status code and the operation that failed.
type Error struct {
	Code int32
	Op   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("nshgo: %s failed (code %d)", e.Op, e.Code)
}

// NewError creates an Error from a native status code.
// Returns nil if code >= 0.
func NewError(code int32, op string) error {
	if code >= 0 {
		return nil
	}
	return &Error{Code: code, Op: op}
}

// ErrorCode returns the native status code from an error, or 0 if err is not
// a nativeshell Error.
func ErrorCode(err error) int32 {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return 0
}
