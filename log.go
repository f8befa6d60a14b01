//go:build !ios && !android && (amd64 || arm64)

package nshgo

import (
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
)

// LogLevel represents nativeshell log levels.
type LogLevel int32

// Log level constants matching nativeshell's NSH_LOG_* values.
const (
	LogQuiet   LogLevel = iota - 1 // Print no output
	LogError                       // Something went wrong
	LogWarning                     // Something unexpected but recoverable
	LogInfo                        // Standard information
	LogDebug                       // Stuff for debugging
	LogTrace                       // Extremely verbose debugging
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch {
	case l <= LogQuiet:
		return "quiet"
	case l == LogError:
		return "error"
	case l == LogWarning:
		return "warning"
	case l == LogInfo:
		return "info"
	case l == LogDebug:
		return "debug"
	default:
		return "trace"
	}
}

// LogCallback is called for each nativeshell log message.
// level is the log level, message is the formatted message.
type LogCallback func(level LogLevel, message string)

var (
	logCallbackMu sync.Mutex
	logCallback   LogCallback
	logCBHandle   uintptr
)

// SetLogLevel sets the nativeshell log level.
// Returns an error if the library is not loaded.
func SetLogLevel(level LogLevel) error {
	if nshSetLogLevel == nil {
		return ErrNotLoaded
	}
	nshSetLogLevel(int32(level))
	return nil
}

// SetLogCallback sets a custom log handler for nativeshell messages.
// Pass nil to restore the default logging behavior.
func SetLogCallback(cb LogCallback) error {
	if nshSetLogCallback == nil {
		return ErrNotLoaded
	}

	logCallbackMu.Lock()
	defer logCallbackMu.Unlock()

	if cb == nil {
		// Restore default callback
		logCallback = nil
		nshSetLogCallback(0)
		return nil
	}

	logCallback = cb

	// Create a purego callback if we haven't yet
	if logCBHandle == 0 {
		logCBHandle = purego.NewCallback(logCallbackTrampoline)
	}

	nshSetLogCallback(logCBHandle)
	return nil
}

// logCallbackTrampoline is called by nativeshell and forwards to the Go callback.
// Signature: void (*)(int level, const char *msg)
func logCallbackTrampoline(_ purego.CDecl, level int32, msg *byte) {
	logCallbackMu.Lock()
	cb := logCallback
	logCallbackMu.Unlock()

	if cb == nil {
		return
	}

	cb(LogLevel(level), goString(msg))
}

// goString converts a NUL-terminated C string to a Go string.
// Scanning stops at 4096 bytes if no terminator is found.
func goString(msg *byte) string {
	if msg == nil {
		return ""
	}
	ptr := unsafe.Pointer(msg)
	for i := 0; ; i++ {
		b := *(*byte)(unsafe.Pointer(uintptr(ptr) + uintptr(i)))
		if b == 0 {
			return string(unsafe.Slice(msg, i))
		}
		if i > 4096 { // Safety limit
			return string(unsafe.Slice(msg, i))
		}
	}
}
