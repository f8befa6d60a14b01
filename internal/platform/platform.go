//go:build !ios && !android && (amd64 || arm64)

// Package platform provides platform detection and capabilities for nshgo.
// It determines shared-library naming conventions and what purego features
// are available on the current operating system and architecture.
package platform

import (
	"fmt"
	"runtime"
	"unsafe"
)

// SupportsStructByValue indicates whether the platform supports passing/returning
// structs by value through purego. Only Darwin (macOS) amd64/arm64 supports this.
// nshgo avoids struct-by-value calls entirely, but the flag is exposed for
// diagnostics.
const SupportsStructByValue = runtime.GOOS == "darwin" &&
	(runtime.GOARCH == "amd64" || runtime.GOARCH == "arm64")

// Is64Bit indicates whether the platform is 64-bit.
// nshgo only supports 64-bit platforms due to purego limitations.
const Is64Bit = unsafe.Sizeof(uintptr(0)) == 8

// LibraryExtension is the file extension for shared libraries on this platform.
var LibraryExtension string

// LibraryPrefix is the prefix for shared library names on this platform.
var LibraryPrefix string

func init() {
	switch runtime.GOOS {
	case "darwin":
		LibraryExtension = ".dylib"
		LibraryPrefix = "lib"
	case "windows":
		LibraryExtension = ".dll"
		LibraryPrefix = ""
	default: // linux, freebsd, etc.
		LibraryExtension = ".so"
		LibraryPrefix = "lib"
	}
}

// FormatLibraryName returns the platform-specific library filename.
// If version is 0, returns the unversioned library name.
//
// Examples:
//   - Linux:   FormatLibraryName("nativeshell", 1) -> "libnativeshell.so.1"
//   - macOS:   FormatLibraryName("nativeshell", 1) -> "libnativeshell.1.dylib"
//   - Windows: FormatLibraryName("nativeshell", 1) -> "nativeshell-1.dll"
func FormatLibraryName(name string, version int) string {
	switch runtime.GOOS {
	case "darwin":
		if version > 0 {
			return fmt.Sprintf("%s%s.%d%s", LibraryPrefix, name, version, LibraryExtension)
		}
		return fmt.Sprintf("%s%s%s", LibraryPrefix, name, LibraryExtension)
	case "windows":
		if version > 0 {
			return fmt.Sprintf("%s%s-%d%s", LibraryPrefix, name, version, LibraryExtension)
		}
		return fmt.Sprintf("%s%s%s", LibraryPrefix, name, LibraryExtension)
	default: // linux, freebsd
		if version > 0 {
			return fmt.Sprintf("%s%s%s.%d", LibraryPrefix, name, LibraryExtension, version)
		}
		return fmt.Sprintf("%s%s%s", LibraryPrefix, name, LibraryExtension)
	}
}

// GOOS returns the current operating system.
func GOOS() string {
	return runtime.GOOS
}

// GOARCH returns the current architecture.
func GOARCH() string {
	return runtime.GOARCH
}
