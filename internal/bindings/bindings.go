//go:build !ios && !android && (amd64 || arm64)

// Package bindings handles loading the nativeshell shared library and exposes
// the raw library handle for symbol registration via purego.
package bindings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/ebitengine/purego"

	"github.com/obinnaokechukwu/nshgo/internal/platform"
)

// ErrNotLoaded is returned when nativeshell functions are called before Load().
var ErrNotLoaded = errors.New("nshgo: nativeshell library not loaded; call nshgo.Init() first")

// ErrLibraryNotFound is returned when the nativeshell library cannot be found.
var ErrLibraryNotFound = errors.New("nshgo: nativeshell library not found")

// nativeshell ABI versions to probe, newest first.
var libVersions = []int{1}

var (
	libNativeShell uintptr

	loaded   bool
	loadOnce sync.Once
	loadErr  error

	nshVersion func() uint32
)

// IsLoaded returns true if the nativeshell library has been successfully loaded.
func IsLoaded() bool {
	return loaded
}

// Load loads the nativeshell library and registers the version binding.
// It is safe to call multiple times; subsequent calls are no-ops.
// Returns an error if the library cannot be found or loaded.
func Load() error {
	loadOnce.Do(func() {
		loadErr = doLoad()
		if loadErr == nil {
			loaded = true
		}
	})
	return loadErr
}

func doLoad() error {
	lib, err := loadLibrary("nativeshell", libVersions)
	if err != nil {
		return fmt.Errorf("loading libnativeshell: %w", err)
	}
	libNativeShell = lib

	purego.RegisterLibFunc(&nshVersion, libNativeShell, "nsh_version")
	return nil
}

// loadLibrary attempts to load a library by trying versioned names.
func loadLibrary(name string, versions []int) (uintptr, error) {
	// Try each search path
	for _, searchPath := range LibrarySearchPaths() {
		// Try versioned names first (more specific)
		for _, ver := range versions {
			libName := platform.FormatLibraryName(name, ver)
			fullPath := filepath.Join(searchPath, libName)

			lib, err := tryOpen(fullPath)
			if err == nil {
				return lib, nil
			}
		}

		// Try unversioned name
		libName := platform.FormatLibraryName(name, 0)
		fullPath := filepath.Join(searchPath, libName)
		lib, err := tryOpen(fullPath)
		if err == nil {
			return lib, nil
		}
	}

	// Try just the library name (let the system find it)
	for _, ver := range versions {
		libName := platform.FormatLibraryName(name, ver)
		lib, err := tryOpen(libName)
		if err == nil {
			return lib, nil
		}
	}

	// Try unversioned
	libName := platform.FormatLibraryName(name, 0)
	lib, err := tryOpen(libName)
	if err == nil {
		return lib, nil
	}

	return 0, fmt.Errorf("%w: %s", ErrLibraryNotFound, name)
}

func tryOpen(path string) (uintptr, error) {
	lib, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return 0, err
	}
	return lib, nil
}

// FindLibrary searches for the nativeshell library and returns its full path.
// This is useful for diagnostics.
func FindLibrary(name string, versions []int) (string, error) {
	for _, searchPath := range LibrarySearchPaths() {
		for _, ver := range versions {
			libName := platform.FormatLibraryName(name, ver)
			fullPath := filepath.Join(searchPath, libName)
			if _, err := os.Stat(fullPath); err == nil {
				return fullPath, nil
			}
		}
		// Try unversioned
		libName := platform.FormatLibraryName(name, 0)
		fullPath := filepath.Join(searchPath, libName)
		if _, err := os.Stat(fullPath); err == nil {
			return fullPath, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrLibraryNotFound, name)
}

// LibrarySearchPaths returns platform-specific library search paths.
func LibrarySearchPaths() []string {
	var paths []string

	switch runtime.GOOS {
	case "linux":
		// Check LD_LIBRARY_PATH first
		if ldPath := os.Getenv("LD_LIBRARY_PATH"); ldPath != "" {
			paths = append(paths, filepath.SplitList(ldPath)...)
		}
		// Standard paths
		paths = append(paths,
			"/usr/lib/x86_64-linux-gnu",
			"/usr/lib/aarch64-linux-gnu",
			"/usr/local/lib",
			"/usr/lib",
			"/lib/x86_64-linux-gnu",
			"/lib",
		)

	case "darwin":
		// Check DYLD_LIBRARY_PATH first
		if dyldPath := os.Getenv("DYLD_LIBRARY_PATH"); dyldPath != "" {
			paths = append(paths, filepath.SplitList(dyldPath)...)
		}
		// Homebrew paths
		paths = append(paths,
			"/opt/homebrew/lib", // Apple Silicon
			"/usr/local/lib",    // Intel
		)

	case "windows":
		// Check PATH
		if winPath := os.Getenv("PATH"); winPath != "" {
			paths = append(paths, filepath.SplitList(winPath)...)
		}
		// Executable directory
		if exe, err := os.Executable(); err == nil {
			paths = append(paths, filepath.Dir(exe))
		}

	case "freebsd":
		if ldPath := os.Getenv("LD_LIBRARY_PATH"); ldPath != "" {
			paths = append(paths, filepath.SplitList(ldPath)...)
		}
		paths = append(paths,
			"/usr/local/lib",
			"/usr/lib",
		)
	}

	return paths
}

// Version returns the nativeshell library version.
// Returns 0 if the library is not loaded.
func Version() uint32 {
	if !loaded || nshVersion == nil {
		return 0
	}
	return nshVersion()
}

// LibNativeShell returns the nativeshell library handle.
func LibNativeShell() uintptr {
	return libNativeShell
}
