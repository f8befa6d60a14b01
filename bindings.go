//go:build !ios && !android && (amd64 || arm64)

package nshgo

import (
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/obinnaokechukwu/nshgo/internal/bindings"
)

// Function bindings - registered when Init() is called.
//
// Every binding is nil-guarded at its call site so that calls made before a
// successful Init fail with ErrNotLoaded instead of crashing. Tests install
// fakes directly into these variables.
var (
	// Window
	nshWindowCreate         func() uintptr
	nshWindowDestroy        func(h uintptr)
	nshWindowAddListener    func(h uintptr, eventType int32, cb uintptr, userData uintptr) int64
	nshWindowRemoveListener func(h uintptr, id int64) bool
	nshWindowSetTitle       func(h uintptr, title string)
	nshWindowGetTitle       func(h uintptr, buf unsafe.Pointer, bufSize uintptr) int32
	nshWindowSetSize        func(h uintptr, width, height int32)
	nshWindowGetSize        func(h uintptr, width, height *int32)
	nshWindowSetPosition    func(h uintptr, x, y int32)
	nshWindowGetPosition    func(h uintptr, x, y *int32)
	nshWindowShow           func(h uintptr)
	nshWindowHide           func(h uintptr)
	nshWindowIsVisible      func(h uintptr) bool

	// Menu
	nshMenuCreate         func() uintptr
	nshMenuDestroy        func(h uintptr)
	nshMenuAddListener    func(h uintptr, eventType int32, cb uintptr, userData uintptr) int64
	nshMenuRemoveListener func(h uintptr, id int64) bool
	nshMenuAppendItem     func(h uintptr, item uintptr) int32
	nshMenuRemoveItem     func(h uintptr, item uintptr) int32

	// MenuItem
	nshMenuItemCreate         func(label string) uintptr
	nshMenuItemDestroy        func(h uintptr)
	nshMenuItemAddListener    func(h uintptr, eventType int32, cb uintptr, userData uintptr) int64
	nshMenuItemRemoveListener func(h uintptr, id int64) bool
	nshMenuItemSetLabel       func(h uintptr, label string)
	nshMenuItemGetLabel       func(h uintptr, buf unsafe.Pointer, bufSize uintptr) int32
	nshMenuItemSetEnabled     func(h uintptr, enabled bool)
	nshMenuItemIsEnabled      func(h uintptr) bool
	nshMenuItemSetChecked     func(h uintptr, checked bool)
	nshMenuItemIsChecked      func(h uintptr) bool
	nshMenuItemSetSubmenu     func(h uintptr, menu uintptr) int32

	// TrayIcon
	nshTrayCreate         func() uintptr
	nshTrayDestroy        func(h uintptr)
	nshTrayAddListener    func(h uintptr, eventType int32, cb uintptr, userData uintptr) int64
	nshTrayRemoveListener func(h uintptr, id int64) bool
	nshTraySetTooltip     func(h uintptr, tooltip string)
	nshTraySetIcon        func(h uintptr, rgba unsafe.Pointer, size uintptr, width, height int32) int32
	nshTraySetContextMenu func(h uintptr, menu uintptr) int32

	// Logging
	nshSetLogLevel    func(level int32)
	nshSetLogCallback func(cb uintptr)

	bindingsRegistered bool
)

func registerBindings() error {
	if bindingsRegistered {
		return nil
	}

	if err := bindings.Load(); err != nil {
		return err
	}

	lib := bindings.LibNativeShell()
	if lib == 0 {
		return ErrNotLoaded
	}

	purego.RegisterLibFunc(&nshWindowCreate, lib, "nsh_window_create")
	purego.RegisterLibFunc(&nshWindowDestroy, lib, "nsh_window_destroy")
	purego.RegisterLibFunc(&nshWindowAddListener, lib, "nsh_window_add_listener")
	purego.RegisterLibFunc(&nshWindowRemoveListener, lib, "nsh_window_remove_listener")
	purego.RegisterLibFunc(&nshWindowSetTitle, lib, "nsh_window_set_title")
	purego.RegisterLibFunc(&nshWindowGetTitle, lib, "nsh_window_get_title")
	purego.RegisterLibFunc(&nshWindowSetSize, lib, "nsh_window_set_size")
	purego.RegisterLibFunc(&nshWindowGetSize, lib, "nsh_window_get_size")
	purego.RegisterLibFunc(&nshWindowSetPosition, lib, "nsh_window_set_position")
	purego.RegisterLibFunc(&nshWindowGetPosition, lib, "nsh_window_get_position")
	purego.RegisterLibFunc(&nshWindowShow, lib, "nsh_window_show")
	purego.RegisterLibFunc(&nshWindowHide, lib, "nsh_window_hide")
	purego.RegisterLibFunc(&nshWindowIsVisible, lib, "nsh_window_is_visible")

	purego.RegisterLibFunc(&nshMenuCreate, lib, "nsh_menu_create")
	purego.RegisterLibFunc(&nshMenuDestroy, lib, "nsh_menu_destroy")
	purego.RegisterLibFunc(&nshMenuAddListener, lib, "nsh_menu_add_listener")
	purego.RegisterLibFunc(&nshMenuRemoveListener, lib, "nsh_menu_remove_listener")
	purego.RegisterLibFunc(&nshMenuAppendItem, lib, "nsh_menu_append_item")
	purego.RegisterLibFunc(&nshMenuRemoveItem, lib, "nsh_menu_remove_item")

	purego.RegisterLibFunc(&nshMenuItemCreate, lib, "nsh_menu_item_create")
	purego.RegisterLibFunc(&nshMenuItemDestroy, lib, "nsh_menu_item_destroy")
	purego.RegisterLibFunc(&nshMenuItemAddListener, lib, "nsh_menu_item_add_listener")
	purego.RegisterLibFunc(&nshMenuItemRemoveListener, lib, "nsh_menu_item_remove_listener")
	purego.RegisterLibFunc(&nshMenuItemSetLabel, lib, "nsh_menu_item_set_label")
	purego.RegisterLibFunc(&nshMenuItemGetLabel, lib, "nsh_menu_item_get_label")
	purego.RegisterLibFunc(&nshMenuItemSetEnabled, lib, "nsh_menu_item_set_enabled")
	purego.RegisterLibFunc(&nshMenuItemIsEnabled, lib, "nsh_menu_item_is_enabled")
	purego.RegisterLibFunc(&nshMenuItemSetChecked, lib, "nsh_menu_item_set_checked")
	purego.RegisterLibFunc(&nshMenuItemIsChecked, lib, "nsh_menu_item_is_checked")
	purego.RegisterLibFunc(&nshMenuItemSetSubmenu, lib, "nsh_menu_item_set_submenu")

	purego.RegisterLibFunc(&nshTrayCreate, lib, "nsh_tray_create")
	purego.RegisterLibFunc(&nshTrayDestroy, lib, "nsh_tray_destroy")
	purego.RegisterLibFunc(&nshTrayAddListener, lib, "nsh_tray_add_listener")
	purego.RegisterLibFunc(&nshTrayRemoveListener, lib, "nsh_tray_remove_listener")
	purego.RegisterLibFunc(&nshTraySetTooltip, lib, "nsh_tray_set_tooltip")
	purego.RegisterLibFunc(&nshTraySetIcon, lib, "nsh_tray_set_icon")
	purego.RegisterLibFunc(&nshTraySetContextMenu, lib, "nsh_tray_set_context_menu")

	purego.RegisterLibFunc(&nshSetLogLevel, lib, "nsh_set_log_level")
	purego.RegisterLibFunc(&nshSetLogCallback, lib, "nsh_set_log_callback")

	bindingsRegistered = true
	return nil
}
