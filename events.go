//go:build !ios && !android && (amd64 || arm64)

package nshgo

import (
	"unsafe"
)

// eventKind is the native event-type tag passed to nsh_*_add_listener.
// Tag values are per resource kind and match the nativeshell enums.
type eventKind int32

// Window event tags.
const (
	windowEventMoved eventKind = iota
	windowEventResized
	windowEventCloseRequested
	windowEventFocused
	windowEventBlurred
)

// Menu event tags.
const (
	menuEventOpened eventKind = iota
	menuEventClosed
)

// MenuItem event tags.
const (
	menuItemEventClicked eventKind = iota
)

// TrayIcon event tags.
const (
	trayEventClicked eventKind = iota
	trayEventRightClicked
	trayEventDoubleClicked
)

// MouseButton identifies which button triggered a tray icon click.
type MouseButton int32

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

// MoveEvent reports a window's new position.
type MoveEvent struct {
	X int
	Y int
}

// ResizeEvent reports a window's new content size.
type ResizeEvent struct {
	Width  int
	Height int
}

// CloseRequestedEvent reports that the user asked to close a window.
// The window is not closed until the application disposes it.
type CloseRequestedEvent struct{}

// FocusEvent reports a window gaining or losing input focus.
type FocusEvent struct {
	Focused bool
}

// MenuEvent reports a menu opening or closing.
type MenuEvent struct{}

// ClickEvent reports a menu item activation.
type ClickEvent struct{}

// TrayClickEvent reports a click on a tray icon.
type TrayClickEvent struct {
	Button MouseButton
	X      float64
	Y      float64
}

// Native event payload struct field offsets, fixed by the nativeshell ABI.
// The first field of every payload is the originating resource's int32 id;
// the wrapper identity already carries that, so decoding skips it.
const (
	offsetEventResourceID = 0

	// nsh_window_move_event: { int32 id; int32 x; int32 y; }
	offsetMoveX = 4
	offsetMoveY = 8

	// nsh_window_resize_event: { int32 id; int32 width; int32 height; }
	offsetResizeWidth  = 4
	offsetResizeHeight = 8

	// nsh_tray_mouse_event: { int32 id; int32 button; double x; double y; }
	offsetTrayButton = 4
	offsetTrayX      = 8
	offsetTrayY      = 16
)

func decodeMoveEvent(ev unsafe.Pointer) MoveEvent {
	if ev == nil {
		return MoveEvent{}
	}
	return MoveEvent{
		X: int(*(*int32)(unsafe.Pointer(uintptr(ev) + offsetMoveX))),
		Y: int(*(*int32)(unsafe.Pointer(uintptr(ev) + offsetMoveY))),
	}
}

func decodeResizeEvent(ev unsafe.Pointer) ResizeEvent {
	if ev == nil {
		return ResizeEvent{}
	}
	return ResizeEvent{
		Width:  int(*(*int32)(unsafe.Pointer(uintptr(ev) + offsetResizeWidth))),
		Height: int(*(*int32)(unsafe.Pointer(uintptr(ev) + offsetResizeHeight))),
	}
}

func decodeTrayClickEvent(ev unsafe.Pointer) TrayClickEvent {
	if ev == nil {
		return TrayClickEvent{}
	}
	return TrayClickEvent{
		Button: MouseButton(*(*int32)(unsafe.Pointer(uintptr(ev) + offsetTrayButton))),
		X:      *(*float64)(unsafe.Pointer(uintptr(ev) + offsetTrayX)),
		Y:      *(*float64)(unsafe.Pointer(uintptr(ev) + offsetTrayY)),
	}
}
