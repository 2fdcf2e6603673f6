// Package lifecycle implements the window display-state machine.
//
// States: normal, minimized, maximized, fullscreen. Transitions are pure
// functions taking and returning a Window by value; callers (the collection
// store) own locking and focus handoff.
//
// Saved geometry rules:
//   - Minimize and Maximize capture savedPosition/savedSize/previousState.
//     Minimize keeps an existing capture (a maximized window's pre-maximize
//     geometry survives a minimize cycle).
//   - Restoring to normal consumes the capture; restoring to
//     maximized/fullscreen keeps it for a later Unmaximize.
package lifecycle

import (
	"github.com/webdeskos/backend/internal/domain/geometry"
	"github.com/webdeskos/backend/internal/shared/types"
)

// Minimize drops the window from the render set, remembering where to come
// back to. Minimizing an already-minimized window is a no-op.
func Minimize(w types.Window) types.Window {
	if w.State == types.StateMinimized {
		return w
	}
	if !w.HasSavedGeometry() {
		pos, size := w.Position, w.Size
		w.SavedPosition = &pos
		w.SavedSize = &size
	}
	prev := w.State
	w.PreviousState = &prev
	w.State = types.StateMinimized
	w.Focused = false
	return w
}

// Restore brings a minimized window back into whichever state it was in
// before the minimize. A missing previousState defaults to normal. The
// caller focuses the window afterwards.
func Restore(w types.Window, vp types.Viewport, taskbarHeight int) types.Window {
	if w.State != types.StateMinimized {
		return w
	}

	target := types.StateNormal
	if w.PreviousState != nil {
		target = *w.PreviousState
	}
	w.PreviousState = nil

	switch target {
	case types.StateMaximized:
		w.State = types.StateMaximized
		w.Position, w.Size = geometry.MaximizedBounds(vp, taskbarHeight)
	case types.StateFullscreen:
		w.State = types.StateFullscreen
		w.Position, w.Size = geometry.FullscreenBounds(vp)
	default:
		w.State = types.StateNormal
		if w.SavedPosition != nil {
			w.Position = *w.SavedPosition
		}
		if w.SavedSize != nil {
			w.Size = *w.SavedSize
		}
		w.SavedPosition = nil
		w.SavedSize = nil
	}
	return w
}

// Maximize expands the window to the viewport minus the taskbar. The
// maximized geometry is derived, never persisted as user geometry.
func Maximize(w types.Window, vp types.Viewport, taskbarHeight int) types.Window {
	if w.State == types.StateMaximized {
		return w
	}
	captureGeometry(&w)
	w.State = types.StateMaximized
	w.Position, w.Size = geometry.MaximizedBounds(vp, taskbarHeight)
	return w
}

// Fullscreen expands the window to the entire viewport. Geometry behaves
// like maximized; rendering differs (no chrome), which is the frontend's
// concern.
func Fullscreen(w types.Window, vp types.Viewport) types.Window {
	if w.State == types.StateFullscreen {
		return w
	}
	captureGeometry(&w)
	w.State = types.StateFullscreen
	w.Position, w.Size = geometry.FullscreenBounds(vp)
	return w
}

// Unmaximize returns a maximized or fullscreen window to exactly its
// pre-transition geometry.
func Unmaximize(w types.Window) types.Window {
	if w.State != types.StateMaximized && w.State != types.StateFullscreen {
		return w
	}
	w.State = types.StateNormal
	if w.SavedPosition != nil {
		w.Position = *w.SavedPosition
	}
	if w.SavedSize != nil {
		w.Size = *w.SavedSize
	}
	w.SavedPosition = nil
	w.SavedSize = nil
	w.PreviousState = nil
	return w
}

// captureGeometry records current geometry unless a capture already exists
// (a fullscreen toggle on a maximized window keeps the original normal
// geometry).
func captureGeometry(w *types.Window) {
	if w.HasSavedGeometry() {
		return
	}
	pos, size := w.Position, w.Size
	w.SavedPosition = &pos
	w.SavedSize = &size
}
