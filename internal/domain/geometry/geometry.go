// Package geometry implements window placement math: cascade positions for
// new windows and viewport clamping for existing ones.
//
// All functions are pure. ClampToViewport is the single source of truth for
// "window must remain reachable" and is invoked at creation time and after
// every drag-stop, never during a drag.
package geometry

import (
	"github.com/webdeskos/backend/internal/shared/types"
)

// Cascade placement constants.
const (
	CascadeBaseX = 100
	CascadeBaseY = 50
	CascadeStep  = 30
	CascadeWrap  = 10 // Every 10th window restarts the cascade
)

// MinVisibleEdge is the horizontal strip of a window that must stay on
// screen, and the clearance kept above the taskbar.
const MinVisibleEdge = 100

// MinWindowSize is the usability floor for window dimensions.
var MinWindowSize = types.Size{Width: 400, Height: 300}

// CascadePosition computes the starting position for the nth new window.
// Positions stagger diagonally from (100, 50) and wrap every CascadeWrap
// windows so the cascade never drifts off-screen. The result is kept inside
// the reachable band of the viewport.
func CascadePosition(existing int, vp types.Viewport, taskbarHeight int) types.Position {
	step := CascadeStep * (existing % CascadeWrap)
	pos := types.Position{
		X: CascadeBaseX + step,
		Y: CascadeBaseY + step,
	}

	if maxX := vp.Width - MinVisibleEdge; pos.X > maxX {
		pos.X = max(0, maxX)
	}
	if maxY := maxTop(vp, taskbarHeight); pos.Y > maxY {
		pos.Y = maxY
	}
	return pos
}

// ClampToViewport clamps pos so the window stays reachable: at least
// MinVisibleEdge pixels visible on the right, never above the top, and room
// left above the taskbar. The window may hang off the left edge.
func ClampToViewport(pos types.Position, size types.Size, vp types.Viewport, taskbarHeight int) types.Position {
	minX := -size.Width + MinVisibleEdge
	maxX := vp.Width - MinVisibleEdge
	pos.X = clamp(pos.X, minX, maxX)

	pos.Y = clamp(pos.Y, 0, maxTop(vp, taskbarHeight))
	return pos
}

// ClampSize clamps size between a usability floor and a ceiling.
func ClampSize(size, min, max types.Size) types.Size {
	size.Width = clamp(size.Width, min.Width, max.Width)
	size.Height = clamp(size.Height, min.Height, max.Height)
	return size
}

// MaxSizeFor returns the size ceiling derived from the viewport: a window
// can never exceed the visible area above the taskbar.
func MaxSizeFor(vp types.Viewport, taskbarHeight int) types.Size {
	return types.Size{
		Width:  max(MinWindowSize.Width, vp.Width),
		Height: max(MinWindowSize.Height, vp.Height-taskbarHeight),
	}
}

// MaximizedBounds returns the geometry of a maximized window: the full
// viewport minus the taskbar, anchored at the origin.
func MaximizedBounds(vp types.Viewport, taskbarHeight int) (types.Position, types.Size) {
	return types.Position{}, types.Size{Width: vp.Width, Height: vp.Height - taskbarHeight}
}

// FullscreenBounds returns the geometry of a fullscreen window: the entire
// viewport, taskbar included.
func FullscreenBounds(vp types.Viewport) (types.Position, types.Size) {
	return types.Position{}, types.Size{Width: vp.Width, Height: vp.Height}
}

// maxTop is the lowest y a window's top edge may take: never above the top,
// always leaving MinVisibleEdge pixels of clearance above the taskbar, with
// a 50px floor for degenerate viewports.
func maxTop(vp types.Viewport, taskbarHeight int) int {
	return max(CascadeBaseY, vp.Height-taskbarHeight-MinVisibleEdge)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
