package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/webdeskos/backend/internal/shared/types"
)

var (
	vp      = types.Viewport{Width: 1920, Height: 1080}
	taskbar = 48
)

func TestCascadePosition(t *testing.T) {
	first := CascadePosition(0, vp, taskbar)
	assert.Equal(t, types.Position{X: 100, Y: 50}, first)

	second := CascadePosition(1, vp, taskbar)
	assert.Equal(t, types.Position{X: 130, Y: 80}, second)

	tenth := CascadePosition(9, vp, taskbar)
	assert.Equal(t, types.Position{X: 370, Y: 320}, tenth)
}

func TestCascadeWrapsEveryTen(t *testing.T) {
	// The 11th window (10 existing) restarts the cascade at the 1st's spot.
	assert.Equal(t, CascadePosition(0, vp, taskbar), CascadePosition(10, vp, taskbar))
	assert.Equal(t, CascadePosition(3, vp, taskbar), CascadePosition(13, vp, taskbar))
}

func TestCascadeTinyViewport(t *testing.T) {
	small := types.Viewport{Width: 300, Height: 200}
	pos := CascadePosition(9, small, taskbar)
	assert.Equal(t, small.Width-MinVisibleEdge, pos.X)
	assert.Equal(t, 52, pos.Y) // max(50, 200-48-100)
}

func TestClampToViewport(t *testing.T) {
	size := types.Size{Width: 800, Height: 600}

	// Inside bounds: untouched.
	pos := ClampToViewport(types.Position{X: 200, Y: 100}, size, vp, taskbar)
	assert.Equal(t, types.Position{X: 200, Y: 100}, pos)

	// Too far right: at least 100px must stay visible.
	pos = ClampToViewport(types.Position{X: 5000, Y: 100}, size, vp, taskbar)
	assert.Equal(t, vp.Width-MinVisibleEdge, pos.X)

	// Hanging off the left edge is permitted up to width-100.
	pos = ClampToViewport(types.Position{X: -5000, Y: 100}, size, vp, taskbar)
	assert.Equal(t, -size.Width+MinVisibleEdge, pos.X)

	// Never above the top.
	pos = ClampToViewport(types.Position{X: 200, Y: -50}, size, vp, taskbar)
	assert.Equal(t, 0, pos.Y)

	// Always leaves room above the taskbar.
	pos = ClampToViewport(types.Position{X: 200, Y: 5000}, size, vp, taskbar)
	assert.Equal(t, vp.Height-taskbar-MinVisibleEdge, pos.Y)
}

func TestClampToViewportDegenerate(t *testing.T) {
	// A viewport shorter than the taskbar clearance still allows y=50.
	tiny := types.Viewport{Width: 640, Height: 120}
	pos := ClampToViewport(types.Position{X: 0, Y: 400}, types.Size{Width: 400, Height: 300}, tiny, taskbar)
	assert.Equal(t, 50, pos.Y)
}

func TestClampSize(t *testing.T) {
	ceiling := MaxSizeFor(vp, taskbar)

	// Below the usability floor.
	size := ClampSize(types.Size{Width: 10, Height: 10}, MinWindowSize, ceiling)
	assert.Equal(t, MinWindowSize, size)

	// Above the visible area.
	size = ClampSize(types.Size{Width: 9000, Height: 9000}, MinWindowSize, ceiling)
	assert.Equal(t, ceiling, size)

	// In range: untouched.
	size = ClampSize(types.Size{Width: 800, Height: 600}, MinWindowSize, ceiling)
	assert.Equal(t, types.Size{Width: 800, Height: 600}, size)
}

func TestMaximizedBounds(t *testing.T) {
	pos, size := MaximizedBounds(vp, taskbar)
	assert.Equal(t, types.Position{}, pos)
	assert.Equal(t, types.Size{Width: 1920, Height: 1032}, size)

	pos, size = FullscreenBounds(vp)
	assert.Equal(t, types.Position{}, pos)
	assert.Equal(t, types.Size{Width: 1920, Height: 1080}, size)
}
