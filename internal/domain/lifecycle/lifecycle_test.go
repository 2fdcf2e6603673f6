package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/webdeskos/backend/internal/shared/types"
)

var (
	vp      = types.Viewport{Width: 1920, Height: 1080}
	taskbar = 48
)

func normalWindow() types.Window {
	return types.Window{
		ID:       "win_1",
		AppID:    "notes",
		Position: types.Position{X: 50, Y: 50},
		Size:     types.Size{Width: 800, Height: 600},
		State:    types.StateNormal,
		Focused:  true,
		ZIndex:   100,
	}
}

func TestMinimizeThenRestoreIsGeometryIdempotent(t *testing.T) {
	w := normalWindow()

	min := Minimize(w)
	assert.Equal(t, types.StateMinimized, min.State)
	assert.False(t, min.Focused)
	assert.Equal(t, w.Position, min.Position) // geometry untouched while minimized
	assert.Equal(t, types.StateNormal, *min.PreviousState)

	restored := Restore(min, vp, taskbar)
	assert.Equal(t, types.StateNormal, restored.State)
	assert.Equal(t, types.Position{X: 50, Y: 50}, restored.Position)
	assert.Equal(t, types.Size{Width: 800, Height: 600}, restored.Size)
	assert.Nil(t, restored.SavedPosition)
	assert.Nil(t, restored.PreviousState)
}

func TestMaximizeThenRestoreReturnsExactGeometry(t *testing.T) {
	w := normalWindow()
	w.Position = types.Position{X: 333, Y: 77}
	w.Size = types.Size{Width: 512, Height: 384}

	maxed := Maximize(w, vp, taskbar)
	assert.Equal(t, types.StateMaximized, maxed.State)
	assert.Equal(t, types.Position{}, maxed.Position)
	assert.Equal(t, types.Size{Width: 1920, Height: 1032}, maxed.Size)

	back := Unmaximize(maxed)
	assert.Equal(t, types.StateNormal, back.State)
	assert.Equal(t, types.Position{X: 333, Y: 77}, back.Position)
	assert.Equal(t, types.Size{Width: 512, Height: 384}, back.Size)
}

func TestMinimizedMaximizedWindowRestoresToMaximized(t *testing.T) {
	w := Maximize(normalWindow(), vp, taskbar)
	min := Minimize(w)
	assert.Equal(t, types.StateMaximized, *min.PreviousState)

	// The pre-maximize capture survives the minimize cycle.
	assert.Equal(t, types.Position{X: 50, Y: 50}, *min.SavedPosition)

	restored := Restore(min, vp, taskbar)
	assert.Equal(t, types.StateMaximized, restored.State)
	assert.Equal(t, types.Size{Width: 1920, Height: 1032}, restored.Size)

	// Unmaximize still lands on the original normal geometry.
	back := Unmaximize(restored)
	assert.Equal(t, types.Position{X: 50, Y: 50}, back.Position)
	assert.Equal(t, types.Size{Width: 800, Height: 600}, back.Size)
}

func TestRestoreWithoutPreviousStateDefaultsToNormal(t *testing.T) {
	w := normalWindow()
	w.State = types.StateMinimized
	w.PreviousState = nil

	restored := Restore(w, vp, taskbar)
	assert.Equal(t, types.StateNormal, restored.State)
}

func TestFullscreenMirrorsMaximize(t *testing.T) {
	w := normalWindow()

	fs := Fullscreen(w, vp)
	assert.Equal(t, types.StateFullscreen, fs.State)
	assert.Equal(t, types.Size{Width: 1920, Height: 1080}, fs.Size)

	back := Unmaximize(fs)
	assert.Equal(t, types.StateNormal, back.State)
	assert.Equal(t, w.Position, back.Position)
	assert.Equal(t, w.Size, back.Size)
}

func TestMinimizeIsNoOpWhenAlreadyMinimized(t *testing.T) {
	w := Minimize(normalWindow())
	again := Minimize(w)
	assert.Equal(t, w, again)
}

func TestRestoreIsNoOpWhenNotMinimized(t *testing.T) {
	w := normalWindow()
	assert.Equal(t, w, Restore(w, vp, taskbar))
}
