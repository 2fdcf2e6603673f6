package desktop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webdeskos/backend/internal/domain/stacking"
	"github.com/webdeskos/backend/internal/shared/types"
)

func TestLaunchFirstWindow(t *testing.T) {
	m := NewManager()

	w, err := m.Launch("calculator", "Calculator", "", nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "calculator", w.AppID)
	assert.Equal(t, types.Position{X: 100, Y: 50}, w.Position)
	assert.Equal(t, types.StateNormal, w.State)
	assert.Equal(t, 100, w.ZIndex)
	assert.True(t, w.Focused)
}

func TestLaunchSecondWindowCascadesAndStealsFocus(t *testing.T) {
	m := NewManager()

	first, err := m.Launch("calculator", "Calculator", "", nil, nil)
	require.NoError(t, err)
	second, err := m.Launch("notes", "Notes", "", nil, nil)
	require.NoError(t, err)

	assert.Equal(t, types.Position{X: 130, Y: 80}, second.Position)
	assert.Equal(t, 101, second.ZIndex)
	assert.True(t, second.Focused)

	updated, ok := m.Get(first.ID)
	require.True(t, ok)
	assert.False(t, updated.Focused)
}

func TestAtMostOneFocused(t *testing.T) {
	m := NewManager()

	var ids []string
	for i := 0; i < 5; i++ {
		w, err := m.Launch("app", "App", "", nil, nil)
		require.NoError(t, err)
		ids = append(ids, w.ID)
	}

	_, err := m.Focus(ids[2])
	require.NoError(t, err)

	focused := 0
	for _, w := range m.List() {
		if w.Focused {
			focused++
			assert.Equal(t, ids[2], w.ID)
		}
	}
	assert.Equal(t, 1, focused)
}

func TestFocusAssignsTopZIndex(t *testing.T) {
	m := NewManager()

	a, _ := m.Launch("a", "A", "", nil, nil)
	b, _ := m.Launch("b", "B", "", nil, nil)

	refocused, err := m.Focus(a.ID)
	require.NoError(t, err)
	assert.Greater(t, refocused.ZIndex, b.ZIndex)
}

func TestMoveClampsToViewport(t *testing.T) {
	m := NewManager()
	w, _ := m.Launch("a", "A", "", nil, &types.Size{Width: 800, Height: 600})

	moved, err := m.Move(w.ID, types.Position{X: 99999, Y: -50})
	require.NoError(t, err)
	assert.Equal(t, DefaultViewport.Width-100, moved.Position.X)
	assert.Equal(t, 0, moved.Position.Y)
}

func TestResizeEnforcesFloor(t *testing.T) {
	m := NewManager()
	w, _ := m.Launch("a", "A", "", nil, nil)

	resized, err := m.Resize(w.ID, nil, types.Size{Width: 1, Height: 1})
	require.NoError(t, err)
	assert.Equal(t, types.Size{Width: 400, Height: 300}, resized.Size)
}

func TestMinimizeRestoreRoundTrip(t *testing.T) {
	m := NewManager()
	pos := types.Position{X: 50, Y: 50}
	size := types.Size{Width: 800, Height: 600}
	w, _ := m.Launch("notes", "Notes", "", &pos, &size)

	min, err := m.Minimize(w.ID)
	require.NoError(t, err)
	assert.Equal(t, types.StateMinimized, min.State)
	assert.False(t, min.Focused)

	// Minimized windows stay in the collection but leave the render set.
	assert.Len(t, m.List(), 1)
	assert.Empty(t, m.Visible())

	restored, err := m.Restore(w.ID)
	require.NoError(t, err)
	assert.Equal(t, types.StateNormal, restored.State)
	assert.Equal(t, pos, restored.Position)
	assert.Equal(t, size, restored.Size)
	assert.True(t, restored.Focused)
}

func TestCloseFocusedLeavesFocusUnset(t *testing.T) {
	m := NewManager()
	m.Launch("a", "A", "", nil, nil)
	b, _ := m.Launch("b", "B", "", nil, nil)

	require.NoError(t, m.Close(b.ID))

	stats := m.Stats()
	assert.Nil(t, stats.FocusedWindowID)
	assert.Equal(t, 1, stats.TotalWindows)

	for _, w := range m.List() {
		assert.False(t, w.Focused)
	}
}

func TestCloseUnknownWindow(t *testing.T) {
	m := NewManager()
	err := m.Close("win_missing")
	assert.Error(t, err)
}

func TestCompactionAfterThreshold(t *testing.T) {
	m := NewManager()

	a, _ := m.Launch("a", "A", "", nil, nil)
	b, _ := m.Launch("b", "B", "", nil, nil)
	c, _ := m.Launch("c", "C", "", nil, nil)

	// Drive the counter past the threshold by refocusing until the
	// counter resets, which marks the compaction.
	order := []string{a.ID, b.ID, c.ID}
	prev := m.Stats().NextZIndex
	compacted := false
	for i := 0; i < 2*stacking.CompactThreshold; i++ {
		_, err := m.Focus(order[i%3])
		require.NoError(t, err)
		next := m.Stats().NextZIndex
		if next < prev {
			compacted = true
			break
		}
		prev = next
	}
	require.True(t, compacted)

	stats := m.Stats()
	assert.Equal(t, stacking.BaseZ+3, stats.NextZIndex)

	minZ := 1 << 30
	zs := make(map[int]bool)
	for _, w := range m.List() {
		if w.ZIndex < minZ {
			minZ = w.ZIndex
		}
		assert.False(t, zs[w.ZIndex], "z-indices must be unique after compaction")
		zs[w.ZIndex] = true
	}
	assert.Equal(t, 100, minZ)

	// The most recently focused window is still on top.
	var top types.Window
	for _, w := range m.List() {
		if w.ZIndex > top.ZIndex {
			top = w
		}
	}
	assert.True(t, top.Focused)
}

func TestHydrateReestablishesInvariants(t *testing.T) {
	m := NewManager()

	m.Hydrate([]types.Window{
		{ID: "w1", AppID: "a", ZIndex: 100, Focused: true, State: types.StateNormal,
			Position: types.Position{X: 10, Y: 10}, Size: types.Size{Width: 400, Height: 300}},
		{ID: "w2", AppID: "b", ZIndex: 205, Focused: true, State: types.StateNormal,
			Position: types.Position{X: 20, Y: 20}, Size: types.Size{Width: 400, Height: 300}},
	})

	// Only the topmost focused row keeps focus.
	w1, _ := m.Get("w1")
	w2, _ := m.Get("w2")
	assert.False(t, w1.Focused)
	assert.True(t, w2.Focused)

	// New windows stack above hydrated ones.
	w, err := m.Launch("c", "C", "", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 206, w.ZIndex)
}

func TestStats(t *testing.T) {
	m := NewManager()
	a, _ := m.Launch("a", "A", "", nil, nil)
	m.Launch("b", "B", "", nil, nil)
	m.Minimize(a.ID)

	stats := m.Stats()
	assert.Equal(t, 2, stats.TotalWindows)
	assert.Equal(t, 1, stats.VisibleWindows)
	assert.Equal(t, 1, stats.MinimizedWindows)
	require.NotNil(t, stats.FocusedWindowID)
}
