package desktop

import (
	"sync"

	"github.com/webdeskos/backend/internal/domain/geometry"
	"github.com/webdeskos/backend/internal/domain/lifecycle"
	"github.com/webdeskos/backend/internal/domain/stacking"
	"github.com/webdeskos/backend/internal/infrastructure/monitoring"
	"github.com/webdeskos/backend/internal/shared/errs"
	"github.com/webdeskos/backend/internal/shared/id"
	"github.com/webdeskos/backend/internal/shared/types"
)

// DefaultTaskbarHeight is used until the client reports its real layout.
const DefaultTaskbarHeight = 48

// DefaultViewport is used until the client reports its real size.
var DefaultViewport = types.Viewport{Width: 1920, Height: 1080}

// Manager is the authoritative in-memory window collection for a session.
type Manager struct {
	mu            sync.RWMutex
	windows       map[string]*types.Window // Protected by mu
	focusedID     *string                  // Protected by mu
	alloc         *stacking.Allocator      // Protected by mu
	viewport      types.Viewport
	taskbarHeight int
	metrics       *monitoring.Metrics
}

// NewManager creates an empty window collection.
func NewManager() *Manager {
	return &Manager{
		windows:       make(map[string]*types.Window),
		alloc:         stacking.NewAllocator(),
		viewport:      DefaultViewport,
		taskbarHeight: DefaultTaskbarHeight,
	}
}

// WithMetrics adds metrics tracking to the manager.
func (m *Manager) WithMetrics(metrics *monitoring.Metrics) *Manager {
	m.metrics = metrics
	return m
}

// SetViewport updates the viewport the clamping math works against.
func (m *Manager) SetViewport(vp types.Viewport, taskbarHeight int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if vp.Width > 0 && vp.Height > 0 {
		m.viewport = vp
	}
	if taskbarHeight >= 0 {
		m.taskbarHeight = taskbarHeight
	}
}

// Launch creates a new window for an app. Without explicit geometry the
// window lands on the cascade; explicit geometry is clamped. New windows
// are always created focused and on top.
func (m *Manager) Launch(appID, title, icon string, pos *types.Position, size *types.Size) (*types.Window, error) {
	if appID == "" {
		return nil, errs.Invalid("appId", "must not be empty")
	}
	if title == "" {
		title = appID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	winSize := types.Size{Width: 800, Height: 600}
	if size != nil {
		winSize = *size
	}
	winSize = geometry.ClampSize(winSize, geometry.MinWindowSize, geometry.MaxSizeFor(m.viewport, m.taskbarHeight))

	var winPos types.Position
	if pos != nil {
		winPos = geometry.ClampToViewport(*pos, winSize, m.viewport, m.taskbarHeight)
	} else {
		winPos = geometry.CascadePosition(len(m.windows), m.viewport, m.taskbarHeight)
	}

	w := &types.Window{
		ID:       id.NewWindowID().String(),
		AppID:    appID,
		Title:    title,
		Icon:     icon,
		Position: winPos,
		Size:     winSize,
		State:    types.StateNormal,
	}

	m.windows[w.ID] = w
	m.focusLocked(w)

	if m.metrics != nil {
		m.metrics.WindowsCreated.Inc()
		m.metrics.WindowsActive.Set(float64(len(m.windows)))
	}

	out := *w
	return &out, nil
}

// Get retrieves a window by ID.
func (m *Manager) Get(windowID string) (*types.Window, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	w, ok := m.windows[windowID]
	if !ok {
		return nil, false
	}
	out := *w
	return &out, true
}

// List returns copies of every window in the collection, minimized included.
func (m *Manager) List() []types.Window {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]types.Window, 0, len(m.windows))
	for _, w := range m.windows {
		out = append(out, *w)
	}
	return out
}

// Visible returns copies of the windows in the render set.
func (m *Manager) Visible() []types.Window {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]types.Window, 0, len(m.windows))
	for _, w := range m.windows {
		if w.Visible() {
			out = append(out, *w)
		}
	}
	return out
}

// Focus brings a window to the foreground and gives it exclusive focus.
func (m *Manager) Focus(windowID string) (*types.Window, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.windows[windowID]
	if !ok {
		return nil, errs.NotFound("window", windowID)
	}

	m.focusLocked(w)
	out := *w
	return &out, nil
}

// Move commits a drag-stop: the new position is clamped so the window stays
// reachable. Intermediate drag frames never reach the store.
func (m *Manager) Move(windowID string, pos types.Position) (*types.Window, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.windows[windowID]
	if !ok {
		return nil, errs.NotFound("window", windowID)
	}
	if w.State != types.StateNormal {
		return nil, errs.Invalid("state", "only normal windows can be moved")
	}

	w.Position = geometry.ClampToViewport(pos, w.Size, m.viewport, m.taskbarHeight)
	out := *w
	return &out, nil
}

// Resize commits a resize-stop, clamping both size and resulting position.
func (m *Manager) Resize(windowID string, pos *types.Position, size types.Size) (*types.Window, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.windows[windowID]
	if !ok {
		return nil, errs.NotFound("window", windowID)
	}
	if w.State != types.StateNormal {
		return nil, errs.Invalid("state", "only normal windows can be resized")
	}

	w.Size = geometry.ClampSize(size, geometry.MinWindowSize, geometry.MaxSizeFor(m.viewport, m.taskbarHeight))
	if pos != nil {
		w.Position = *pos
	}
	w.Position = geometry.ClampToViewport(w.Position, w.Size, m.viewport, m.taskbarHeight)
	out := *w
	return &out, nil
}

// Minimize drops a window from the render set. It keeps its place in the
// collection and on the taskbar.
func (m *Manager) Minimize(windowID string) (*types.Window, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.windows[windowID]
	if !ok {
		return nil, errs.NotFound("window", windowID)
	}

	*w = lifecycle.Minimize(*w)
	if m.focusedID != nil && *m.focusedID == windowID {
		m.focusedID = nil
	}
	out := *w
	return &out, nil
}

// Restore un-minimizes a window back into its previous state and focuses it.
func (m *Manager) Restore(windowID string) (*types.Window, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.windows[windowID]
	if !ok {
		return nil, errs.NotFound("window", windowID)
	}

	*w = lifecycle.Restore(*w, m.viewport, m.taskbarHeight)
	m.focusLocked(w)
	out := *w
	return &out, nil
}

// Maximize expands a window to the viewport minus the taskbar.
func (m *Manager) Maximize(windowID string) (*types.Window, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.windows[windowID]
	if !ok {
		return nil, errs.NotFound("window", windowID)
	}

	*w = lifecycle.Maximize(*w, m.viewport, m.taskbarHeight)
	m.focusLocked(w)
	out := *w
	return &out, nil
}

// Unmaximize returns a maximized or fullscreen window to its saved geometry.
func (m *Manager) Unmaximize(windowID string) (*types.Window, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.windows[windowID]
	if !ok {
		return nil, errs.NotFound("window", windowID)
	}

	*w = lifecycle.Unmaximize(*w)
	out := *w
	return &out, nil
}

// SetFullscreen expands a window to the entire viewport.
func (m *Manager) SetFullscreen(windowID string) (*types.Window, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.windows[windowID]
	if !ok {
		return nil, errs.NotFound("window", windowID)
	}

	*w = lifecycle.Fullscreen(*w, m.viewport)
	m.focusLocked(w)
	out := *w
	return &out, nil
}

// Close removes a window from the collection. If it held focus, focus
// becomes unset; no other window is auto-focused.
func (m *Manager) Close(windowID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.windows[windowID]; !ok {
		return errs.NotFound("window", windowID)
	}
	delete(m.windows, windowID)

	if m.focusedID != nil && *m.focusedID == windowID {
		m.focusedID = nil
	}
	if m.metrics != nil {
		m.metrics.WindowsActive.Set(float64(len(m.windows)))
	}
	return nil
}

// CloseAll empties the collection.
func (m *Manager) CloseAll() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := len(m.windows)
	m.windows = make(map[string]*types.Window)
	m.focusedID = nil
	m.alloc = stacking.NewAllocator()
	if m.metrics != nil {
		m.metrics.WindowsActive.Set(0)
	}
	return n
}

// Hydrate seeds the collection from persisted rows, replacing any current
// contents. The z-index counter resumes above the highest persisted index,
// and the single-focus invariant is re-established (keeping only the
// topmost focused row focused).
func (m *Manager) Hydrate(windows []types.Window) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.windows = make(map[string]*types.Window, len(windows))
	m.focusedID = nil

	var topFocused *types.Window
	for i := range windows {
		w := windows[i]
		if w.ID == "" {
			w.ID = id.NewWindowID().String()
		}
		stored := w
		m.windows[stored.ID] = &stored
		if stored.Focused && (topFocused == nil || stored.ZIndex > topFocused.ZIndex) {
			topFocused = &stored
		}
	}
	for _, w := range m.windows {
		w.Focused = topFocused != nil && w.ID == topFocused.ID
	}
	if topFocused != nil {
		focusedID := topFocused.ID
		m.focusedID = &focusedID
	}

	m.alloc.Restore(windows)
	if m.metrics != nil {
		m.metrics.WindowsActive.Set(float64(len(m.windows)))
	}
}

// Snapshot returns every window for a bulk sync to the persistence service.
func (m *Manager) Snapshot() []types.Window {
	return m.List()
}

// Stats returns collection statistics.
func (m *Manager) Stats() types.Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var visible, minimized int
	for _, w := range m.windows {
		if w.Visible() {
			visible++
		} else {
			minimized++
		}
	}

	var focusedID *string
	if m.focusedID != nil {
		fid := *m.focusedID
		focusedID = &fid
	}

	return types.Stats{
		TotalWindows:     len(m.windows),
		VisibleWindows:   visible,
		MinimizedWindows: minimized,
		FocusedWindowID:  focusedID,
		NextZIndex:       m.alloc.Next(),
	}
}

// focusLocked gives w exclusive focus and the top z-index, compacting the
// collection synchronously if the counter just crossed the threshold.
// Must hold mu.
func (m *Manager) focusLocked(w *types.Window) {
	for _, other := range m.windows {
		other.Focused = false
	}
	w.Focused = true
	w.ZIndex = m.alloc.Assign()
	m.focusedID = &w.ID

	if m.alloc.NeedsCompaction() {
		all := make([]*types.Window, 0, len(m.windows))
		for _, win := range m.windows {
			all = append(all, win)
		}
		m.alloc.Compact(all)
	}
}
