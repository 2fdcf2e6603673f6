package types

// WindowState represents window display states
type WindowState string

const (
	StateNormal     WindowState = "normal"
	StateMinimized  WindowState = "minimized"
	StateMaximized  WindowState = "maximized"
	StateFullscreen WindowState = "fullscreen"
)

// Valid reports whether s is one of the four display states.
func (s WindowState) Valid() bool {
	switch s {
	case StateNormal, StateMinimized, StateMaximized, StateFullscreen:
		return true
	}
	return false
}

// Position represents window position in desktop-relative pixels
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size represents window dimensions in pixels
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Viewport represents the visible desktop area
type Viewport struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Window represents one on-screen window instance.
//
// ID and AppID are immutable after creation. SavedPosition, SavedSize and
// PreviousState capture geometry immediately before a minimize or maximize
// transition so the window can be restored to it.
type Window struct {
	ID            string                 `json:"id"`
	AppID         string                 `json:"appId"`
	Title         string                 `json:"title"`
	Icon          string                 `json:"icon,omitempty"`
	Position      Position               `json:"position"`
	Size          Size                   `json:"size"`
	State         WindowState            `json:"state"`
	SavedPosition *Position              `json:"savedPosition,omitempty"`
	SavedSize     *Size                  `json:"savedSize,omitempty"`
	PreviousState *WindowState           `json:"previousState,omitempty"`
	ZIndex        int                    `json:"zIndex"`
	Focused       bool                   `json:"focused"`
	AppState      map[string]interface{} `json:"appState,omitempty"` // Opaque per-app payload, persisted as-is
}

// Visible reports whether the window participates in render/hit-test
// traversal. Minimized windows stay in the collection (taskbar) but are
// not drawn.
func (w *Window) Visible() bool {
	return w.State != StateMinimized
}

// HasSavedGeometry reports whether pre-transition geometry was captured.
func (w *Window) HasSavedGeometry() bool {
	return w.SavedPosition != nil && w.SavedSize != nil
}

// Stats contains window collection statistics
type Stats struct {
	TotalWindows     int     `json:"total_windows"`
	VisibleWindows   int     `json:"visible_windows"`
	MinimizedWindows int     `json:"minimized_windows"`
	FocusedWindowID  *string `json:"focused_window_id,omitempty"`
	NextZIndex       int     `json:"next_z_index"`
}
