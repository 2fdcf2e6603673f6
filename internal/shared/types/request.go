package types

// SaveStateRequest is the body for PUT /desktop/state.
type SaveStateRequest struct {
	State   StatePatch `json:"state"`
	Version *int64     `json:"version,omitempty"` // Expected version for optimistic locking
}

// BulkWindowsRequest is the body for POST /desktop/windows/bulk.
type BulkWindowsRequest struct {
	Windows []Window `json:"windows" binding:"required"`
}

// LaunchRequest asks the live session to open a new window for an app.
type LaunchRequest struct {
	AppID    string    `json:"appId" binding:"required"`
	Title    string    `json:"title"`
	Icon     string    `json:"icon"`
	Position *Position `json:"position,omitempty"`
	Size     *Size     `json:"size,omitempty"`
}

// WSMessage is the envelope for live-session intents over the stream.
type WSMessage struct {
	Type     string    `json:"type"`
	WindowID string    `json:"windowId,omitempty"`
	AppID    string    `json:"appId,omitempty"`
	Title    string    `json:"title,omitempty"`
	Icon     string    `json:"icon,omitempty"`
	Position *Position `json:"position,omitempty"`
	Size     *Size     `json:"size,omitempty"`
	Viewport *Viewport `json:"viewport,omitempty"`
}
