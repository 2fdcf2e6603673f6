// Package types defines the shared data model for WebDesk.
//
// Core Types:
//   - Window: one on-screen window instance with geometry and stacking state
//   - DesktopState: the per-user aggregate (wallpaper, theme, taskbar, settings)
//   - DesktopSnapshot: the full state + windows shape served to the client
//   - StatePatch: partial desktop update applied under optimistic locking
//
// Geometry primitives (Position, Size, Viewport) are plain pixel values in
// desktop coordinates. All types carry the JSON tags of the wire format
// consumed by the frontend.
package types
