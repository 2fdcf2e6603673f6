// Package ws provides WebSocket handling for live desktop sessions.
//
// Each connection hydrates an in-memory window manager from the user's
// persisted snapshot, then applies window intents locally at interactive
// speed. State flows back to storage on explicit sync and again when the
// connection tears down.
//
// Message Types (Client → Server):
//   - launch: open a window for an app
//   - move, resize: reposition or resize a window
//   - focus, minimize, restore, maximize, unmaximize, fullscreen: lifecycle
//   - close, close_all: remove windows from the session
//   - viewport: report new viewport dimensions
//   - sync: flush the session to storage
//   - ping: keep-alive ping
//
// Message Types (Server → Client):
//   - hydrated: initial window list and desktop state
//   - launched, window, closed, closed_all, viewport_set: mutation results
//   - synced: flush succeeded
//   - warning: flush failed, session continues
//   - error: intent rejected
//
// Example Usage:
//
//	handler := ws.NewHandler(desktopService, viewport, taskbarHeight, logger)
//	router.GET("/desktop/stream", handler.HandleConnection)
package ws
