// Package desktop implements the window collection store for one live
// session.
//
// The Manager owns the authoritative map of window instances. All mutations
// go through named intents (Launch, Move, Resize, Focus, Minimize, Restore,
// Maximize, Fullscreen, Close) which call into the geometry, lifecycle and
// stacking packages and apply as one atomic update under the lock; readers
// always observe a fully-applied state.
//
// Invariants:
//   - At most one window is focused at any observable instant
//   - The focused window holds the maximum z-index among visible windows
//     at the instant of focus
//   - Window geometry stays reachable (clamped at creation and drag-stop)
//
// Minimized windows remain keyed in the collection (the taskbar needs them)
// but are excluded from Visible.
package desktop
