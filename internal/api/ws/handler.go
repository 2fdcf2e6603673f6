package ws

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/webdeskos/backend/internal/api/middleware"
	"github.com/webdeskos/backend/internal/domain/desktop"
	"github.com/webdeskos/backend/internal/infrastructure/logging"
	"github.com/webdeskos/backend/internal/infrastructure/monitoring"
	"github.com/webdeskos/backend/internal/service"
	"github.com/webdeskos/backend/internal/shared/errs"
	"github.com/webdeskos/backend/internal/shared/types"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in dev
	},
}

const flushTimeout = 10 * time.Second

// Handler manages WebSocket live sessions. Each connection owns an
// in-memory window manager hydrated from persisted state; window intents
// mutate it locally and are flushed back to storage on sync and teardown.
type Handler struct {
	desktop  *service.Desktop
	viewport types.Viewport
	taskbar  int
	logger   *logging.Logger
	metrics  *monitoring.Metrics
}

// NewHandler creates a new WebSocket handler
func NewHandler(desktop *service.Desktop, viewport types.Viewport, taskbarHeight int, logger *logging.Logger) *Handler {
	return &Handler{
		desktop:  desktop,
		viewport: viewport,
		taskbar:  taskbarHeight,
		logger:   logger,
	}
}

// WithMetrics attaches a metrics collector.
func (h *Handler) WithMetrics(m *monitoring.Metrics) *Handler {
	h.metrics = m
	return h
}

// HandleConnection handles WebSocket upgrade and the live session loop
func (h *Handler) HandleConnection(c *gin.Context) {
	userID := middleware.UserID(c)
	sessionID := uuid.NewString()

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	h.logger.Info("Live session opened",
		zap.String("session_id", sessionID),
		zap.String("user_id", userID))
	defer h.logger.Info("Live session closed", zap.String("session_id", sessionID))

	if h.metrics != nil {
		h.metrics.IncWSConnections()
		defer h.metrics.DecWSConnections()
	}

	reqCtx := c.Request.Context()

	mgr := desktop.NewManager()
	if h.metrics != nil {
		mgr.WithMetrics(h.metrics)
	}
	mgr.SetViewport(h.viewport, h.taskbar)

	// Window ids closed in this session, pending deletion from storage.
	closed := make(map[string]struct{})

	// Hydrate from persisted state
	snap, err := h.desktop.GetState(reqCtx, userID)
	if err != nil {
		h.sendError(conn, err.Error())
		return
	}
	mgr.Hydrate(snap.Windows)

	h.send(conn, map[string]interface{}{
		"type":      "hydrated",
		"sessionId": sessionID,
		"windows":   mgr.List(),
		"state":     snap.State,
	})

	// Flush the session back to storage when the client goes away
	defer h.flush(conn, mgr, userID, closed, false)

	for {
		var msg types.WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("WebSocket read error", zap.Error(err))
			}
			break
		}

		if h.metrics != nil {
			h.metrics.RecordWSMessage("inbound", msg.Type)
		}

		switch msg.Type {
		case "launch":
			h.handleLaunch(conn, mgr, msg)
		case "move":
			h.windowOp(conn, msg, func() (*types.Window, error) {
				if msg.Position == nil {
					return nil, errMissingField("position")
				}
				return mgr.Move(msg.WindowID, *msg.Position)
			})
		case "resize":
			h.windowOp(conn, msg, func() (*types.Window, error) {
				if msg.Size == nil {
					return nil, errMissingField("size")
				}
				return mgr.Resize(msg.WindowID, msg.Position, *msg.Size)
			})
		case "focus":
			h.windowOp(conn, msg, func() (*types.Window, error) { return mgr.Focus(msg.WindowID) })
		case "minimize":
			h.windowOp(conn, msg, func() (*types.Window, error) { return mgr.Minimize(msg.WindowID) })
		case "restore":
			h.windowOp(conn, msg, func() (*types.Window, error) { return mgr.Restore(msg.WindowID) })
		case "maximize":
			h.windowOp(conn, msg, func() (*types.Window, error) { return mgr.Maximize(msg.WindowID) })
		case "unmaximize":
			h.windowOp(conn, msg, func() (*types.Window, error) { return mgr.Unmaximize(msg.WindowID) })
		case "fullscreen":
			h.windowOp(conn, msg, func() (*types.Window, error) { return mgr.SetFullscreen(msg.WindowID) })
		case "close":
			h.handleClose(conn, mgr, msg, closed)
		case "close_all":
			for _, w := range mgr.List() {
				closed[w.ID] = struct{}{}
			}
			n := mgr.CloseAll()
			h.send(conn, map[string]interface{}{"type": "closed_all", "count": n})
		case "viewport":
			h.handleViewport(conn, mgr, msg)
		case "sync":
			h.flush(conn, mgr, userID, closed, true)
		case "ping":
			h.send(conn, map[string]interface{}{"type": "pong"})
		default:
			h.sendError(conn, "unknown message type")
		}
	}
}

func (h *Handler) handleLaunch(conn *websocket.Conn, mgr *desktop.Manager, msg types.WSMessage) {
	window, err := mgr.Launch(msg.AppID, msg.Title, msg.Icon, msg.Position, msg.Size)
	if err != nil {
		h.sendError(conn, err.Error())
		return
	}
	h.sendWindow(conn, "launched", window)
}

func (h *Handler) handleClose(conn *websocket.Conn, mgr *desktop.Manager, msg types.WSMessage, closed map[string]struct{}) {
	if err := mgr.Close(msg.WindowID); err != nil {
		h.sendError(conn, err.Error())
		return
	}
	closed[msg.WindowID] = struct{}{}
	h.send(conn, map[string]interface{}{
		"type":     "closed",
		"windowId": msg.WindowID,
	})
}

func (h *Handler) handleViewport(conn *websocket.Conn, mgr *desktop.Manager, msg types.WSMessage) {
	if msg.Viewport == nil {
		h.sendError(conn, "viewport is required")
		return
	}
	mgr.SetViewport(*msg.Viewport, h.taskbar)
	h.send(conn, map[string]interface{}{
		"type":    "viewport_set",
		"windows": mgr.List(),
	})
}

// windowOp runs a manager mutation and reports the updated window.
func (h *Handler) windowOp(conn *websocket.Conn, msg types.WSMessage, op func() (*types.Window, error)) {
	window, err := op()
	if err != nil {
		h.sendError(conn, err.Error())
		return
	}
	h.sendWindow(conn, "window", window)
}

// flush persists the session's windows and deletes the rows for windows
// closed during the session. Interactive flushes report failures to the
// client as a warning; teardown flushes only log.
func (h *Handler) flush(conn *websocket.Conn, mgr *desktop.Manager, userID string, closed map[string]struct{}, interactive bool) {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()

	for id := range closed {
		err := h.desktop.DeleteWindow(ctx, userID, id)
		if err != nil && !errs.IsNotFound(err) {
			h.logger.Warn("Failed to delete closed window",
				zap.String("user_id", userID),
				zap.String("window_id", id),
				zap.Error(err))
			continue
		}
		delete(closed, id)
	}

	saved, err := h.desktop.SaveWindows(ctx, userID, mgr.Snapshot())
	if err != nil {
		h.logger.Warn("Session flush failed",
			zap.String("user_id", userID),
			zap.Error(err))
		if interactive {
			h.send(conn, map[string]interface{}{
				"type":      "warning",
				"message":   "failed to persist session: " + err.Error(),
				"timestamp": time.Now().Unix(),
			})
		}
		return
	}

	if interactive {
		mgr.Hydrate(saved)
		h.send(conn, map[string]interface{}{
			"type":      "synced",
			"windows":   saved,
			"count":     len(saved),
			"timestamp": time.Now().Unix(),
		})
	}
}

func (h *Handler) sendWindow(conn *websocket.Conn, event string, w *types.Window) {
	h.send(conn, map[string]interface{}{
		"type":   event,
		"window": w,
	})
}

func (h *Handler) send(conn *websocket.Conn, data interface{}) error {
	if h.metrics != nil {
		if m, ok := data.(map[string]interface{}); ok {
			if t, ok := m["type"].(string); ok {
				h.metrics.RecordWSMessage("outbound", t)
			}
		}
	}
	return conn.WriteJSON(data)
}

func (h *Handler) sendError(conn *websocket.Conn, msg string) error {
	return h.send(conn, map[string]interface{}{
		"type":      "error",
		"message":   msg,
		"timestamp": time.Now().Unix(),
	})
}
