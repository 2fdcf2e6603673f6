package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/webdeskos/backend/internal/api/middleware"
	"github.com/webdeskos/backend/internal/service"
	"github.com/webdeskos/backend/internal/shared/types"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	desktop *service.Desktop
}

// NewHandlers creates a new handler set
func NewHandlers(desktop *service.Desktop) *Handlers {
	return &Handlers{desktop: desktop}
}

// Root handles health check
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "WebDesk Backend (Go)",
		"version": "0.3.0",
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
	})
}

// GetState returns the user's desktop state plus windows
func (h *Handlers) GetState(c *gin.Context) {
	snap, err := h.desktop.GetState(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, snap)
}

// SaveState applies a partial desktop update
func (h *Handlers) SaveState(c *gin.Context) {
	var req types.SaveStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	snap, err := h.desktop.SaveState(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, snap)
}

// ListWindows returns persisted windows in stacking order
func (h *Handlers) ListWindows(c *gin.Context) {
	windows, err := h.desktop.GetWindows(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"windows": windows,
		"count":   len(windows),
	})
}

// SaveWindow persists a single window
func (h *Handlers) SaveWindow(c *gin.Context) {
	var window types.Window
	if err := c.ShouldBindJSON(&window); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	saved, err := h.desktop.SaveWindows(c.Request.Context(), middleware.UserID(c), []types.Window{window})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, saved[0])
}

// SaveWindowsBulk persists a batch of windows in one upsert
func (h *Handlers) SaveWindowsBulk(c *gin.Context) {
	var req types.BulkWindowsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	saved, err := h.desktop.SaveWindows(c.Request.Context(), middleware.UserID(c), req.Windows)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"windows": saved,
		"count":   len(saved),
	})
}

// DeleteWindow removes a persisted window
func (h *Handlers) DeleteWindow(c *gin.Context) {
	windowID := c.Param("id")

	if err := h.desktop.DeleteWindow(c.Request.Context(), middleware.UserID(c), windowID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"windowId": windowID,
	})
}

// DeleteAllWindows removes every persisted window for the user
func (h *Handlers) DeleteAllWindows(c *gin.Context) {
	n, err := h.desktop.CloseAllWindows(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"deleted": n,
	})
}

// FocusWindow raises a window above all others with exclusive focus
func (h *Handlers) FocusWindow(c *gin.Context) {
	windowID := c.Param("id")

	window, err := h.desktop.BringToFront(c.Request.Context(), middleware.UserID(c), windowID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, window)
}

// ResetDesktop restores default settings and closes all windows
func (h *Handlers) ResetDesktop(c *gin.Context) {
	snap, err := h.desktop.ResetDesktop(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, snap)
}
