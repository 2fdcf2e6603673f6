//go:build integration
// +build integration

package integration

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webdeskos/backend/internal/infrastructure/config"
	"github.com/webdeskos/backend/internal/infrastructure/server"
	"github.com/webdeskos/backend/internal/shared/types"
)

func newTestServer(t *testing.T) *server.Server {
	t.Helper()

	cfg := config.Default()
	cfg.Database.Path = filepath.Join(t.TempDir(), "webdesk.db")
	cfg.Logging.Development = true
	cfg.RateLimit.Enabled = false

	srv, err := server.NewServer(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { srv.Close() })

	return srv
}

func request(t *testing.T, srv *server.Server, method, path, userID string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		data, err := sonic.Marshal(body)
		require.NoError(t, err)
		buf.Write(data)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func TestDesktopSessionFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	srv := newTestServer(t)

	// Fresh user gets a default desktop
	w := request(t, srv, http.MethodGet, "/desktop/state", "alice", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var snap types.DesktopSnapshot
	require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, int64(1), snap.State.Version)
	assert.Empty(t, snap.Windows)

	// Persist a working session
	windows := []types.Window{
		{
			AppID:    "files",
			Title:    "Files",
			Position: types.Position{X: 100, Y: 50},
			Size:     types.Size{Width: 800, Height: 600},
			State:    types.StateNormal,
			ZIndex:   100,
		},
		{
			AppID:    "editor",
			Title:    "Editor",
			Position: types.Position{X: 130, Y: 80},
			Size:     types.Size{Width: 800, Height: 600},
			State:    types.StateMaximized,
			ZIndex:   101,
			Focused:  true,
		},
	}
	w = request(t, srv, http.MethodPost, "/desktop/windows/bulk", "alice", types.BulkWindowsRequest{Windows: windows})
	require.Equal(t, http.StatusOK, w.Code)

	var bulk struct {
		Windows []types.Window `json:"windows"`
		Count   int            `json:"count"`
	}
	require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &bulk))
	require.Equal(t, 2, bulk.Count)

	// Update desktop settings with the current version
	theme := "light"
	version := snap.State.Version
	w = request(t, srv, http.MethodPut, "/desktop/state", "alice", types.SaveStateRequest{
		State:   types.StatePatch{Theme: &theme},
		Version: &version,
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, "light", snap.State.Theme)
	assert.Equal(t, int64(2), snap.State.Version)
	assert.Len(t, snap.Windows, 2)

	// A second writer with the old version is rejected
	dark := "dark"
	w = request(t, srv, http.MethodPut, "/desktop/state", "alice", types.SaveStateRequest{
		State:   types.StatePatch{Theme: &dark},
		Version: &version,
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Focus the first window: it goes to the top with exclusive focus
	w = request(t, srv, http.MethodPost, "/desktop/windows/"+bulk.Windows[0].ID+"/focus", "alice", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var focused types.Window
	require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &focused))
	assert.True(t, focused.Focused)
	assert.Greater(t, focused.ZIndex, 101)

	w = request(t, srv, http.MethodGet, "/desktop/windows", "alice", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list struct {
		Windows []types.Window `json:"windows"`
	}
	require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &list))
	focusedCount := 0
	for _, win := range list.Windows {
		if win.Focused {
			focusedCount++
		}
	}
	assert.Equal(t, 1, focusedCount)

	// Reset closes everything and restores defaults
	w = request(t, srv, http.MethodPost, "/desktop/reset", "alice", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, "dark", snap.State.Theme)
	assert.Empty(t, snap.Windows)
}

func TestSnapshotSurvivesRestart(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	cfg := config.Default()
	cfg.Database.Path = filepath.Join(t.TempDir(), "webdesk.db")
	cfg.Logging.Development = true
	cfg.RateLimit.Enabled = false

	srv, err := server.NewServer(cfg)
	require.NoError(t, err)

	w := request(t, srv, http.MethodPost, "/desktop/windows", "alice", types.Window{
		AppID:    "files",
		Title:    "Files",
		Position: types.Position{X: 100, Y: 50},
		Size:     types.Size{Width: 800, Height: 600},
		State:    types.StateNormal,
		ZIndex:   100,
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, srv.Close())

	// Reopen against the same database file
	srv2, err := server.NewServer(cfg)
	require.NoError(t, err)
	defer srv2.Close()

	w = request(t, srv2, http.MethodGet, "/desktop/windows", "alice", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list struct {
		Count int `json:"count"`
	}
	require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, 1, list.Count)
}

func TestLiveSessionRouteRegistered(t *testing.T) {
	srv := newTestServer(t)

	found := false
	for _, route := range srv.Router().Routes() {
		if route.Method == http.MethodGet && route.Path == "/desktop/stream" {
			found = true
		}
	}
	assert.True(t, found, "expected GET /desktop/stream to be registered")
}
