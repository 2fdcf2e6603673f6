// Package testutil provides testing utilities and helpers for backend tests.
package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/webdeskos/backend/internal/shared/types"
)

// MockCache is a mock implementation of cache.Cache for testing.
type MockCache struct {
	mock.Mock
}

// GetSnapshot mocks the GetSnapshot method.
func (m *MockCache) GetSnapshot(ctx context.Context, userID string) (*types.DesktopSnapshot, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.DesktopSnapshot), args.Error(1)
}

// SetSnapshot mocks the SetSnapshot method.
func (m *MockCache) SetSnapshot(ctx context.Context, userID string, snap *types.DesktopSnapshot) error {
	args := m.Called(ctx, userID, snap)
	return args.Error(0)
}

// Invalidate mocks the Invalidate method.
func (m *MockCache) Invalidate(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// NewMockCache creates a mock cache that misses on every read and accepts
// every write.
func NewMockCache(t *testing.T) *MockCache {
	t.Helper()
	m := new(MockCache)

	m.On("GetSnapshot", mock.Anything, mock.Anything).Return(nil, ErrAlwaysMiss).Maybe()
	m.On("SetSnapshot", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	m.On("Invalidate", mock.Anything, mock.Anything).Return(nil).Maybe()

	return m
}

// CreateTestWindow creates a window with sane defaults for tests.
func CreateTestWindow(t *testing.T, overrides map[string]interface{}) types.Window {
	t.Helper()

	w := types.Window{
		AppID:    "test-app",
		Title:    "Test Window",
		Position: types.Position{X: 100, Y: 50},
		Size:     types.Size{Width: 800, Height: 600},
		State:    types.StateNormal,
		ZIndex:   100,
	}

	if id, ok := overrides["id"].(string); ok {
		w.ID = id
	}
	if appID, ok := overrides["app_id"].(string); ok {
		w.AppID = appID
	}
	if title, ok := overrides["title"].(string); ok {
		w.Title = title
	}
	if state, ok := overrides["state"].(types.WindowState); ok {
		w.State = state
	}
	if pos, ok := overrides["position"].(types.Position); ok {
		w.Position = pos
	}
	if size, ok := overrides["size"].(types.Size); ok {
		w.Size = size
	}
	if z, ok := overrides["z_index"].(int); ok {
		w.ZIndex = z
	}
	if focused, ok := overrides["focused"].(bool); ok {
		w.Focused = focused
	}

	return w
}
