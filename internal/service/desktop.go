package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/webdeskos/backend/internal/cache"
	"github.com/webdeskos/backend/internal/infrastructure/logging"
	"github.com/webdeskos/backend/internal/infrastructure/monitoring"
	"github.com/webdeskos/backend/internal/infrastructure/resilience"
	"github.com/webdeskos/backend/internal/shared/errs"
	"github.com/webdeskos/backend/internal/shared/types"
	"github.com/webdeskos/backend/internal/shared/utils"
)

// Store is the persistence surface the desktop service depends on.
type Store interface {
	GetOrCreateState(ctx context.Context, userID string) (*types.DesktopState, error)
	UpdateState(ctx context.Context, userID string, patch types.StatePatch, expectedVersion *int64) (*types.DesktopState, error)
	GetWindows(ctx context.Context, userID string) ([]types.Window, error)
	GetWindow(ctx context.Context, userID, windowID string) (*types.Window, error)
	UpsertWindows(ctx context.Context, userID, desktopStateID string, windows []types.Window) ([]types.Window, error)
	DeleteWindow(ctx context.Context, userID, windowID string) error
	DeleteAllWindows(ctx context.Context, userID string) (int64, error)
	BringToFront(ctx context.Context, userID, windowID string) (*types.Window, error)
	Reset(ctx context.Context, userID string) (*types.DesktopState, error)
}

// Desktop coordinates persistence, caching, and validation for per-user
// desktop state. The cache is best-effort: every cache failure is logged
// and swallowed, and the breaker stops hammering a cache that keeps
// failing.
type Desktop struct {
	store   Store
	cache   cache.Cache
	breaker *resilience.Breaker
	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// NewDesktop creates a desktop service. cache may be nil to disable
// snapshot caching entirely.
func NewDesktop(store Store, c cache.Cache, logger *logging.Logger) *Desktop {
	return &Desktop{
		store:  store,
		cache:  c,
		logger: logger,
		breaker: resilience.New("snapshot-cache", resilience.Settings{
			MaxRequests: 3,
			Interval:    60 * time.Second,
			Timeout:     30 * time.Second,
		}),
	}
}

// WithMetrics attaches a metrics collector.
func (d *Desktop) WithMetrics(m *monitoring.Metrics) *Desktop {
	d.metrics = m
	return d
}

// GetState loads the user's full desktop snapshot, cache-aside.
func (d *Desktop) GetState(ctx context.Context, userID string) (*types.DesktopSnapshot, error) {
	if err := utils.ValidateID(userID, "userId", true); err != nil {
		return nil, err
	}

	if snap := d.cacheGet(ctx, userID); snap != nil {
		return snap, nil
	}

	snap, err := d.loadSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	d.cacheSet(ctx, userID, snap)
	if d.metrics != nil {
		d.metrics.StateLoads.Inc()
	}
	return snap, nil
}

// SaveState applies a partial desktop update under optimistic locking and
// returns the post-write snapshot read back from storage.
func (d *Desktop) SaveState(ctx context.Context, userID string, req types.SaveStateRequest) (*types.DesktopSnapshot, error) {
	if err := utils.ValidateID(userID, "userId", true); err != nil {
		return nil, err
	}
	if err := utils.ValidateStatePatch(req.State); err != nil {
		return nil, err
	}

	_, err := d.timed(ctx, "update_state", func(ctx context.Context) (interface{}, error) {
		return d.store.UpdateState(ctx, userID, req.State, req.Version)
	})
	if err != nil {
		if errs.IsConflict(err) && d.metrics != nil {
			d.metrics.SaveConflicts.Inc()
		}
		return nil, err
	}

	d.cacheInvalidate(ctx, userID)

	// Read back so the caller sees exactly what storage holds.
	snap, err := d.loadSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	if d.metrics != nil {
		d.metrics.StateSaves.Inc()
	}
	return snap, nil
}

// SaveWindows validates and persists a batch of window rows in one upsert.
// Rows without an id are assigned one by storage.
func (d *Desktop) SaveWindows(ctx context.Context, userID string, windows []types.Window) ([]types.Window, error) {
	if err := utils.ValidateID(userID, "userId", true); err != nil {
		return nil, err
	}
	for i := range windows {
		if err := utils.ValidateWindow(&windows[i]); err != nil {
			return nil, err
		}
	}

	state, err := d.store.GetOrCreateState(ctx, userID)
	if err != nil {
		return nil, err
	}

	result, err := d.timed(ctx, "upsert_windows", func(ctx context.Context) (interface{}, error) {
		return d.store.UpsertWindows(ctx, userID, state.ID, windows)
	})
	if err != nil {
		return nil, err
	}
	saved := result.([]types.Window)

	d.cacheInvalidate(ctx, userID)
	if d.metrics != nil {
		d.metrics.WindowsFlushed.Add(float64(len(saved)))
	}
	return saved, nil
}

// GetWindows returns the user's persisted windows in stacking order.
func (d *Desktop) GetWindows(ctx context.Context, userID string) ([]types.Window, error) {
	if err := utils.ValidateID(userID, "userId", true); err != nil {
		return nil, err
	}
	return d.store.GetWindows(ctx, userID)
}

// DeleteWindow removes a single persisted window.
func (d *Desktop) DeleteWindow(ctx context.Context, userID, windowID string) error {
	if err := utils.ValidateID(userID, "userId", true); err != nil {
		return err
	}
	if err := utils.ValidateID(windowID, "windowId", true); err != nil {
		return err
	}

	if err := d.store.DeleteWindow(ctx, userID, windowID); err != nil {
		return err
	}

	d.cacheInvalidate(ctx, userID)
	if d.metrics != nil {
		d.metrics.WindowsClosed.Inc()
	}
	return nil
}

// CloseAllWindows removes every persisted window for the user and
// returns how many were deleted.
func (d *Desktop) CloseAllWindows(ctx context.Context, userID string) (int64, error) {
	if err := utils.ValidateID(userID, "userId", true); err != nil {
		return 0, err
	}

	n, err := d.store.DeleteAllWindows(ctx, userID)
	if err != nil {
		return 0, err
	}

	d.cacheInvalidate(ctx, userID)
	if d.metrics != nil {
		d.metrics.WindowsClosed.Add(float64(n))
	}
	return n, nil
}

// BringToFront raises a persisted window above all others and gives it
// exclusive focus.
func (d *Desktop) BringToFront(ctx context.Context, userID, windowID string) (*types.Window, error) {
	if err := utils.ValidateID(userID, "userId", true); err != nil {
		return nil, err
	}
	if err := utils.ValidateID(windowID, "windowId", true); err != nil {
		return nil, err
	}

	w, err := d.store.BringToFront(ctx, userID, windowID)
	if err != nil {
		return nil, err
	}

	d.cacheInvalidate(ctx, userID)
	return w, nil
}

// ResetDesktop restores default settings and closes every window.
func (d *Desktop) ResetDesktop(ctx context.Context, userID string) (*types.DesktopSnapshot, error) {
	if err := utils.ValidateID(userID, "userId", true); err != nil {
		return nil, err
	}

	state, err := d.store.Reset(ctx, userID)
	if err != nil {
		return nil, err
	}

	d.cacheInvalidate(ctx, userID)
	if d.metrics != nil {
		d.metrics.StateResets.Inc()
	}
	return &types.DesktopSnapshot{State: *state, Windows: []types.Window{}}, nil
}

// loadSnapshot reads the aggregate and its windows from storage.
func (d *Desktop) loadSnapshot(ctx context.Context, userID string) (*types.DesktopSnapshot, error) {
	state, err := d.store.GetOrCreateState(ctx, userID)
	if err != nil {
		return nil, err
	}
	windows, err := d.store.GetWindows(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &types.DesktopSnapshot{State: *state, Windows: windows}, nil
}

// cacheGet reads a snapshot through the breaker. Any failure counts as a
// miss; the caller falls through to storage.
func (d *Desktop) cacheGet(ctx context.Context, userID string) *types.DesktopSnapshot {
	if d.cache == nil {
		return nil
	}

	// A miss is a healthy outcome and must not trip the breaker.
	result, err := d.breaker.Execute(func() (interface{}, error) {
		snap, err := d.cache.GetSnapshot(ctx, userID)
		if err == cache.ErrMiss {
			return (*types.DesktopSnapshot)(nil), nil
		}
		return snap, err
	})
	if err != nil {
		d.cacheFailure("get", userID, err)
		return nil
	}

	snap := result.(*types.DesktopSnapshot)
	if snap == nil {
		if d.metrics != nil {
			d.metrics.CacheMisses.Inc()
		}
		return nil
	}

	if d.metrics != nil {
		d.metrics.CacheHits.Inc()
	}
	return snap
}

func (d *Desktop) cacheSet(ctx context.Context, userID string, snap *types.DesktopSnapshot) {
	if d.cache == nil {
		return
	}
	_, err := d.breaker.Execute(func() (interface{}, error) {
		return nil, d.cache.SetSnapshot(ctx, userID, snap)
	})
	if err != nil {
		d.cacheFailure("set", userID, err)
	}
}

func (d *Desktop) cacheInvalidate(ctx context.Context, userID string) {
	if d.cache == nil {
		return
	}
	_, err := d.breaker.Execute(func() (interface{}, error) {
		return nil, d.cache.Invalidate(ctx, userID)
	})
	if err != nil {
		d.cacheFailure("invalidate", userID, err)
	}
}

// timed runs a storage call under a duration metric when metrics are on.
func (d *Desktop) timed(ctx context.Context, operation string, fn func(context.Context) (interface{}, error)) (interface{}, error) {
	if d.metrics == nil {
		return fn(ctx)
	}

	timer := monitoring.NewTimer(d.metrics, operation)
	result, err := fn(ctx)
	if err != nil {
		timer.Stop("error")
		d.metrics.RecordStorageError(operation, errs.Kind(err))
		return nil, err
	}
	timer.Stop("success")
	return result, nil
}

func (d *Desktop) cacheFailure(op, userID string, err error) {
	if d.metrics != nil {
		d.metrics.CacheErrors.Inc()
	}
	if d.logger != nil {
		d.logger.Warn("Snapshot cache degraded",
			zap.String("op", op),
			zap.String("user_id", userID),
			zap.Error(err))
	}
}
