package cache

import (
	"context"
	"errors"
	"time"

	"github.com/webdeskos/backend/internal/shared/types"
)

// ErrMiss is returned when no fresh entry exists for the key.
var ErrMiss = errors.New("cache miss")

// DefaultTTL bounds how stale a snapshot can get if invalidation is missed.
const DefaultTTL = 5 * time.Minute

// Cache is the snapshot cache consumed by the persistence service.
// Implementations may be remote; every method can fail and callers must
// degrade to durable storage when one does.
type Cache interface {
	// GetSnapshot returns the cached snapshot for a user, or ErrMiss.
	GetSnapshot(ctx context.Context, userID string) (*types.DesktopSnapshot, error)

	// SetSnapshot stores a snapshot for a user under the configured TTL.
	SetSnapshot(ctx context.Context, userID string, snap *types.DesktopSnapshot) error

	// Invalidate drops the user's entry.
	Invalidate(ctx context.Context, userID string) error
}
