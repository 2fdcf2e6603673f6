package testutil

import "github.com/webdeskos/backend/internal/cache"

// ErrAlwaysMiss is the miss sentinel returned by NewMockCache reads.
var ErrAlwaysMiss = cache.ErrMiss
