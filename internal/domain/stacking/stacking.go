// Package stacking assigns z-order indices and periodically compacts them.
//
// The allocator hands out a monotonically increasing index on every focus,
// so z-order strictly reflects recency of focus. Once the counter passes a
// threshold the whole collection is renumbered contiguously from the base,
// preserving relative order, to keep the integers bounded.
//
// The counter is an explicit field owned by the allocator, never a package
// global, so collection stores can be tested and composed independently.
package stacking

import (
	"sort"

	"github.com/webdeskos/backend/internal/shared/types"
)

const (
	// BaseZ is the lowest z-index ever assigned.
	BaseZ = 100
	// CompactThreshold triggers renumbering once the counter exceeds it.
	CompactThreshold = 1000
)

// Allocator owns the z-index counter for one window collection.
type Allocator struct {
	next int
}

// NewAllocator creates an allocator starting at BaseZ.
func NewAllocator() *Allocator {
	return &Allocator{next: BaseZ}
}

// Next returns the index the next assignment will use.
func (a *Allocator) Next() int {
	return a.next
}

// Assign returns the next z-index and advances the counter. The returned
// index is, at that instant, strictly greater than every index previously
// assigned since the last compaction.
func (a *Allocator) Assign() int {
	z := a.next
	a.next++
	return z
}

// NeedsCompaction reports whether the counter has outgrown the threshold.
func (a *Allocator) NeedsCompaction() bool {
	return a.next > CompactThreshold
}

// Compact renumbers windows contiguously from BaseZ in ascending z-index
// order. The sort is stable, so windows sharing an index keep their relative
// position. Resets the counter to BaseZ + len(windows).
//
// Runs synchronously right after the assignment that crossed the threshold,
// so the just-focused window keeps the top slot.
func (a *Allocator) Compact(windows []*types.Window) {
	sort.SliceStable(windows, func(i, j int) bool {
		return windows[i].ZIndex < windows[j].ZIndex
	})
	for i, w := range windows {
		w.ZIndex = BaseZ + i
	}
	a.next = BaseZ + len(windows)
}

// Restore seeds the counter from an existing collection, placing the next
// assignment above every persisted index. Used when hydrating a session
// from durable storage.
func (a *Allocator) Restore(windows []types.Window) {
	next := BaseZ
	for _, w := range windows {
		if w.ZIndex >= next {
			next = w.ZIndex + 1
		}
	}
	a.next = next
}
