package cache

import (
	"bytes"
	"context"
	"io"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/klauspost/compress/gzip"

	"github.com/webdeskos/backend/internal/shared/types"
)

// Memory is an in-process snapshot cache. Entries hold compressed JSON so a
// user with many windows costs little resident memory; a background sweep
// evicts expired entries between reads.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry // Protected by mu
	ttl     time.Duration
	stop    chan struct{}
	stopped sync.Once
}

type entry struct {
	compressed []byte
	expires    time.Time
}

// NewMemory creates a memory cache with the given TTL (DefaultTTL if zero)
// and starts its sweep goroutine. Call Stop when done.
func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	m := &Memory{
		entries: make(map[string]entry),
		ttl:     ttl,
		stop:    make(chan struct{}),
	}
	go m.sweep()
	return m
}

// GetSnapshot returns the cached snapshot for a user, or ErrMiss.
func (m *Memory) GetSnapshot(ctx context.Context, userID string) (*types.DesktopSnapshot, error) {
	m.mu.RLock()
	e, ok := m.entries[userID]
	m.mu.RUnlock()

	if !ok || time.Now().After(e.expires) {
		return nil, ErrMiss
	}

	zr, err := gzip.NewReader(bytes.NewReader(e.compressed))
	if err != nil {
		return nil, err
	}
	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, err
	}
	if err := zr.Close(); err != nil {
		return nil, err
	}

	var snap types.DesktopSnapshot
	if err := sonic.Unmarshal(raw, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// SetSnapshot stores a snapshot for a user under the cache TTL.
func (m *Memory) SetSnapshot(ctx context.Context, userID string, snap *types.DesktopSnapshot) error {
	raw, err := sonic.Marshal(snap)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(raw); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return err
	}

	m.mu.Lock()
	m.entries[userID] = entry{compressed: buf.Bytes(), expires: time.Now().Add(m.ttl)}
	m.mu.Unlock()
	return nil
}

// Invalidate drops the user's entry.
func (m *Memory) Invalidate(ctx context.Context, userID string) error {
	m.mu.Lock()
	delete(m.entries, userID)
	m.mu.Unlock()
	return nil
}

// Len returns the number of live entries, expired included.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Stop halts the sweep goroutine.
func (m *Memory) Stop() {
	m.stopped.Do(func() { close(m.stop) })
}

func (m *Memory) sweep() {
	ticker := time.NewTicker(m.ttl)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case now := <-ticker.C:
			m.mu.Lock()
			for k, e := range m.entries {
				if now.After(e.expires) {
					delete(m.entries, k)
				}
			}
			m.mu.Unlock()
		}
	}
}
