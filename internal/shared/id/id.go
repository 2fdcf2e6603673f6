// Package id provides centralized ID generation for the backend.
//
// This package offers type-safe ULID generation with:
//   - Lexicographic sortability: Enables efficient time-based queries
//   - Prefixed types: Type-specific prefixes for debugging (win_*, dsk_*, req_*)
//   - Type safety: Separate types prevent ID misuse
//
// Design Principles:
//   - ULIDs only: Single ID format across the window and desktop stores
//   - K-sortable: Timeline queries without timestamps
//   - Debuggable: Prefixes make logs readable
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// WindowID identifies a window instance
type WindowID string

// DesktopID identifies a per-user desktop aggregate
type DesktopID string

// RequestID identifies an API request
type RequestID string

// ID prefixes for type identification in logs and rows.
const (
	WindowPrefix  = "win"
	DesktopPrefix = "dsk"
	RequestPrefix = "req"
)

// Generator generates ULIDs with optional prefixes
type Generator struct {
	entropy   io.Reader
	entropyMu sync.Mutex // Protects entropy reader
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the singleton generator instance
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a new ULID generator
func NewGenerator() *Generator {
	return &Generator{
		entropy: rand.Reader,
	}
}

// NewGeneratorWithEntropy creates a generator with custom entropy source.
// Useful for testing with deterministic entropy.
func NewGeneratorWithEntropy(entropy io.Reader) *Generator {
	return &Generator{
		entropy: entropy,
	}
}

// Generate creates a new ULID
func (g *Generator) Generate() ulid.ULID {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy)
}

// GenerateString creates a new ULID as a string
func (g *Generator) GenerateString() string {
	return g.Generate().String()
}

// GenerateWithPrefix creates a prefixed ULID string
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, g.GenerateString())
}

// NewWindowID generates a new window instance ID
func NewWindowID() WindowID {
	return WindowID(Default().GenerateWithPrefix(WindowPrefix))
}

// NewDesktopID generates a new desktop aggregate ID
func NewDesktopID() DesktopID {
	return DesktopID(Default().GenerateWithPrefix(DesktopPrefix))
}

// NewRequestID generates a new request ID
func NewRequestID() RequestID {
	return RequestID(Default().GenerateWithPrefix(RequestPrefix))
}

// String methods for ID types
func (id WindowID) String() string  { return string(id) }
func (id DesktopID) String() string { return string(id) }
func (id RequestID) String() string { return string(id) }

// IsValid checks if an ID string is a valid ULID
func IsValid(id string) bool {
	_, err := ulid.Parse(id)
	return err == nil
}

// Parse parses a ULID string
func Parse(id string) (ulid.ULID, error) {
	return ulid.Parse(id)
}

// Timestamp extracts the timestamp from a ULID
func Timestamp(id string) (time.Time, error) {
	parsed, err := Parse(id)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(parsed.Time()), nil
}
