package id

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateUnique(t *testing.T) {
	g := NewGenerator()

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		s := g.GenerateString()
		assert.False(t, seen[s], "duplicate ULID generated")
		seen[s] = true
	}
}

func TestPrefixedIDs(t *testing.T) {
	win := NewWindowID()
	assert.True(t, strings.HasPrefix(win.String(), "win_"))

	dsk := NewDesktopID()
	assert.True(t, strings.HasPrefix(dsk.String(), "dsk_"))

	req := NewRequestID()
	assert.True(t, strings.HasPrefix(req.String(), "req_"))
}

func TestIsValid(t *testing.T) {
	raw := Default().GenerateString()
	assert.True(t, IsValid(raw))
	assert.False(t, IsValid("not-a-ulid"))
	assert.False(t, IsValid(""))
}

func TestTimestamp(t *testing.T) {
	before := time.Now().Add(-time.Second)
	raw := Default().GenerateString()
	after := time.Now().Add(time.Second)

	ts, err := Timestamp(raw)
	assert.NoError(t, err)
	assert.True(t, ts.After(before) && ts.Before(after))
}
