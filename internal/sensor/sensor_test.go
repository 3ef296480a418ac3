package sensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVisibilityEdgeTriggered(t *testing.T) {
	fired := 0
	s := New(func() { fired++ })
	s.Observe("42-19")

	assert.False(t, s.Report(false))
	assert.True(t, s.Report(true))
	assert.False(t, s.Report(true), "staying visible does not refire")
	assert.False(t, s.Report(true))
	assert.Equal(t, 1, fired)

	s.Report(false)
	assert.True(t, s.Report(true), "re-entering view fires again")
	assert.Equal(t, 2, fired)
}

func TestVisibilityRearmOnNewTarget(t *testing.T) {
	fired := 0
	s := New(func() { fired++ })

	s.Observe("1-19")
	s.Report(true)
	assert.Equal(t, 1, fired)

	s.Observe("1-19")
	assert.False(t, s.Report(true), "same target keeps its state")

	// List regrew: new last element, still on screen
	s.Observe("7-39")
	assert.True(t, s.Report(true))
	assert.Equal(t, 2, fired)
}

func TestVisibilityDisconnect(t *testing.T) {
	fired := 0
	s := New(func() { fired++ })
	s.Observe("1-0")
	s.Disconnect()

	assert.False(t, s.Report(true))
	assert.Equal(t, 0, fired)

	s.Rearm()
	assert.False(t, s.Report(true), "rearm does not reconnect")
}

func TestVisibilityNoTarget(t *testing.T) {
	fired := 0
	s := New(func() { fired++ })
	assert.False(t, s.Report(true))
	assert.Equal(t, 0, fired)
}

func TestVisibilityGuard(t *testing.T) {
	fired := 0
	paginated := false
	s := New(func() { fired++ }, WithGuard(func() bool { return paginated }))
	s.Observe("1-9")

	assert.False(t, s.Report(true), "guard blocks firing")
	assert.Equal(t, 0, fired)

	paginated = true
	assert.False(t, s.Report(true), "suppressed transition is consumed")

	s.Report(false)
	assert.True(t, s.Report(true))
	assert.Equal(t, 1, fired)
}

func TestVisibilityRearmFiresWhileVisible(t *testing.T) {
	fired := 0
	allowed := true
	s := New(func() { fired++ }, WithGuard(func() bool { return allowed }))
	s.Observe("3-2")

	assert.True(t, s.Report(true))

	// Fetch failed: same target, never left view
	allowed = false
	assert.False(t, s.Report(true))
	allowed = true
	assert.False(t, s.Report(true))

	s.Rearm()
	assert.True(t, s.Report(true))
	assert.False(t, s.Report(true), "rearm is one-shot")
	assert.Equal(t, 2, fired)
}
