//go:build linux

package forkchild

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpawnAndReap(t *testing.T) {
	const n = 4
	children := make([]Child, 0, n)
	for i := 0; i < n; i++ {
		c, err := SpawnSleeper(50 * time.Millisecond)
		require.NoError(t, err)
		require.Greater(t, c.PID, 0)
		children = append(children, c)
	}

	seen := make(map[int]bool, n)
	for _, c := range children {
		assert.False(t, seen[c.PID], "duplicate pid %d", c.PID)
		seen[c.PID] = true

		status, err := c.Reap()
		require.NoError(t, err)
		assert.Zero(t, status, "child pid %d", c.PID)
	}
}

func TestReapConsumesStatusOnce(t *testing.T) {
	c, err := SpawnSleeper(10 * time.Millisecond)
	require.NoError(t, err)

	_, err = c.Reap()
	require.NoError(t, err)

	// The child is gone; a second wait must surface the error, not hang.
	_, err = c.Reap()
	require.Error(t, err)
}

func TestChildrenOutliveSpawnLoop(t *testing.T) {
	start := time.Now()
	c, err := SpawnSleeper(200 * time.Millisecond)
	require.NoError(t, err)

	_, err = c.Reap()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 150*time.Millisecond,
		"child exited before its sleep interval elapsed")
}
