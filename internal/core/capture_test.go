package core

import (
	"testing"

	"gotest.tools/v3/assert"
)

func TestCaptureStoreInitiallyUnset(t *testing.T) {
	cs := NewCaptureStore(3)
	for i := 0; i < 3; i++ {
		assert.Equal(t, cs.Get(i), Unset)
	}
}

func TestCaptureStoreSetAndClear(t *testing.T) {
	cs := NewCaptureStore(2)
	cs.Set(1, 3, 7)
	assert.Equal(t, cs.Get(1), Capture{3, 7})
	cs.Clear(1)
	assert.Equal(t, cs.Get(1), Unset)
}

func TestCaptureStoreSnapshotRestore(t *testing.T) {
	cs := NewCaptureStore(2)
	cs.Set(1, 0, 1)
	snap := cs.Snapshot()
	cs.Set(1, 5, 9)
	cs.Restore(snap)
	assert.Equal(t, cs.Get(1), Capture{0, 1})
}

func TestCaptureStoreSnapshotIsIndependent(t *testing.T) {
	cs := NewCaptureStore(1)
	cs.Set(0, 1, 2)
	snap := cs.Snapshot()
	snap[0] = Capture{9, 9}
	assert.Equal(t, cs.Get(0), Capture{1, 2})
}
