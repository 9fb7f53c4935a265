package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherDeliversChange(t *testing.T) {
	dir := t.TempDir()

	w, err := New()
	require.NoError(t, err)
	require.NoError(t, w.Retarget(dir))
	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.txt"), []byte("x"), 0o644))

	select {
	case change := <-w.Changes():
		assert.Equal(t, dir, change.Dir)
	case <-time.After(3 * time.Second):
		t.Fatal("no change notification received")
	}
}

func TestRetargetStopsOldDirectory(t *testing.T) {
	oldDir := t.TempDir()
	newDir := t.TempDir()

	w, err := New()
	require.NoError(t, err)
	require.NoError(t, w.Retarget(oldDir))
	require.NoError(t, w.Retarget(newDir))
	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(oldDir, "ignored.txt"), []byte("x"), 0o644))

	select {
	case change := <-w.Changes():
		t.Fatalf("unexpected notification for %s", change.Dir)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestStartTwiceFails(t *testing.T) {
	w, err := New()
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	assert.Error(t, w.Start())
}

func TestRetargetMissingDirectoryFails(t *testing.T) {
	w, err := New()
	require.NoError(t, err)
	defer w.Stop()

	assert.Error(t, w.Retarget(filepath.Join(t.TempDir(), "missing")))
}

func TestStopDuringEventBurst(t *testing.T) {
	dir := t.TempDir()

	w, err := New()
	require.NoError(t, err)
	require.NoError(t, w.Retarget(dir))
	require.NoError(t, w.Start())

	// Keep events flowing while Stop runs so a send and the close
	// would collide if shutdown did not wait for the event loop.
	writing := make(chan struct{})
	go func() {
		defer close(writing)
		for i := 0; i < 200; i++ {
			_ = os.WriteFile(filepath.Join(dir, "burst.txt"), []byte{byte(i)}, 0o644)
		}
	}()

	time.Sleep(10 * time.Millisecond)
	w.Stop()
	<-writing

	// The change channel must be closed once Stop returns.
	for {
		if _, ok := <-w.Changes(); !ok {
			break
		}
	}
	assert.False(t, w.IsRunning())
}
