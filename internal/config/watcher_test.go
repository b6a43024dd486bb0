package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitUpdate(t *testing.T, w *Watcher, match func(Update) bool) Update {
	t.Helper()
	timeout := time.After(3 * time.Second)
	for {
		select {
		case u, ok := <-w.Updates():
			require.True(t, ok, "update channel closed")
			if match(u) {
				return u
			}
		case <-timeout:
			t.Fatal("timeout waiting for config update")
		}
	}
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme:\n  name: default\n"), 0644))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	assert.Error(t, w.Start(), "second start")

	// let fsnotify settle its watches
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("theme:\n  name: matrix\n"), 0644))
	u := waitUpdate(t, w, func(u Update) bool {
		return u.Err == nil && u.Config.Theme.Name == "matrix"
	})
	assert.Equal(t, GetTheme("matrix")["primary"], u.Config.Theme.Primary)

	require.NoError(t, os.WriteFile(path, []byte("theme:\n  name: neon\n"), 0644))
	u = waitUpdate(t, w, func(u Update) bool { return u.Err != nil })
	assert.Nil(t, u.Config)
}

func TestWatcherIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	w, err := NewWatcher(path)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0644))
	select {
	case u := <-w.Updates():
		t.Fatalf("unexpected update %+v", u)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherStop(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	require.NoError(t, w.Start())

	w.Stop()
	w.Stop()
	_, ok := <-w.Updates()
	assert.False(t, ok, "updates closed after stop")
	assert.Error(t, w.Start())
}

func TestNewWatcherMissingDirectory(t *testing.T) {
	_, err := NewWatcher("/definitely/not/here/config.yaml")
	assert.Error(t, err)
}
