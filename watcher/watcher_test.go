package watcher_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"balloonsim/watcher"
)

func start(t *testing.T, paths ...string) <-chan struct{} {
	t.Helper()
	w, err := watcher.New(watcher.Config{Paths: paths, Debounce: 50 * time.Millisecond})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, w.Stop())
		require.NoError(t, w.Stop())
	})

	ch, err := w.Start()
	require.NoError(t, err)
	return ch
}

func TestWatcher_DebouncesBurstOfWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("debug: false\n"), 0o644))
	onChange := start(t, path)

	for i := 0; i < 10; i++ {
		require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf("seed: %d\n", i)), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-onChange:
	case <-time.After(time.Second):
		t.Fatal("expected a change notification")
	}
	select {
	case <-onChange:
		t.Fatal("burst should collapse into one notification")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("debug: false\n"), 0o644))
	require.NoError(t, os.WriteFile(other, []byte("x"), 0o644))
	onChange := start(t, path)

	require.NoError(t, os.WriteFile(other, []byte("y"), 0o644))
	select {
	case <-onChange:
		t.Fatal("unrelated file triggered a notification")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_SeesPresetInAnotherDirectory(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "config.yaml")
	preset := filepath.Join(t.TempDir(), "hero.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("{}\n"), 0o644))
	require.NoError(t, os.WriteFile(preset, []byte("balloons: []\n"), 0o644))
	onChange := start(t, cfg, "", preset)

	require.NoError(t, os.WriteFile(preset, []byte("balloons:\n  - id: a\n"), 0o644))
	select {
	case <-onChange:
	case <-time.After(time.Second):
		t.Fatal("expected a change notification for the preset")
	}
}

func TestNew_RequiresPaths(t *testing.T) {
	_, err := watcher.New(watcher.Config{Paths: []string{""}})
	require.Error(t, err)
}
