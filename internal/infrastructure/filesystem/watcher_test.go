package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatchDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "node.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a: 1\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 4)
	done := make(chan error, 1)
	go func() {
		done <- WatchDocument(ctx, path, 20*time.Millisecond, func() { changed <- struct{}{} })
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("b: 1\n"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("a: 2\n"), 0o644))

	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	require.NoError(t, <-done)
}
