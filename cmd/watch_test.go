package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatchCallsAfterWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movement.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bar: []\n"), 0644))

	watchDelay = 10 * time.Millisecond
	ctx, cancel := context.WithCancel(context.Background())
	calls := make(chan struct{}, 16)
	done := make(chan error, 1)
	go func() {
		done <- watch(ctx, path, func() { calls <- struct{}{} })
	}()

	select {
	case <-calls:
	case <-time.After(5 * time.Second):
		t.Fatal("no initial call")
	}

	// other files in the directory are ignored
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), "other.yaml"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(path, []byte("bar: []\nsig: []\n"), 0644))

	select {
	case <-calls:
	case <-time.After(5 * time.Second):
		t.Fatal("no call after write")
	}

	cancel()
	require.NoError(t, <-done)
}
