package server

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "g.ggr")
	other := filepath.Join(dir, "other.txt")
	require.NoError(t, os.WriteFile(file, []byte("one"), 0o644))

	var calls atomic.Int32
	w, err := newWatcher([]string{file}, func() error {
		calls.Add(1)
		return nil
	})
	require.NoError(t, err)
	w.debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.run(ctx)

	// unrelated files in the same dir are ignored
	require.NoError(t, os.WriteFile(other, []byte("x"), 0o644))
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())

	// a burst of writes is one reload
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(file, []byte("two"), 0o644))
	}
	require.Eventually(t, func() bool { return calls.Load() == 1 }, 5*time.Second, 10*time.Millisecond)

	// replaced by rename, the way editors save
	tmp := filepath.Join(dir, "g.ggr.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte("three"), 0o644))
	require.NoError(t, os.Rename(tmp, file))
	require.Eventually(t, func() bool { return calls.Load() == 2 }, 5*time.Second, 10*time.Millisecond)
}

func TestWatcher_MissingDir(t *testing.T) {
	_, err := newWatcher([]string{"/nonexistent/dir/g.svg"}, func() error { return nil })
	assert.Error(t, err)
}
