package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer is written by the watcher goroutine and read by the test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatchOutputs(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "outputs")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out syncBuffer
	done := make(chan error, 1)
	go func() { done <- watchOutputs(ctx, dir, &out) }()

	// The directory is created by the watcher.
	require.Eventually(t, func() bool {
		_, err := os.Stat(dir)
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)
	// Give the watcher a moment to register the directory.
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "x_aphorisms_20250101120000.md"), []byte("# hi"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scratch.tmp"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "x_aphorisms_20250101120000.json"), []byte("{}"), 0o644))

	require.Eventually(t, func() bool {
		s := out.String()
		return strings.Contains(s, "x_aphorisms_20250101120000.md") && strings.Contains(s, "x_aphorisms_20250101120000.json")
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}

	s := out.String()
	assert.NotContains(t, s, "scratch.tmp")
	assert.Equal(t, 1, strings.Count(s, "x_aphorisms_20250101120000.md"), "each artifact is reported once")
}
