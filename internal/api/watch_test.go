package api

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchReloadsOnSourceChange(t *testing.T) {
	s, _ := newTestServer(t, Options{})
	okReloads := func() float64 { return testutil.ToFloat64(s.metrics.reloads.WithLabelValues("ok")) }
	require.Equal(t, 1.0, okReloads())

	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Watch(ctx, 20*time.Millisecond, dir) }()

	// чужие файлы перезагрузку не вызывают
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	// наблюдатель ставится асинхронно, поэтому файл переписывается до первой перезагрузки
	n := 0
	require.Eventually(t, func() bool {
		n++
		body := fmt.Sprintf("name: Shape\nitems:\n  - code: C%d\n    name: circle\n", n)
		_ = os.WriteFile(filepath.Join(dir, "shape.yaml"), []byte(body), 0o644)
		return okReloads() > 1
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestWatchNeedsDirectory(t *testing.T) {
	s, _ := newTestServer(t, Options{})
	err := s.Watch(context.Background(), 0, filepath.Join(t.TempDir(), "missing"), "")
	assert.ErrorContains(t, err, "nothing to watch")
}
