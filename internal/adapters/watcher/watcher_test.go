package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/watcher"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/kiln/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func startWatcher(t *testing.T, root string, exclude ...string) <-chan ports.WatchEvent {
	t.Helper()

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	w := watcher.NewWatcher(log)
	require.NoError(t, w.Start(ctx, root, exclude...))
	t.Cleanup(func() {
		cancel()
		_ = w.Stop()
	})

	events := make(chan ports.WatchEvent, 64)
	go func() {
		defer close(events)
		for ev := range w.Events() {
			events <- ev
		}
	}()
	return events
}

func waitFor(t *testing.T, events <-chan ports.WatchEvent, path string) ports.WatchEvent {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			require.True(t, ok, "event stream closed before %s", path)
			if ev.Path == path {
				return ev
			}
		case <-timeout:
			require.FailNow(t, "timed out waiting for event", path)
		}
	}
}

func TestWatcher_ReportsWritesInNestedDirs(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "src", "sass", "partials")
	require.NoError(t, os.MkdirAll(nested, 0o750))

	events := startWatcher(t, root)

	target := filepath.Join(nested, "_vars.scss")
	require.NoError(t, os.WriteFile(target, []byte("$a: 1;"), 0o600))

	ev := waitFor(t, events, target)
	assert.Contains(t, []ports.WatchOp{ports.OpCreate, ports.OpWrite}, ev.Operation)
}

func TestWatcher_WatchesCreatedDirectories(t *testing.T) {
	root := t.TempDir()
	events := startWatcher(t, root)

	dir := filepath.Join(root, "src", "images")
	require.NoError(t, os.MkdirAll(dir, 0o750))
	waitFor(t, events, filepath.Join(root, "src"))

	// give the watcher a moment to register the new directory
	time.Sleep(100 * time.Millisecond)

	target := filepath.Join(dir, "logo.svg")
	require.NoError(t, os.WriteFile(target, []byte("<svg/>"), 0o600))
	waitFor(t, events, target)
}

func TestWatcher_SkipsExcludedAndHidden(t *testing.T) {
	root := t.TempDir()
	public := filepath.Join(root, "public")
	src := filepath.Join(root, "src")
	require.NoError(t, os.MkdirAll(public, 0o750))
	require.NoError(t, os.MkdirAll(src, 0o750))

	events := startWatcher(t, root, "public")

	require.NoError(t, os.WriteFile(filepath.Join(public, "index.html"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(src, ".index.html.swp"), []byte("x"), 0o600))
	marker := filepath.Join(src, "index.html")
	require.NoError(t, os.WriteFile(marker, []byte("x"), 0o600))

	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev := <-events:
			assert.NotEqual(t, filepath.Join(public, "index.html"), ev.Path)
			assert.NotEqual(t, filepath.Join(src, ".index.html.swp"), ev.Path)
			if ev.Path == marker {
				return
			}
		case <-timeout:
			require.FailNow(t, "timed out waiting for marker event")
		}
	}
}

func openFiles(t *testing.T) int {
	t.Helper()
	entries, err := os.ReadDir("/proc/self/fd")
	require.NoError(t, err)
	return len(entries)
}

func TestWatcher_StartFailureReleasesWatcher(t *testing.T) {
	if runtime.GOOS != "linux" || os.Geteuid() == 0 {
		t.Skip("needs inotify permission checks on a non-root linux user")
	}

	root := t.TempDir()
	locked := filepath.Join(root, "locked")
	require.NoError(t, os.Mkdir(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o750) })

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	w := watcher.NewWatcher(log)

	before := openFiles(t)
	err := w.Start(context.Background(), root)
	require.ErrorContains(t, err, domain.ErrWatcherStartFailed.Error())
	assert.Equal(t, before, openFiles(t))
	require.NoError(t, w.Stop())

	require.NoError(t, os.Chmod(locked, 0o750))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx, root))
	require.NoError(t, w.Stop())
}
