package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/app"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports/mocks"
	"go.trai.ch/kiln/internal/engine/assets"
	"go.uber.org/mock/gomock"
)

type mainTestMocks struct {
	loader  *mocks.MockConfigLoader
	logger  *mocks.MockLogger
	cleaner *mocks.MockOutputCleaner
	store   *mocks.MockBuildInfoStore
}

func newTestApp(t *testing.T) (*app.App, mainTestMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := mainTestMocks{
		loader:  mocks.NewMockConfigLoader(ctrl),
		logger:  mocks.NewMockLogger(ctrl),
		cleaner: mocks.NewMockOutputCleaner(ctrl),
		store:   mocks.NewMockBuildInfoStore(ctrl),
	}

	a := app.New(
		m.loader,
		m.logger,
		m.store,
		mocks.NewMockHasher(ctrl),
		m.cleaner,
		mocks.NewMockWatcher(ctrl),
		mocks.NewMockDevServerFactory(ctrl),
		mocks.NewMockMetrics(ctrl),
		assets.Transforms{},
	).WithOutput(io.Discard, io.Discard)

	return a, m
}

func provide(a *app.App, m mainTestMocks) ComponentProvider {
	return func(context.Context) (*app.Components, func(), error) {
		return &app.Components{App: a, Logger: m.logger}, func() {}, nil
	}
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	a, m := newTestApp(t)

	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), provide(a, m))
	assert.Equal(t, 0, exitCode)
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that command errors are logged and exit 1.
func TestRun_ExecutionError(t *testing.T) {
	a, m := newTestApp(t)
	root := t.TempDir()

	m.loader.EXPECT().Load(root).Return(nil, errors.New("load failed"))
	m.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorContains(t, err, "load failed")
	})

	exitCode := run(context.Background(), []string{"status", "--config", root}, io.Discard, provide(a, m))
	assert.Equal(t, 1, exitCode)
}

// TestRun_BuildFailureIsNotLoggedTwice verifies that a clean-then-build
// failure reported by the renderer exits 1 without a second log line.
func TestRun_BuildFailureIsNotLoggedTwice(t *testing.T) {
	a, m := newTestApp(t)
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src", "pages"), 0o750))

	ctrl := gomock.NewController(t)
	metrics := mocks.NewMockMetrics(ctrl)
	metrics.EXPECT().ObservePipeline(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	hasher := mocks.NewMockHasher(ctrl)
	hasher.EXPECT().ComputeOutputHash(gomock.Any(), gomock.Any()).Return("h", nil).AnyTimes()
	m.store.EXPECT().Put(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	a = app.New(m.loader, m.logger, m.store, hasher, m.cleaner, mocks.NewMockWatcher(ctrl),
		mocks.NewMockDevServerFactory(ctrl), metrics, assets.Transforms{}).
		WithOutput(io.Discard, io.Discard)

	m.loader.EXPECT().Load(root).Return(domain.DefaultSettings(root), nil)
	m.cleaner.EXPECT().Clean(root, "public").Return(nil)
	// Missing styles and scripts entries fail their pipelines; Error must not be called.
	m.logger.EXPECT().Error(gomock.Any()).Times(0)
	m.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	m.logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	m.logger.EXPECT().Debug(gomock.Any()).AnyTimes()

	exitCode := run(context.Background(), []string{"build", "-c", root}, io.Discard, provide(a, m))
	assert.Equal(t, 1, exitCode)
}

// TestRun_Signal verifies that cancellation stops a long-running command.
func TestRun_Signal(t *testing.T) {
	ctrl := gomock.NewController(t)
	a, m := newTestApp(t)
	root := t.TempDir()

	servers := mocks.NewMockDevServerFactory(ctrl)
	server := mocks.NewMockDevServer(ctrl)
	a = app.New(m.loader, m.logger, m.store, mocks.NewMockHasher(ctrl), m.cleaner, mocks.NewMockWatcher(ctrl),
		servers, mocks.NewMockMetrics(ctrl), assets.Transforms{}).
		WithOutput(io.Discard, io.Discard)

	m.loader.EXPECT().Load(root).Return(domain.DefaultSettings(root), nil)
	m.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	servers.EXPECT().NewServer(gomock.Any(), gomock.Any()).Return(server)
	server.EXPECT().Start(gomock.Any()).Return(nil)
	server.EXPECT().URL().Return("http://localhost:5500")
	server.EXPECT().Stop(gomock.Any()).Return(nil)

	ctx, cancel := context.WithCancel(context.Background())
	exitCh := make(chan int)
	go func() {
		exitCh <- run(ctx, []string{"srv", "-c", root, "--no-open"}, io.Discard, provide(a, m))
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case code := <-exitCh:
		assert.Equal(t, 0, code)
	case <-time.After(2 * time.Second):
		t.Fatal("run did not return after cancellation")
	}
}
