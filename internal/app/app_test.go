package app_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"iter"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/cas"
	"go.trai.ch/kiln/internal/adapters/fs"
	"go.trai.ch/kiln/internal/app"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/kiln/internal/core/ports/mocks"
	"go.trai.ch/kiln/internal/engine/assets"
	"go.uber.org/mock/gomock"
)

type appTestMocks struct {
	loader   *mocks.MockConfigLoader
	logger   *mocks.MockLogger
	cleaner  *mocks.MockOutputCleaner
	watcher  *mocks.MockWatcher
	servers  *mocks.MockDevServerFactory
	server   *mocks.MockDevServer
	metrics  *mocks.MockMetrics
	styles   *mocks.MockStyleCompiler
	sheets   *mocks.MockStylesheetProcessor
	scripts  *mocks.MockScriptCompiler
	minifier *mocks.MockMinifier
	vectors  *mocks.MockVectorOptimizer
	images   *mocks.MockImageOptimizer
	store    *cas.Store
	settings *domain.Settings
}

// setupApp creates an App over a fixture project in a temp dir. The store,
// hasher and cleaner are real; everything else is mocked.
func setupApp(t *testing.T) (*app.App, string, *appTestMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	root := t.TempDir()

	m := &appTestMocks{
		loader:   mocks.NewMockConfigLoader(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
		cleaner:  mocks.NewMockOutputCleaner(ctrl),
		watcher:  mocks.NewMockWatcher(ctrl),
		servers:  mocks.NewMockDevServerFactory(ctrl),
		server:   mocks.NewMockDevServer(ctrl),
		metrics:  mocks.NewMockMetrics(ctrl),
		styles:   mocks.NewMockStyleCompiler(ctrl),
		sheets:   mocks.NewMockStylesheetProcessor(ctrl),
		scripts:  mocks.NewMockScriptCompiler(ctrl),
		minifier: mocks.NewMockMinifier(ctrl),
		vectors:  mocks.NewMockVectorOptimizer(ctrl),
		images:   mocks.NewMockImageOptimizer(ctrl),
		store:    cas.NewStore(),
		settings: domain.DefaultSettings(root),
	}

	m.loader.EXPECT().Load(root).Return(m.settings, nil).AnyTimes()
	m.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	m.logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	m.logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	m.metrics.EXPECT().ObservePipeline(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

	cleaner := fs.NewCleaner()
	m.cleaner.EXPECT().Clean(gomock.Any(), gomock.Any()).DoAndReturn(cleaner.Clean).AnyTimes()

	writeFile(t, root, "src/pages/index.html", "<link href=\"/assets/styles/main.css?cachebust=1\">\n")
	writeFile(t, root, "src/sass/main.scss", "a{color:red}")
	writeFile(t, root, "src/javascript/app.js", "console.log(1)")
	writeFile(t, root, "src/images/logo.svg", "<svg/>")
	writeFile(t, root, "src/images/photo.png", "png")

	a := app.New(
		m.loader,
		m.logger,
		m.store,
		fs.NewHasher(),
		m.cleaner,
		m.watcher,
		m.servers,
		m.metrics,
		assets.Transforms{
			Styles:   m.styles,
			Sheets:   m.sheets,
			Scripts:  m.scripts,
			Minifier: m.minifier,
			Vectors:  m.vectors,
			Images:   m.images,
		},
	).
		WithOutput(io.Discard, io.Discard).
		WithBust(func() int64 { return 4242 }).
		WithWorkingDir(root)

	return a, root, m
}

// expectDevelopmentTransforms lets every development-mode transform pass through.
func expectDevelopmentTransforms(m *appTestMocks) {
	m.styles.EXPECT().Compile(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req ports.StyleCompileRequest) (ports.CompileResult, error) {
			return ports.CompileResult{Code: bytes.Clone(req.Source)}, nil
		}).AnyTimes()
	m.sheets.EXPECT().Prefix(gomock.Any(), gomock.Any()).DoAndReturn(passthrough).AnyTimes()
	m.sheets.EXPECT().SortDeclarations(gomock.Any(), gomock.Any()).DoAndReturn(passthrough).AnyTimes()
	m.scripts.EXPECT().Bundle(gomock.Any(), gomock.Any()).
		Return(ports.CompileResult{Code: []byte("bundle")}, nil).AnyTimes()
	m.scripts.EXPECT().Transpile(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req ports.TranspileRequest) (ports.CompileResult, error) {
			return ports.CompileResult{Code: req.Code}, nil
		}).AnyTimes()
	m.vectors.EXPECT().Optimize(gomock.Any(), gomock.Any()).DoAndReturn(passthrough).AnyTimes()
}

func passthrough(_ context.Context, src []byte) ([]byte, error) {
	return bytes.Clone(src), nil
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func events(evs ...ports.WatchEvent) iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for _, e := range evs {
			if !yield(e) {
				return
			}
		}
	}
}

func TestApp_Build(t *testing.T) {
	a, root, m := setupApp(t)
	expectDevelopmentTransforms(m)
	writeFile(t, root, "public/stale.html", "old")

	err := a.Build(context.Background(), app.Options{})
	require.NoError(t, err)

	assert.NoFileExists(t, filepath.Join(root, "public", "stale.html"))
	index, err := os.ReadFile(filepath.Join(root, "public", "index.html"))
	require.NoError(t, err)
	assert.Equal(t, "<link href=\"/assets/styles/main.css?cb=4242\">\n", string(index))

	assert.FileExists(t, filepath.Join(root, "public", "assets", "styles", "main.css"))
	assert.FileExists(t, filepath.Join(root, "public", "assets", "scripts", "app.js"))
	assert.FileExists(t, filepath.Join(root, "public", "assets", "images", "logo.svg"))
	assert.FileExists(t, filepath.Join(root, "public", "assets", "images", "photo.png"))

	for _, class := range domain.AllClasses() {
		info, err := m.store.Get(root, class)
		require.NoError(t, err)
		require.NotNil(t, info, class)
		assert.Equal(t, domain.ModeDevelopment, info.Mode)
	}
}

func TestApp_Build_PipelineFailureKeepsSiblings(t *testing.T) {
	a, root, m := setupApp(t)
	m.styles.EXPECT().Compile(gomock.Any(), gomock.Any()).Return(ports.CompileResult{}, &domain.SourceError{
		Class: domain.ClassStyles, Line: 1, Column: 2, Message: "expected \";\"",
	})
	m.scripts.EXPECT().Bundle(gomock.Any(), gomock.Any()).Return(ports.CompileResult{Code: []byte("x")}, nil)
	m.scripts.EXPECT().Transpile(gomock.Any(), gomock.Any()).Return(ports.CompileResult{Code: []byte("x")}, nil)
	m.vectors.EXPECT().Optimize(gomock.Any(), gomock.Any()).DoAndReturn(passthrough)

	err := a.Build(context.Background(), app.Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBuildExecutionFailed)
	assert.ErrorIs(t, err, domain.ErrSourceSyntax)

	assert.FileExists(t, filepath.Join(root, "public", "index.html"))
	assert.FileExists(t, filepath.Join(root, "public", "assets", "scripts", "app.js"))
	assert.NoFileExists(t, filepath.Join(root, "public", "assets", "styles", "main.css"))
}

func TestApp_Build_CleanFailureAborts(t *testing.T) {
	ctrl := gomock.NewController(t)
	root := t.TempDir()
	loader := mocks.NewMockConfigLoader(ctrl)
	loader.EXPECT().Load(root).Return(domain.DefaultSettings(root), nil)
	cleaner := mocks.NewMockOutputCleaner(ctrl)
	cleaner.EXPECT().Clean(root, "public").Return(domain.ErrCleanFailed)

	// No transform expectations: any pipeline run fails the test.
	a := app.New(loader, mocks.NewMockLogger(ctrl), mocks.NewMockBuildInfoStore(ctrl), mocks.NewMockHasher(ctrl),
		cleaner, mocks.NewMockWatcher(ctrl), mocks.NewMockDevServerFactory(ctrl), mocks.NewMockMetrics(ctrl),
		assets.Transforms{}).
		WithOutput(io.Discard, io.Discard).
		WithWorkingDir(root)

	err := a.Build(context.Background(), app.Options{})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrCleanFailed.Error())
	assert.NotErrorIs(t, err, domain.ErrBuildExecutionFailed)
}

func TestApp_Build_Production(t *testing.T) {
	a, root, m := setupApp(t)
	expectDevelopmentTransforms(m)
	m.sheets.EXPECT().Purge(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, css []byte, _ [][]byte) ([]byte, error) { return css, nil })
	m.sheets.EXPECT().CombineMediaQueries(gomock.Any(), gomock.Any()).DoAndReturn(passthrough)
	m.minifier.EXPECT().CSS(gomock.Any(), gomock.Any()).DoAndReturn(passthrough)
	m.minifier.EXPECT().HTML(gomock.Any(), gomock.Any()).Return([]byte("<min>"), nil)
	m.scripts.EXPECT().Minify(gomock.Any(), gomock.Any(), "app.js").Return([]byte("min"), nil)
	m.images.EXPECT().Optimize(gomock.Any(), "photo.png", []byte("png")).Return([]byte("p"), nil)

	err := a.Build(context.Background(), app.Options{Production: true})
	require.NoError(t, err)

	index, err := os.ReadFile(filepath.Join(root, "public", "index.html"))
	require.NoError(t, err)
	assert.Equal(t, "<min>", string(index))

	info, err := m.store.Get(root, domain.ClassScripts)
	require.NoError(t, err)
	assert.Equal(t, domain.ModeProduction, info.Mode)
}

func TestApp_Build_InvalidMode(t *testing.T) {
	a, _, _ := setupApp(t)

	err := a.Build(context.Background(), app.Options{Mode: "staging"})
	assert.ErrorContains(t, err, domain.ErrInvalidMode.Error())
}

func TestApp_Dev_RebuildsAndReloads(t *testing.T) {
	a, root, m := setupApp(t)

	// The initial build runs every pipeline once; both stylesheet edits
	// coalesce into a single styles rebuild.
	m.styles.EXPECT().Compile(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req ports.StyleCompileRequest) (ports.CompileResult, error) {
			return ports.CompileResult{Code: bytes.Clone(req.Source)}, nil
		}).Times(2)
	m.sheets.EXPECT().Prefix(gomock.Any(), gomock.Any()).DoAndReturn(passthrough).Times(2)
	m.sheets.EXPECT().SortDeclarations(gomock.Any(), gomock.Any()).DoAndReturn(passthrough).Times(2)
	m.scripts.EXPECT().Bundle(gomock.Any(), gomock.Any()).
		Return(ports.CompileResult{Code: []byte("bundle")}, nil).Times(1)
	m.scripts.EXPECT().Transpile(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req ports.TranspileRequest) (ports.CompileResult, error) {
			return ports.CompileResult{Code: req.Code}, nil
		}).Times(1)
	m.vectors.EXPECT().Optimize(gomock.Any(), gomock.Any()).DoAndReturn(passthrough).Times(1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m.servers.EXPECT().NewServer(filepath.Join(root, "public"), m.settings.Server).Return(m.server)
	m.server.EXPECT().Start(gomock.Any()).Return(nil)
	m.server.EXPECT().URL().Return("http://localhost:5500").AnyTimes()
	m.server.EXPECT().Stop(gomock.Any()).Return(nil)

	m.watcher.EXPECT().Start(gomock.Any(), root, "public", domain.KilnDirName).Return(nil)
	m.watcher.EXPECT().Stop().Return(nil)
	m.watcher.EXPECT().Events().Return(events(
		ports.WatchEvent{Path: filepath.Join(root, "README.md"), Operation: ports.OpWrite},
		ports.WatchEvent{Path: filepath.Join(root, "src", "sass", "_base.scss"), Operation: ports.OpWrite},
		ports.WatchEvent{Path: filepath.Join(root, "src", "sass", "main.scss"), Operation: ports.OpWrite},
	))

	var reloaded domain.ReloadEvent
	m.server.EXPECT().Reload(gomock.Any(), gomock.Any()).Do(
		func(_ context.Context, e domain.ReloadEvent) {
			reloaded = e
			cancel()
		}).Times(1)

	done := make(chan error, 1)
	go func() { done <- a.Dev(ctx, app.Options{}) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("dev did not stop")
	}

	assert.Equal(t, domain.ClassStyles, reloaded.Pipeline)
	info, err := m.store.Get(root, domain.ClassStyles)
	require.NoError(t, err)
	assert.Equal(t, info.OutputHash, reloaded.Hash)
}

func TestApp_Dev_FailedRebuildDoesNotReload(t *testing.T) {
	a, root, m := setupApp(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m.scripts.EXPECT().Bundle(gomock.Any(), gomock.Any()).Return(ports.CompileResult{Code: []byte("ok")}, nil)
	m.scripts.EXPECT().Bundle(gomock.Any(), gomock.Any()).Return(ports.CompileResult{}, &domain.SourceError{
		Class: domain.ClassScripts, Message: "Unexpected end of file",
	})
	m.scripts.EXPECT().Transpile(gomock.Any(), gomock.Any()).Return(ports.CompileResult{Code: []byte("ok")}, nil)
	m.styles.EXPECT().Compile(gomock.Any(), gomock.Any()).Return(ports.CompileResult{Code: []byte("a{}")}, nil)
	m.sheets.EXPECT().Prefix(gomock.Any(), gomock.Any()).DoAndReturn(passthrough)
	m.sheets.EXPECT().SortDeclarations(gomock.Any(), gomock.Any()).DoAndReturn(passthrough)
	m.vectors.EXPECT().Optimize(gomock.Any(), gomock.Any()).DoAndReturn(passthrough)

	m.servers.EXPECT().NewServer(gomock.Any(), gomock.Any()).Return(m.server)
	m.server.EXPECT().Start(gomock.Any()).Return(nil)
	m.server.EXPECT().URL().Return("http://localhost:5500").AnyTimes()
	m.server.EXPECT().Stop(gomock.Any()).Return(nil)
	m.server.EXPECT().Reload(gomock.Any(), gomock.Any()).Times(0)

	m.watcher.EXPECT().Start(gomock.Any(), root, gomock.Any(), gomock.Any()).Return(nil)
	m.watcher.EXPECT().Stop().Return(nil)
	m.watcher.EXPECT().Events().Return(events(
		ports.WatchEvent{Path: filepath.Join(root, "src", "javascript", "app.js"), Operation: ports.OpWrite},
	))

	var logged error
	m.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		logged = err
		cancel()
	})

	err := a.Dev(ctx, app.Options{})
	require.NoError(t, err)

	assert.ErrorContains(t, logged, domain.ErrPipelineFailed.Error())
	assert.FileExists(t, filepath.Join(root, "public", "assets", "scripts", "app.js"))
}

func TestApp_Dev_InitialBuildFailureStops(t *testing.T) {
	a, _, m := setupApp(t)
	m.styles.EXPECT().Compile(gomock.Any(), gomock.Any()).Return(ports.CompileResult{}, errors.New("boom"))
	m.scripts.EXPECT().Bundle(gomock.Any(), gomock.Any()).Return(ports.CompileResult{Code: []byte("x")}, nil)
	m.scripts.EXPECT().Transpile(gomock.Any(), gomock.Any()).Return(ports.CompileResult{Code: []byte("x")}, nil)
	m.vectors.EXPECT().Optimize(gomock.Any(), gomock.Any()).DoAndReturn(passthrough)

	// No server or watcher expectations: neither may start.
	err := a.Dev(context.Background(), app.Options{})
	assert.ErrorIs(t, err, domain.ErrBuildExecutionFailed)
}

func TestApp_Styles_WatchesWithoutServer(t *testing.T) {
	a, root, m := setupApp(t)
	expectDevelopmentTransforms(m)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m.watcher.EXPECT().Start(gomock.Any(), root, gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, string, ...string) error {
			cancel()
			return nil
		})
	m.watcher.EXPECT().Stop().Return(nil)
	m.watcher.EXPECT().Events().Return(events())

	require.NoError(t, a.Styles(ctx, app.Options{}))

	assert.FileExists(t, filepath.Join(root, "public", "assets", "styles", "main.css"))
	assert.NoFileExists(t, filepath.Join(root, "public", "index.html"))
}

func TestApp_Serve(t *testing.T) {
	a, root, m := setupApp(t)

	ctx, cancel := context.WithCancel(context.Background())

	want := domain.ServerSettings{Port: 8080, Open: false, Notify: false}
	m.servers.EXPECT().NewServer(filepath.Join(root, "public"), want).Return(m.server)
	m.server.EXPECT().Start(gomock.Any()).DoAndReturn(func(context.Context) error {
		cancel()
		return nil
	})
	m.server.EXPECT().URL().Return("http://localhost:8080")
	m.server.EXPECT().Stop(gomock.Any()).Return(nil)

	err := a.Serve(ctx, app.Options{Port: 8080, NoOpen: true, NoNotify: true})
	require.NoError(t, err)
}

func TestApp_Serve_InvalidPort(t *testing.T) {
	a, _, _ := setupApp(t)

	err := a.Serve(context.Background(), app.Options{Port: 70000})
	assert.ErrorContains(t, err, domain.ErrInvalidPort.Error())
}

func TestApp_Vectors(t *testing.T) {
	a, root, m := setupApp(t)
	m.vectors.EXPECT().Optimize(gomock.Any(), []byte("<svg/>")).Return([]byte("<svg></svg>"), nil)

	require.NoError(t, a.Vectors(context.Background(), app.Options{}))

	got, err := os.ReadFile(filepath.Join(root, "public", "assets", "images", "logo.svg"))
	require.NoError(t, err)
	assert.Equal(t, "<svg></svg>", string(got))
	assert.NoFileExists(t, filepath.Join(root, "public", "index.html"))
}

func TestApp_Clean(t *testing.T) {
	t.Run("output only", func(t *testing.T) {
		a, root, _ := setupApp(t)
		writeFile(t, root, "public/index.html", "x")
		writeFile(t, root, ".kiln/store/pages.json", "{}")

		require.NoError(t, a.Clean(context.Background(), app.CleanOptions{}))

		assert.NoDirExists(t, filepath.Join(root, "public"))
		assert.FileExists(t, filepath.Join(root, ".kiln", "store", "pages.json"))
	})

	t.Run("all", func(t *testing.T) {
		a, root, _ := setupApp(t)
		writeFile(t, root, "public/index.html", "x")
		writeFile(t, root, ".kiln/store/pages.json", "{}")

		require.NoError(t, a.Clean(context.Background(), app.CleanOptions{All: true}))

		assert.NoDirExists(t, filepath.Join(root, "public"))
		assert.NoDirExists(t, filepath.Join(root, ".kiln", "store"))
		assert.DirExists(t, filepath.Join(root, "src"))
	})
}

func TestApp_Status(t *testing.T) {
	a, root, m := setupApp(t)
	require.NoError(t, m.store.Put(root, domain.BuildInfo{
		Pipeline:   domain.ClassStyles,
		Mode:       domain.ModeProduction,
		Files:      []string{"public/assets/styles/main.css"},
		OutputHash: "0123456789abcdef",
		Duration:   120 * time.Millisecond,
		Timestamp:  time.Now(),
	}))

	out := new(bytes.Buffer)
	a.WithOutput(out, io.Discard)

	require.NoError(t, a.Status(context.Background(), app.Options{}))

	s := out.String()
	assert.Contains(t, s, "styles")
	assert.Contains(t, s, "production")
	assert.Contains(t, s, "1 files")
	assert.Contains(t, s, "0123456789ab")
	assert.NotContains(t, s, "0123456789abcdef")
	assert.Contains(t, s, "never built")
}
