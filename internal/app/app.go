// Package app implements the application layer for kiln.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/kiln/internal/adapters/detector"  //nolint:depguard // Wired in app layer
	"go.trai.ch/kiln/internal/adapters/linear"    //nolint:depguard // Wired in app layer
	"go.trai.ch/kiln/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/kiln/internal/adapters/tui"       //nolint:depguard // Wired in app layer
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/kiln/internal/engine/assets"
	"go.trai.ch/kiln/internal/engine/scheduler"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	logger       ports.Logger
	store        ports.BuildInfoStore
	hasher       ports.Hasher
	cleaner      ports.OutputCleaner
	watcher      ports.Watcher
	servers      ports.DevServerFactory
	metrics      ports.Metrics
	transforms   assets.Transforms

	stdout io.Writer
	stderr io.Writer
	bust   domain.BustSource
	getwd  func() (string, error)
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	log ports.Logger,
	store ports.BuildInfoStore,
	hasher ports.Hasher,
	cleaner ports.OutputCleaner,
	watcher ports.Watcher,
	servers ports.DevServerFactory,
	metrics ports.Metrics,
	transforms assets.Transforms,
) *App {
	return &App{
		configLoader: loader,
		logger:       log,
		store:        store,
		hasher:       hasher,
		cleaner:      cleaner,
		watcher:      watcher,
		servers:      servers,
		metrics:      metrics,
		transforms:   transforms,
		stdout:       os.Stdout,
		stderr:       os.Stderr,
		getwd:        os.Getwd,
	}
}

// WithOutput redirects progress output. Used for testing.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// WithBust fixes the cache-bust source. Used for testing.
func (a *App) WithBust(bust domain.BustSource) *App {
	a.bust = bust
	return a
}

// WithWorkingDir pins the directory configuration is resolved from.
func (a *App) WithWorkingDir(dir string) *App {
	a.getwd = func() (string, error) { return dir, nil }
	return a
}

// Close releases long-lived transform processes.
func (a *App) Close() error {
	var errs error
	for _, t := range []any{
		a.transforms.Styles,
		a.transforms.Sheets,
		a.transforms.Scripts,
		a.transforms.Minifier,
		a.transforms.Vectors,
		a.transforms.Images,
	} {
		if c, ok := t.(io.Closer); ok {
			errs = errors.Join(errs, c.Close())
		}
	}
	return errs
}

// Options are the flags shared by every command.
type Options struct {
	// Mode is "development" or "production"; empty keeps the configured mode.
	Mode string
	// Production forces production mode and wins over Mode.
	Production bool
	// ConfigDir is where the kiln.yaml lookup starts; empty means the working directory.
	ConfigDir string
	Verbose   bool
	// Output is "auto", "tui" or "linear". Only one-shot commands honour
	// "tui"; watching commands always print lines.
	Output string

	// Port overrides the dev server port when non-zero.
	Port     int
	NoOpen   bool
	NoNotify bool
}

// session is the resolved state of one command invocation.
type session struct {
	settings *domain.Settings
	cfg      domain.BuildConfig
	sched    *scheduler.Scheduler
}

// Build cleans the output tree and runs every pipeline in parallel.
func (a *App) Build(ctx context.Context, opts Options) error {
	return a.run(ctx, opts, true, func(ctx context.Context, s *session) error {
		return a.build(ctx, s)
	})
}

// Dev builds everything, serves the output tree and rebuilds on change until
// ctx is cancelled.
func (a *App) Dev(ctx context.Context, opts Options) error {
	return a.run(ctx, opts, false, func(ctx context.Context, s *session) error {
		if err := a.build(ctx, s); err != nil {
			return err
		}

		server := a.servers.NewServer(s.cfg.Layout.Abs(s.cfg.Layout.OutputDir), s.settings.Server)
		if err := server.Start(ctx); err != nil {
			return err
		}
		defer a.stopServer(ctx, server)
		a.logger.Info("serving " + s.cfg.Layout.OutputDir + " at " + server.URL())

		return a.watch(ctx, s, server)
	})
}

// Styles rebuilds the stylesheet, then watches sources without a dev server.
func (a *App) Styles(ctx context.Context, opts Options) error {
	return a.run(ctx, opts, false, func(ctx context.Context, s *session) error {
		if err := a.runClasses(ctx, s, domain.ClassStyles); err != nil {
			return err
		}
		return a.watch(ctx, s, noopNotifier{})
	})
}

// Serve serves the existing output tree until ctx is cancelled.
func (a *App) Serve(ctx context.Context, opts Options) error {
	settings, err := a.resolve(opts)
	if err != nil {
		return err
	}

	server := a.servers.NewServer(settings.Layout.Abs(settings.Layout.OutputDir), settings.Server)
	if err := server.Start(ctx); err != nil {
		return err
	}
	a.logger.Info("serving " + settings.Layout.OutputDir + " at " + server.URL())

	<-ctx.Done()
	a.stopServer(ctx, server)
	return nil
}

// Vectors runs the vector pipeline only.
func (a *App) Vectors(ctx context.Context, opts Options) error {
	return a.run(ctx, opts, true, func(ctx context.Context, s *session) error {
		return a.runClasses(ctx, s, domain.ClassVectors)
	})
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	Options
	// All also removes the build info store.
	All bool
}

// Clean removes the output tree and, with All, the build info store.
func (a *App) Clean(_ context.Context, opts CleanOptions) error {
	settings, err := a.resolve(opts.Options)
	if err != nil {
		return err
	}
	root := settings.Layout.Root

	var errs error
	remove := func(dir, name string) {
		a.logger.Info(fmt.Sprintf("removing %s...", name))
		if err := a.cleaner.Clean(root, dir); err != nil {
			errs = errors.Join(errs, zerr.Wrap(err, fmt.Sprintf("failed to remove %s", name)))
			return
		}
		a.logger.Info(fmt.Sprintf("removed %s", name))
	}

	remove(settings.Layout.OutputDir, "output directory")
	if opts.All {
		remove(domain.DefaultStorePath(), "build info store")
	}

	return errs
}

// run resolves settings and executes fn alongside the progress renderer.
// interactive commands may use the terminal view.
func (a *App) run(ctx context.Context, opts Options, interactive bool, fn func(context.Context, *session) error) error {
	settings, err := a.resolve(opts)
	if err != nil {
		return err
	}

	renderer := a.renderer(ctx, opts, interactive)

	tp := telemetry.InstallProvider(renderer)
	defer func() {
		_ = tp.Shutdown(context.WithoutCancel(ctx))
	}()
	tracer := telemetry.NewOTelTracer("kiln").WithRenderer(renderer)

	cfg := domain.NewBuildConfig(settings.Mode, settings.Layout)
	if a.bust != nil {
		cfg.Bust = a.bust
	}
	s := &session{
		settings: settings,
		cfg:      cfg,
		sched:    scheduler.NewScheduler(a.store, a.hasher, tracer, a.logger, a.metrics),
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := renderer.Start(ctx); err != nil {
			return err
		}
		return renderer.Wait()
	})

	g.Go(func() error {
		defer func() {
			_ = renderer.Stop()
		}()
		return fn(ctx, s)
	})

	return g.Wait()
}

// renderer picks the terminal view for interactive commands on a terminal and
// line output everywhere else.
func (a *App) renderer(ctx context.Context, opts Options, interactive bool) ports.Renderer {
	mode := detector.ResolveMode(detector.DetectEnvironment(a.stdout), opts.Output)
	if interactive && mode == detector.ModeTUI {
		return tui.NewRenderer(tui.NewModel(), tea.WithContext(ctx), tea.WithOutput(a.stdout))
	}

	r := linear.NewRenderer(a.stdout, a.stderr)
	r.SetVerbose(opts.Verbose)
	return r
}

// build runs clean, then every pipeline in parallel.
func (a *App) build(ctx context.Context, s *session) error {
	layout := s.cfg.Layout
	started := time.Now()

	var failed error
	err := s.sched.Series(ctx,
		scheduler.Task{
			Name: "clean",
			Run: func(context.Context) error {
				return a.cleaner.Clean(layout.Root, layout.OutputDir)
			},
		},
		scheduler.Task{
			Name: "pipelines",
			Run: func(ctx context.Context) error {
				pipelines := assets.All(s.cfg, a.transforms)
				tasks := make([]scheduler.Task, 0, len(pipelines))
				for _, p := range pipelines {
					tasks = append(tasks, s.sched.PipelineTask(p, s.cfg))
				}
				failed = s.sched.Parallel(ctx, tasks...)
				return failed
			},
		},
	)
	if failed != nil {
		return errors.Join(domain.ErrBuildExecutionFailed, failed)
	}
	if err != nil {
		return err
	}

	a.logger.Info(fmt.Sprintf("built %d pipelines in %s mode (%s)",
		len(domain.AllClasses()), s.cfg.Mode, time.Since(started).Round(time.Millisecond)))
	return nil
}

// runClasses runs the given pipelines without cleaning first.
func (a *App) runClasses(ctx context.Context, s *session, classes ...domain.AssetClass) error {
	if err := s.sched.Parallel(ctx, a.tasks(s, classes...)...); err != nil {
		return errors.Join(domain.ErrBuildExecutionFailed, err)
	}
	return nil
}

func (a *App) tasks(s *session, classes ...domain.AssetClass) []scheduler.Task {
	tasks := make([]scheduler.Task, 0, len(classes))
	for _, class := range classes {
		p, err := assets.New(class, s.cfg, a.transforms)
		if err != nil {
			tasks = append(tasks, scheduler.Task{
				Name: class.String(),
				Run:  func(context.Context) error { return err },
			})
			continue
		}
		tasks = append(tasks, s.sched.PipelineTask(p, s.cfg))
	}
	return tasks
}

func (a *App) stopServer(ctx context.Context, server ports.DevServer) {
	stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := server.Stop(stopCtx); err != nil {
		a.logger.Warn("dev server shutdown: " + err.Error())
	}
}

// resolve layers command-line overrides over the loaded settings.
func (a *App) resolve(opts Options) (*domain.Settings, error) {
	if v, ok := a.logger.(interface{ SetVerbose(bool) }); ok && opts.Verbose {
		v.SetVerbose(true)
	}

	dir := opts.ConfigDir
	if dir == "" {
		wd, err := a.getwd()
		if err != nil {
			return nil, zerr.Wrap(err, domain.ErrFailedToGetRoot.Error())
		}
		dir = wd
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrFailedToGetRoot.Error())
	}

	settings, err := a.configLoader.Load(dir)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	switch {
	case opts.Production:
		settings.Mode = domain.ModeProduction
	case opts.Mode != "":
		mode, err := domain.ParseMode(opts.Mode)
		if err != nil {
			return nil, err
		}
		settings.Mode = mode
	}

	if opts.Port != 0 {
		if opts.Port < 1 || opts.Port > 65535 {
			return nil, zerr.With(domain.ErrInvalidPort, "port", opts.Port)
		}
		settings.Server.Port = opts.Port
	}
	if opts.NoOpen {
		settings.Server.Open = false
	}
	if opts.NoNotify {
		settings.Server.Notify = false
	}

	return settings, nil
}

type noopNotifier struct{}

func (noopNotifier) Reload(context.Context, domain.ReloadEvent) {}
