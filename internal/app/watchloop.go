package app

import (
	"context"
	"iter"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"go.trai.ch/kiln/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/kiln/internal/engine/assets"
)

// watch starts the file watcher and dispatches rebuilds until ctx is cancelled.
func (a *App) watch(ctx context.Context, s *session, notifier ports.ReloadNotifier) error {
	layout := s.cfg.Layout
	if err := a.watcher.Start(ctx, layout.Root, layout.OutputDir, domain.KilnDirName); err != nil {
		return err
	}
	defer func() {
		_ = a.watcher.Stop()
	}()

	a.logger.Info("watching " + layout.Root + " for changes")

	loop := &watchLoop{
		root:   layout.Root,
		rules:  domain.DefaultWatchRules(layout),
		logger: a.logger,
		wake:   make(chan struct{}, 1),
		rebuild: func(ctx context.Context, class domain.AssetClass) {
			a.rebuild(ctx, s, notifier, class)
		},
	}
	loop.run(ctx, a.watcher.Events(), s.settings.Debounce)
	return nil
}

// rebuild reruns one pipeline and signals a reload when it succeeds.
func (a *App) rebuild(ctx context.Context, s *session, notifier ports.ReloadNotifier, class domain.AssetClass) {
	p, err := assets.New(class, s.cfg, a.transforms)
	if err != nil {
		a.logger.Error(err)
		return
	}

	if _, err := s.sched.RunPipeline(ctx, p, s.cfg); err != nil {
		a.logger.Error(err)
		return
	}

	event := domain.ReloadEvent{Pipeline: class}
	if info, err := a.store.Get(s.cfg.Layout.Root, class); err == nil && info != nil {
		event.Hash = info.OutputHash
	}
	notifier.Reload(ctx, event)
}

// watchLoop routes file events to pipelines. Events are coalesced per class
// by a debouncer and handed to a single dispatcher, so at most one pipeline
// runs at a time.
type watchLoop struct {
	root    string
	rules   []domain.WatchRule
	logger  ports.Logger
	rebuild func(ctx context.Context, class domain.AssetClass)

	mu      sync.Mutex
	pending []domain.AssetClass
	wake    chan struct{}
}

func (l *watchLoop) run(ctx context.Context, events iter.Seq[ports.WatchEvent], window time.Duration) {
	debouncer := watcher.NewDebouncer(window, l.enqueue)
	defer debouncer.Stop()

	done := make(chan struct{})
	go func() {
		defer close(done)
		l.dispatch(ctx)
	}()

	for event := range events {
		if ctx.Err() != nil {
			break
		}
		class, ok := l.match(event.Path)
		if !ok {
			l.logger.Debug("ignoring " + event.Operation.String() + " of " + event.Path)
			continue
		}
		l.logger.Debug(event.Operation.String() + " " + event.Path + " -> " + class.String())
		debouncer.Add(class.String())
	}

	<-done
}

// match returns the class of the first rule matching path.
func (l *watchLoop) match(path string) (domain.AssetClass, bool) {
	rel, err := filepath.Rel(l.root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	rel = filepath.ToSlash(rel)

	for _, rule := range l.rules {
		if ok, _ := doublestar.Match(rule.Pattern, rel); ok {
			return rule.Class, true
		}
	}
	return "", false
}

func (l *watchLoop) enqueue(keys []string) {
	l.mu.Lock()
	for _, key := range keys {
		class := domain.AssetClass(key)
		if !slices.Contains(l.pending, class) {
			l.pending = append(l.pending, class)
		}
	}
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

func (l *watchLoop) next() (domain.AssetClass, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.pending) == 0 {
		return "", false
	}
	class := l.pending[0]
	l.pending = l.pending[1:]
	return class, true
}

func (l *watchLoop) dispatch(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-l.wake:
		}

		for {
			if ctx.Err() != nil {
				return
			}
			class, ok := l.next()
			if !ok {
				break
			}
			l.rebuild(ctx, class)
		}
	}
}
