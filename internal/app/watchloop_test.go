package app

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/kiln/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const testRoot = "/project"

func newTestLoop(t *testing.T, rebuild func(context.Context, domain.AssetClass)) *watchLoop {
	t.Helper()
	log := mocks.NewMockLogger(gomock.NewController(t))
	log.EXPECT().Debug(gomock.Any()).AnyTimes()

	return &watchLoop{
		root:    testRoot,
		rules:   domain.DefaultWatchRules(domain.DefaultLayout(testRoot)),
		logger:  log,
		wake:    make(chan struct{}, 1),
		rebuild: rebuild,
	}
}

func at(rel string) string {
	return filepath.Join(testRoot, filepath.FromSlash(rel))
}

func TestWatchLoop_Match(t *testing.T) {
	l := newTestLoop(t, nil)

	tests := []struct {
		path  string
		want  domain.AssetClass
		match bool
	}{
		{at("src/pages/index.html"), domain.ClassPages, true},
		{at("src/pages/blog/post.html"), domain.ClassPages, true},
		{at("src/sass/main.scss"), domain.ClassStyles, true},
		{at("src/sass/partials/_nav.scss"), domain.ClassStyles, true},
		{at("src/javascript/app.js"), domain.ClassScripts, true},
		{at("src/javascript/lib/util.js"), domain.ClassScripts, true},
		{at("src/images/logo.svg"), domain.ClassVectors, true},
		{at("src/images/icons/arrow.svg"), domain.ClassImages, true},
		{at("src/images/photos/cat.jpg"), domain.ClassImages, true},
		{at("src/images/README"), "", false},
		{at("src/pages/notes.txt"), "", false},
		{at("public/index.html"), "", false},
		{"/elsewhere/src/pages/index.html", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := l.match(tt.path)
			assert.Equal(t, tt.match, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWatchLoop_CoalescesBursts(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()

		var (
			mu   sync.Mutex
			runs []domain.AssetClass
		)
		l := newTestLoop(t, func(_ context.Context, class domain.AssetClass) {
			mu.Lock()
			runs = append(runs, class)
			mu.Unlock()
		})

		evs := func(yield func(ports.WatchEvent) bool) {
			for _, p := range []string{
				"src/sass/main.scss",
				"src/sass/_a.scss",
				"src/sass/main.scss",
				"src/pages/index.html",
				"notes.md",
			} {
				if !yield(ports.WatchEvent{Path: at(p), Operation: ports.OpWrite}) {
					return
				}
			}
		}

		done := make(chan struct{})
		go func() {
			defer close(done)
			l.run(ctx, evs, domain.DefaultDebounce)
		}()

		time.Sleep(domain.DefaultDebounce + time.Millisecond)
		synctest.Wait()

		mu.Lock()
		assert.ElementsMatch(t, []domain.AssetClass{domain.ClassPages, domain.ClassStyles}, runs)
		mu.Unlock()

		cancel()
		<-done
	})
}

func TestWatchLoop_RunsOneAtATime(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()

		var (
			mu      sync.Mutex
			active  int
			maxSeen int
			runs    int
		)
		l := newTestLoop(t, func(_ context.Context, _ domain.AssetClass) {
			mu.Lock()
			active++
			maxSeen = max(maxSeen, active)
			mu.Unlock()

			time.Sleep(time.Second)

			mu.Lock()
			active--
			runs++
			mu.Unlock()
		})

		l.enqueue([]string{"pages", "scripts"})
		l.enqueue([]string{"styles", "pages"})

		done := make(chan struct{})
		go func() {
			defer close(done)
			l.dispatch(ctx)
		}()

		time.Sleep(10 * time.Second)
		synctest.Wait()

		mu.Lock()
		assert.Equal(t, 1, maxSeen)
		assert.Equal(t, 3, runs)
		mu.Unlock()

		cancel()
		<-done
	})
}
