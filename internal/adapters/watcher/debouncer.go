package watcher

import (
	"slices"
	"sync"
	"time"
	"unique"
)

// DefaultDebounceWindow is the default time window for debouncing file events.
const DefaultDebounceWindow = 50 * time.Millisecond

// Debouncer coalesces rapid keys into one batch delivered after a quiet window.
type Debouncer struct {
	mu       sync.Mutex
	pending  map[unique.Handle[string]]struct{}
	timer    *time.Timer
	window   time.Duration
	callback func(keys []string)
	stopped  bool
}

// NewDebouncer creates a debouncer calling callback with the sorted, deduplicated
// keys collected during each window.
func NewDebouncer(window time.Duration, callback func(keys []string)) *Debouncer {
	return &Debouncer{
		pending:  make(map[unique.Handle[string]]struct{}),
		window:   window,
		callback: callback,
	}
}

// Add records key and restarts the quiet window.
func (d *Debouncer) Add(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.pending[unique.Make(key)] = struct{}{}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	keys := d.drainLocked()
	d.timer = nil
	d.mu.Unlock()

	if len(keys) > 0 && d.callback != nil {
		go d.callback(keys)
	}
}

// Stop cancels the pending window and drops its keys. Later Adds are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	clear(d.pending)
}

func (d *Debouncer) drainLocked() []string {
	if len(d.pending) == 0 {
		return nil
	}
	keys := make([]string, 0, len(d.pending))
	for handle := range d.pending {
		keys = append(keys, handle.Value())
	}
	slices.Sort(keys)
	clear(d.pending)
	return keys
}
