// Package linear provides a synchronous, line-oriented progress renderer.
package linear

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/kiln/internal/ui/output"
	"go.trai.ch/kiln/internal/ui/style"
)

var _ ports.Renderer = (*Renderer)(nil)

// Renderer implements ports.Renderer with chronological, prefixed lines.
// Top-level spans are pipelines; nested spans are stages and are only
// reported when verbose is set or when they fail.
type Renderer struct {
	stdout  io.Writer
	stderr  io.Writer
	output  *termenv.Output
	verbose bool

	mu      sync.Mutex
	tasks   map[string]*taskState
	buffers map[string]*bytes.Buffer
}

type taskState struct {
	name      string
	label     string
	nested    bool
	startTime time.Time
}

// NewRenderer creates a Renderer. Nil writers default to stdout and stderr.
func NewRenderer(stdout, stderr io.Writer) *Renderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	return &Renderer{
		stdout:  stdout,
		stderr:  stderr,
		output:  output.NewWithProfile(stderr, output.ColorProfileANSI),
		tasks:   make(map[string]*taskState),
		buffers: make(map[string]*bytes.Buffer),
	}
}

// SetVerbose enables stage-level lines.
func (r *Renderer) SetVerbose(v bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.verbose = v
}

// Start is a no-op for the linear renderer.
func (r *Renderer) Start(_ context.Context) error {
	return nil
}

// Stop flushes all remaining buffers.
func (r *Renderer) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for spanID := range r.buffers {
		r.flushBufferLocked(spanID)
	}
	return nil
}

// Wait is a no-op for the linear renderer.
func (r *Renderer) Wait() error {
	return nil
}

// OnPlanEmit prints the planned pipelines.
func (r *Renderer) OnPlanEmit(tasks []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, _ = fmt.Fprintf(r.stderr, "%s %d pipeline(s): %s\n",
		r.output.String(style.Arrow).Faint(), len(tasks), strings.Join(tasks, ", "))
}

// OnTaskStart registers a span and announces top-level ones.
func (r *Renderer) OnTaskStart(spanID, parentID, name string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state := &taskState{name: name, label: name, startTime: startTime}
	if parent, ok := r.tasks[parentID]; ok {
		state.nested = true
		state.label = parent.label + " › " + name
	}
	r.tasks[spanID] = state
	r.buffers[spanID] = new(bytes.Buffer)

	if !state.nested || r.verbose {
		_, _ = fmt.Fprintf(r.stderr, "%s Starting...\n", r.prefix(state.label))
	}
}

// OnTaskLog prints complete lines with the span's prefix and keeps partial lines buffered.
func (r *Renderer) OnTaskLog(spanID string, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[spanID]
	if !ok {
		return
	}

	buf := r.buffers[spanID]
	buf.Write(data)

	for {
		line, err := buf.ReadBytes('\n')
		if err != nil {
			if len(line) > 0 {
				rest := new(bytes.Buffer)
				rest.Write(line)
				r.buffers[spanID] = rest
			}
			break
		}
		r.printLineLocked(task.label, line)
	}
}

// OnTaskComplete prints the outcome and forgets the span.
func (r *Renderer) OnTaskComplete(spanID string, endTime time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[spanID]
	if !ok {
		return
	}

	r.flushBufferLocked(spanID)
	delete(r.tasks, spanID)
	delete(r.buffers, spanID)

	if task.nested && !r.verbose && err == nil {
		return
	}

	duration := endTime.Sub(task.startTime).Round(time.Millisecond)
	prefix := r.prefix(task.label)

	if err != nil {
		symbol := r.output.String(style.Cross).Foreground(termenv.ANSIRed)
		_, _ = fmt.Fprintf(r.stderr, "%s %s Failed after %v: %v\n", prefix, symbol, duration, err)
		return
	}

	symbol := r.output.String(style.Check).Foreground(termenv.ANSIGreen)
	_, _ = fmt.Fprintf(r.stderr, "%s %s Completed in %v\n", prefix, symbol, duration)
}

func (r *Renderer) prefix(label string) termenv.Style {
	return r.output.String("[" + label + "]").Faint()
}

// flushBufferLocked prints a trailing partial line. r.mu must be held.
func (r *Renderer) flushBufferLocked(spanID string) {
	task, ok := r.tasks[spanID]
	if !ok {
		return
	}

	buf := r.buffers[spanID]
	if buf.Len() > 0 {
		r.printLineLocked(task.label, buf.Bytes())
		buf.Reset()
	}
}

// printLineLocked writes one output line to stdout. r.mu must be held.
func (r *Renderer) printLineLocked(label string, line []byte) {
	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))
	if len(line) == 0 {
		return
	}

	_, _ = fmt.Fprintf(r.stdout, "[%s] %s\n", label, line)
}
