package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

// ErrInterrupted is returned by Wait when the user quits the view before the
// run has finished.
var ErrInterrupted = zerr.New("interrupted")

var _ ports.Renderer = (*Renderer)(nil)

// Renderer wraps the Bubble Tea program as a ports.Renderer.
type Renderer struct {
	program *tea.Program
	model   *Model
	errCh   chan error
}

// NewRenderer creates a Renderer driving model.
func NewRenderer(model *Model, opts ...tea.ProgramOption) *Renderer {
	return &Renderer{
		program: tea.NewProgram(model, opts...),
		model:   model,
		errCh:   make(chan error, 1),
	}
}

// Start runs the program in a background goroutine.
func (r *Renderer) Start(_ context.Context) error {
	go func() {
		_, err := r.program.Run()
		r.errCh <- err
	}()
	return nil
}

// Stop asks the program to draw its final frame and exit.
func (r *Renderer) Stop() error {
	r.program.Send(msgDone{})
	return nil
}

// Wait blocks until the program has exited.
func (r *Renderer) Wait() error {
	if err := <-r.errCh; err != nil {
		return err
	}
	if r.model.Interrupted {
		return ErrInterrupted
	}
	return nil
}

// OnPlanEmit adds the planned pipelines as pending rows.
func (r *Renderer) OnPlanEmit(tasks []string) {
	r.program.Send(msgPlan{names: tasks})
}

// OnTaskStart forwards span starts.
func (r *Renderer) OnTaskStart(spanID, parentID, name string, startTime time.Time) {
	r.program.Send(msgStart{spanID: spanID, parentID: parentID, name: name, at: startTime})
}

// OnTaskLog forwards span output.
func (r *Renderer) OnTaskLog(spanID string, data []byte) {
	r.program.Send(msgLog{spanID: spanID, data: data})
}

// OnTaskComplete forwards span completion.
func (r *Renderer) OnTaskComplete(spanID string, endTime time.Time, err error) {
	r.program.Send(msgComplete{spanID: spanID, at: endTime, err: err})
}
