// Package scheduler composes pipeline runs in series and in parallel and records
// the outcome of every run.
package scheduler

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"time"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/kiln/internal/engine/pipeline"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Task is a named unit of orchestrated work.
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// Scheduler runs tasks and pipelines.
type Scheduler struct {
	store   ports.BuildInfoStore
	hasher  ports.Hasher
	tracer  ports.Tracer
	logger  ports.Logger
	metrics ports.Metrics
}

// NewScheduler creates a new Scheduler with the given dependencies.
func NewScheduler(
	store ports.BuildInfoStore,
	hasher ports.Hasher,
	tracer ports.Tracer,
	logger ports.Logger,
	metrics ports.Metrics,
) *Scheduler {
	return &Scheduler{
		store:   store,
		hasher:  hasher,
		tracer:  tracer,
		logger:  logger,
		metrics: metrics,
	}
}

// Series runs tasks one after another and stops at the first failure.
// A task starts only after the previous one has fully completed.
func (s *Scheduler) Series(ctx context.Context, tasks ...Task) error {
	for _, task := range tasks {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.execute(ctx, task); err != nil {
			return err
		}
	}
	return nil
}

// Parallel starts every task at once and waits for all of them. A failing task
// does not cancel its siblings; all failures are joined into the returned error.
func (s *Scheduler) Parallel(ctx context.Context, tasks ...Task) error {
	names := make([]string, len(tasks))
	for i, task := range tasks {
		names[i] = task.Name
	}
	s.tracer.EmitPlan(ctx, names)

	var (
		g    errgroup.Group
		mu   sync.Mutex
		errs error
	)
	for _, task := range tasks {
		g.Go(func() error {
			if err := s.execute(ctx, task); err != nil {
				mu.Lock()
				errs = errors.Join(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	return errs
}

func (s *Scheduler) execute(ctx context.Context, task Task) error {
	if err := task.Run(ctx); err != nil {
		return zerr.With(err, "task", task.Name)
	}
	return nil
}

// PipelineTask wraps a pipeline run as a Task named after its asset class.
func (s *Scheduler) PipelineTask(p *pipeline.Pipeline, cfg domain.BuildConfig) Task {
	return Task{
		Name: p.Class.String(),
		Run: func(ctx context.Context) error {
			_, err := s.RunPipeline(ctx, p, cfg)
			return err
		},
	}
}

// RunPipeline runs p under its own span and records a BuildInfo on success.
func (s *Scheduler) RunPipeline(ctx context.Context, p *pipeline.Pipeline, cfg domain.BuildConfig) (*pipeline.Result, error) {
	ctx, span := s.tracer.Start(ctx, p.Class.String(),
		ports.WithAttribute("kiln.pipeline", p.Class.String()),
		ports.WithAttribute("kiln.mode", cfg.Mode.String()),
		ports.WithAttribute("kiln.stages", p.StageNames(cfg.Mode)),
	)
	defer span.End()

	started := time.Now()
	res, err := p.Run(ctx, cfg.Mode, s.tracer)
	elapsed := time.Since(started)
	s.metrics.ObservePipeline(p.Class, cfg.Mode, elapsed.Seconds(), err)

	if err != nil {
		err = zerr.Wrap(err, domain.ErrPipelineFailed.Error())
		span.RecordError(err)
		return res, err
	}

	span.SetAttribute("kiln.written", len(res.Written))
	s.record(cfg, res, elapsed)
	return res, nil
}

// record stores the build info of a successful run. Failures are logged but do
// not fail the run.
func (s *Scheduler) record(cfg domain.BuildConfig, res *pipeline.Result, elapsed time.Duration) {
	root := cfg.Layout.Root
	files := make([]string, 0, len(res.Written))
	for _, abs := range res.Written {
		rel, err := filepath.Rel(root, abs)
		if err != nil {
			rel = abs
		}
		files = append(files, filepath.ToSlash(rel))
	}

	hash, err := s.hasher.ComputeOutputHash(root, files)
	if err != nil {
		s.logger.Warn("could not hash " + res.Class.String() + " outputs: " + err.Error())
		return
	}

	err = s.store.Put(root, domain.BuildInfo{
		Pipeline:   res.Class,
		Mode:       cfg.Mode,
		Files:      files,
		OutputHash: hash,
		Duration:   elapsed,
		Timestamp:  time.Now(),
	})
	if err != nil {
		s.logger.Warn("could not record " + res.Class.String() + " build: " + err.Error())
	}
}
