package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

// Transform rewrites the asset set. It may replace, rename, drop or add assets.
type Transform func(ctx context.Context, assets []*Asset) ([]*Asset, error)

// Stage is one named, mode-guarded step of a pipeline.
type Stage struct {
	Name string
	When domain.Applicability
	Run  Transform
}

// Pipeline is a source, an ordered list of stages and an output directory.
type Pipeline struct {
	Class  domain.AssetClass
	Source Source
	Stages []Stage
	// Output is the absolute directory assets are written to.
	Output string
}

// Result describes one pipeline run.
type Result struct {
	Class domain.AssetClass
	// Executed lists the stages that ran, in order.
	Executed []string
	// Skipped lists the stages excluded by the mode.
	Skipped []string
	// Written lists the absolute paths of the files written.
	Written  []string
	Duration time.Duration
}

// New creates a Pipeline.
func New(class domain.AssetClass, source Source, output string, stages ...Stage) *Pipeline {
	return &Pipeline{Class: class, Source: source, Output: output, Stages: stages}
}

// StageNames returns the names of the stages that run in mode m.
func (p *Pipeline) StageNames(m domain.Mode) []string {
	var names []string
	for _, s := range p.Stages {
		if s.When.Applies(m) {
			names = append(names, s.Name)
		}
	}
	return names
}

// Run reads the source, applies every stage whose guard admits mode, and writes
// the resulting assets below Output. Each executed stage gets a child span of ctx.
// Nothing is written when a stage fails.
func (p *Pipeline) Run(ctx context.Context, mode domain.Mode, tracer ports.Tracer) (*Result, error) {
	started := time.Now()
	res := &Result{Class: p.Class}

	assets, err := p.Source.Read(ctx)
	if err != nil {
		return res, p.fail(err, "")
	}

	for _, stage := range p.Stages {
		if !stage.When.Applies(mode) {
			res.Skipped = append(res.Skipped, stage.Name)
			continue
		}
		if err := ctx.Err(); err != nil {
			return res, err
		}

		assets, err = p.runStage(ctx, stage, assets, tracer)
		if err != nil {
			return res, p.fail(err, stage.Name)
		}
		res.Executed = append(res.Executed, stage.Name)
	}

	written, err := p.write(assets)
	res.Written = written
	res.Duration = time.Since(started)
	if err != nil {
		return res, p.fail(err, "")
	}

	return res, nil
}

func (p *Pipeline) runStage(ctx context.Context, stage Stage, assets []*Asset, tracer ports.Tracer) ([]*Asset, error) {
	ctx, span := tracer.Start(ctx, stage.Name, ports.WithAttribute("assets", len(assets)))
	defer span.End()
	ctx = ports.ContextWithSpan(ctx, span)

	out, err := stage.Run(ctx, assets)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return out, nil
}

func (p *Pipeline) write(assets []*Asset) ([]string, error) {
	written := make([]string, 0, len(assets))
	for _, a := range assets {
		data, err := a.Bytes()
		if err != nil {
			return written, err
		}

		dst := filepath.Join(p.Output, filepath.FromSlash(a.Path))
		if err := os.MkdirAll(filepath.Dir(dst), domain.DirPerm); err != nil {
			return written, zerr.With(zerr.Wrap(err, domain.ErrOutputWriteFailed.Error()), "path", dst)
		}
		//nolint:gosec // output paths are derived from the configured layout
		if err := os.WriteFile(dst, data, domain.FilePerm); err != nil {
			return written, zerr.With(zerr.Wrap(err, domain.ErrOutputWriteFailed.Error()), "path", dst)
		}
		written = append(written, dst)
	}
	return written, nil
}

func (p *Pipeline) fail(err error, stage string) error {
	err = zerr.With(err, "pipeline", string(p.Class))
	if stage != "" {
		err = zerr.With(err, "stage", stage)
	}
	return err
}
