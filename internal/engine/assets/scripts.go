package assets

import (
	"context"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/kiln/internal/engine/pipeline"
)

// Scripts bundles the entry script and its imports into app.js.
func Scripts(cfg domain.BuildConfig, t Transforms) *pipeline.Pipeline {
	l := cfg.Layout

	return pipeline.New(domain.ClassScripts,
		pipeline.File{Path: l.Abs(l.ScriptsEntry)},
		l.Abs(l.ScriptsOutput),
		pipeline.Stage{Name: "sourcemaps:init", When: domain.DevelopmentOnly, Run: pipeline.InitSourceMaps()},
		pipeline.Stage{Name: "concat", When: domain.Always, Run: pipeline.Each(
			func(ctx context.Context, a *pipeline.Asset) error {
				res, err := t.Scripts.Bundle(ctx, ports.BundleRequest{
					Entry:     a.Source,
					Outfile:   domain.ScriptsBundleName,
					SourceMap: a.Mapping,
				})
				if err != nil {
					return withFile(err, a)
				}
				a.SetBytes(res.Code)
				a.SourceMap = res.Map
				a.Rename(domain.ScriptsBundleName)
				return nil
			})},
		pipeline.Stage{Name: "babel", When: domain.Always, Run: pipeline.Each(
			func(ctx context.Context, a *pipeline.Asset) error {
				code, err := a.Bytes()
				if err != nil {
					return err
				}
				res, err := t.Scripts.Transpile(ctx, ports.TranspileRequest{
					Code:      code,
					Filename:  a.Path,
					Map:       a.SourceMap,
					SourceMap: a.Mapping,
				})
				if err != nil {
					return withFile(err, a)
				}
				a.SetBytes(res.Code)
				a.SourceMap = res.Map
				return nil
			})},
		pipeline.Stage{Name: "terser", When: domain.ProductionOnly, Run: pipeline.Each(
			func(ctx context.Context, a *pipeline.Asset) error {
				return rewrite(ctx, a, func(ctx context.Context, code []byte) ([]byte, error) {
					return t.Scripts.Minify(ctx, code, a.Path)
				})
			})},
		pipeline.Stage{Name: "sourcemaps:write", When: domain.DevelopmentOnly, Run: pipeline.WriteSourceMaps(pipeline.LineComment)},
	)
}
