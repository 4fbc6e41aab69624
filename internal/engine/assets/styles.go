package assets

import (
	"context"
	"errors"
	"path/filepath"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/kiln/internal/engine/pipeline"
	"go.trai.ch/zerr"
)

// Styles compiles the SCSS entry into the single stylesheet main.css.
func Styles(cfg domain.BuildConfig, t Transforms) *pipeline.Pipeline {
	l := cfg.Layout
	entry := l.Abs(l.StylesEntry)

	return pipeline.New(domain.ClassStyles,
		pipeline.File{Path: entry},
		l.Abs(l.StylesOutput),
		pipeline.Stage{Name: "sourcemaps:init", When: domain.DevelopmentOnly, Run: pipeline.InitSourceMaps()},
		pipeline.Stage{Name: "sass", When: domain.Always, Run: pipeline.Each(
			func(ctx context.Context, a *pipeline.Asset) error {
				src, err := a.Bytes()
				if err != nil {
					return err
				}
				res, err := t.Styles.Compile(ctx, ports.StyleCompileRequest{
					Entry:        a.Source,
					Source:       src,
					IncludePaths: []string{filepath.Dir(a.Source)},
					SourceMap:    a.Mapping,
				})
				if err != nil {
					return withFile(err, a)
				}
				a.SetBytes(res.Code)
				a.SourceMap = res.Map
				a.Rename(domain.StylesBundleName)
				return nil
			})},
		pipeline.Stage{Name: "purge", When: domain.ProductionOnly, Run: purge(l, t.Sheets)},
		pipeline.Stage{Name: "autoprefixer", When: domain.Always, Run: pipeline.Each(
			func(ctx context.Context, a *pipeline.Asset) error {
				return rewrite(ctx, a, t.Sheets.Prefix)
			})},
		pipeline.Stage{Name: "sort", When: domain.Always, Run: pipeline.Each(
			func(ctx context.Context, a *pipeline.Asset) error {
				return rewrite(ctx, a, t.Sheets.SortDeclarations)
			})},
		pipeline.Stage{Name: "combine-media", When: domain.ProductionOnly, Run: pipeline.Each(
			func(ctx context.Context, a *pipeline.Asset) error {
				return rewrite(ctx, a, t.Sheets.CombineMediaQueries)
			})},
		pipeline.Stage{Name: "cssnano", When: domain.ProductionOnly, Run: pipeline.Each(
			func(ctx context.Context, a *pipeline.Asset) error {
				return rewrite(ctx, a, t.Minifier.CSS)
			})},
		pipeline.Stage{Name: "sourcemaps:write", When: domain.DevelopmentOnly, Run: pipeline.WriteSourceMaps(pipeline.BlockComment)},
	)
}

// purge reads every file under the pages directory as purge content.
func purge(l domain.Layout, sheets ports.StylesheetProcessor) pipeline.Transform {
	return func(ctx context.Context, assets []*pipeline.Asset) ([]*pipeline.Asset, error) {
		docs, err := pipeline.Glob{Base: l.Abs(l.PagesDir), Pattern: "**/*"}.Read(ctx)
		if err != nil {
			return nil, err
		}

		content := make([][]byte, 0, len(docs))
		for _, d := range docs {
			data, err := d.Bytes()
			if err != nil {
				return nil, err
			}
			content = append(content, data)
		}

		return pipeline.Each(func(ctx context.Context, a *pipeline.Asset) error {
			return rewrite(ctx, a, func(ctx context.Context, css []byte) ([]byte, error) {
				return sheets.Purge(ctx, css, content)
			})
		})(ctx, assets)
	}
}

// withFile attributes a location-less source error to the asset and tags
// any other error with the asset path.
func withFile(err error, a *pipeline.Asset) error {
	var srcErr *domain.SourceError
	if errors.As(err, &srcErr) {
		if srcErr.File == "" {
			srcErr.File = a.Source
			if srcErr.File == "" {
				srcErr.File = a.Path
			}
		}
		return err
	}
	return zerr.With(err, "file", a.Path)
}
