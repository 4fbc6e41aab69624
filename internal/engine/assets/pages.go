package assets

import (
	"context"
	"regexp"
	"strconv"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/engine/pipeline"
)

var cacheBustPattern = regexp.MustCompile(`cachebust=\d+`)

// InjectCacheBust replaces every cachebust=<digits> token in src with cb=<token>.
// Surrounding bytes, whitespace included, are left untouched.
func InjectCacheBust(src []byte, token int64) []byte {
	return cacheBustPattern.ReplaceAllLiteral(src, []byte("cb="+strconv.FormatInt(token, 10)))
}

// CacheBust returns a Transform that draws one token from bust per run and
// injects it into every asset of that run.
func CacheBust(bust domain.BustSource) pipeline.Transform {
	return func(ctx context.Context, assets []*pipeline.Asset) ([]*pipeline.Asset, error) {
		token := bust()
		return pipeline.Each(func(_ context.Context, a *pipeline.Asset) error {
			data, err := a.Bytes()
			if err != nil {
				return err
			}
			a.SetBytes(InjectCacheBust(data, token))
			return nil
		})(ctx, assets)
	}
}

// Pages builds src/pages/**/*.html into the output root.
func Pages(cfg domain.BuildConfig, t Transforms) *pipeline.Pipeline {
	l := cfg.Layout
	return pipeline.New(domain.ClassPages,
		pipeline.Glob{Base: l.Abs(l.PagesDir), Pattern: "**/*.html"},
		l.Abs(l.OutputDir),
		pipeline.Stage{Name: "cachebust", When: domain.Always, Run: CacheBust(cfg.NextBust)},
		pipeline.Stage{Name: "htmlmin", When: domain.ProductionOnly, Run: pipeline.Each(
			func(ctx context.Context, a *pipeline.Asset) error {
				return rewrite(ctx, a, t.Minifier.HTML)
			})},
	)
}

// rewrite replaces the contents of a with fn applied to them.
func rewrite(ctx context.Context, a *pipeline.Asset, fn func(context.Context, []byte) ([]byte, error)) error {
	data, err := a.Bytes()
	if err != nil {
		return err
	}
	out, err := fn(ctx, data)
	if err != nil {
		return withFile(err, a)
	}
	a.SetBytes(out)
	return nil
}
