package assets

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/engine/pipeline"
	"go.trai.ch/zerr"
)

// Images copies raster images into the images output directory, recompressing
// them in production. Top-level SVG files belong to the vectors pipeline.
func Images(cfg domain.BuildConfig, t Transforms) *pipeline.Pipeline {
	l := cfg.Layout
	out := l.Abs(l.ImagesOutput)

	return pipeline.New(domain.ClassImages,
		pipeline.Glob{Base: l.Abs(l.ImagesDir), Pattern: "**/*", Exclude: []string{"*.svg"}},
		out,
		pipeline.Stage{Name: "newer", When: domain.Always, Run: Newer(out)},
		pipeline.Stage{Name: "imagemin", When: domain.ProductionOnly, Run: pipeline.Each(
			func(ctx context.Context, a *pipeline.Asset) error {
				return rewrite(ctx, a, func(ctx context.Context, src []byte) ([]byte, error) {
					return t.Images.Optimize(ctx, a.Path, src)
				})
			})},
	)
}

// Newer drops assets whose counterpart under dir is at least as recent as the
// source file.
func Newer(dir string) pipeline.Transform {
	return pipeline.Filter(func(a *pipeline.Asset) (bool, error) {
		dst := filepath.Join(dir, filepath.FromSlash(a.Path))
		info, err := os.Stat(dst)
		if errors.Is(err, fs.ErrNotExist) {
			return true, nil
		}
		if err != nil {
			return false, zerr.With(zerr.Wrap(err, domain.ErrSourceReadFailed.Error()), "path", dst)
		}
		return a.ModTime.After(info.ModTime()), nil
	})
}

// Vectors optimizes the top-level SVG files of the images directory.
func Vectors(cfg domain.BuildConfig, t Transforms) *pipeline.Pipeline {
	l := cfg.Layout

	return pipeline.New(domain.ClassVectors,
		pipeline.Glob{Base: l.Abs(l.ImagesDir), Pattern: "*.svg"},
		l.Abs(l.ImagesOutput),
		pipeline.Stage{Name: "svgo", When: domain.Always, Run: pipeline.Each(
			func(ctx context.Context, a *pipeline.Asset) error {
				return rewrite(ctx, a, t.Vectors.Optimize)
			})},
	)
}
