// Package assets defines the five asset pipelines: pages, styles, scripts,
// raster images and vectors.
package assets

import (
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/kiln/internal/engine/pipeline"
	"go.trai.ch/zerr"
)

// Transforms bundles the external transforms the pipelines call.
type Transforms struct {
	Styles   ports.StyleCompiler
	Sheets   ports.StylesheetProcessor
	Scripts  ports.ScriptCompiler
	Minifier ports.Minifier
	Vectors  ports.VectorOptimizer
	Images   ports.ImageOptimizer
}

// New returns the pipeline for class.
func New(class domain.AssetClass, cfg domain.BuildConfig, t Transforms) (*pipeline.Pipeline, error) {
	switch class {
	case domain.ClassPages:
		return Pages(cfg, t), nil
	case domain.ClassStyles:
		return Styles(cfg, t), nil
	case domain.ClassScripts:
		return Scripts(cfg, t), nil
	case domain.ClassImages:
		return Images(cfg, t), nil
	case domain.ClassVectors:
		return Vectors(cfg, t), nil
	}
	return nil, zerr.With(domain.ErrUnknownAssetClass, "class", string(class))
}

// All returns every pipeline in plan order.
func All(cfg domain.BuildConfig, t Transforms) []*pipeline.Pipeline {
	classes := domain.AllClasses()
	out := make([]*pipeline.Pipeline, 0, len(classes))
	for _, class := range classes {
		p, _ := New(class, cfg, t)
		out = append(out, p)
	}
	return out
}
