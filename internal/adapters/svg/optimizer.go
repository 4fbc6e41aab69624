// Package svg optimizes vector graphics. The document is parsed into a small
// element tree with the tdewolff XML lexer, the enabled plugins rewrite the
// tree, and the tdewolff SVG minifier then shortens numbers, colors and path data.
package svg

import (
	"bytes"
	"context"
	"regexp"
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	minsvg "github.com/tdewolff/minify/v2/svg"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/zerr"
)

const mimeSVG = "image/svg+xml"

var editorPrefixes = []string{
	"sodipodi:",
	"inkscape:",
	"sketch:",
	"xmlns:sodipodi",
	"xmlns:inkscape",
	"xmlns:sketch",
}

// Optimizer implements ports.VectorOptimizer.
type Optimizer struct {
	plugins     []domain.SVGPlugin
	removeAttrs *regexp.Regexp
	m           *minify.M
}

// NewOptimizer creates an Optimizer for the given plugin list.
func NewOptimizer(plugins []domain.SVGPlugin) (*Optimizer, error) {
	o := &Optimizer{plugins: plugins}

	for _, p := range plugins {
		if p.Name == "removeAttrs" && p.Enabled && p.Attrs != "" {
			re, err := regexp.Compile("^" + p.Attrs + "$")
			if err != nil {
				return nil, zerr.With(zerr.Wrap(err, domain.ErrTransformFailed.Error()), "plugin", p.Name)
			}
			o.removeAttrs = re
		}
	}

	if o.enabled("cleanupNumericValues") || o.enabled("convertPathData") || o.enabled("convertColors") {
		o.m = minify.New()
		o.m.Add(mimeSVG, &minsvg.Minifier{KeepComments: !o.enabled("removeComments")})
		o.m.AddFunc("text/css", css.Minify)
	}

	return o, nil
}

func (o *Optimizer) enabled(name string) bool {
	return domain.SVGPluginEnabled(o.plugins, name)
}

// Optimize rewrites src according to the plugin list.
func (o *Optimizer) Optimize(ctx context.Context, src []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := parseTree(src)
	if err != nil {
		return nil, err
	}
	o.rewrite(doc)

	var cleaned bytes.Buffer
	doc.render(&cleaned)
	if o.m == nil {
		return cleaned.Bytes(), nil
	}

	out, err := o.m.Bytes(mimeSVG, cleaned.Bytes())
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrTransformFailed.Error()), "stage", "svgo")
	}
	return out, nil
}

func hasEditorPrefix(name string) bool {
	for _, p := range editorPrefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}
