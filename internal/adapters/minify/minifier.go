// Package minify minifies HTML documents and stylesheets with tdewolff/minify.
package minify

import (
	"context"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	mimeHTML = "text/html"
	mimeCSS  = "text/css"
)

// Minifier implements ports.Minifier.
type Minifier struct {
	markup *minify.M
	styles *minify.M
}

// NewMinifier creates a Minifier.
//
// HTML minification only collapses whitespace: comments, quotes, optional tags
// and default attribute values are kept, and inline styles and scripts are not
// touched because no minifier is registered for them on the markup instance.
func NewMinifier() *Minifier {
	markup := minify.New()
	markup.Add(mimeHTML, &html.Minifier{
		KeepComments:        true,
		KeepDefaultAttrVals: true,
		KeepDocumentTags:    true,
		KeepEndTags:         true,
		KeepQuotes:          true,
	})

	styles := minify.New()
	styles.Add(mimeCSS, &css.Minifier{})

	return &Minifier{markup: markup, styles: styles}
}

// HTML collapses insignificant whitespace in src.
func (m *Minifier) HTML(ctx context.Context, src []byte) ([]byte, error) {
	return m.run(ctx, m.markup, mimeHTML, "htmlmin", src)
}

// CSS minifies src.
func (m *Minifier) CSS(ctx context.Context, src []byte) ([]byte, error) {
	return m.run(ctx, m.styles, mimeCSS, "cssnano", src)
}

func (m *Minifier) run(ctx context.Context, mm *minify.M, mime, stage string, src []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out, err := mm.Bytes(mime, src)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrTransformFailed.Error()), "stage", stage)
	}
	return out, nil
}
