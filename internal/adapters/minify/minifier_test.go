package minify_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/minify"
)

func TestMinifier_HTMLCollapsesWhitespaceOnly(t *testing.T) {
	src := "<!DOCTYPE html>\n<html>\n  <head>\n    <!-- keep -->\n    <link rel=\"stylesheet\" href=\"/assets/styles/main.css?cb=42\">\n  </head>\n" +
		"  <body>\n    <p class=\"lead\">\n      Hello   world\n    </p>\n  </body>\n</html>\n"

	out, err := minify.NewMinifier().HTML(context.Background(), []byte(src))
	require.NoError(t, err)

	got := string(out)
	assert.Less(t, len(got), len(src))
	assert.Contains(t, got, "<!-- keep -->")
	assert.Contains(t, got, `class="lead"`)
	assert.Contains(t, got, "Hello world")
	assert.Contains(t, got, "</html>")
	assert.Contains(t, got, "main.css?cb=42")
}

func TestMinifier_CSS(t *testing.T) {
	out, err := minify.NewMinifier().CSS(context.Background(), []byte("a {\n  color: #ff0000;\n  margin: 0px;\n}\n"))
	require.NoError(t, err)
	assert.Equal(t, "a{color:red;margin:0}", string(out))
}

func TestMinifier_HonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := minify.NewMinifier().CSS(ctx, []byte("a{}"))
	require.ErrorIs(t, err, context.Canceled)
}
