package svg_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/svg"
	"go.trai.ch/kiln/internal/core/domain"
)

func optimize(t *testing.T, plugins []domain.SVGPlugin, src []byte) string {
	t.Helper()
	o, err := svg.NewOptimizer(plugins)
	require.NoError(t, err)

	out, err := o.Optimize(context.Background(), src)
	require.NoError(t, err)
	return string(out)
}

func TestOptimizer_DefaultPlugins(t *testing.T) {
	src, err := os.ReadFile(filepath.Join("testdata", "icon.svg"))
	require.NoError(t, err)

	got := optimize(t, domain.DefaultSVGPlugins(), src)

	assert.Contains(t, got, "viewBox")
	assert.Contains(t, got, "<image")
	assert.Contains(t, got, "stroke-width")

	for _, gone := range []string{
		"<?xml", "<!--", "DOCTYPE", "<title", "<desc", "<metadata", "sketch:",
		`stroke="`, `fill="`, `width="24px"`, `class=""`,
	} {
		assert.NotContains(t, got, gone)
	}
	assert.Less(t, len(got), len(src))
}

func TestOptimizer_DisabledPluginsKeepContent(t *testing.T) {
	plugins := []domain.SVGPlugin{{Name: "sortAttrs", Enabled: true}}
	got := optimize(t, plugins, []byte(`<!-- c --><svg z="1" a="2"><title>t</title></svg>`))

	assert.Equal(t, `<!-- c --><svg a="2" z="1"><title>t</title></svg>`, got)
}

func TestOptimizer_RejectsBadPattern(t *testing.T) {
	_, err := svg.NewOptimizer([]domain.SVGPlugin{{Name: "removeAttrs", Enabled: true, Attrs: "("}})
	require.ErrorContains(t, err, domain.ErrTransformFailed.Error())
}

func TestOptimizer_DefaultPlugins_StructuralCleanup(t *testing.T) {
	src := []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10">
  <path d="M0 0 10 10" style="fill:red;stroke:blue;opacity:.5"/>
  <rect width="5" height="5" style="display:none"/>
  <g><g></g></g>
  <defs><linearGradient id="unused"/></defs>
</svg>`)

	got := optimize(t, domain.DefaultSVGPlugins(), src)

	assert.Contains(t, got, "opacity")
	for _, gone := range []string{"style=", "fill", "stroke", "<rect", "<g", "<defs", "linearGradient"} {
		assert.NotContains(t, got, gone)
	}
}

func TestOptimizer_Plugins(t *testing.T) {
	tests := []struct {
		plugin string
		src    string
		want   string
	}{
		{
			plugin: "convertStyleToAttrs",
			src:    `<svg><path style="fill: red; --x: 1; stroke-width:2 !important; background:url(a;b)"/></svg>`,
			want:   `<svg><path style="--x:1;stroke-width:2 !important;background:url(a;b)" fill="red"/></svg>`,
		},
		{
			plugin: "removeHiddenElems",
			src: `<svg><rect width="0" height="5"/><circle r="0"/><path/>` +
				`<g display="none"><path d="M0 0"/></g>` +
				`<g clip-path="url(#c)"><path d="M1 1"/></g>` +
				`<clipPath id="c"><rect width="1" height="1" opacity="0"/></clipPath>` +
				`<use href="#h"/><path id="h" d="M2 2" display="none"/></svg>`,
			want: `<svg><g clip-path="url(#c)"><path d="M1 1"/></g>` +
				`<clipPath id="c"><rect width="1" height="1" opacity="0"/></clipPath>` +
				`<use href="#h"/><path id="h" d="M2 2" display="none"/></svg>`,
		},
		{
			plugin: "removeEmptyText",
			src:    `<svg><text> </text><text>hi<tspan/></text><tref/></svg>`,
			want:   `<svg><text>hi</text></svg>`,
		},
		{
			plugin: "removeEmptyContainers",
			src: `<svg><g><g/></g><defs/><pattern id="p" width="1"/><g filter="url(#f)"/>` +
				`<mask id="m"/><use href="#m"/><g><path d="M0 0"/></g></svg>`,
			want: `<svg><pattern id="p" width="1"/><g filter="url(#f)"/>` +
				`<mask id="m"/><use href="#m"/><g><path d="M0 0"/></g></svg>`,
		},
		{
			plugin: "collapseGroups",
			src: `<svg><g><path d="M0 0"/><path d="M1 1"/></g>` +
				`<g fill="red" transform="translate(1)"><path d="M2 2" transform="scale(2)"/></g>` +
				`<g id="keep" fill="red"><path d="M3 3"/></g></svg>`,
			want: `<svg><path d="M0 0"/><path d="M1 1"/>` +
				`<path d="M2 2" transform="translate(1) scale(2)" fill="red"/>` +
				`<g id="keep" fill="red"><path d="M3 3"/></g></svg>`,
		},
		{
			plugin: "convertShapeToPath",
			src: `<svg><rect x="1" y="2" width="3" height="4"/><rect width="1" height="1" rx="1"/>` +
				`<line x2="5" y2="5"/><polygon points="0,0 1,0 1,1"/><rect width="10%" height="1"/></svg>`,
			want: `<svg><path d="M1 2H4V6H1z"/><rect width="1" height="1" rx="1"/>` +
				`<path d="M0 0L5 5"/><path d="M0 0L1 0L1 1z"/><rect width="10%" height="1"/></svg>`,
		},
		{
			plugin: "cleanupIDs",
			src:    `<svg><path id="a" d="M0 0"/><path id="b" d="M1 1"/><use href="#b"/></svg>`,
			want:   `<svg><path d="M0 0"/><path id="b" d="M1 1"/><use href="#b"/></svg>`,
		},
		{
			plugin: "cleanupIDs",
			src:    `<svg><style>#a{fill:red}</style><path id="a" d="M0 0"/></svg>`,
			want:   `<svg><style>#a{fill:red}</style><path id="a" d="M0 0"/></svg>`,
		},
		{
			plugin: "removeUselessDefs",
			src:    `<svg><defs><linearGradient id="g"/><path d="M0 0"/></defs></svg>`,
			want:   `<svg><defs><linearGradient id="g"/></defs></svg>`,
		},
		{
			plugin: "removeUnusedNS",
			src:    `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="x" xmlns:foo="y"><use xlink:href="#a"/></svg>`,
			want:   `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="x"><use xlink:href="#a"/></svg>`,
		},
		{
			plugin: "cleanUpEnableBackground",
			src:    `<svg enable-background="new 0 0 10 10"><path d="M0 0"/></svg>`,
			want:   `<svg><path d="M0 0"/></svg>`,
		},
		{
			plugin: "cleanUpEnableBackground",
			src:    `<svg enable-background="new"><filter id="f"/></svg>`,
			want:   `<svg enable-background="new"><filter id="f"/></svg>`,
		},
		{
			plugin: "cleanupAttrs",
			src:    "<svg><path d=\"M0 0\n   L1 1 \"/></svg>",
			want:   `<svg><path d="M0 0 L1 1"/></svg>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.plugin, func(t *testing.T) {
			plugins := []domain.SVGPlugin{{Name: tt.plugin, Enabled: true}}
			assert.Equal(t, tt.want, optimize(t, plugins, []byte(tt.src)))
		})
	}
}

func TestOptimizer_UnusedGradientRemoved(t *testing.T) {
	plugins := []domain.SVGPlugin{
		{Name: "cleanupIDs", Enabled: true},
		{Name: "removeUselessDefs", Enabled: true},
		{Name: "removeEmptyContainers", Enabled: true},
	}
	src := `<svg><defs><linearGradient id="used"/><linearGradient id="unused"/></defs>` +
		`<rect fill="url(#used)" width="1" height="1"/><defs><linearGradient id="gone"/></defs></svg>`

	assert.Equal(t,
		`<svg><defs><linearGradient id="used"/></defs><rect fill="url(#used)" width="1" height="1"/></svg>`,
		optimize(t, plugins, []byte(src)))
}
