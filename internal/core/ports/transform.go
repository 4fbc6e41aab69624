package ports

import "context"

// StyleCompileRequest describes one SCSS compilation.
type StyleCompileRequest struct {
	// Entry is the absolute path of the entry stylesheet.
	Entry string
	// Source is the entry stylesheet contents.
	Source []byte
	// IncludePaths are searched for partials and imports.
	IncludePaths []string
	// SourceMap requests a source map for the compiled output.
	SourceMap bool
}

// CompileResult is the output of a compiler or transpiler.
type CompileResult struct {
	Code []byte
	// Map is a JSON source map, empty when none was requested.
	Map []byte
}

// StyleCompiler compiles SCSS into CSS in expanded form.
//
//go:generate go run go.uber.org/mock/mockgen -source=transform.go -destination=mocks/mock_transform.go -package=mocks
type StyleCompiler interface {
	// Compile returns a *domain.SourceError for invalid input.
	Compile(ctx context.Context, req StyleCompileRequest) (CompileResult, error)
}

// StylesheetProcessor performs the post-compilation CSS passes.
type StylesheetProcessor interface {
	// Purge removes rules whose selectors match nothing in the content documents.
	Purge(ctx context.Context, css []byte, content [][]byte) ([]byte, error)
	// Prefix adds vendor-prefixed variants of declarations that need them.
	Prefix(ctx context.Context, css []byte) ([]byte, error)
	// SortDeclarations orders declarations within each rule.
	SortDeclarations(ctx context.Context, css []byte) ([]byte, error)
	// CombineMediaQueries merges media blocks sharing the same query.
	CombineMediaQueries(ctx context.Context, css []byte) ([]byte, error)
}

// BundleRequest describes one script bundling.
type BundleRequest struct {
	// Entry is the absolute path of the entry script.
	Entry string
	// Outfile is the bundle file name.
	Outfile string
	// SourceMap requests a source map for the bundle.
	SourceMap bool
}

// TranspileRequest describes one transpilation of a bundled script.
type TranspileRequest struct {
	Code     []byte
	Filename string
	// Map is the input source map to chain, if any.
	Map       []byte
	SourceMap bool
}

// ScriptCompiler bundles, transpiles and minifies JavaScript.
type ScriptCompiler interface {
	// Bundle concatenates the entry and its imports into a single script.
	Bundle(ctx context.Context, req BundleRequest) (CompileResult, error)
	// Transpile lowers modern syntax to a broadly supported target.
	Transpile(ctx context.Context, req TranspileRequest) (CompileResult, error)
	// Minify mangles top-level names and removes dead code.
	Minify(ctx context.Context, code []byte, filename string) ([]byte, error)
}

// Minifier minifies markup and stylesheets.
type Minifier interface {
	// HTML collapses insignificant whitespace in a document.
	HTML(ctx context.Context, src []byte) ([]byte, error)
	// CSS minifies a stylesheet.
	CSS(ctx context.Context, src []byte) ([]byte, error)
}

// VectorOptimizer rewrites an SVG document according to the fixed plugin list.
type VectorOptimizer interface {
	Optimize(ctx context.Context, src []byte) ([]byte, error)
}

// ImageOptimizer losslessly or near-losslessly recompresses raster images.
type ImageOptimizer interface {
	// Optimize returns src unchanged for formats it does not handle.
	Optimize(ctx context.Context, name string, src []byte) ([]byte, error)
}
