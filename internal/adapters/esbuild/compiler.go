// Package esbuild bundles, transpiles and minifies scripts with esbuild.
package esbuild

import (
	"context"
	"encoding/base64"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

// Compiler implements ports.ScriptCompiler.
type Compiler struct{}

// NewCompiler creates a new Compiler.
func NewCompiler() *Compiler {
	return &Compiler{}
}

// Bundle inlines the imports of req.Entry into a single browser script.
func (c *Compiler) Bundle(ctx context.Context, req ports.BundleRequest) (ports.CompileResult, error) {
	if err := ctx.Err(); err != nil {
		return ports.CompileResult{}, err
	}

	outfile := filepath.Join(filepath.Dir(req.Entry), req.Outfile)
	opts := api.BuildOptions{
		EntryPoints:   []string{req.Entry},
		AbsWorkingDir: filepath.Dir(req.Entry),
		Bundle:        true,
		Write:         false,
		Outfile:       outfile,
		Platform:      api.PlatformBrowser,
		Format:        api.FormatIIFE,
		Target:        api.ESNext,
		LogLevel:      api.LogLevelSilent,
	}
	if req.SourceMap {
		opts.Sourcemap = api.SourceMapExternal
	}

	result := api.Build(opts)
	if len(result.Errors) > 0 {
		return ports.CompileResult{}, sourceError(result.Errors, req.Entry)
	}
	warn(ctx, result.Warnings)

	var out ports.CompileResult
	for _, f := range result.OutputFiles {
		if strings.HasSuffix(f.Path, ".map") {
			out.Map = f.Contents
		} else {
			out.Code = f.Contents
		}
	}
	return out, nil
}

// Transpile lowers req.Code to ES2015. When req.Map is set it is chained so the
// resulting map still points at the original sources.
func (c *Compiler) Transpile(ctx context.Context, req ports.TranspileRequest) (ports.CompileResult, error) {
	if err := ctx.Err(); err != nil {
		return ports.CompileResult{}, err
	}

	code := string(req.Code)
	if len(req.Map) > 0 {
		code = stripMapComment(code) + "\n//# sourceMappingURL=data:application/json;base64," +
			base64.StdEncoding.EncodeToString(req.Map) + "\n"
	}

	opts := api.TransformOptions{
		Loader:     api.LoaderJS,
		Target:     api.ES2015,
		Sourcefile: req.Filename,
		LogLevel:   api.LogLevelSilent,
	}
	if req.SourceMap {
		opts.Sourcemap = api.SourceMapExternal
	}

	result := api.Transform(code, opts)
	if len(result.Errors) > 0 {
		return ports.CompileResult{}, sourceError(result.Errors, req.Filename)
	}
	warn(ctx, result.Warnings)

	out := ports.CompileResult{Code: result.Code}
	if req.SourceMap {
		out.Map = result.Map
	}
	return out, nil
}

// Minify compresses and mangles code, renaming top-level bindings and
// dropping unreachable code.
func (c *Compiler) Minify(ctx context.Context, code []byte, filename string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := api.Transform(string(code), api.TransformOptions{
		Loader:            api.LoaderJS,
		Format:            api.FormatIIFE,
		Target:            api.ES2015,
		Sourcefile:        filename,
		MinifyWhitespace:  true,
		MinifyIdentifiers: true,
		MinifySyntax:      true,
		TreeShaking:       api.TreeShakingTrue,
		LogLevel:          api.LogLevelSilent,
	})
	if len(result.Errors) > 0 {
		return nil, sourceError(result.Errors, filename)
	}
	warn(ctx, result.Warnings)
	return result.Code, nil
}

func sourceError(msgs []api.Message, fallback string) error {
	first := msgs[0]
	srcErr := &domain.SourceError{Class: domain.ClassScripts, File: fallback, Message: first.Text}
	if loc := first.Location; loc != nil {
		if loc.File != "" && loc.File != "<stdin>" {
			srcErr.File = loc.File
		}
		srcErr.Line = loc.Line
		srcErr.Column = loc.Column + 1
	}

	if len(msgs) == 1 {
		return srcErr
	}
	return zerr.With(srcErr, "errors", len(msgs))
}

// warn writes esbuild warnings to the stage span carried by ctx.
func warn(ctx context.Context, msgs []api.Message) {
	span := ports.SpanFromContext(ctx)
	if span == nil {
		return
	}
	for _, m := range msgs {
		if loc := m.Location; loc != nil {
			_, _ = fmt.Fprintf(span, "esbuild: %s:%d:%d: %s\n", loc.File, loc.Line, loc.Column+1, m.Text)
			continue
		}
		_, _ = fmt.Fprintf(span, "esbuild: %s\n", m.Text)
	}
}

func stripMapComment(code string) string {
	if i := strings.LastIndex(code, "//# sourceMappingURL="); i >= 0 {
		return strings.TrimRight(code[:i], "\n")
	}
	return code
}
