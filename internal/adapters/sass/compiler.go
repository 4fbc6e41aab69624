// Package sass compiles SCSS through the embedded Dart Sass protocol.
package sass

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bep/godartsass/v2"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

const compileTimeout = 30 * time.Second

// Compiler implements ports.StyleCompiler. The Dart Sass process is started on
// first use and reused for every later compilation.
type Compiler struct {
	logger ports.Logger
	binary string

	// run serializes compilations so log events reach the span of the
	// compilation that raised them.
	run sync.Mutex

	mu         sync.Mutex
	transpiler *godartsass.Transpiler
	out        io.Writer
}

// NewCompiler creates a Compiler. An empty binary resolves the embedded
// Dart Sass executable from PATH.
func NewCompiler(logger ports.Logger, binary string) *Compiler {
	return &Compiler{logger: logger, binary: binary}
}

// Compile compiles req.Source in expanded style.
func (c *Compiler) Compile(ctx context.Context, req ports.StyleCompileRequest) (ports.CompileResult, error) {
	if err := ctx.Err(); err != nil {
		return ports.CompileResult{}, err
	}

	t, err := c.start()
	if err != nil {
		return ports.CompileResult{}, err
	}

	c.run.Lock()
	defer c.run.Unlock()
	if span := ports.SpanFromContext(ctx); span != nil {
		c.bind(span)
		defer c.bind(nil)
	}

	res, err := t.Execute(godartsass.Args{
		Source:          string(req.Source),
		URL:             fileURL(req.Entry),
		OutputStyle:     godartsass.OutputStyleExpanded,
		SourceSyntax:    godartsass.SourceSyntaxSCSS,
		IncludePaths:    req.IncludePaths,
		EnableSourceMap: req.SourceMap,
	})
	if err != nil {
		return ports.CompileResult{}, ParseError(err, req.Entry)
	}

	out := ports.CompileResult{Code: []byte(res.CSS)}
	if req.SourceMap {
		out.Map = []byte(res.SourceMap)
	}
	return out, nil
}

// Close stops the Dart Sass process, if running.
func (c *Compiler) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.transpiler == nil {
		return nil
	}
	err := c.transpiler.Close()
	c.transpiler = nil
	return err
}

func (c *Compiler) start() (*godartsass.Transpiler, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.transpiler != nil && !c.transpiler.IsShutDown() {
		return c.transpiler, nil
	}

	t, err := godartsass.Start(godartsass.Options{
		DartSassEmbeddedFilename: c.binary,
		Timeout:                  compileTimeout,
		LogEventHandler:          c.onLog,
	})
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrTransformFailed.Error()), "stage", "sass")
	}
	c.transpiler = t
	return t, nil
}

func (c *Compiler) bind(out io.Writer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.out = out
}

// onLog writes Dart Sass warnings and debug output to the span of the running
// compilation, or to the logger outside one.
func (c *Compiler) onLog(e godartsass.LogEvent) {
	c.mu.Lock()
	out := c.out
	c.mu.Unlock()

	if out == nil {
		c.logger.Warn("sass: " + e.Message)
		return
	}
	_, _ = fmt.Fprintf(out, "sass: %s\n", strings.TrimRight(e.Message, "\n"))
}

func fileURL(path string) string {
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}

// spanPattern matches the location trailer Dart Sass appends to formatted
// errors, e.g. "src/sass/_base.scss 3:13  @use".
var spanPattern = regexp.MustCompile(`(?m)^\s*(\S+)\s+(\d+):(\d+)\s`)

// ParseError converts a Dart Sass failure into a *domain.SourceError. Errors
// without a recognizable location are attributed to entry.
func ParseError(err error, entry string) error {
	text := strings.TrimSpace(strings.TrimPrefix(err.Error(), "compile failed: "))

	srcErr := &domain.SourceError{Class: domain.ClassStyles, File: entry, Message: firstLine(text)}
	if m := spanPattern.FindStringSubmatch(text); m != nil {
		srcErr.File = strings.TrimPrefix(m[1], "file://")
		srcErr.Line, _ = strconv.Atoi(m[2])
		srcErr.Column, _ = strconv.Atoi(m[3])
	}
	return srcErr
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return strings.TrimPrefix(line, "Error: ")
}
