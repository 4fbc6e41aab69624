// Package pipeline runs ordered, mode-guarded transformation stages over a set
// of in-memory assets and writes the survivors to an output directory.
package pipeline

import (
	"os"
	"path"
	"time"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/zerr"
)

// Asset is one file flowing through a pipeline.
type Asset struct {
	// Path is the slash-separated output path relative to the pipeline's output directory.
	Path string
	// Source is the absolute path the asset was read from, empty for generated assets.
	Source string
	// ModTime is the modification time of Source.
	ModTime time.Time

	// Mapping is set once source-map recording starts.
	Mapping bool
	// SourceMap holds the JSON source map accumulated so far.
	SourceMap []byte

	contents []byte
	loaded   bool
}

// NewAsset returns an in-memory asset with the given contents.
func NewAsset(p string, contents []byte) *Asset {
	return &Asset{Path: p, contents: contents, loaded: true}
}

// Bytes returns the asset contents, reading Source on first use.
func (a *Asset) Bytes() ([]byte, error) {
	if a.loaded {
		return a.contents, nil
	}

	data, err := os.ReadFile(a.Source)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSourceReadFailed.Error()), "path", a.Source)
	}
	a.contents = data
	a.loaded = true
	return data, nil
}

// SetBytes replaces the asset contents.
func (a *Asset) SetBytes(b []byte) {
	a.contents = b
	a.loaded = true
}

// Rename replaces the base name of Path, keeping its directory.
func (a *Asset) Rename(name string) {
	dir := path.Dir(a.Path)
	if dir == "." {
		a.Path = name
		return
	}
	a.Path = path.Join(dir, name)
}
