package pipeline

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/zerr"
)

// Source selects the input files of a pipeline.
type Source interface {
	Read(ctx context.Context) ([]*Asset, error)
}

// Glob selects the regular files under Base matching Pattern. Asset paths are
// relative to Base, so directory structure below Base is preserved in the output.
// A missing Base yields no assets.
type Glob struct {
	Base    string
	Pattern string
	// Exclude drops files matching any of these patterns, relative to Base.
	Exclude []string
}

// Read lists the matching files in lexical order. Contents are loaded lazily.
func (g Glob) Read(ctx context.Context) ([]*Asset, error) {
	if _, err := os.Stat(g.Base); os.IsNotExist(err) {
		return nil, nil
	}

	matches, err := doublestar.Glob(os.DirFS(g.Base), g.Pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSourceReadFailed.Error()), "pattern", g.Pattern)
	}
	slices.Sort(matches)

	assets := make([]*Asset, 0, len(matches))
	for _, rel := range matches {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if g.excluded(rel) {
			continue
		}

		abs := filepath.Join(g.Base, filepath.FromSlash(rel))
		info, err := os.Stat(abs)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrSourceReadFailed.Error()), "path", abs)
		}
		assets = append(assets, &Asset{Path: rel, Source: abs, ModTime: info.ModTime()})
	}

	return assets, nil
}

func (g Glob) excluded(rel string) bool {
	for _, pattern := range g.Exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// File selects a single entry file. Its asset path is the file's base name.
// Unlike Glob, a missing entry is an error.
type File struct {
	Path string
}

// Read returns the entry asset.
func (f File) Read(_ context.Context) ([]*Asset, error) {
	info, err := os.Stat(f.Path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSourceReadFailed.Error()), "path", f.Path)
	}
	if info.IsDir() {
		return nil, zerr.With(zerr.Wrap(fs.ErrInvalid, domain.ErrSourceReadFailed.Error()), "path", f.Path)
	}
	return []*Asset{{Path: filepath.Base(f.Path), Source: f.Path, ModTime: info.ModTime()}}, nil
}
