package fs

import (
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/zerr"
)

// Cleaner implements ports.OutputCleaner.
type Cleaner struct{}

// NewCleaner creates a new Cleaner.
func NewCleaner() *Cleaner {
	return &Cleaner{}
}

// Clean removes dir and everything beneath it. dir is resolved against root and
// must stay strictly inside it; the root itself is never removed.
func (c *Cleaner) Clean(root, dir string) error {
	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return zerr.Wrap(err, domain.ErrFailedToGetRoot.Error())
	}

	target := dir
	if !filepath.IsAbs(target) {
		target = filepath.Join(rootAbs, filepath.FromSlash(dir))
	}
	target = filepath.Clean(target)

	rel, err := filepath.Rel(rootAbs, target)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return zerr.With(domain.ErrOutputPathOutsideRoot, "dir", dir)
	}

	if err := os.RemoveAll(target); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCleanFailed.Error()), "dir", dir)
	}

	return nil
}
