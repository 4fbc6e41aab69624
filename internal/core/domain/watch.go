package domain

import "path"

// WatchRule maps a source glob, relative to the project root, to the pipeline it triggers.
type WatchRule struct {
	Pattern string
	Class   AssetClass
}

// DefaultWatchRules returns the watch table for a layout. Rules are matched in
// order and the first match wins, so top-level SVGs route to the vectors pipeline
// before the catch-all images rule sees them.
func DefaultWatchRules(l Layout) []WatchRule {
	return []WatchRule{
		{Pattern: path.Join(l.PagesDir, "**/*.html"), Class: ClassPages},
		{Pattern: path.Join(l.StylesDir(), "**/*.scss"), Class: ClassStyles},
		{Pattern: path.Join(l.ScriptsDir(), "**/*.js"), Class: ClassScripts},
		{Pattern: path.Join(l.ImagesDir, "*.svg"), Class: ClassVectors},
		{Pattern: path.Join(l.ImagesDir, "**/*.*"), Class: ClassImages},
	}
}

// ReloadEvent is broadcast to connected browsers after a successful rebuild.
type ReloadEvent struct {
	Pipeline AssetClass `json:"pipeline"`
	Hash     string     `json:"hash"`
}
