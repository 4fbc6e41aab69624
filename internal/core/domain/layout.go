package domain

import "path/filepath"

const (
	// KilnDirName is the name of the internal metadata directory.
	KilnDirName = ".kiln"

	// StoreDirName is the name of the build info store directory.
	StoreDirName = "store"

	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "kiln.yaml"

	// EnvFileName is the name of the optional dotenv file next to the config file.
	EnvFileName = ".env"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// StylesBundleName is the file name of the compiled stylesheet.
	StylesBundleName = "main.css"

	// ScriptsBundleName is the file name of the bundled script.
	ScriptsBundleName = "app.js"
)

// DefaultStorePath returns the default path for the build info store.
// It joins .kiln and store.
func DefaultStorePath() string {
	return filepath.Join(KilnDirName, StoreDirName)
}

// Layout holds the project paths the pipelines read from and write to.
// Every path except Root is relative to Root and slash-separated.
type Layout struct {
	Root string

	PagesDir     string
	StylesEntry  string
	ScriptsEntry string
	ImagesDir    string

	OutputDir     string
	StylesOutput  string
	ScriptsOutput string
	ImagesOutput  string
}

// DefaultLayout returns the conventional src/ to public/ layout rooted at root.
func DefaultLayout(root string) Layout {
	return Layout{
		Root:          root,
		PagesDir:      "src/pages",
		StylesEntry:   "src/sass/main.scss",
		ScriptsEntry:  "src/javascript/app.js",
		ImagesDir:     "src/images",
		OutputDir:     "public",
		StylesOutput:  "public/assets/styles",
		ScriptsOutput: "public/assets/scripts",
		ImagesOutput:  "public/assets/images",
	}
}

// Abs resolves a layout-relative path against Root.
func (l Layout) Abs(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(l.Root, filepath.FromSlash(rel))
}

// StylesDir returns the directory holding the entry stylesheet and its partials.
func (l Layout) StylesDir() string {
	return filepath.ToSlash(filepath.Dir(filepath.FromSlash(l.StylesEntry)))
}

// ScriptsDir returns the directory holding the entry script and its modules.
func (l Layout) ScriptsDir() string {
	return filepath.ToSlash(filepath.Dir(filepath.FromSlash(l.ScriptsEntry)))
}
