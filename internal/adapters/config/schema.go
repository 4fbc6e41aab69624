package config

// Kilnfile represents the structure of the kiln.yaml configuration file.
// Every field is optional.
type Kilnfile struct {
	Version string    `yaml:"version"`
	Root    string    `yaml:"root"`
	Mode    string    `yaml:"mode"`
	Paths   PathsDTO  `yaml:"paths"`
	Server  ServerDTO `yaml:"server"`
	Watch   WatchDTO  `yaml:"watch"`
}

// PathsDTO overrides the source and output layout. Paths are relative to the root.
type PathsDTO struct {
	Pages   string `yaml:"pages"`
	Styles  string `yaml:"styles"`
	Scripts string `yaml:"scripts"`
	Images  string `yaml:"images"`
	Output  string `yaml:"output"`

	StylesOutput  string `yaml:"stylesOutput"`
	ScriptsOutput string `yaml:"scriptsOutput"`
	ImagesOutput  string `yaml:"imagesOutput"`
}

// ServerDTO configures the development server.
type ServerDTO struct {
	Port   int   `yaml:"port"`
	Open   *bool `yaml:"open"`
	Notify *bool `yaml:"notify"`
}

// WatchDTO configures the watcher.
type WatchDTO struct {
	Debounce string `yaml:"debounce"`
}
