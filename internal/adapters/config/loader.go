// Package config loads kiln.yaml, the project .env file and KILN_* variables.
package config

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Environment variables consulted after the config file.
const (
	EnvMode = "KILN_MODE"
	EnvPort = "KILN_PORT"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
	FS     FileSystem
	// LookupEnv reads the process environment; values from it win over .env.
	LookupEnv func(key string) (string, bool)
}

// NewLoader creates a Loader reading from the host filesystem and environment.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{
		Logger:    logger,
		FS:        NewOSFS(),
		LookupEnv: os.LookupEnv,
	}
}

// Load resolves the project settings for cwd.
func (l *Loader) Load(cwd string) (*domain.Settings, error) {
	configPath, found := l.findConfiguration(cwd)
	if !found {
		l.Logger.Debug("no " + domain.ConfigFileName + " found, using defaults rooted at " + cwd)
		settings := domain.DefaultSettings(cwd)
		if err := l.applyEnvironment(settings); err != nil {
			return nil, err
		}
		return settings, nil
	}

	var file Kilnfile
	if err := l.readAndUnmarshalYAML(configPath, &file); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	settings := domain.DefaultSettings(resolveRoot(configPath, file.Root))
	settings.ConfigPath = configPath

	if err := applyFile(settings, &file); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}
	if err := l.applyEnvironment(settings); err != nil {
		return nil, err
	}

	return settings, nil
}

func (l *Loader) findConfiguration(cwd string) (string, bool) {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if _, err := l.FS.Stat(candidate); err == nil {
			return candidate, true
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", false
		}
		currentDir = parentDir
	}
}

func applyFile(s *domain.Settings, f *Kilnfile) error {
	if f.Mode != "" {
		mode, err := domain.ParseMode(f.Mode)
		if err != nil {
			return err
		}
		s.Mode = mode
	}

	if err := applyPaths(&s.Layout, f.Paths); err != nil {
		return err
	}

	if f.Server.Port != 0 {
		if err := validatePort(f.Server.Port); err != nil {
			return err
		}
		s.Server.Port = f.Server.Port
	}
	if f.Server.Open != nil {
		s.Server.Open = *f.Server.Open
	}
	if f.Server.Notify != nil {
		s.Server.Notify = *f.Server.Notify
	}

	if f.Watch.Debounce != "" {
		d, err := time.ParseDuration(f.Watch.Debounce)
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "watch.debounce", f.Watch.Debounce)
		}
		s.Debounce = d
	}

	return nil
}

func applyPaths(layout *domain.Layout, p PathsDTO) error {
	set := func(dst *string, key, value string) error {
		if value == "" {
			return nil
		}
		clean, err := cleanRelative(value)
		if err != nil {
			return zerr.With(err, "paths."+key, value)
		}
		*dst = clean
		return nil
	}

	if err := set(&layout.PagesDir, "pages", p.Pages); err != nil {
		return err
	}
	if err := set(&layout.StylesEntry, "styles", p.Styles); err != nil {
		return err
	}
	if err := set(&layout.ScriptsEntry, "scripts", p.Scripts); err != nil {
		return err
	}
	if err := set(&layout.ImagesDir, "images", p.Images); err != nil {
		return err
	}
	if p.Output != "" {
		if err := set(&layout.OutputDir, "output", p.Output); err != nil {
			return err
		}
		layout.StylesOutput = path.Join(layout.OutputDir, "assets", "styles")
		layout.ScriptsOutput = path.Join(layout.OutputDir, "assets", "scripts")
		layout.ImagesOutput = path.Join(layout.OutputDir, "assets", "images")
	}
	if err := set(&layout.StylesOutput, "stylesOutput", p.StylesOutput); err != nil {
		return err
	}
	if err := set(&layout.ScriptsOutput, "scriptsOutput", p.ScriptsOutput); err != nil {
		return err
	}
	if err := set(&layout.ImagesOutput, "imagesOutput", p.ImagesOutput); err != nil {
		return err
	}

	for _, sub := range []struct{ key, dir string }{
		{"stylesOutput", layout.StylesOutput},
		{"scriptsOutput", layout.ScriptsOutput},
		{"imagesOutput", layout.ImagesOutput},
	} {
		if !within(layout.OutputDir, sub.dir) {
			return zerr.With(zerr.With(domain.ErrAssetOutputOutsideOutput, "paths."+sub.key, sub.dir), "output", layout.OutputDir)
		}
	}
	return nil
}

// within reports whether the clean relative path dir is base or below it.
func within(base, dir string) bool {
	return base == "." || dir == base || strings.HasPrefix(dir, base+"/")
}

// cleanRelative rejects absolute paths and paths escaping the project root.
func cleanRelative(p string) (string, error) {
	p = path.Clean(filepath.ToSlash(p))
	if path.IsAbs(p) || p == ".." || strings.HasPrefix(p, "../") {
		return "", domain.ErrOutputPathOutsideRoot
	}
	return p, nil
}

func (l *Loader) applyEnvironment(s *domain.Settings) error {
	dotenv, err := l.readDotenv(filepath.Join(s.Layout.Root, domain.EnvFileName))
	if err != nil {
		return err
	}

	lookup := func(key string) (string, bool) {
		if l.LookupEnv != nil {
			if v, ok := l.LookupEnv(key); ok && v != "" {
				return v, true
			}
		}
		v, ok := dotenv[key]
		return v, ok && v != ""
	}

	if v, ok := lookup(EnvMode); ok {
		mode, err := domain.ParseMode(v)
		if err != nil {
			return zerr.With(err, "env", EnvMode)
		}
		s.Mode = mode
	}

	if v, ok := lookup(EnvPort); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return zerr.With(zerr.With(domain.ErrInvalidPort, "env", EnvPort), "value", v)
		}
		if err := validatePort(port); err != nil {
			return zerr.With(err, "env", EnvPort)
		}
		s.Server.Port = port
	}

	return nil
}

func (l *Loader) readDotenv(envPath string) (map[string]string, error) {
	data, err := l.FS.ReadFile(envPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", envPath)
	}

	values, err := godotenv.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", envPath)
	}
	return values, nil
}

func validatePort(port int) error {
	if port < 1 || port > 65535 {
		return zerr.With(domain.ErrInvalidPort, "port", port)
	}
	return nil
}

func resolveRoot(configPath, configuredRoot string) string {
	configDir := filepath.Dir(configPath)
	if configuredRoot == "" {
		return filepath.Clean(configDir)
	}
	if filepath.IsAbs(configuredRoot) {
		return filepath.Clean(configuredRoot)
	}
	return filepath.Clean(filepath.Join(configDir, configuredRoot))
}

func (l *Loader) readAndUnmarshalYAML(configPath string, target *Kilnfile) error {
	data, err := l.FS.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if err := yaml.Unmarshal(data, target); err != nil {
		return zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}

	return nil
}
