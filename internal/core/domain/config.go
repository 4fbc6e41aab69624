package domain

import (
	"math/rand/v2"
	"time"
)

const (
	// CacheBustMin is the smallest cache-bust token.
	CacheBustMin int64 = 1_000_000_000
	// CacheBustMax is the largest cache-bust token.
	CacheBustMax int64 = 100_000_000_000_000

	// DefaultPort is the development server port.
	DefaultPort = 5500

	// DefaultDebounce is the quiet period before a watch batch triggers rebuilds.
	DefaultDebounce = 50 * time.Millisecond
)

// BustSource produces a cache-bust token. It is called once per pages run.
type BustSource func() int64

// RandomBust draws a token uniformly from [CacheBustMin, CacheBustMax].
func RandomBust() int64 {
	return CacheBustMin + rand.Int64N(CacheBustMax-CacheBustMin+1) //nolint:gosec // not security sensitive
}

// BuildConfig is the resolved, immutable configuration of one invocation.
// The mode never changes during the lifetime of the process.
type BuildConfig struct {
	Mode   Mode
	Layout Layout
	Bust   BustSource
}

// NewBuildConfig returns a BuildConfig drawing cache-bust tokens from RandomBust.
func NewBuildConfig(mode Mode, layout Layout) BuildConfig {
	return BuildConfig{Mode: mode, Layout: layout, Bust: RandomBust}
}

// NextBust returns a fresh cache-bust token.
func (c BuildConfig) NextBust() int64 {
	if c.Bust == nil {
		return RandomBust()
	}
	return c.Bust()
}

// ServerSettings configures the development server.
type ServerSettings struct {
	Port   int
	Open   bool
	Notify bool
}

// Settings is the project configuration as loaded from kiln.yaml and the environment,
// before command-line flags are applied.
type Settings struct {
	Mode     Mode
	Layout   Layout
	Server   ServerSettings
	Debounce time.Duration
	// ConfigPath is the config file that was read, empty when defaults were used.
	ConfigPath string
}

// DefaultSettings returns the settings used when no config file exists.
func DefaultSettings(root string) *Settings {
	return &Settings{
		Mode:   DefaultMode,
		Layout: DefaultLayout(root),
		Server: ServerSettings{
			Port:   DefaultPort,
			Open:   true,
			Notify: true,
		},
		Debounce: DefaultDebounce,
	}
}
