package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// Mode selects which optional pipeline stages run.
type Mode string

const (
	// ModeDevelopment enables source maps and skips optimisation.
	ModeDevelopment Mode = "development"
	// ModeProduction enables purging, minification and image optimisation.
	ModeProduction Mode = "production"
)

// DefaultMode is used when neither a flag, the environment nor the config file selects one.
const DefaultMode = ModeDevelopment

// ParseMode converts user input into a Mode. Matching is case-insensitive and
// accepts the short forms "dev" and "prod". An empty string yields DefaultMode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DefaultMode, nil
	case "development", "dev":
		return ModeDevelopment, nil
	case "production", "prod":
		return ModeProduction, nil
	default:
		return "", zerr.With(ErrInvalidMode, "mode", s)
	}
}

// IsProduction reports whether m is the production mode.
func (m Mode) IsProduction() bool {
	return m == ModeProduction
}

// IsDevelopment reports whether m is the development mode.
// Exactly one of IsDevelopment and IsProduction holds for a parsed Mode.
func (m Mode) IsDevelopment() bool {
	return !m.IsProduction()
}

func (m Mode) String() string {
	return string(m)
}

// Applicability guards a pipeline stage by mode.
type Applicability uint8

const (
	// Always runs in every mode.
	Always Applicability = iota
	// DevelopmentOnly runs only in development mode.
	DevelopmentOnly
	// ProductionOnly runs only in production mode.
	ProductionOnly
)

// Applies reports whether a stage with this applicability runs in mode m.
func (a Applicability) Applies(m Mode) bool {
	switch a {
	case DevelopmentOnly:
		return m.IsDevelopment()
	case ProductionOnly:
		return m.IsProduction()
	default:
		return true
	}
}

func (a Applicability) String() string {
	switch a {
	case DevelopmentOnly:
		return "development"
	case ProductionOnly:
		return "production"
	default:
		return "always"
	}
}
