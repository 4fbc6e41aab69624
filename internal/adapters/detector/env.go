// Package detector picks the progress renderer for the current terminal.
package detector

import (
	"io"
	"os"

	"golang.org/x/term"
)

// OutputMode represents the rendering mode for a command.
type OutputMode int

const (
	// ModeAuto chooses from the environment.
	ModeAuto OutputMode = iota
	// ModeTUI forces the interactive renderer.
	ModeTUI
	// ModeLinear forces line-oriented output.
	ModeLinear
)

// DetectEnvironment returns ModeTUI when w is a terminal outside CI.
func DetectEnvironment(w io.Writer) OutputMode {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return ModeLinear
	}

	ci := os.Getenv("CI")
	if ci == "true" || ci == "1" {
		return ModeLinear
	}
	return ModeTUI
}

// ResolveMode applies the --output flag to the detected mode.
// flag is one of "auto", "tui", "linear", "ci" or empty.
func ResolveMode(detected OutputMode, flag string) OutputMode {
	switch flag {
	case "tui":
		return ModeTUI
	case "linear", "ci":
		return ModeLinear
	default:
		return detected
	}
}
