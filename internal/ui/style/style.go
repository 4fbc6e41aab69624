// Package style holds the brand colours, icons and lipgloss styles shared by the CLI.
package style

import "github.com/charmbracelet/lipgloss"

// Brand colours.
var (
	Ember  = lipgloss.Color("#E4572E")
	Clay   = lipgloss.Color("#C08457")
	Ash    = lipgloss.Color("#6B7280")
	Bone   = lipgloss.Color("#F5F0E6")
	Soot   = lipgloss.Color("#1C1917")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
	Circle  = "○"
	Arrow   = "→"
)

// Table styles used by the status command.
var (
	Header = lipgloss.NewStyle().Bold(true).Foreground(Ember)
	Label  = lipgloss.NewStyle().Foreground(Ash).Width(10)
	Value  = lipgloss.NewStyle().Foreground(Bone)
	Fresh  = lipgloss.NewStyle().Foreground(Green)
	Stale  = lipgloss.NewStyle().Foreground(Yellow)
	Muted  = lipgloss.NewStyle().Foreground(Ash).Italic(true)
)
