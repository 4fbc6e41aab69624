package tui

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/kiln/internal/ui/style"
)

var (
	pendingStyle  = lipgloss.NewStyle().Foreground(style.Ash)
	runningStyle  = lipgloss.NewStyle().Foreground(style.Ember).Bold(true)
	doneStyle     = lipgloss.NewStyle().Foreground(style.Green)
	errorStyle    = lipgloss.NewStyle().Foreground(style.Red)
	selectedStyle = lipgloss.NewStyle().Foreground(style.Ember).Bold(true)
	stageStyle    = lipgloss.NewStyle().Foreground(style.Ash).Italic(true)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(style.Ember).
			Foreground(style.Bone)

	failureTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Padding(0, 1).
				Background(style.Red).
				Foreground(style.Bone)

	listStyle = lipgloss.NewStyle().PaddingRight(2)
	logStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(style.Ash).
			PaddingLeft(1)
)
