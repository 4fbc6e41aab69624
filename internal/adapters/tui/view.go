package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/kiln/internal/ui/style"
)

// View implements tea.Model. Before the first window size arrives only the
// pipeline list is drawn.
func (m *Model) View() string {
	if m.Width == 0 {
		return m.pipelineList() + "\n"
	}

	listWidth, logWidth, logHeight := m.paneSize()
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		listStyle.Width(listWidth).Render(m.pipelineList()),
		logStyle.Width(logWidth).Render(m.logPane(logHeight)),
	) + "\n"
}

func (m *Model) pipelineList() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("PIPELINES") + "\n\n")

	for i, node := range m.Pipelines {
		cursor := "  "
		if i == m.SelectedIdx {
			cursor = selectedStyle.Render("> ")
		}
		s.WriteString(cursor + m.row(node) + "\n")
	}
	return s.String()
}

func (m *Model) row(node *PipelineNode) string {
	var icon string
	var st lipgloss.Style
	switch node.Status {
	case StatusRunning:
		icon, st = style.Dot, runningStyle
	case StatusDone:
		icon, st = style.Check, doneStyle
	case StatusError:
		icon, st = style.Cross, errorStyle
	default:
		icon, st = style.Circle, pendingStyle
	}

	line := st.Render(icon + " " + node.Name)
	switch {
	case node.Stage != "":
		line += " " + stageStyle.Render(node.Stage)
	case node.Status == StatusDone || node.Status == StatusError:
		line += " " + pendingStyle.Render(node.Duration.Round(time.Millisecond).String())
	}
	return line
}

func (m *Model) logPane(height int) string {
	node := m.Selected()
	if node == nil {
		return titleStyle.Render("LOGS (waiting)")
	}

	mode := "following"
	if !m.FollowMode {
		mode = "manual"
	}
	header := titleStyle.Render(fmt.Sprintf("LOGS: %s (%s)", node.Name, mode))

	lines := node.Lines
	if node.Err != nil {
		header = failureTitleStyle.Render("FAILED: " + node.Name)
		lines = append(lines[:len(lines):len(lines)], errorStyle.Render(node.Err.Error()))
	}
	if height > 0 && len(lines) > height {
		lines = lines[len(lines)-height:]
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, strings.Join(lines, "\n"))
}
