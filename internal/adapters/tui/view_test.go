package tui_test

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/kiln/internal/adapters/tui"
)

func TestView_ListOnlyBeforeWindowSize(t *testing.T) {
	m := tui.NewModel()
	tui.Send(m, tui.Plan("pages", "styles"))

	view := m.View()
	assert.Contains(t, view, "PIPELINES")
	assert.Contains(t, view, "○ pages")
	assert.NotContains(t, view, "LOGS")
}

func TestView_SplitPane(t *testing.T) {
	m := tui.NewModel()
	tui.Send(m, tea.WindowSizeMsg{Width: 120, Height: 20})
	tui.Send(m, tui.Start("s1", "", "styles", time.Now()))
	tui.Send(m, tui.Start("s1a", "s1", "purge", time.Now()))
	tui.Send(m, tui.Log("s1a", "kept 12 rules\n"))

	view := m.View()
	assert.Contains(t, view, "● styles")
	assert.Contains(t, view, "purge")
	assert.Contains(t, view, "LOGS: styles (following)")
	assert.Contains(t, view, "kept 12 rules")
}

func TestView_FailedPipeline(t *testing.T) {
	m := tui.NewModel()
	tui.Send(m, tea.WindowSizeMsg{Width: 120, Height: 20})
	tui.Send(m, tui.Start("s1", "", "scripts", time.Now()))
	tui.Send(m, tui.Complete("s1", time.Now(), errors.New("unexpected token")))

	view := m.View()
	assert.Contains(t, view, "✗ scripts")
	assert.Contains(t, view, "FAILED: scripts")
	assert.Contains(t, view, "unexpected token")
}
