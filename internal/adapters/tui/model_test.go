package tui_test

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/tui"
)

func TestModel_PipelineLifecycle(t *testing.T) {
	m := tui.NewModel()
	start := time.Now()

	tui.Send(m, tui.Plan("styles", "scripts"))
	require.Len(t, m.Pipelines, 2)
	assert.Equal(t, tui.StatusPending, m.ByName["styles"].Status)

	tui.Send(m, tui.Start("s1", "", "styles", start))
	tui.Send(m, tui.Start("s1a", "s1", "sass", start))
	assert.Equal(t, tui.StatusRunning, m.ByName["styles"].Status)
	assert.Equal(t, "sass", m.ByName["styles"].Stage)

	tui.Send(m, tui.Log("s1a", "sass: legacy pal"))
	tui.Send(m, tui.Log("s1a", "ette\nsecond"))
	assert.Equal(t, []string{"sass: legacy palette"}, m.ByName["styles"].Lines)

	tui.Send(m, tui.Complete("s1a", start, nil))
	assert.Empty(t, m.ByName["styles"].Stage)
	assert.Equal(t, tui.StatusRunning, m.ByName["styles"].Status)

	tui.Send(m, tui.Complete("s1", start.Add(40*time.Millisecond), nil))
	node := m.ByName["styles"]
	assert.Equal(t, tui.StatusDone, node.Status)
	assert.Equal(t, []string{"sass: legacy palette", "second"}, node.Lines)
	assert.Equal(t, 40*time.Millisecond, node.Duration)
}

func TestModel_FailureKeepsError(t *testing.T) {
	m := tui.NewModel()
	boom := errors.New("src/app.js:3:1: unexpected token")

	tui.Send(m, tui.Start("s1", "", "scripts", time.Now()))
	tui.Send(m, tui.Complete("s1", time.Now(), boom))

	assert.Equal(t, tui.StatusError, m.ByName["scripts"].Status)
	assert.Equal(t, boom, m.ByName["scripts"].Err)
}

func TestModel_LogsForUnknownSpanIgnored(t *testing.T) {
	m := tui.NewModel()
	tui.Send(m, tui.Log("ghost", "data\n"))
	tui.Send(m, tui.Complete("ghost", time.Now(), nil))
	assert.Empty(t, m.Pipelines)
}

func TestModel_Navigation(t *testing.T) {
	m := tui.NewModel()
	tui.Send(m, tui.Plan("pages", "styles", "scripts"))
	tui.Send(m, tui.Start("s2", "", "styles", time.Now()))
	assert.Equal(t, 1, m.SelectedIdx, "follow mode selects the running pipeline")

	tui.Send(m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, m.SelectedIdx)
	assert.False(t, m.FollowMode)

	tui.Send(m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, m.SelectedIdx, "selection stops at the last row")

	tui.Send(m, tea.KeyMsg{Type: tea.KeyUp})
	tui.Send(m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.SelectedIdx)

	tui.Send(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.FollowMode)
	assert.Equal(t, 1, m.SelectedIdx)
}

func TestModel_QuitMarksInterrupted(t *testing.T) {
	m := tui.NewModel()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.Interrupted)
}

func TestModel_LogTailIsBounded(t *testing.T) {
	m := tui.NewModel()
	tui.Send(m, tui.Start("s1", "", "images", time.Now()))
	for range 600 {
		tui.Send(m, tui.Log("s1", "copied\n"))
	}
	assert.Len(t, m.ByName["images"].Lines, 500)
}
