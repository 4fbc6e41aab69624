package tui_test

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/tui"
)

func newTestRenderer(m *tui.Model) *tui.Renderer {
	return tui.NewRenderer(m,
		tea.WithInput(strings.NewReader("")),
		tea.WithOutput(io.Discard),
		tea.WithoutSignalHandler(),
		tea.WithoutRenderer(),
	)
}

func TestRenderer_Lifecycle(t *testing.T) {
	m := tui.NewModel()
	r := newTestRenderer(m)

	require.NoError(t, r.Start(context.Background()))

	now := time.Now()
	r.OnPlanEmit([]string{"styles"})
	r.OnTaskStart("s1", "", "styles", now)
	r.OnTaskLog("s1", []byte("compiled main.scss\n"))
	r.OnTaskComplete("s1", now.Add(time.Millisecond), nil)

	require.NoError(t, r.Stop())
	require.NoError(t, r.Wait())

	node := m.ByName["styles"]
	require.NotNil(t, node)
	assert.Equal(t, tui.StatusDone, node.Status)
	assert.Equal(t, []string{"compiled main.scss"}, node.Lines)
}

func TestRenderer_QuitBeforeDoneIsInterrupted(t *testing.T) {
	m := tui.NewModel()
	r := tui.NewRenderer(m,
		tea.WithInput(strings.NewReader("q")),
		tea.WithOutput(io.Discard),
		tea.WithoutSignalHandler(),
		tea.WithoutRenderer(),
	)

	require.NoError(t, r.Start(context.Background()))
	require.ErrorIs(t, r.Wait(), tui.ErrInterrupted)

	// Events after the program exited must not block.
	r.OnTaskStart("s1", "", "pages", time.Now())
	require.NoError(t, r.Stop())
}
