package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Send applies msg to m synchronously.
func Send(m *Model, msg tea.Msg) {
	_, _ = m.Update(msg)
}

func Plan(names ...string) tea.Msg { return msgPlan{names: names} }

func Start(spanID, parentID, name string, at time.Time) tea.Msg {
	return msgStart{spanID: spanID, parentID: parentID, name: name, at: at}
}

func Log(spanID, data string) tea.Msg { return msgLog{spanID: spanID, data: []byte(data)} }

func Complete(spanID string, at time.Time, err error) tea.Msg {
	return msgComplete{spanID: spanID, at: at, err: err}
}
