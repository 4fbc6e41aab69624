// Package tui renders pipeline progress as an interactive terminal view.
package tui

import (
	"bytes"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	listWidthRatio = 0.3
	paneBorder     = 4
	maxLogLines    = 500
)

// Status is the state of one pipeline row.
type Status string

// Pipeline states.
const (
	StatusPending Status = "Pending"
	StatusRunning Status = "Running"
	StatusDone    Status = "Done"
	StatusError   Status = "Error"
)

// PipelineNode is one row of the pipeline list.
type PipelineNode struct {
	Name   string
	Status Status
	// Stage is the stage currently running, if any.
	Stage    string
	Lines    []string
	Err      error
	Started  time.Time
	Duration time.Duration

	partial bytes.Buffer
}

func (n *PipelineNode) write(data []byte) {
	n.partial.Write(data)
	for {
		line, err := n.partial.ReadBytes('\n')
		if err != nil {
			n.partial.Reset()
			n.partial.Write(line)
			return
		}
		n.appendLine(string(bytes.TrimRight(line, "\r\n")))
	}
}

func (n *PipelineNode) appendLine(line string) {
	n.Lines = append(n.Lines, line)
	if len(n.Lines) > maxLogLines {
		n.Lines = n.Lines[len(n.Lines)-maxLogLines:]
	}
}

// Model is the Bubble Tea model behind Renderer.
type Model struct {
	Pipelines   []*PipelineNode
	ByName      map[string]*PipelineNode
	SelectedIdx int
	FollowMode  bool
	Width       int
	Height      int
	// Interrupted is set when the user quits before the run finishes.
	Interrupted bool

	// spans maps a span to its pipeline; stage spans map to their parent's.
	spans map[string]*PipelineNode
	// stages holds the names of open stage spans.
	stages map[string]string
}

// NewModel creates an empty model that follows the running pipeline.
func NewModel() *Model {
	return &Model{
		ByName:     make(map[string]*PipelineNode),
		FollowMode: true,
		spans:      make(map[string]*PipelineNode),
		stages:     make(map[string]string),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
//
//nolint:cyclop // one case per message type
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.Interrupted = true
			return m, tea.Quit
		case "k", "up":
			if m.SelectedIdx > 0 {
				m.SelectedIdx--
				m.FollowMode = false
			}
		case "j", "down":
			if m.SelectedIdx < len(m.Pipelines)-1 {
				m.SelectedIdx++
				m.FollowMode = false
			}
		case "esc":
			m.FollowMode = true
			m.followRunning()
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case msgPlan:
		for _, name := range msg.names {
			if _, ok := m.ByName[name]; ok {
				continue
			}
			node := &PipelineNode{Name: name, Status: StatusPending}
			m.Pipelines = append(m.Pipelines, node)
			m.ByName[name] = node
		}

	case msgStart:
		m.start(msg)

	case msgLog:
		if node, ok := m.spans[msg.spanID]; ok {
			node.write(msg.data)
		}

	case msgComplete:
		m.complete(msg)

	case msgDone:
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) start(msg msgStart) {
	if parent, ok := m.spans[msg.parentID]; ok {
		m.spans[msg.spanID] = parent
		m.stages[msg.spanID] = msg.name
		parent.Stage = msg.name
		return
	}

	node, ok := m.ByName[msg.name]
	if !ok {
		node = &PipelineNode{Name: msg.name}
		m.Pipelines = append(m.Pipelines, node)
		m.ByName[msg.name] = node
	}
	node.Status = StatusRunning
	node.Started = msg.at
	node.Err = nil
	m.spans[msg.spanID] = node

	if m.FollowMode {
		m.followRunning()
	}
}

func (m *Model) complete(msg msgComplete) {
	node, ok := m.spans[msg.spanID]
	if !ok {
		return
	}
	delete(m.spans, msg.spanID)

	if stage, ok := m.stages[msg.spanID]; ok {
		delete(m.stages, msg.spanID)
		if node.Stage == stage {
			node.Stage = ""
		}
		return
	}

	if rest := node.partial.String(); rest != "" {
		node.partial.Reset()
		node.appendLine(rest)
	}
	node.Duration = msg.at.Sub(node.Started)
	node.Stage = ""
	if msg.err != nil {
		node.Status = StatusError
		node.Err = msg.err
		return
	}
	node.Status = StatusDone
}

// followRunning selects the first running pipeline.
func (m *Model) followRunning() {
	for i, n := range m.Pipelines {
		if n.Status == StatusRunning {
			m.SelectedIdx = i
			return
		}
	}
}

// Selected returns the highlighted pipeline, or nil.
func (m *Model) Selected() *PipelineNode {
	if m.SelectedIdx >= 0 && m.SelectedIdx < len(m.Pipelines) {
		return m.Pipelines[m.SelectedIdx]
	}
	return nil
}

func (m *Model) paneSize() (listWidth, logWidth, logHeight int) {
	listWidth = int(float64(m.Width) * listWidthRatio)
	logWidth = m.Width - listWidth - paneBorder
	logHeight = m.Height - lipgloss.Height(titleStyle.Render("LOGS")) - 1
	return listWidth, max(logWidth, 0), max(logHeight, 0)
}
