package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/restbind/restbind"
)

type model struct {
	width  int
	height int

	ctx context.Context

	// Location of the browsed description and the client bound over it.
	// client is nil until a load succeeds; loadErr holds the last failure.
	location string
	client   *restbind.Client
	loading  bool
	loadErr  string

	tree *TreeState

	locInput textinput.Model
	focusLoc bool

	// Argument line for the next run of argsOpID; argLines remembers the
	// last line entered per operation.
	argsInput textinput.Model
	focusArgs bool
	argsOpID  string
	argLines  map[string]string

	helpShown bool

	viewport viewport.Model

	// Per-operation run state, keyed "resource.nickname".
	runs map[string]*opRun

	// Describe text toggled open under an operation, keyed like runs.
	describes map[string]string

	statusMsg string

	// Spinner state - prevents multiple tick chains
	spinnerActive bool
	spinnerFrame  int
}

func (m *model) Init() tea.Cmd {
	if m.location == "" {
		return m.focusLocationBar()
	}
	m.loading = true
	m.spinnerActive = true
	return tea.Batch(loadCmd(m.ctx, m.location), spinnerTick())
}

func (m *model) focusLocationBar() tea.Cmd {
	m.focusLoc = true
	m.locInput.SetValue(m.location)
	m.locInput.CursorEnd()
	m.locInput.Focus()
	return textinput.Blink
}

func (m *model) blurLocationBar() {
	m.focusLoc = false
	m.locInput.Blur()
}

// focusArgsBar opens the argument line for a run of opID, seeded with the
// last line entered for it.
func (m *model) focusArgsBar(opID string) tea.Cmd {
	m.focusArgs = true
	m.argsOpID = opID
	m.argsInput.SetValue(m.argLines[opID])
	m.argsInput.CursorEnd()
	m.argsInput.Focus()
	return textinput.Blink
}

func (m *model) blurArgsBar() {
	m.focusArgs = false
	m.argsOpID = ""
	m.argsInput.Blur()
}

// reload closes the current client and loads the location again.
func (m *model) reload(location string) tea.Cmd {
	if m.client != nil {
		m.client.Close()
		m.client = nil
	}
	m.location = location
	m.tree = nil
	m.loadErr = ""
	m.loading = true
	m.runs = nil
	m.describes = nil
	m.argLines = nil
	m.syncViewport()

	cmds := []tea.Cmd{loadCmd(m.ctx, location)}
	if !m.spinnerActive {
		m.spinnerActive = true
		cmds = append(cmds, spinnerTick())
	}
	return tea.Batch(cmds...)
}

// selectedOperationID returns the run key for the selected node: the node's
// own ID for operations, the enclosing operation's for its detail rows.
func (m *model) selectedOperationID() string {
	if m.tree == nil {
		return ""
	}
	node := m.tree.Selected()
	if node == nil {
		return ""
	}
	if node.Kind == NodeOperation {
		return node.ID
	}
	if node.Kind == NodeParameter || node.Kind == NodeReturn {
		if parent := m.tree.parentOf(node); parent != nil && parent.Kind == NodeOperation {
			return parent.ID
		}
	}
	return ""
}
