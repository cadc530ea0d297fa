package tui

import (
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/shlex"

	"github.com/restbind/restbind/internal/app"
)

// clearStatusAfter returns a command that clears the status after duration.
func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

// clearStatusMsg is sent after a delay to clear the status message.
type clearStatusMsg struct{}

// handleLocationKeys handles keyboard input while the location bar is focused.
func (m *model) handleLocationKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.blurLocationBar()
		loc := normalizeLocation(m.locInput.Value())
		if loc == "" || loc == m.location {
			return m, nil
		}
		return m, m.reload(loc)
	case "ctrl+u":
		m.locInput.SetValue("")
		m.locInput.CursorEnd()
		return m, nil
	case "esc", "ctrl+g":
		m.blurLocationBar()
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.locInput, cmd = m.locInput.Update(msg)
	return m, cmd
}

// handleKeys handles keyboard input in the tree view.
func (m *model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.helpShown {
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		default:
			m.helpShown = false
			m.syncViewport()
			return m, nil
		}
	}

	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit

	case "?":
		m.helpShown = true
		m.syncViewport()
		return m, nil

	case "u", "ctrl+l":
		return m, m.focusLocationBar()

	case "ctrl+r":
		if m.location != "" {
			return m, m.reload(m.location)
		}
		return m, nil

	case "j", "down":
		if m.tree != nil {
			m.tree.MoveDown()
			m.ensureSelectionVisible()
		}
		return m, nil

	case "k", "up":
		if m.tree != nil {
			m.tree.MoveUp()
			m.ensureSelectionVisible()
		}
		return m, nil

	case "g", "shift+up":
		if m.tree != nil {
			m.tree.MoveToFirst()
			m.ensureSelectionVisible()
		}
		return m, nil

	case "G", "shift+down":
		if m.tree != nil {
			m.tree.MoveToLast()
			m.ensureSelectionVisible()
		}
		return m, nil

	case "l", "right":
		if m.tree != nil {
			m.tree.Expand()
			m.syncViewport()
		}
		return m, nil

	case "h", "left":
		if m.tree != nil {
			m.tree.Collapse()
			m.ensureSelectionVisible()
		}
		return m, nil

	case "shift+right":
		if m.tree != nil {
			m.tree.ExpandAll()
			m.syncViewport()
		}
		return m, nil

	case "shift+left":
		if m.tree != nil {
			m.tree.CollapseAll()
			m.ensureSelectionVisible()
		}
		return m, nil

	case "enter", " ", "r":
		return m.handleRun()

	case "a":
		if opID := m.selectedOperationID(); opID != "" {
			return m, m.focusArgsBar(opID)
		}
		return m, nil

	case "d":
		return m.handleToggleDescribe()

	case "o":
		return m.handleCopyOutput()

	case "c":
		return m.handleCancelRun()
	}

	return m, nil
}

// handleArgsKeys handles keyboard input while the argument line is focused.
// Enter parses the line as name=value pairs and runs the operation with them.
func (m *model) handleArgsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		opID := m.argsOpID
		line := m.argsInput.Value()
		m.blurArgsBar()

		pairs, err := shlex.Split(line)
		if err != nil {
			m.statusMsg = "bad argument line: " + err.Error()
			return m, clearStatusAfter(2 * time.Second)
		}
		args, err := app.ParseCallArgs(pairs, "")
		if err != nil {
			m.statusMsg = err.Error()
			return m, clearStatusAfter(2 * time.Second)
		}
		if m.argLines == nil {
			m.argLines = make(map[string]string)
		}
		m.argLines[opID] = line
		return m, m.launchOp(opID, args)
	case "ctrl+u":
		m.argsInput.SetValue("")
		m.argsInput.CursorEnd()
		return m, nil
	case "esc", "ctrl+g":
		m.blurArgsBar()
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.argsInput, cmd = m.argsInput.Update(msg)
	return m, cmd
}

// handleToggleDescribe shows or hides the declaration text under the
// selected operation.
func (m *model) handleToggleDescribe() (tea.Model, tea.Cmd) {
	opID := m.selectedOperationID()
	if opID == "" || m.client == nil {
		return m, nil
	}
	if _, shown := m.describes[opID]; shown {
		delete(m.describes, opID)
		m.syncViewport()
		return m, nil
	}

	resource, nickname, ok := strings.Cut(opID, ".")
	if !ok {
		return m, nil
	}
	op, err := m.client.Operation(resource, nickname)
	if err != nil {
		m.statusMsg = err.Error()
		return m, clearStatusAfter(2 * time.Second)
	}
	if m.describes == nil {
		m.describes = make(map[string]string)
	}
	m.describes[opID] = op.Describe()
	m.syncViewport()
	return m, nil
}

// handleRun runs the selected operation, or toggles a resource node.
func (m *model) handleRun() (tea.Model, tea.Cmd) {
	if m.tree == nil {
		return m, nil
	}
	node := m.tree.Selected()
	if node == nil {
		return m, nil
	}
	if node.Kind == NodeResource {
		m.tree.Toggle()
		m.syncViewport()
		return m, nil
	}
	if opID := m.selectedOperationID(); opID != "" {
		return m, m.launchOp(opID, nil)
	}
	return m, nil
}

// handleCopyOutput copies the selected operation's output to the clipboard.
func (m *model) handleCopyOutput() (tea.Model, tea.Cmd) {
	opID := m.selectedOperationID()
	if opID == "" {
		return m, nil
	}
	run, ok := m.runs[opID]
	if !ok || run.output == "" {
		return m, nil
	}
	if err := clipboard.WriteAll(run.output); err != nil {
		m.statusMsg = "Copy failed"
	} else {
		m.statusMsg = "Copied!"
	}
	return m, clearStatusAfter(2 * time.Second)
}

// handleCancelRun cancels the selected operation's run in flight.
func (m *model) handleCancelRun() (tea.Model, tea.Cmd) {
	opID := m.selectedOperationID()
	if opID == "" {
		return m, nil
	}
	if run, ok := m.runs[opID]; ok && run.active() && run.cancel != nil {
		run.cancel()
		m.statusMsg = "Cancelling..."
		return m, clearStatusAfter(2 * time.Second)
	}
	return m, nil
}
