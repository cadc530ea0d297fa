package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.syncViewport()
		return m, nil

	case descriptionLoadedMsg:
		return m.handleLoaded(msg)

	case loadFailedMsg:
		if msg.location != m.location {
			return m, nil
		}
		m.loading = false
		m.loadErr = msg.err.Error()
		m.syncViewport()
		return m, nil

	case opRunResultMsg:
		return m.handleRunResult(msg)

	case opCancelledMsg:
		if run, ok := m.runs[msg.opID]; ok {
			run.status = runError
			run.errMsg = "cancelled"
			run.cancel = nil
		}
		m.syncViewport()
		return m, nil

	case streamReadyMsg:
		return m.handleStreamReady(msg)

	case streamEventMsg:
		return m.handleStreamEvent(msg)

	case streamEndedMsg:
		if run, ok := m.runs[msg.opID]; ok {
			run.status = runSuccess
			run.cancel = nil
			run.stream = nil
		}
		m.syncViewport()
		return m, nil

	case spinnerTickMsg:
		return m.handleSpinnerTick()

	case clearStatusMsg:
		m.statusMsg = ""
		return m, nil

	case tea.KeyMsg:
		if m.focusLoc {
			return m.handleLocationKeys(msg)
		}
		if m.focusArgs {
			return m.handleArgsKeys(msg)
		}
		return m.handleKeys(msg)
	}

	return m, nil
}

func (m *model) handleLoaded(msg descriptionLoadedMsg) (tea.Model, tea.Cmd) {
	// A reload may have raced this response; keep only the current location's.
	if msg.location != m.location {
		msg.client.Close()
		return m, nil
	}
	m.loading = false
	m.loadErr = ""
	m.client = msg.client
	m.tree = buildTree(msg.client)
	m.syncViewport()
	return m, nil
}

func (m *model) handleRunResult(msg opRunResultMsg) (tea.Model, tea.Cmd) {
	run, ok := m.runs[msg.opID]
	if !ok {
		return m, nil
	}
	run.cancel = nil
	run.output = msg.output
	run.errMsg = msg.errMsg
	run.durationMs = msg.durationMs
	if msg.errMsg != "" {
		run.status = runError
	} else {
		run.status = runSuccess
	}
	m.syncViewport()
	return m, nil
}

func (m *model) handleStreamReady(msg streamReadyMsg) (tea.Model, tea.Cmd) {
	run, ok := m.runs[msg.opID]
	if !ok {
		// The run was cancelled while connecting; drop the stream.
		msg.stream.Close()
		return m, nil
	}
	run.status = runStreaming
	run.stream = msg.stream
	m.syncViewport()
	return m, listenCmd(msg.stream, msg.opID)
}

func (m *model) handleStreamEvent(msg streamEventMsg) (tea.Model, tea.Cmd) {
	run, ok := m.runs[msg.opID]
	if !ok || run.stream == nil {
		return m, nil
	}
	run.eventCount++
	if run.output != "" {
		run.output += "\n"
	}
	run.output += msg.data
	m.syncViewport()
	return m, listenCmd(run.stream, msg.opID)
}

func (m *model) handleSpinnerTick() (tea.Model, tea.Cmd) {
	anyActive := false
	for _, run := range m.runs {
		if run.active() {
			anyActive = true
			break
		}
	}
	if !anyActive && !m.loading {
		m.spinnerActive = false
		return m, nil
	}
	m.spinnerFrame = (m.spinnerFrame + 1) % len(spinnerFrames)
	m.syncViewport()
	return m, spinnerTick()
}
