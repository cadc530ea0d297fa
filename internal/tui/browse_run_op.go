package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/restbind/restbind"
	"github.com/restbind/restbind/transport"
)

// Run status values for opRun.status.
const (
	runRunning   = "running"
	runStreaming = "streaming"
	runSuccess   = "success"
	runError     = "error"
)

// opRun tracks one operation's execution state.
type opRun struct {
	status     string
	output     string
	errMsg     string
	durationMs int64
	cancel     func()

	// Streaming runs append events to output and count them here.
	streaming  bool
	eventCount int
	stream     *transport.Stream
}

func (r *opRun) active() bool {
	return r.status == runRunning || r.status == runStreaming
}

// opRunResultMsg is sent when an operation call completes.
type opRunResultMsg struct {
	opID       string
	output     string
	errMsg     string
	durationMs int64
}

// opCancelledMsg is sent when a run is cancelled before completing.
type opCancelledMsg struct {
	opID string
}

// streamReadyMsg is sent when a websocket subscription is established.
type streamReadyMsg struct {
	opID   string
	stream *transport.Stream
}

// streamEventMsg carries one event from an open stream.
type streamEventMsg struct {
	opID string
	data string
}

// streamEndedMsg is sent when a stream closes.
type streamEndedMsg struct {
	opID string
}

// spinnerTickMsg triggers spinner animation updates.
type spinnerTickMsg struct{}

// spinnerFrames for animated loading indicator
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinnerTick returns a command that ticks the spinner after a delay.
func spinnerTick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(time.Time) tea.Msg {
		return spinnerTickMsg{}
	})
}

// runOpCmd dispatches an operation call. Binding errors (a required
// parameter not in args) report in the output box.
func runOpCmd(ctx context.Context, op *restbind.Operation, opID string, args restbind.Args) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		result, err := op.Call(ctx, args)
		durationMs := time.Since(start).Milliseconds()

		if ctx.Err() != nil {
			return opCancelledMsg{opID: opID}
		}

		msg := opRunResultMsg{opID: opID, durationMs: durationMs}
		if err != nil {
			msg.errMsg = err.Error()
		}
		if result != nil && result.Response != nil {
			msg.output = formatResult(result)
			if msg.errMsg == "" && !(result.Response.StatusCode >= 200 && result.Response.StatusCode < 400) {
				msg.errMsg = fmt.Sprintf("status %d", result.Response.StatusCode)
			}
		}
		return msg
	}
}

// subscribeOpCmd connects a websocket operation's stream.
func subscribeOpCmd(ctx context.Context, op *restbind.Operation, opID string, args restbind.Args) tea.Cmd {
	return func() tea.Msg {
		result, err := op.Call(ctx, args)
		if err != nil {
			return opRunResultMsg{opID: opID, errMsg: err.Error()}
		}
		return streamReadyMsg{opID: opID, stream: result.Stream}
	}
}

// listenCmd waits for the next event on a stream. The update loop re-issues
// it after every delivered event.
func listenCmd(stream *transport.Stream, opID string) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-stream.Events()
		if !ok {
			return streamEndedMsg{opID: opID}
		}
		if ev.Err != nil {
			return streamEventMsg{opID: opID, data: "error: " + ev.Err.Error()}
		}
		return streamEventMsg{opID: opID, data: strings.TrimRight(string(ev.Data), "\n")}
	}
}

// formatResult renders a call result for the output box: the typed value
// when parsing succeeded, otherwise the response body.
func formatResult(result *restbind.Result) string {
	if result.Value != nil {
		if b, err := json.MarshalIndent(result.Value, "", "  "); err == nil {
			return string(b)
		}
	}
	body := result.Response.Text()
	var v any
	if json.Unmarshal([]byte(body), &v) == nil {
		if b, err := json.MarshalIndent(v, "", "  "); err == nil {
			return string(b)
		}
	}
	return body
}

// launchOp starts (or restarts) a run of the operation under opID: cancels
// any run in flight, records the new state, and returns the batched
// command (call + spinner).
func (m *model) launchOp(opID string, args restbind.Args) tea.Cmd {
	if m.client == nil {
		return nil
	}

	resource, nickname, ok := strings.Cut(opID, ".")
	if !ok {
		return nil
	}
	op, err := m.client.Operation(resource, nickname)
	if err != nil {
		m.statusMsg = err.Error()
		return clearStatusAfter(2 * time.Second)
	}

	if m.runs == nil {
		m.runs = make(map[string]*opRun)
	}
	if existing, ok := m.runs[opID]; ok && existing.active() && existing.cancel != nil {
		existing.cancel()
	}

	ctx, cancel := context.WithCancel(m.ctx)

	if node := findByID(m.tree.Roots, opID); node != nil && !node.IsLeaf() {
		node.Expanded = true
	}

	var cmds []tea.Cmd
	if op.IsWebsocket() {
		m.runs[opID] = &opRun{status: runRunning, streaming: true, cancel: cancel}
		cmds = append(cmds, subscribeOpCmd(ctx, op, opID, args))
	} else {
		m.runs[opID] = &opRun{status: runRunning, cancel: cancel}
		cmds = append(cmds, runOpCmd(ctx, op, opID, args))
	}

	if !m.spinnerActive {
		m.spinnerActive = true
		cmds = append(cmds, spinnerTick())
	}

	m.syncViewport()
	return tea.Batch(cmds...)
}
