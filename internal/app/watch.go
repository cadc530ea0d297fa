package app

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/restbind/restbind"
	"github.com/restbind/restbind/transport"
)

// WatchSession is an open websocket subscription. Close releases both the
// stream and the client that dialed it.
type WatchSession struct {
	client *restbind.Client
	op     *restbind.Operation
	stream *transport.Stream
}

// Watch resolves a websocket operation and connects its stream.
func Watch(ctx context.Context, input CallInput) (*WatchSession, error) {
	client, op, err := ResolveOperation(ctx, input.Location, input.Resource, input.Operation)
	if err != nil {
		return nil, err
	}

	if !op.IsWebsocket() {
		client.Close()
		return nil, usageExit(fmt.Sprintf("operation %q is not a websocket stream, use call", input.Operation))
	}

	result, err := op.Call(ctx, input.Args)
	if err != nil {
		client.Close()
		return nil, err
	}

	return &WatchSession{client: client, op: op, stream: result.Stream}, nil
}

// Events returns the stream's event channel. It closes when the peer
// finishes or the session is closed.
func (w *WatchSession) Events() <-chan transport.Event { return w.stream.Events() }

// Operation returns the resolved operation.
func (w *WatchSession) Operation() *restbind.Operation { return w.op }

// Close shuts the stream down and releases the client.
func (w *WatchSession) Close() error {
	w.stream.Close()
	return w.client.Close()
}

// WatchEvent is the line format for streamed events.
type WatchEvent struct {
	Data  json.RawMessage `json:"data,omitempty"`
	Error string          `json:"error,omitempty"`
}

// ShapeEvent converts a transport event into its output line. Payloads that
// are not valid JSON are re-quoted so every line stays parseable.
func ShapeEvent(ev transport.Event) WatchEvent {
	if ev.Err != nil {
		return WatchEvent{Error: ev.Err.Error()}
	}
	if json.Valid(ev.Data) {
		return WatchEvent{Data: json.RawMessage(ev.Data)}
	}
	quoted, err := json.Marshal(string(ev.Data))
	if err != nil {
		return WatchEvent{Error: err.Error()}
	}
	return WatchEvent{Data: quoted}
}
