package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Stream is a live websocket subscription. Read messages from Events; the
// channel closes when the peer closes, the context given to StreamConnect
// is cancelled, or Close is called.
type Stream struct {
	conn     *websocket.Conn
	response *Response
	events   chan Event

	done      chan struct{}
	closeOnce sync.Once
}

// Events returns the message channel.
func (s *Stream) Events() <-chan Event { return s.events }

// Response returns the websocket handshake response metadata.
func (s *Stream) Response() *Response { return s.response }

// Close ends the subscription. Safe to call more than once.
func (s *Stream) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
		deadline := time.Now().Add(time.Second)
		_ = s.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
		_ = s.conn.Close()
	})
	return nil
}

func (s *Stream) pump() {
	defer close(s.events)
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if streamEnded(err) {
				return
			}
			select {
			case s.events <- Event{Err: err}:
			case <-s.done:
			}
			return
		}
		select {
		case s.events <- Event{Data: data}:
		case <-s.done:
			return
		}
	}
}

// streamEnded reports whether err is an orderly end of stream rather than a
// failure worth surfacing.
func streamEnded(err error) bool {
	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		return true
	}
	return errors.Is(err, net.ErrClosed)
}

// StreamConnect implements Interface.
func (h *HTTP) StreamConnect(ctx context.Context, uri string, query url.Values) (*Stream, error) {
	target, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("parse stream uri: %w", err)
	}
	if len(query) > 0 {
		q := target.Query()
		for name, values := range query {
			for _, v := range values {
				q.Add(name, v)
			}
		}
		target.RawQuery = q.Encode()
	}

	dialer := websocket.DefaultDialer
	conn, resp, err := dialer.DialContext(ctx, target.String(), nil)
	if err != nil {
		if errors.Is(err, websocket.ErrBadHandshake) && resp != nil {
			detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			resp.Body.Close()
			return nil, fmt.Errorf("websocket handshake with %s: %s: %s", target.String(), resp.Status, string(detail))
		}
		return nil, fmt.Errorf("websocket connect %s: %w", target.String(), err)
	}

	s := &Stream{
		conn:   conn,
		events: make(chan Event),
		done:   make(chan struct{}),
		response: &Response{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Header:     resp.Header,
			URL:        target.String(),
		},
	}

	go s.pump()
	go func() {
		select {
		case <-ctx.Done():
			s.Close()
		case <-s.done:
		}
	}()

	return s, nil
}
