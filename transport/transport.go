// Package transport defines the wire surface operations dispatch through: a
// plain request/response call and a streaming websocket connect. The HTTP
// implementation here is the default; anything satisfying Interface can be
// swapped in at client construction.
package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

// Interface is what an operation needs from the wire. Binding happens
// before any of these are called.
type Interface interface {
	// Request issues a single HTTP request and reads the whole response.
	Request(ctx context.Context, method, uri string, query url.Values, body any, headers http.Header) (*Response, error)

	// StreamConnect opens a websocket to uri with the given query
	// parameters and returns the live stream.
	StreamConnect(ctx context.Context, uri string, query url.Values) (*Stream, error)

	// Successful reports whether the response indicates success; it gates
	// response payload typing.
	Successful(resp *Response) bool

	// Close releases underlying connections. A transport may be shared
	// between clients; Close is scoped to the owner.
	Close() error
}

// Response is a fully-read wire response.
type Response struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte
	URL        string
}

// Text returns the payload as a string.
func (r *Response) Text() string { return string(r.Body) }

// JSON decodes the payload into v.
func (r *Response) JSON(v any) error { return json.Unmarshal(r.Body, v) }

// Event is one message received on a stream. Err is set at most once, for
// abnormal termination; the channel closes afterwards either way.
type Event struct {
	Data []byte
	Err  error
}
