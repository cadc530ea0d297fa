package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout bounds a single request when the caller's context carries
// no deadline of its own.
const DefaultTimeout = 30 * time.Second

// HTTP is the default transport over net/http plus gorilla websockets.
// The zero value is usable; fields customize behavior.
type HTTP struct {
	// Client used for plain requests. Defaults to a client with
	// DefaultTimeout.
	Client *http.Client
	// UserAgent is sent when non-empty.
	UserAgent string
}

// NewHTTP returns a transport with the default request timeout.
func NewHTTP() *HTTP {
	return &HTTP{Client: &http.Client{Timeout: DefaultTimeout}}
}

func (h *HTTP) httpClient() *http.Client {
	if h.Client != nil {
		return h.Client
	}
	return http.DefaultClient
}

// Request implements Interface. The body encodes as-is for string and
// []byte values and as JSON for anything else.
func (h *HTTP) Request(ctx context.Context, method, uri string, query url.Values, body any, headers http.Header) (*Response, error) {
	reader, err := encodeBody(body)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, strings.ToUpper(method), uri, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	if len(query) > 0 {
		q := req.URL.Query()
		for name, values := range query {
			for _, v := range values {
				q.Add(name, v)
			}
		}
		req.URL.RawQuery = q.Encode()
	}

	for name, values := range headers {
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
	if h.UserAgent != "" {
		req.Header.Set("User-Agent", h.UserAgent)
	}

	resp, err := h.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	finalURL := uri
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}
	return &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Header:     resp.Header,
		Body:       payload,
		URL:        finalURL,
	}, nil
}

// Successful implements Interface: anything below 400 counts.
func (h *HTTP) Successful(resp *Response) bool {
	return resp != nil && resp.StatusCode >= 200 && resp.StatusCode < 400
}

// Close implements Interface.
func (h *HTTP) Close() error {
	h.httpClient().CloseIdleConnections()
	return nil
}

func encodeBody(body any) (io.Reader, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case string:
		return strings.NewReader(b), nil
	case []byte:
		return bytes.NewReader(b), nil
	case json.RawMessage:
		return bytes.NewReader(b), nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, err
		}
		return bytes.NewReader(data), nil
	}
}
