package app

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/restbind/restbind/transport"
)

func newEventServer(t *testing.T) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	mux := http.NewServeMux()

	mux.HandleFunc("/api-docs", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"swaggerVersion": "1.2",
			"apis": [{"path": "/events.{format}"}]
		}`)
	})

	mux.HandleFunc("/events.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"swaggerVersion": "1.2",
			"basePath": "/",
			"apis": [{
				"path": "/events",
				"operations": [{
					"nickname": "watchEvents",
					"method": "GET",
					"upgrade": "websocket",
					"parameters": [{"name": "channel", "paramType": "query", "type": "string"}]
				}]
			}]
		}`)
	})

	mux.HandleFunc("/events", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("channel") != "pets" {
			http.Error(w, "unknown channel", http.StatusBadRequest)
			return
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		conn.WriteMessage(websocket.TextMessage, []byte(`{"event": "fed"}`))
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	})

	return httptest.NewServer(mux)
}

func TestWatchStreamsEvents(t *testing.T) {
	server := newEventServer(t)
	defer server.Close()

	session, err := Watch(context.Background(), CallInput{
		Location:  server.URL + "/api-docs",
		Resource:  "events",
		Operation: "watchEvents",
		Args:      map[string]any{"channel": "pets"},
	})
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer session.Close()

	if session.Operation().Nickname() != "watchEvents" {
		t.Errorf("operation = %q", session.Operation().Nickname())
	}

	select {
	case ev, ok := <-session.Events():
		if !ok {
			t.Fatal("events channel closed before first event")
		}
		shaped := ShapeEvent(ev)
		if string(shaped.Data) != `{"event": "fed"}` {
			t.Errorf("event = %q error = %q", shaped.Data, shaped.Error)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestWatchRejectsPlainOperation(t *testing.T) {
	server := newPetServer(t)
	defer server.Close()

	_, err := Watch(context.Background(), CallInput{
		Location:  server.URL + "/api-docs",
		Resource:  "pet",
		Operation: "getPetById",
		Args:      map[string]any{"petId": 1},
	})
	if err == nil || !strings.Contains(err.Error(), "use call") {
		t.Fatalf("err = %v", err)
	}
}

func TestCallRejectsWebsocketOperation(t *testing.T) {
	server := newEventServer(t)
	defer server.Close()

	_, err := Call(context.Background(), CallInput{
		Location:  server.URL + "/api-docs",
		Resource:  "events",
		Operation: "watchEvents",
		Args:      map[string]any{"channel": "pets"},
	})
	if err == nil || !strings.Contains(err.Error(), "use watch") {
		t.Fatalf("err = %v", err)
	}
}

func TestShapeEvent(t *testing.T) {
	tests := []struct {
		name string
		ev   transport.Event
		want WatchEvent
	}{
		{"json passes through", transport.Event{Data: []byte(`{"a":1}`)}, WatchEvent{Data: []byte(`{"a":1}`)}},
		{"text re-quotes", transport.Event{Data: []byte("plain text")}, WatchEvent{Data: []byte(`"plain text"`)}},
		{"error surfaces", transport.Event{Err: errors.New("boom")}, WatchEvent{Error: "boom"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ShapeEvent(tt.ev)
			if string(got.Data) != string(tt.want.Data) || got.Error != tt.want.Error {
				t.Errorf("ShapeEvent() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
