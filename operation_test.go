package restbind

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/restbind/restbind/models"
	"github.com/restbind/restbind/schema"
	"github.com/restbind/restbind/transport"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// petDecl declares one resource with a typed GET, a POST taking a body, and
// a query operation taking a repeated id list.
func petDecl(base string) *schema.Declaration {
	return &schema.Declaration{
		SwaggerVersion: "1.2",
		BasePath:       base,
		APIs: []*schema.API{
			{
				Path: "/pet/{petId}",
				Operations: []*schema.Operation{{
					Nickname: "getPetById",
					Method:   "GET",
					Type:     "Pet",
					Parameters: []*schema.Parameter{
						{Name: "petId", ParamType: schema.ParamPath, Type: "integer", Format: "int64", Required: true},
						{Name: "verbose", ParamType: schema.ParamQuery, Type: "boolean"},
					},
				}},
			},
			{
				Path: "/pet",
				Operations: []*schema.Operation{{
					Nickname: "addPet",
					Method:   "POST",
					Type:     "Pet",
					Parameters: []*schema.Parameter{
						{Name: "body", ParamType: schema.ParamBody, Ref: "Pet", Required: true},
					},
				}},
			},
			{
				Path: "/pet/findByStatus",
				Operations: []*schema.Operation{{
					Nickname: "findPetsByStatus",
					Method:   "GET",
					Type:     "array",
					Items:    &schema.Property{Ref: "Pet"},
					Parameters: []*schema.Parameter{
						{Name: "status", ParamType: schema.ParamQuery, Type: "string", AllowMultiple: true},
						{Name: "limit", ParamType: schema.ParamQuery, Type: "integer"},
					},
				}},
			},
		},
		Models: map[string]*schema.Model{
			"Pet": {
				ID:       "Pet",
				Required: []string{"id"},
				Properties: map[string]*schema.Property{
					"id":   {Type: "integer", Format: "int64"},
					"name": {Type: "string"},
				},
			},
		},
	}
}

func testResource(t *testing.T, decl *schema.Declaration) *Resource {
	t.Helper()
	entry := &schema.ResourceEntry{Path: "/pet", Name: "pet", Declaration: decl}
	r, err := newResource(entry, "", transport.NewHTTP(), discardLogger())
	if err != nil {
		t.Fatalf("newResource: %v", err)
	}
	return r
}

func mustOperation(t *testing.T, r *Resource, name string) *Operation {
	t.Helper()
	op, err := r.Operation(name)
	if err != nil {
		t.Fatalf("Operation(%q): %v", name, err)
	}
	return op
}

func TestCallBindsPathAndQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "GET" {
			t.Errorf("method = %s, want GET", r.Method)
		}
		if r.URL.Path != "/pet/42" {
			t.Errorf("path = %s, want /pet/42", r.URL.Path)
		}
		if got := r.URL.Query().Get("verbose"); got != "true" {
			t.Errorf("verbose = %q, want %q", got, "true")
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id": 42, "name": "rex"}`)
	}))
	defer server.Close()

	pet := testResource(t, petDecl(server.URL))
	op := mustOperation(t, pet, "getPetById")

	result, err := op.Call(context.Background(), Args{"petId": 42, "verbose": true})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if result.Response.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", result.Response.StatusCode)
	}

	obj, ok := result.Value.(*models.Object)
	if !ok {
		t.Fatalf("Value is %T, want *models.Object", result.Value)
	}
	if id, _ := obj.Get("id"); id != int64(42) {
		t.Errorf("id = %v (%T), want int64 42", id, id)
	}
	if name, _ := obj.Get("name"); name != "rex" {
		t.Errorf("name = %v, want rex", name)
	}
}

func TestCallSendsJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content-type = %q, want application/json", ct)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body["name"] != "rex" {
			t.Errorf("body name = %v, want rex", body["name"])
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"id": 1, "name": body["name"]})
	}))
	defer server.Close()

	pet := testResource(t, petDecl(server.URL))
	op := mustOperation(t, pet, "addPet")

	result, err := op.Call(context.Background(), Args{"body": map[string]any{"name": "rex"}})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	obj, ok := result.Value.(*models.Object)
	if !ok {
		t.Fatalf("Value is %T, want *models.Object", result.Value)
	}
	if id, _ := obj.Get("id"); id != int64(1) {
		t.Errorf("id = %v, want int64 1", id)
	}
}

func TestCallCollapsesListArgs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("status"); got != "available,pending" {
			t.Errorf("status = %q, want %q", got, "available,pending")
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[]`)
	}))
	defer server.Close()

	pet := testResource(t, petDecl(server.URL))
	op := mustOperation(t, pet, "findPetsByStatus")

	if _, err := op.Call(context.Background(), Args{"status": []string{"available", "pending"}}); err != nil {
		t.Fatalf("Call: %v", err)
	}
}

func TestCallBindsZeroValues(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !r.URL.Query().Has("limit") {
			t.Error("limit not bound")
		}
		if got := r.URL.Query().Get("limit"); got != "0" {
			t.Errorf("limit = %q, want %q", got, "0")
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[]`)
	}))
	defer server.Close()

	pet := testResource(t, petDecl(server.URL))
	op := mustOperation(t, pet, "findPetsByStatus")

	if _, err := op.Call(context.Background(), Args{"limit": 0}); err != nil {
		t.Fatalf("Call: %v", err)
	}
}

func TestCallMissingRequiredParameter(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	pet := testResource(t, petDecl(server.URL))
	op := mustOperation(t, pet, "getPetById")

	_, err := op.Call(context.Background(), Args{})
	var missing *MissingParameterError
	if !errors.As(err, &missing) {
		t.Fatalf("err = %v, want *MissingParameterError", err)
	}
	if missing.Param != "petId" || missing.Operation != "getPetById" {
		t.Errorf("error fields = %q/%q, want petId/getPetById", missing.Param, missing.Operation)
	}
	if hits.Load() != 0 {
		t.Errorf("server hit %d times before binding completed", hits.Load())
	}
}

func TestCallRejectsUnexpectedParameters(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	pet := testResource(t, petDecl(server.URL))
	op := mustOperation(t, pet, "getPetById")

	_, err := op.Call(context.Background(), Args{"petId": 1, "zz": 1, "aa": 2})
	var unexpected *UnexpectedParametersError
	if !errors.As(err, &unexpected) {
		t.Fatalf("err = %v, want *UnexpectedParametersError", err)
	}
	if len(unexpected.Params) != 2 || unexpected.Params[0] != "aa" || unexpected.Params[1] != "zz" {
		t.Errorf("Params = %v, want [aa zz]", unexpected.Params)
	}
	if hits.Load() != 0 {
		t.Errorf("server hit %d times before binding completed", hits.Load())
	}
}

func TestCallUnsupportedParamType(t *testing.T) {
	decl := petDecl("http://example.invalid")
	decl.APIs[0].Operations[0].Parameters = append(decl.APIs[0].Operations[0].Parameters,
		&schema.Parameter{Name: "token", ParamType: "header", Type: "string"})

	pet := testResource(t, decl)
	op := mustOperation(t, pet, "getPetById")

	_, err := op.Call(context.Background(), Args{"petId": 1, "token": "abc"})
	var unsupported *UnsupportedParamTypeError
	if !errors.As(err, &unsupported) {
		t.Fatalf("err = %v, want *UnsupportedParamTypeError", err)
	}
	if unsupported.ParamType != "header" || unsupported.Param != "token" {
		t.Errorf("error fields = %q/%q, want header/token", unsupported.ParamType, unsupported.Param)
	}
}

func TestCallErrorStatusSkipsTyping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "no such pet"}`, http.StatusNotFound)
	}))
	defer server.Close()

	pet := testResource(t, petDecl(server.URL))
	op := mustOperation(t, pet, "getPetById")

	result, err := op.Call(context.Background(), Args{"petId": 999})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if result.Response.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", result.Response.StatusCode)
	}
	if result.Value != nil {
		t.Errorf("Value = %v, want nil on error status", result.Value)
	}
}

func TestCallParseFailureKeepsResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"name": "rex"}`)
	}))
	defer server.Close()

	pet := testResource(t, petDecl(server.URL))
	op := mustOperation(t, pet, "getPetById")

	result, err := op.Call(context.Background(), Args{"petId": 42})
	if err == nil {
		t.Fatal("expected parse error for payload missing required id")
	}
	if result == nil || result.Response == nil {
		t.Fatal("result should still carry the raw response")
	}
	if result.Response.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", result.Response.StatusCode)
	}
	if result.Value != nil {
		t.Errorf("Value = %v, want nil after parse failure", result.Value)
	}
}

func TestCallWebsocket(t *testing.T) {
	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("channel"); got != "pets" {
			t.Errorf("channel = %q, want pets", got)
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()
		conn.WriteMessage(websocket.TextMessage, []byte(`{"event": "created"}`))
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	}))
	defer server.Close()

	decl := &schema.Declaration{
		SwaggerVersion: "1.2",
		BasePath:       server.URL,
		APIs: []*schema.API{{
			Path: "/events",
			Operations: []*schema.Operation{{
				Nickname:    "watchEvents",
				Method:      "GET",
				Upgrade:     "websocket",
				IsWebsocket: true,
				Parameters: []*schema.Parameter{
					{Name: "channel", ParamType: schema.ParamQuery, Type: "string", Required: true},
				},
			}},
		}},
	}

	entry := &schema.ResourceEntry{Path: "/events", Name: "events", Declaration: decl}
	r, err := newResource(entry, "", transport.NewHTTP(), discardLogger())
	if err != nil {
		t.Fatalf("newResource: %v", err)
	}
	op := mustOperation(t, r, "watchEvents")
	if !op.IsWebsocket() {
		t.Fatal("IsWebsocket() = false, want true")
	}

	result, err := op.Call(context.Background(), Args{"channel": "pets"})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if result.Stream == nil {
		t.Fatal("Stream is nil for websocket operation")
	}
	defer result.Stream.Close()

	select {
	case ev, ok := <-result.Stream.Events():
		if !ok {
			t.Fatal("events channel closed before first message")
		}
		if ev.Err != nil {
			t.Fatalf("event error: %v", ev.Err)
		}
		if string(ev.Data) != `{"event": "created"}` {
			t.Errorf("event data = %s", ev.Data)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestRewriteWebsocketScheme(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"http://example.com/events", "ws://example.com/events"},
		{"https://example.com/events", "wss://example.com/events"},
		{"ws://example.com/events", "ws://example.com/events"},
	}
	for _, tc := range cases {
		if got := rewriteWebsocketScheme(tc.in); got != tc.want {
			t.Errorf("rewriteWebsocketScheme(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFlatten(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want string
	}{
		{"string", "abc", "abc"},
		{"int", 42, "42"},
		{"bool", true, "true"},
		{"bytes", []byte("xy"), "xy"},
		{"strings", []string{"a", "b"}, "a,b"},
		{"ints", []int{1, 2, 3}, "1,2,3"},
		{"anys", []any{"a", 2}, "a,2"},
		{"floats", []float64{1.5, 2}, "1.5,2"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := flatten(tc.in); got != tc.want {
				t.Errorf("flatten(%v) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
