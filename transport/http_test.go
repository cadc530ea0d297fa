package transport

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestRequestBindsEverything(t *testing.T) {
	var gotMethod, gotPath, gotQuery, gotContentType string
	var gotBody []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": 7}`))
	}))
	defer srv.Close()

	tr := NewHTTP()
	defer tr.Close()

	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	resp, err := tr.Request(context.Background(), "post", srv.URL+"/pets?src=test",
		url.Values{"limit": {"10"}}, map[string]any{"name": "rex"}, headers)
	if err != nil {
		t.Fatalf("Request: %v", err)
	}

	if gotMethod != "POST" {
		t.Errorf("method = %q, want POST", gotMethod)
	}
	if gotPath != "/pets" {
		t.Errorf("path = %q, want /pets", gotPath)
	}
	values, err := url.ParseQuery(gotQuery)
	if err != nil {
		t.Fatalf("parse query %q: %v", gotQuery, err)
	}
	if values.Get("limit") != "10" || values.Get("src") != "test" {
		t.Errorf("query = %q, want limit=10 and src=test", gotQuery)
	}
	if gotContentType != "application/json" {
		t.Errorf("content-type = %q, want application/json", gotContentType)
	}

	var sent map[string]any
	if err := json.Unmarshal(gotBody, &sent); err != nil || sent["name"] != "rex" {
		t.Errorf("body = %q, want JSON with name=rex (err %v)", gotBody, err)
	}

	if resp.StatusCode != http.StatusCreated {
		t.Errorf("StatusCode = %d, want 201", resp.StatusCode)
	}
	var out map[string]any
	if err := resp.JSON(&out); err != nil || out["id"] != float64(7) {
		t.Errorf("JSON = %v, %v, want id=7", out, err)
	}
}

func TestRequestStringBodyPassesThrough(t *testing.T) {
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
	}))
	defer srv.Close()

	tr := NewHTTP()
	raw := `{"already": "encoded"}`
	if _, err := tr.Request(context.Background(), "PUT", srv.URL, nil, raw, nil); err != nil {
		t.Fatalf("Request: %v", err)
	}
	if string(gotBody) != raw {
		t.Errorf("body = %q, want raw string %q", gotBody, raw)
	}
}

func TestRequestDefaultsAccept(t *testing.T) {
	var gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccept = r.Header.Get("Accept")
	}))
	defer srv.Close()

	tr := NewHTTP()
	if _, err := tr.Request(context.Background(), "GET", srv.URL, nil, nil, nil); err != nil {
		t.Fatalf("Request: %v", err)
	}
	if gotAccept != "application/json" {
		t.Errorf("Accept = %q, want application/json", gotAccept)
	}
}

func TestSuccessful(t *testing.T) {
	tr := NewHTTP()
	tests := []struct {
		code int
		want bool
	}{
		{199, false},
		{200, true},
		{204, true},
		{302, true},
		{399, true},
		{400, false},
		{500, false},
	}
	for _, tt := range tests {
		resp := &Response{StatusCode: tt.code}
		if got := tr.Successful(resp); got != tt.want {
			t.Errorf("Successful(%d) = %v, want %v", tt.code, got, tt.want)
		}
	}
	if tr.Successful(nil) {
		t.Error("Successful(nil) = true, want false")
	}
}

func TestResponseText(t *testing.T) {
	resp := &Response{Body: []byte("plain text")}
	if resp.Text() != "plain text" {
		t.Errorf("Text() = %q, want plain text", resp.Text())
	}
}
