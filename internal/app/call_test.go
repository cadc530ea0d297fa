package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/restbind/restbind"
)

// newPetServer serves a small description plus the endpoints it declares.
func newPetServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/api-docs", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"swaggerVersion": "1.2",
			"apiVersion": "1.0",
			"info": {"title": "Pet Store", "description": "Pets over the wire"},
			"apis": [{"path": "/pet.{format}", "description": "Pet operations"}]
		}`)
	})

	mux.HandleFunc("/pet.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"swaggerVersion": "1.2",
			"basePath": "/",
			"apis": [
				{
					"path": "/pet/{petId}",
					"operations": [{
						"nickname": "getPetById",
						"method": "GET",
						"summary": "Find pet by ID",
						"type": "Pet",
						"parameters": [
							{"name": "petId", "paramType": "path", "type": "integer", "format": "int64", "required": true},
							{"name": "verbose", "paramType": "query", "type": "boolean"}
						],
						"responseMessages": [{"code": 404, "message": "Pet not found"}]
					}]
				},
				{
					"path": "/pet",
					"operations": [{
						"nickname": "addPet",
						"method": "POST",
						"type": "Pet",
						"parameters": [{"name": "body", "paramType": "body", "$ref": "Pet", "required": true}]
					}]
				}
			],
			"models": {
				"Pet": {
					"id": "Pet",
					"required": ["id"],
					"properties": {"id": {"type": "integer", "format": "int64"}, "name": {"type": "string"}}
				}
			}
		}`)
	})

	mux.HandleFunc("/pet/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/pet/")
		if id == "404" {
			http.Error(w, `{"message": "no such pet"}`, http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"id": %s, "name": "rex"}`, id)
	})

	mux.HandleFunc("/pet", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"id": 1, "name": body["name"]})
	})

	return httptest.NewServer(mux)
}

func TestCallEndToEnd(t *testing.T) {
	server := newPetServer(t)
	defer server.Close()

	out, err := Call(context.Background(), CallInput{
		Location:  server.URL + "/api-docs",
		Resource:  "pet",
		Operation: "getPetById",
		Args:      restbind.Args{"petId": 42},
	})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}

	if !out.Success || out.Status != http.StatusOK {
		t.Errorf("status = %d success = %v", out.Status, out.Success)
	}
	if out.Method != "GET" {
		t.Errorf("method = %q", out.Method)
	}
	if out.DurationMs < 0 {
		t.Errorf("duration = %d", out.DurationMs)
	}

	// The declared return type parsed the payload.
	b, err := json.Marshal(out.Value)
	if err != nil {
		t.Fatalf("marshal value: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal value: %v", err)
	}
	if m["id"] != float64(42) || m["name"] != "rex" {
		t.Errorf("value = %v", m)
	}
}

func TestCallWithTransform(t *testing.T) {
	server := newPetServer(t)
	defer server.Close()

	out, err := Call(context.Background(), CallInput{
		Location:  server.URL + "/api-docs",
		Resource:  "pet",
		Operation: "getPetById",
		Args:      restbind.Args{"petId": 7},
		Transform: "name",
	})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if out.Value != "rex" {
		t.Errorf("transformed value = %#v, want rex", out.Value)
	}
}

func TestCallErrorStatus(t *testing.T) {
	server := newPetServer(t)
	defer server.Close()

	out, err := Call(context.Background(), CallInput{
		Location:  server.URL + "/api-docs",
		Resource:  "pet",
		Operation: "getPetById",
		Args:      restbind.Args{"petId": 404},
	})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if out.Success {
		t.Error("404 should not be success")
	}
	if out.Status != http.StatusNotFound {
		t.Errorf("status = %d", out.Status)
	}
	if out.Value == nil {
		t.Error("error body should still be surfaced")
	}
}

func TestCallBindingFailure(t *testing.T) {
	server := newPetServer(t)
	defer server.Close()

	_, err := Call(context.Background(), CallInput{
		Location:  server.URL + "/api-docs",
		Resource:  "pet",
		Operation: "getPetById",
		Args:      restbind.Args{},
	})
	var missing *restbind.MissingParameterError
	if !errors.As(err, &missing) {
		t.Fatalf("err = %v, want MissingParameterError", err)
	}
}

func TestCallUnknownResource(t *testing.T) {
	server := newPetServer(t)
	defer server.Close()

	_, err := Call(context.Background(), CallInput{
		Location:  server.URL + "/api-docs",
		Resource:  "store",
		Operation: "getOrder",
	})
	var unknown *restbind.UnknownResourceError
	if !errors.As(err, &unknown) {
		t.Fatalf("err = %v, want UnknownResourceError", err)
	}
}

func TestCallOutputRender(t *testing.T) {
	out := CallOutput{
		Resource:   "pet",
		Operation:  "getPetById",
		Method:     "GET",
		Status:     200,
		Success:    true,
		DurationMs: 12,
		Value:      map[string]any{"id": float64(1)},
	}
	text := out.Render()
	for _, want := range []string{"pet.getPetById", "GET", "200", "12ms", `"id": 1`} {
		if !strings.Contains(text, want) {
			t.Errorf("Render() missing %q:\n%s", want, text)
		}
	}
}
