package app

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestCoerceArg(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want any
	}{
		{"string", "available", "available"},
		{"int", "42", int64(42)},
		{"float", "1.5", 1.5},
		{"bool", "true", true},
		{"null", "null", nil},
		{"quoted stays string", `"42"`, "42"},
		{"array", `["a","b"]`, []any{"a", "b"}},
		{"object", `{"k":1}`, map[string]any{"k": float64(1)}},
		{"broken json stays string", `{"k":`, `{"k":`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CoerceArg(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("CoerceArg(%q) = %#v, want %#v", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseCallArgs(t *testing.T) {
	args, err := ParseCallArgs([]string{"petId=42", "verbose=true", "name=rex"}, "")
	if err != nil {
		t.Fatalf("ParseCallArgs: %v", err)
	}
	if args["petId"] != int64(42) {
		t.Errorf("petId = %#v", args["petId"])
	}
	if args["verbose"] != true {
		t.Errorf("verbose = %#v", args["verbose"])
	}
	if args["name"] != "rex" {
		t.Errorf("name = %#v", args["name"])
	}
}

func TestParseCallArgsRejectsBadPair(t *testing.T) {
	if _, err := ParseCallArgs([]string{"oops"}, ""); err == nil {
		t.Error("pair without '=' should fail")
	}
	if _, err := ParseCallArgs([]string{"=v"}, ""); err == nil {
		t.Error("pair without key should fail")
	}
}

func TestParseCallArgsInputDoc(t *testing.T) {
	args, err := ParseCallArgs([]string{"limit=5"}, `{"status": "available", "limit": 1}`)
	if err != nil {
		t.Fatalf("ParseCallArgs: %v", err)
	}
	if args["status"] != "available" {
		t.Errorf("status = %#v", args["status"])
	}
	// Explicit pairs override the document.
	if args["limit"] != int64(5) {
		t.Errorf("limit = %#v, want pair override", args["limit"])
	}
}

func TestParseCallArgsInputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.json")
	if err := os.WriteFile(path, []byte(`{"petId": 7}`), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	args, err := ParseCallArgs(nil, "@"+path)
	if err != nil {
		t.Fatalf("ParseCallArgs: %v", err)
	}
	if args["petId"] != float64(7) {
		t.Errorf("petId = %#v, want JSON number", args["petId"])
	}
}

func TestParseCallArgsBadInputDoc(t *testing.T) {
	if _, err := ParseCallArgs(nil, `[1,2]`); err == nil {
		t.Error("non-object input document should fail")
	}
	if _, err := ParseCallArgs(nil, "@/does/not/exist.json"); err == nil {
		t.Error("missing input file should fail")
	}
}
