package app

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// wireDoc marshals through a custom JSON shape, like the OpenAPI document
// type convert produces.
type wireDoc struct {
	title string
}

func (d wireDoc) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{"info": map[string]any{"title": d.title}})
}

func TestFormatOutputYAMLFollowsMarshaler(t *testing.T) {
	b, err := FormatOutput(wireDoc{title: "Pet Store"}, OutputFormatYAML)
	if err != nil {
		t.Fatalf("FormatOutput: %v", err)
	}

	out := string(b)
	if !strings.Contains(out, "info:") || !strings.Contains(out, "title: Pet Store") {
		t.Errorf("YAML should follow the custom JSON shape, got:\n%s", out)
	}
	if strings.Contains(out, "wireDoc") {
		t.Error("YAML must not serialize the Go struct directly")
	}
}

func TestFormatOutputJSONIndented(t *testing.T) {
	b, err := FormatOutput(map[string]any{"a": 1}, OutputFormatJSON)
	if err != nil {
		t.Fatalf("FormatOutput: %v", err)
	}
	if !strings.Contains(string(b), "\n  \"a\": 1") {
		t.Errorf("JSON should be indented, got %q", b)
	}
}

func TestParseOutputFormat(t *testing.T) {
	cases := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"", OutputFormatText, false},
		{"text", OutputFormatText, false},
		{"json", OutputFormatJSON, false},
		{"yaml", OutputFormatYAML, false},
		{"yml", OutputFormatYAML, false},
		{"xml", "", true},
	}
	for _, tc := range cases {
		got, err := ParseOutputFormat(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseOutputFormat(%q) should fail", tc.in)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("ParseOutputFormat(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
		}
	}
}

func TestFormatForPath(t *testing.T) {
	if got := formatForPath("out.yaml", ""); got != OutputFormatYAML {
		t.Errorf("formatForPath(out.yaml) = %v", got)
	}
	if got := formatForPath("out.json", ""); got != OutputFormatJSON {
		t.Errorf("formatForPath(out.json) = %v", got)
	}
	if got := formatForPath("out.txt", ""); got != OutputFormatJSON {
		t.Errorf("formatForPath(out.txt) = %v, want json fallback", got)
	}
	if got := formatForPath("out.json", "yaml"); got != OutputFormatYAML {
		t.Errorf("explicit format should win, got %v", got)
	}
}

func TestOutputResultQuiet(t *testing.T) {
	err := OutputResultWithCode(map[string]any{"x": 1}, "quiet", "", 3)
	var exit ExitResult
	if !errors.As(err, &exit) {
		t.Fatalf("err = %T, want ExitResult", err)
	}
	if exit.Code != 3 || exit.Message != "" {
		t.Errorf("exit = %+v, want code 3 with empty message", exit)
	}
}

func TestOutputResultWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	err := OutputResult(map[string]any{"x": 1}, "", path)

	var exit ExitResult
	if !errors.As(err, &exit) {
		t.Fatalf("err = %T, want ExitResult", err)
	}
	if exit.Code != 0 || !strings.Contains(exit.Message, "Wrote ") {
		t.Errorf("exit = %+v", exit)
	}

	data, readErr := os.ReadFile(path)
	if readErr != nil {
		t.Fatalf("read output: %v", readErr)
	}
	if !strings.Contains(string(data), `"x": 1`) {
		t.Errorf("file content = %q", data)
	}
}

func TestRenderTextPrefersRenderable(t *testing.T) {
	out := renderText(InfoOutput{Location: "http://x", Resources: []string{"pet"}})
	if !strings.Contains(out, "pet") {
		t.Errorf("renderText should use Render(), got %q", out)
	}
}
