// Package app - form.go prompts for missing call arguments interactively.
package app

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/google/shlex"

	"github.com/restbind/restbind"
	"github.com/restbind/restbind/models"
	"github.com/restbind/restbind/schema"
)

// PromptForArgs asks for every declared parameter the caller has not
// supplied. Path and query parameters use inline prompts; a body parameter
// opens $EDITOR on a JSON skeleton of its model. Optional parameters left
// blank stay absent. Callers should only invoke this on a terminal.
func PromptForArgs(op *restbind.Operation, set models.Set, have restbind.Args) (restbind.Args, error) {
	args := restbind.Args{}
	for k, v := range have {
		args[k] = v
	}

	var fields []huh.Field
	values := map[string]*string{}
	var bodyParam *schema.Parameter

	for _, param := range op.Parameters() {
		if _, supplied := args[param.Name]; supplied {
			continue
		}
		if param.ParamType == schema.ParamBody {
			bodyParam = param
			continue
		}

		raw := new(string)
		values[param.Name] = raw
		title := param.Name
		if param.Required {
			title += " (required)"
		}
		fields = append(fields, huh.NewInput().
			Title(title).
			Description(param.Description).
			Value(raw))
	}

	if len(fields) > 0 {
		form := huh.NewForm(huh.NewGroup(fields...))
		if err := form.Run(); err != nil {
			return nil, err
		}
		for name, raw := range values {
			if *raw == "" {
				continue
			}
			args[name] = CoerceArg(*raw)
		}
	}

	if bodyParam != nil {
		body, err := editBodyArg(bodyParam, set)
		if err != nil {
			return nil, err
		}
		if body != nil {
			args[bodyParam.Name] = body
		}
	}

	return args, nil
}

// editBodyArg opens the user's editor on a JSON skeleton of the body model
// and returns the edited document.
func editBodyArg(param *schema.Parameter, set models.Set) (any, error) {
	skeleton := ModelSkeleton(set, param.Ref)
	data, err := json.MarshalIndent(skeleton, "", "  ")
	if err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp("", "restbind-body-*.json")
	if err != nil {
		return nil, fmt.Errorf("create temp: %w", err)
	}
	path := tmp.Name()
	defer os.Remove(path)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("close temp: %w", err)
	}

	if err := openInEditor(path); err != nil {
		return nil, err
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read edited body: %w", err)
	}
	if strings.TrimSpace(string(edited)) == "" {
		return nil, nil
	}

	var body any
	if err := json.Unmarshal(edited, &body); err != nil {
		return nil, fmt.Errorf("edited body is not valid JSON: %w", err)
	}
	return body, nil
}

// ModelSkeleton builds an example document for a model: every property
// present with its zero value. Unknown models produce an empty object.
func ModelSkeleton(set models.Set, name string) map[string]any {
	return modelSkeleton(set, name, 0)
}

func modelSkeleton(set models.Set, name string, depth int) map[string]any {
	out := map[string]any{}
	t := set[name]
	if t == nil || depth > 3 {
		return out
	}
	for prop, d := range t.Properties {
		out[prop] = zeroValue(set, d, depth)
	}
	return out
}

func zeroValue(set models.Set, d models.Descriptor, depth int) any {
	switch d.Kind {
	case models.Primitive:
		switch d.Name {
		case "integer", "number":
			return 0
		case "boolean":
			return false
		default:
			return ""
		}
	case models.Array:
		return []any{}
	case models.Model:
		return modelSkeleton(set, d.Name, depth+1)
	default:
		return nil
	}
}

func openInEditor(path string) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		for _, e := range []string{"code", "vim", "nano", "vi"} {
			if _, err := exec.LookPath(e); err == nil {
				editor = e
				break
			}
		}
	}
	if editor == "" {
		return fmt.Errorf("no editor found (set $EDITOR)")
	}

	parts, err := shlex.Split(editor)
	if err != nil || len(parts) == 0 {
		return fmt.Errorf("invalid editor command %q", editor)
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
