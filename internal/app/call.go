package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/restbind/restbind"
)

// CallInput names the operation to invoke and the arguments to bind.
type CallInput struct {
	Location  string
	Resource  string
	Operation string
	Args      restbind.Args
	Transform string // jsonata projection of the result value
}

// CallOutput is the result view of a dispatched call.
type CallOutput struct {
	Resource   string `json:"resource"`
	Operation  string `json:"operation"`
	Method     string `json:"method"`
	URL        string `json:"url,omitempty"`
	Status     int    `json:"status"`
	Success    bool   `json:"success"`
	DurationMs int64  `json:"durationMs"`
	Value      any    `json:"value,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Call loads the description, binds the arguments and dispatches the
// operation. Binding and load failures return as errors; completed requests
// produce a CallOutput even when the service answered an error status.
func Call(ctx context.Context, input CallInput) (CallOutput, error) {
	client, op, err := ResolveOperation(ctx, input.Location, input.Resource, input.Operation)
	if err != nil {
		return CallOutput{}, err
	}
	defer client.Close()

	if op.IsWebsocket() {
		return CallOutput{}, usageExit(fmt.Sprintf("operation %q is a websocket stream, use watch", input.Operation))
	}

	start := time.Now()
	result, callErr := op.Call(ctx, input.Args)
	if result == nil || result.Response == nil {
		return CallOutput{}, callErr
	}

	out := CallOutput{
		Resource:   input.Resource,
		Operation:  input.Operation,
		Method:     op.Method(),
		URL:        result.Response.URL,
		Status:     result.Response.StatusCode,
		Success:    result.Response.StatusCode >= 200 && result.Response.StatusCode < 400,
		DurationMs: time.Since(start).Milliseconds(),
	}

	out.Value = resultValue(result)
	if callErr != nil {
		out.Error = callErr.Error()
	}

	if out.Error == "" && input.Transform != "" {
		transformed, err := ApplyTransform(input.Transform, out.Value)
		if err != nil {
			return CallOutput{}, err
		}
		out.Value = transformed
	}

	return out, nil
}

// resultValue picks the most useful payload view: the typed value when the
// response parsed, decoded JSON when it looks like JSON, raw text otherwise.
func resultValue(result *restbind.Result) any {
	if result.Value != nil {
		return result.Value
	}
	body := result.Response.Body
	if len(body) == 0 {
		return nil
	}
	if MaybeJSON(string(body)) {
		var v any
		if json.Unmarshal(body, &v) == nil {
			return v
		}
	}
	return result.Response.Text()
}

// Render returns a human-friendly view of the call result.
func (o CallOutput) Render() string {
	s := Styles
	var sb strings.Builder

	sb.WriteString(s.Key.Render(o.Resource + "." + o.Operation))
	sb.WriteString(" ")
	sb.WriteString(s.Method.Render(o.Method))
	sb.WriteString("\n\n")

	sb.WriteString(s.Dim.Render("Status:   "))
	if o.Success {
		sb.WriteString(s.Success.Render(fmt.Sprintf("%d", o.Status)))
	} else {
		sb.WriteString(s.Error.Render(fmt.Sprintf("%d", o.Status)))
	}
	sb.WriteString("\n")

	sb.WriteString(s.Dim.Render("Duration: "))
	sb.WriteString(fmt.Sprintf("%dms", o.DurationMs))
	sb.WriteString("\n")

	if o.Error != "" {
		sb.WriteString(s.Error.Render("Error:    "))
		sb.WriteString(o.Error)
		sb.WriteString("\n")
	}

	if o.Value != nil {
		sb.WriteString("\n")
		switch v := o.Value.(type) {
		case string:
			sb.WriteString(v)
		default:
			if j, err := json.MarshalIndent(v, "", "  "); err == nil {
				sb.WriteString(string(j))
			} else {
				sb.WriteString(fmt.Sprintf("%v", v))
			}
		}
	}

	return strings.TrimSuffix(sb.String(), "\n")
}
