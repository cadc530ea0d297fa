package app

import (
	"strings"

	"github.com/restbind/restbind"
)

// OperationSummary is one row of the operations view.
type OperationSummary struct {
	Resource  string `json:"resource"`
	Nickname  string `json:"nickname"`
	Method    string `json:"method"`
	URI       string `json:"uri"`
	Summary   string `json:"summary,omitempty"`
	Websocket bool   `json:"websocket,omitempty"`
}

// OperationsOutput lists operations for one resource, or every resource in
// the listing when no resource was named.
type OperationsOutput struct {
	Location   string             `json:"location"`
	Resource   string             `json:"resource,omitempty"`
	Operations []OperationSummary `json:"operations"`
}

// BuildOperations assembles the operations view. An empty resource selects
// all of them.
func BuildOperations(client *restbind.Client, location, resource string) (OperationsOutput, error) {
	names := []string{resource}
	if resource == "" {
		names = client.Resources()
	}

	out := OperationsOutput{Location: location, Resource: resource}
	for _, name := range names {
		r, err := client.Resource(name)
		if err != nil {
			return OperationsOutput{}, err
		}
		for _, nickname := range r.Operations() {
			op, err := r.Operation(nickname)
			if err != nil {
				return OperationsOutput{}, err
			}
			out.Operations = append(out.Operations, OperationSummary{
				Resource:  name,
				Nickname:  op.Nickname(),
				Method:    op.Method(),
				URI:       op.URI(),
				Summary:   op.Declaration().Summary,
				Websocket: op.IsWebsocket(),
			})
		}
	}
	return out, nil
}

// Render returns a human-friendly styled operation list grouped by resource.
func (o OperationsOutput) Render() string {
	s := Styles
	if len(o.Operations) == 0 {
		return s.Dim.Render("No operations")
	}

	var sb strings.Builder
	group := ""
	for _, op := range o.Operations {
		if op.Resource != group {
			if group != "" {
				sb.WriteString("\n")
			}
			sb.WriteString(s.Header.Render(op.Resource + ":"))
			group = op.Resource
		}
		sb.WriteString("\n  ")
		sb.WriteString(s.Bullet.Render("•"))
		sb.WriteString(" ")
		sb.WriteString(s.Key.Render(op.Nickname))
		sb.WriteString(" ")
		if op.Websocket {
			sb.WriteString(s.Method.Render("WS"))
		} else {
			sb.WriteString(s.Method.Render(op.Method))
		}
		sb.WriteString(" ")
		sb.WriteString(s.Dim.Render(op.URI))
		if op.Summary != "" {
			sb.WriteString("\n    ")
			sb.WriteString(s.Dim.Render(op.Summary))
		}
	}
	return sb.String()
}
