package app

import (
	"strings"

	"github.com/restbind/restbind"
	"github.com/restbind/restbind/schema"
)

// ParameterSummary is one declared argument slot of an operation.
type ParameterSummary struct {
	Name        string `json:"name"`
	ParamType   string `json:"paramType"`
	Type        string `json:"type"`
	Required    bool   `json:"required,omitempty"`
	Description string `json:"description,omitempty"`
}

// DescribeOutput is the full view of a single operation.
type DescribeOutput struct {
	Location   string             `json:"location"`
	Resource   string             `json:"resource"`
	Nickname   string             `json:"nickname"`
	Method     string             `json:"method"`
	URI        string             `json:"uri"`
	Websocket  bool               `json:"websocket,omitempty"`
	ReturnType string             `json:"returnType,omitempty"`
	Parameters []ParameterSummary `json:"parameters,omitempty"`
	Text       string             `json:"text,omitempty"`
}

// BuildDescribe assembles the describe view for one operation.
func BuildDescribe(op *restbind.Operation, location, resource string) DescribeOutput {
	out := DescribeOutput{
		Location:   location,
		Resource:   resource,
		Nickname:   op.Nickname(),
		Method:     op.Method(),
		URI:        op.URI(),
		Websocket:  op.IsWebsocket(),
		ReturnType: op.ReturnType().String(),
		Text:       op.Describe(),
	}
	for _, p := range op.Parameters() {
		out.Parameters = append(out.Parameters, ParameterSummary{
			Name:        p.Name,
			ParamType:   p.ParamType,
			Type:        parameterTypeToken(p),
			Required:    p.Required,
			Description: p.Description,
		})
	}
	return out
}

func parameterTypeToken(p *schema.Parameter) string {
	switch {
	case p.Ref != "":
		return p.Ref
	case p.Format != "":
		return p.Format
	default:
		return p.Type
	}
}

// Render returns the styled describe view: a header line followed by the
// operation's documentation text.
func (o DescribeOutput) Render() string {
	s := Styles
	var sb strings.Builder

	sb.WriteString(s.Key.Render(o.Resource + "." + o.Nickname))
	sb.WriteString(" ")
	if o.Websocket {
		sb.WriteString(s.Method.Render("WS"))
	} else {
		sb.WriteString(s.Method.Render(o.Method))
	}
	sb.WriteString(" ")
	sb.WriteString(s.Dim.Render(o.URI))
	sb.WriteString("\n\n")
	sb.WriteString(strings.TrimRight(o.Text, "\n"))

	return sb.String()
}
