package restbind

import (
	"fmt"
	"strings"

	"github.com/restbind/restbind/schema"
)

// DescribeOperation renders a plain-text summary of an operation: method
// and summary line, notes, declared arguments with their types, the return
// type, and the declared error responses.
func DescribeOperation(op *schema.Operation) string {
	var b strings.Builder

	if op.Summary != "" {
		fmt.Fprintf(&b, "[%s] %s\n\n", op.Method, op.Summary)
	}
	if op.Notes != "" {
		b.WriteString(op.Notes)
		b.WriteString("\n")
	}

	if len(op.Parameters) > 0 {
		b.WriteString("Args:\n")
		for _, param := range op.Parameters {
			b.WriteString("\t" + param.Name + " (" + paramTypeToken(param) + ") : " + param.Description + "\n")
		}
	}

	if op.Type != "" {
		fmt.Fprintf(&b, "Returns:\n\t%s\n", op.Type)
	}

	if len(op.ResponseMessages) > 0 {
		b.WriteString("Raises:\n")
		for _, msg := range op.ResponseMessages {
			fmt.Fprintf(&b, "\t%d: %s\n", msg.Code, msg.Message)
		}
	}
	return b.String()
}

// paramTypeToken picks the most specific type label a parameter declares:
// model reference, then format, then bare type.
func paramTypeToken(p *schema.Parameter) string {
	switch {
	case p.Ref != "":
		return p.Ref
	case p.Format != "":
		return p.Format
	default:
		return p.Type
	}
}
